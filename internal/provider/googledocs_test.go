package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleCreateDocument(t *testing.T) {
	var gotTitle string
	var gotInsert string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v1/documents":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			gotTitle = body["title"]
			json.NewEncoder(w).Encode(map[string]string{"documentId": "doc-123"})
		case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
			var body struct {
				Requests []struct {
					InsertText struct {
						Text string `json:"text"`
					} `json:"insertText"`
				} `json:"requests"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Len(t, body.Requests, 1)
			gotInsert = body.Requests[0].InsertText.Text
			w.Write([]byte(`{}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	g := newGoogleClientForTest(srv.Client(), srv.URL)
	doc, err := g.CreateDocument(context.Background(), "Jane Doe", "RECEIPT body")
	require.NoError(t, err)
	assert.Equal(t, "doc-123", doc.DocID)
	assert.Equal(t, "https://docs.google.com/document/d/doc-123/edit", doc.DocURL)
	assert.Equal(t, "Jane Doe", gotTitle)
	assert.Equal(t, "RECEIPT body", gotInsert)
}

func TestGoogleCreateDocumentAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	g := newGoogleClientForTest(srv.Client(), srv.URL)
	_, err := g.CreateDocument(context.Background(), "t", "c")
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "create_document", perr.Op)
}

func TestGoogleUploadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload/drive/v3/files", r.URL.Path)
		require.Equal(t, "multipart", r.URL.Query().Get("uploadType"))
		require.Contains(t, r.Header.Get("Content-Type"), "multipart/related")
		json.NewEncoder(w).Encode(map[string]string{"id": "file-9"})
	}))
	defer srv.Close()

	g := newGoogleClientForTest(srv.Client(), srv.URL)
	doc, err := g.UploadFile(context.Background(), "Jane_20240101.txt", "content")
	require.NoError(t, err)
	assert.Equal(t, "file-9", doc.DocID)
	assert.Equal(t, "https://drive.google.com/file/d/file-9/view", doc.DocURL)
}

func TestGoogleEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := newGoogleClientForTest(srv.Client(), srv.URL)
	_, err := g.CreateDocument(context.Background(), "t", "c")
	var perr *Error
	require.True(t, errors.As(err, &perr))
}

func TestStubSentinels(t *testing.T) {
	s := NewStub()
	doc, err := s.CreateDocument(context.Background(), "any", "thing")
	require.NoError(t, err)
	assert.Equal(t, StubDocID, doc.DocID)
	assert.Equal(t, StubDocURL, doc.DocURL)

	up, err := s.UploadFile(context.Background(), "f.txt", "c")
	require.NoError(t, err)
	assert.Equal(t, StubDocID, up.DocID)
	assert.Equal(t, StubFileURL, up.DocURL)
}
