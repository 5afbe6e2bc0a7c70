package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"

	"golang.org/x/oauth2/google"
)

var googleScopes = []string{
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/drive",
}

const (
	defaultDocsBaseURL   = "https://docs.googleapis.com"
	defaultUploadBaseURL = "https://www.googleapis.com"
)

// GoogleClient talks to the Google Docs v1 and Drive v3 REST APIs using a
// service-account credential. No timeout or retry policy beyond the HTTP
// client's defaults: a failed call fails the request.
type GoogleClient struct {
	httpClient    *http.Client
	docsBaseURL   string
	uploadBaseURL string
}

// NewGoogleClient reads the service-account credentials file and builds an
// authenticated client.
func NewGoogleClient(ctx context.Context, credentialsPath string) (*GoogleClient, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, &Error{Op: "init", Msg: "read credentials", Err: err}
	}
	conf, err := google.JWTConfigFromJSON(data, googleScopes...)
	if err != nil {
		return nil, &Error{Op: "init", Msg: "parse credentials", Err: err}
	}
	return &GoogleClient{
		httpClient:    conf.Client(ctx),
		docsBaseURL:   defaultDocsBaseURL,
		uploadBaseURL: defaultUploadBaseURL,
	}, nil
}

// newGoogleClientForTest bypasses credentials and targets a fake server.
func newGoogleClientForTest(client *http.Client, baseURL string) *GoogleClient {
	return &GoogleClient{httpClient: client, docsBaseURL: baseURL, uploadBaseURL: baseURL}
}

// CreateDocument creates an empty document with the title, then inserts the
// content via batchUpdate, mirroring the Docs API two-step flow.
func (g *GoogleClient) CreateDocument(ctx context.Context, title, content string) (*Document, error) {
	body, _ := json.Marshal(map[string]string{"title": title})
	var created struct {
		DocumentID string `json:"documentId"`
	}
	if err := g.postJSON(ctx, g.docsBaseURL+"/v1/documents", body, &created); err != nil {
		return nil, &Error{Op: "create_document", Msg: "create", Err: err}
	}
	if created.DocumentID == "" {
		return nil, &Error{Op: "create_document", Msg: "response missing documentId"}
	}

	update, _ := json.Marshal(map[string]any{
		"requests": []map[string]any{
			{"insertText": map[string]any{
				"location": map[string]any{"index": 1},
				"text":     content,
			}},
		},
	})
	url := fmt.Sprintf("%s/v1/documents/%s:batchUpdate", g.docsBaseURL, created.DocumentID)
	if err := g.postJSON(ctx, url, update, nil); err != nil {
		return nil, &Error{Op: "create_document", Msg: "insert content", Err: err}
	}

	return &Document{
		DocID:  created.DocumentID,
		DocURL: fmt.Sprintf("https://docs.google.com/document/d/%s/edit", created.DocumentID),
	}, nil
}

// UploadFile stores content as a plain-text file via the Drive multipart
// upload endpoint.
func (g *GoogleClient) UploadFile(ctx context.Context, filename, content string) (*Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	metaHdr := textproto.MIMEHeader{}
	metaHdr.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := mw.CreatePart(metaHdr)
	if err != nil {
		return nil, &Error{Op: "upload_file", Msg: "build request", Err: err}
	}
	meta, _ := json.Marshal(map[string]string{"name": filename, "mimeType": "text/plain"})
	if _, err := metaPart.Write(meta); err != nil {
		return nil, &Error{Op: "upload_file", Msg: "build request", Err: err}
	}

	mediaHdr := textproto.MIMEHeader{}
	mediaHdr.Set("Content-Type", "text/plain")
	mediaPart, err := mw.CreatePart(mediaHdr)
	if err != nil {
		return nil, &Error{Op: "upload_file", Msg: "build request", Err: err}
	}
	if _, err := mediaPart.Write([]byte(content)); err != nil {
		return nil, &Error{Op: "upload_file", Msg: "build request", Err: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Op: "upload_file", Msg: "build request", Err: err}
	}

	url := g.uploadBaseURL + "/upload/drive/v3/files?uploadType=multipart"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, &Error{Op: "upload_file", Msg: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	var uploaded struct {
		ID string `json:"id"`
	}
	if err := g.do(req, &uploaded); err != nil {
		return nil, &Error{Op: "upload_file", Msg: "upload", Err: err}
	}
	if uploaded.ID == "" {
		return nil, &Error{Op: "upload_file", Msg: "response missing id"}
	}

	return &Document{
		DocID:  uploaded.ID,
		DocURL: fmt.Sprintf("https://drive.google.com/file/d/%s/view", uploaded.ID),
	}, nil
}

func (g *GoogleClient) postJSON(ctx context.Context, url string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return g.do(req, out)
}

func (g *GoogleClient) do(req *http.Request, out any) error {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("google api status %d: %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ Provider = (*GoogleClient)(nil)
