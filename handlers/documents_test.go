package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saamdocs/docgen-service/internal/cache"
	"github.com/saamdocs/docgen-service/internal/document"
	"github.com/saamdocs/docgen-service/internal/document/repository"
	"github.com/saamdocs/docgen-service/internal/document/service"
	"github.com/saamdocs/docgen-service/internal/provider"
	"github.com/saamdocs/docgen-service/pkg/middleware"
)

func newTestEngine(t *testing.T, guard gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&document.GeneratedDocument{}))

	svc := service.New(repository.New(db), provider.NewStub(), cache.NewMemory())
	g := gin.New()
	NewDocumentHandler(svc, "1.0.0").Register(g, guard)
	return g
}

func doJSON(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	g.ServeHTTP(w, req)
	return w
}

func generateOne(t *testing.T, g *gin.Engine, name, date string, amount float64, kind string) map[string]interface{} {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"date":%q,"amount":%v,"template_type":%q}`, name, date, amount, kind)
	w := doJSON(g, http.MethodPost, "/generate-document", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestHealthRoute(t *testing.T) {
	g := newTestEngine(t, nil)
	w := doJSON(g, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "1.0.0", resp["version"])
}

func TestGenerateDocument(t *testing.T) {
	g := newTestEngine(t, nil)
	data := generateOne(t, g, "Jane Doe", "2024-01-01", 100.50, "receipt")

	content, _ := data["content"].(string)
	assert.Contains(t, content, "Jane Doe")
	assert.Contains(t, content, "100.50")
	assert.Contains(t, content, "2024-01-01")
	assert.Equal(t, provider.StubDocID, data["doc_id"])
	assert.Equal(t, "receipt", data["template_type"])
	assert.Equal(t, "2024-01-01", data["date"])
}

func TestGenerateDocumentValidation(t *testing.T) {
	g := newTestEngine(t, nil)

	cases := []struct {
		name string
		body string
	}{
		{"short name", `{"name":"J","date":"2024-01-01","amount":100}`},
		{"zero amount", `{"name":"Jane","date":"2024-01-01","amount":0}`},
		{"amount over limit", `{"name":"Jane","date":"2024-01-01","amount":1000000.01}`},
		{"bad date", `{"name":"Jane","date":"not-a-date","amount":100}`},
		{"unknown template", `{"name":"Jane","date":"2024-01-01","amount":100,"template_type":"invalid"}`},
		{"malformed json", `{"name":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(g, http.MethodPost, "/generate-document", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "detail")
		})
	}
}

func TestListDocumentsPagination(t *testing.T) {
	g := newTestEngine(t, nil)
	for i := 0; i < 15; i++ {
		generateOne(t, g, fmt.Sprintf("Customer %02d", i), "2024-01-01", float64(i+1), "receipt")
	}

	w := doJSON(g, http.MethodGet, "/documents?page=1&page_size=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page document.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 10)
	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 10, page.PageSize)

	w = doJSON(g, http.MethodGet, "/documents?page=2&page_size=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 5)

	w = doJSON(g, http.MethodGet, "/documents?page=1&page_size=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 3, page.Pages)
}

func TestListDocumentsFilters(t *testing.T) {
	g := newTestEngine(t, nil)
	generateOne(t, g, "Jane Doe", "2024-01-01", 10, "receipt")
	generateOne(t, g, "John Smith", "2024-01-02", 20, "invoice")

	w := doJSON(g, http.MethodGet, "/documents?name=jane", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page document.Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Jane Doe", page.Items[0].Name)

	w = doJSON(g, http.MethodGet, "/documents?date=2024-01-02", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "John Smith", page.Items[0].Name)
}

func TestListDocumentsBadParams(t *testing.T) {
	g := newTestEngine(t, nil)

	for _, q := range []string{
		"?page=0",
		"?page=abc",
		"?page_size=0",
		"?page_size=101",
		"?date=13-2024-01",
	} {
		w := doJSON(g, http.MethodGet, "/documents"+q, "")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, q)
	}
}

func TestGetDocument(t *testing.T) {
	g := newTestEngine(t, nil)
	generateOne(t, g, "Jane Doe", "2024-01-01", 10, "contract")

	w := doJSON(g, http.MethodGet, "/documents/"+provider.StubDocID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data document.DTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.Data.Name)
	assert.Equal(t, "contract", resp.Data.TemplateType)

	w = doJSON(g, http.MethodGet, "/documents/unknown-id", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveToGoogle(t *testing.T) {
	g := newTestEngine(t, nil)
	generateOne(t, g, "Jane Doe", "2024-01-01", 10, "receipt")

	w := doJSON(g, http.MethodPost, "/documents/"+provider.StubDocID+"/save-to-google", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			GoogleDocID string `json:"google_doc_id"`
			DocURL      string `json:"doc_url"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, provider.StubDocID, resp.Data.GoogleDocID)
	assert.NotEmpty(t, resp.Data.DocURL)

	// record now carries the drive identifiers
	w = doJSON(g, http.MethodGet, "/documents/"+provider.StubDocID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "google_doc_id")

	w = doJSON(g, http.MethodPost, "/documents/unknown/save-to-google", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGuardProtectsMutatingRoutes(t *testing.T) {
	g := newTestEngine(t, middleware.JWTAuthMiddleware("secret"))

	w := doJSON(g, http.MethodPost, "/generate-document", `{"name":"Jane","date":"2024-01-01","amount":10}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// reads stay open
	w = doJSON(g, http.MethodGet, "/documents", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
