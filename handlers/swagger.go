package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>docgen-service — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the document endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "docgen-service", "version": "1.0.0" },
  "paths": {
    "/": {
      "get": { "summary": "Health check", "responses": { "200": { "description": "status and version" } } }
    },
    "/generate-document": {
      "post": {
        "summary": "Generate a document from a template",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","date","amount"],"properties":{"name":{"type":"string","minLength":2},"date":{"type":"string","format":"date"},"amount":{"type":"number"},"template_type":{"type":"string","enum":["receipt","invoice","contract"]}}}}}},
        "responses": { "200": { "description": "generated record" }, "422": { "description": "validation or template error" }, "500": { "description": "provider or unexpected error" } }
      }
    },
    "/documents": {
      "get": {
        "summary": "List generated documents",
        "parameters": [
          {"name":"name","in":"query","schema":{"type":"string"}},
          {"name":"date","in":"query","schema":{"type":"string","format":"date"}},
          {"name":"page","in":"query","schema":{"type":"integer","minimum":1}},
          {"name":"page_size","in":"query","schema":{"type":"integer","minimum":1,"maximum":100}}
        ],
        "responses": { "200": { "description": "one page of records" }, "422": { "description": "bad pagination or date" } }
      }
    },
    "/documents/{doc_id}": {
      "get": { "summary": "Get a document by provider id", "parameters": [{"name":"doc_id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "record" }, "404": { "description": "not found" } } }
    },
    "/documents/{doc_id}/save-to-google": {
      "post": { "summary": "Upload stored content to Google Drive", "parameters": [{"name":"doc_id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "identifiers attached" }, "404": { "description": "not found" }, "500": { "description": "provider error" } } }
    },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
