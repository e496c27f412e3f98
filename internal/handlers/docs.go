// docs.go serves the API description: the OpenAPI document and a Swagger UI
// page that renders it.
package handlers

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	docsTitle   = "Text Analyzer API"
	openAPIPath = "/api/docs/openapi.yaml"
	swaggerCDN  = "https://cdn.jsdelivr.net/npm/swagger-ui-dist@5"
)

//go:embed openapi.yaml
var openAPISpec []byte

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}} - Documentation</title>
  <link rel="stylesheet" href="{{.CDN}}/swagger-ui.css">
  <style>body { margin: 0; } .swagger-ui .topbar { display: none; }</style>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="{{.CDN}}/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: '#swagger-ui', deepLinking: true });
  </script>
</body>
</html>`))

// swaggerHTML is rendered once; the page never changes at runtime.
var swaggerHTML = func() []byte {
	var buf bytes.Buffer
	data := struct{ Title, CDN, SpecURL string }{docsTitle, swaggerCDN, openAPIPath}
	if err := swaggerPage.Execute(&buf, data); err != nil {
		panic(err)
	}
	return buf.Bytes()
}()

// ServeOpenAPISpec returns the OpenAPI 3.0 YAML document.
// GET /api/docs/openapi.yaml
func (h *Handler) ServeOpenAPISpec(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", openAPISpec)
}

// ServeSwaggerUI returns the Swagger UI page for the OpenAPI document.
// GET /api/docs
func (h *Handler) ServeSwaggerUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerHTML)
}
