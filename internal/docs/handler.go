package docs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

var uiTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
        SwaggerUIBundle({
            url: "{{.SpecURL}}",
            dom_id: '#swagger-ui',
            presets: [SwaggerUIBundle.presets.apis, SwaggerUIBundle.SwaggerUIStandalonePreset],
            layout: "BaseLayout"
        });
    </script>
</body>
</html>`))

// Handler serves the OpenAPI document and the documentation page.
// Both are rendered once at construction.
type Handler struct {
	spec []byte
	page []byte
}

// NewHandler renders doc. specURL is the URL the documentation page loads
// the document from.
func NewHandler(doc *openapi3.T, specURL string) (*Handler, error) {
	spec, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}

	var page bytes.Buffer
	if err := uiTemplate.Execute(&page, struct {
		Title   string
		SpecURL string
	}{
		Title:   doc.Info.Title,
		SpecURL: specURL,
	}); err != nil {
		return nil, fmt.Errorf("render docs page: %w", err)
	}

	return &Handler{spec: spec, page: page.Bytes()}, nil
}

// RegisterRoutes registers the documentation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get(SpecPath, h.Spec)
	r.Get(UIPath, h.UI)
}

// Spec handles GET /api/openapi.json request.
func (h *Handler) Spec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.spec)
}

// UI handles GET /docs request.
func (h *Handler) UI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.page)
}
