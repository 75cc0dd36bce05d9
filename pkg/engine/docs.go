package engine

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
)

// Documentation endpoints.
const (
	DocsPath     = "/api-docs"
	DocsSpecPath = "/api-docs/openapi.json"
)

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))

// registerDocs serves Swagger UI and the merged document.
func (s *Server) registerDocs(router *mux.Router) error {
	spec, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("encoding OpenAPI document: %w", err)
	}

	title := "API Docs"
	if s.doc.Info != nil && s.doc.Info.Title != "" {
		title = s.doc.Info.Title
	}

	router.HandleFunc(DocsSpecPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(spec)
	}).Methods(http.MethodGet)

	router.HandleFunc(DocsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = docsPage.Execute(w, struct{ Title, SpecURL string }{title, DocsSpecPath})
	}).Methods(http.MethodGet)

	return nil
}
