package openapi

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dfnabiullin/task-service/internal/platform/logger"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"
	"github.com/go-chi/chi/v5"
	ghandlers "github.com/gorilla/handlers"
)

// Documentation routes.
const (
	JSONPath = "/v3/api-docs"
	YAMLPath = "/v3/api-docs.yaml"
	UIPath   = "/swagger-ui"
)

var uiTemplate = template.Must(template.New("swagger-ui").Parse(`<!DOCTYPE html>
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
    window.onload = function () {
      window.ui = SwaggerUIBundle({ url: "{{.SpecURL}}", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))

// Handler serves a pre-rendered OpenAPI document.
type Handler struct {
	jsonDoc []byte
	yamlDoc []byte
	title   string
	logger  *slog.Logger
}

// NewHandler renders doc once in both formats.
func NewHandler(doc *openapi3.T, logger *slog.Logger) (*Handler, error) {
	if doc == nil {
		return nil, fmt.Errorf("openapi document cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi json: %w", err)
	}
	yamlDoc, err := yaml.JSONToYAML(jsonDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to render openapi yaml: %w", err)
	}

	title := Title
	if doc.Info != nil && doc.Info.Title != "" {
		title = doc.Info.Title
	}

	return &Handler{
		jsonDoc: jsonDoc,
		yamlDoc: yamlDoc,
		title:   title,
		logger:  logger.With(slog.String("component", "openapi")),
	}, nil
}

// JSON returns the rendered JSON document.
func (h *Handler) JSON() []byte { return h.jsonDoc }

// YAML returns the rendered YAML document.
func (h *Handler) YAML() []byte { return h.yamlDoc }

// Routes mounts the documentation endpoints on r behind a permissive CORS policy.
func (h *Handler) Routes(r chi.Router) {
	cors := ghandlers.CORS(
		ghandlers.AllowedMethods([]string{"GET", "HEAD", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Accept", "Accept-Encoding", "Content-Type"}),
		ghandlers.AllowedOrigins([]string{"*"}),
	)

	r.Group(func(r chi.Router) {
		r.Use(cors)
		r.Get(JSONPath, h.ServeJSON)
		r.Get(YAMLPath, h.ServeYAML)
		r.Get(UIPath, h.ServeUI)
	})
}

// ServeJSON handles GET /v3/api-docs
func (h *Handler) ServeJSON(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, "application/json", h.jsonDoc)
}

// ServeYAML handles GET /v3/api-docs.yaml
func (h *Handler) ServeYAML(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, "application/yaml", h.yamlDoc)
}

// ServeUI handles GET /swagger-ui
func (h *Handler) ServeUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	err := uiTemplate.Execute(w, struct{ Title, SpecURL string }{Title: h.title, SpecURL: JSONPath})
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to render swagger ui",
			slog.String("error", err.Error()))
	}
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to write openapi document",
			slog.String("error", err.Error()))
	}
}
