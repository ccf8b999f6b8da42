// Package openapi assembles an OpenAPI 3.1 document from route groups and
// serves it.
package openapi

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/JaimeStill/vantage/pkg/routes"
)

// Spec is an OpenAPI 3.1 document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

var errorSchema = &Schema{
	Type:       "object",
	Properties: map[string]*Schema{"error": {Type: "string"}},
	Required:   []string{"error"},
}

// NewSpec returns a document with the shared error responses registered.
func NewSpec(cfg *Config, version string) *Spec {
	return &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     version,
		},
		Paths: make(map[string]*PathItem),
		Components: &Components{
			Schemas: map[string]*Schema{"Error": errorSchema},
			Responses: map[string]*Response{
				"BadRequest": JSONResponse("Invalid request", Ref("Error")),
				"NotFound":   JSONResponse("Resource not found", Ref("Error")),
				"Conflict":   JSONResponse("Conflicting state", Ref("Error")),
				"Internal":   JSONResponse("Server error", Ref("Error")),
			},
		},
	}
}

// AddServer appends a server URL.
func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddSchemas registers component schemas.
func (s *Spec) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(s.Components.Schemas, schemas)
}

var pathParam = regexp.MustCompile(`\{([^}.]+)(?:\.\.\.)?\}`)

// AddRoutes adds an operation for every route in groups. Path parameters
// become required string parameters, formatted as uuid when named id or
// ending in Id. Every operation gets the shared error responses.
func (s *Spec) AddRoutes(groups ...routes.Group) {
	routes.Walk(groups, func(path, tag string, r routes.Route) {
		if path == "" {
			path = "/"
		}

		op := &Operation{
			OperationID: operationID(r.Method, path),
			Summary:     r.Summary,
			Responses: map[string]*Response{
				"400": ResponseRef("BadRequest"),
				"500": ResponseRef("Internal"),
			},
		}
		if tag != "" {
			op.Tags = []string{tag}
		}
		for _, m := range pathParam.FindAllStringSubmatch(path, -1) {
			schema := &Schema{Type: "string"}
			if m[1] == "id" || strings.HasSuffix(m[1], "Id") {
				schema.Format = "uuid"
			}
			op.Parameters = append(op.Parameters, &Parameter{
				Name:     m[1],
				In:       "path",
				Required: true,
				Schema:   schema,
			})
			op.Responses["404"] = ResponseRef("NotFound")
		}

		s.setOperation(pathParam.ReplaceAllString(path, "{$1}"), r.Method, op)
	})
}

// Operation returns the operation registered for method and path, or nil.
func (s *Spec) Operation(method, path string) *Operation {
	item, ok := s.Paths[path]
	if !ok {
		return nil
	}
	switch strings.ToUpper(method) {
	case http.MethodGet:
		return item.Get
	case http.MethodPost:
		return item.Post
	case http.MethodPut:
		return item.Put
	case http.MethodDelete:
		return item.Delete
	}
	return nil
}

func (s *Spec) setOperation(path, method string, op *Operation) {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	}
}

func operationID(method, path string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(method))
	for seg := range strings.SplitSeq(path, "/") {
		seg = strings.Trim(seg, "{}.")
		if seg == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(seg[:1]))
		sb.WriteString(seg[1:])
	}
	return sb.String()
}

// MarshalJSON renders spec as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// WriteJSON renders spec to filename.
func WriteJSON(spec *Spec, filename string) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return fmt.Errorf("marshal spec: %w", err)
	}
	return os.WriteFile(filename, data, 0o644)
}

// ServeSpec serves pre-rendered document bytes.
func ServeSpec(data []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
