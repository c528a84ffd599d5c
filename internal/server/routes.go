// Package server keeps the route table self-describing: every endpoint is
// registered through Handle so /api/routes can list the live API surface.
package server

import (
	"encoding/json"
	"net/http"
)

type RouteDoc struct {
	Methods     string `json:"methods"`
	Pattern     string `json:"pattern"`
	Summary     string `json:"summary,omitempty"`
	ExampleBody string `json:"example_body,omitempty"`
}

type RouteRegistry struct {
	routes []RouteDoc
}

func (rr *RouteRegistry) Add(doc RouteDoc) {
	rr.routes = append(rr.routes, doc)
}

func (rr *RouteRegistry) List() []RouteDoc {
	out := make([]RouteDoc, len(rr.routes))
	copy(out, rr.routes)
	return out
}

// Handle registers the handler and records its doc entry. Handlers multiplex
// their own methods, so methods is documentation rather than routing.
func Handle(mux *http.ServeMux, rr *RouteRegistry, methods, pattern, summary, exampleBody string, h http.HandlerFunc) {
	rr.Add(RouteDoc{Methods: methods, Pattern: pattern, Summary: summary, ExampleBody: exampleBody})
	mux.HandleFunc(pattern, h)
}

// RegisterDocs exposes the accumulated route table at /api/routes.
func RegisterDocs(mux *http.ServeMux, rr *RouteRegistry) {
	Handle(mux, rr, "GET", "/api/routes", "list all registered API routes", "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(rr.List())
	})
}
