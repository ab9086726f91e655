package api

import (
	"fmt"
	"net/http"
)

// setupRoutes maps every path onto the root directory. Only GET and HEAD are
// served; anything else falls through to the unsupported-method handler.
func (s *Server) setupRoutes() {
	files := http.FileServer(http.Dir(s.cfg.Root()))

	s.router.PathPrefix("/").Handler(files).Methods(http.MethodGet, http.MethodHead)

	s.router.MethodNotAllowedHandler = http.HandlerFunc(handleUnsupportedMethod)
}

func handleUnsupportedMethod(w http.ResponseWriter, r *http.Request) {
	http.Error(w, fmt.Sprintf("Unsupported method ('%s')", r.Method), http.StatusNotImplemented)
}
