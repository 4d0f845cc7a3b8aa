package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// invokeResponse is the body of a successful function call.
type invokeResponse struct {
	Result any `json:"result"`
}

// handleListFunctions returns the schema of every function.
func (s *Server) handleListFunctions(w http.ResponseWriter, _ *http.Request) {
	schemas := s.functions.Schemas()
	writeJSON(w, http.StatusOK, map[string]any{
		"functions": schemas,
		"count":     len(schemas),
	})
}

// handleGetFunction returns the schema of a single function.
func (s *Server) handleGetFunction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	schema, ok := s.functions.Lookup(name)
	if !ok {
		writeNotFound(w, "unknown function: "+name)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

// handleInvokeFunction calls a function with the request body as its
// arguments. An empty body is the same as {}.
func (s *Server) handleInvokeFunction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if perm := s.invokePermission(name); !s.permitted(roleFromContext(r.Context()), perm) {
		writeForbidden(w, "token role lacks "+string(perm))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeBadRequest(w, "failed to read request body")
		return
	}

	result, err := s.functions.Invoke(r.Context(), name, json.RawMessage(body))
	if err != nil {
		s.writeFunctionError(w, r, name, err)
		return
	}

	writeJSON(w, http.StatusOK, invokeResponse{Result: result})
}

// handleListProperties writes the property catalog exactly as
// getPropertyList returns it.
func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.repo.PropertyList(r.Context())
	if err != nil {
		s.writeFunctionError(w, r, "getPropertyList", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	io.WriteString(w, catalog)
}
