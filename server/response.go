package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/teranos/jazzgraph/errors"
	grapherr "github.com/teranos/jazzgraph/graph/error"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return errors.Wrap(err, "failed to encode JSON")
	}
	return nil
}

// writeError writes a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	_ = writeJSON(w, status, ErrorPayload{Error: message})
}

// writeErr maps err to a status code and writes it.
// Graph errors carry their user message and category.
func writeErr(w http.ResponseWriter, err error) {
	_ = writeJSON(w, statusFor(err), errorPayload(err))
}

func errorPayload(err error) ErrorPayload {
	if ge, ok := grapherr.As(err); ok {
		return ErrorPayload{
			Error:       ge.ToUIMessage(),
			Category:    ge.Category.String(),
			Subcategory: ge.Subcategory,
		}
	}
	return ErrorPayload{Error: err.Error()}
}

// statusFor maps error sentinels to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.IsInvalidRequestError(err):
		return http.StatusBadRequest
	case errors.IsRateLimitedError(err):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// intParam reads an optional integer query parameter.
// Missing returns def; malformed is an invalid-request error.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, grapherr.Invalid(grapherr.CategoryQuery, grapherr.SubcategoryInvalidSyntax,
			"Parameter "+name+" must be a number", "bad %s %q", name, raw)
	}
	return n, nil
}

// requireParam reads a mandatory query parameter
func requireParam(r *http.Request, name string) (string, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return "", grapherr.Invalid(grapherr.CategoryQuery, grapherr.SubcategoryInvalidSyntax,
			"Missing parameter "+name, "missing %s", name)
	}
	return v, nil
}
