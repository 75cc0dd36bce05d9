package engine

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/restmock/pkg/auth"
	"github.com/getmockd/restmock/pkg/httputil"
	"github.com/getmockd/restmock/pkg/response"
)

// maxShapingBody is the largest request body read for response shaping.
const maxShapingBody = 10 << 20

// ValidationError reports a request that does not satisfy the operation's
// parameter requirements.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// operationHandler returns the handler for one operation. It closes over its
// own route only.
func (s *Server) operationHandler(rt Route, names []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = withPathParams(r, names)
		if err := s.serveOperation(w, r, rt); err != nil {
			s.writeError(w, r, err)
		}
	})
}

func (s *Server) serveOperation(w http.ResponseWriter, r *http.Request, rt Route) error {
	if err := s.auth.Evaluate(r, rt.Operation, s.doc); err != nil {
		return err
	}
	if err := checkRequiredQuery(r, rt.Operation, rt.PathItem); err != nil {
		return err
	}

	resp, status := response.Select(rt.Operation)
	gen := s.generator()
	body := gen.GenerateBody(resp)
	headers := gen.GenerateHeaders(resp)

	if payload, ok := s.readJSONBody(r); ok {
		body = response.MergeBody(body, payload)
	}

	for name, value := range headers {
		w.Header().Set(name, value)
	}
	return httputil.WriteJSON(w, status, body)
}

// writeError maps a handler error to a response. Validation and
// authentication failures are client errors; anything else is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *ValidationError
		authErr       *auth.AuthenticationError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &authErr):
		s.log.Debug("request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.WriteBadRequest(w, err.Error())
	default:
		s.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		httputil.WriteInternalError(w, err.Error())
	}
}

// checkRequiredQuery fails when a required query parameter is missing or
// empty. Path-level parameters apply unless the operation overrides them
// with the same name and location.
func checkRequiredQuery(r *http.Request, op *openapi3.Operation, item *openapi3.PathItem) error {
	query := r.URL.Query()
	for _, p := range effectiveParameters(op, item) {
		if p.In != openapi3.ParameterInQuery || !p.Required {
			continue
		}
		if query.Get(p.Name) == "" {
			return &ValidationError{Message: "Missing required query parameter: " + p.Name}
		}
	}
	return nil
}

func effectiveParameters(op *openapi3.Operation, item *openapi3.PathItem) []*openapi3.Parameter {
	var params []*openapi3.Parameter
	seen := map[string]bool{}
	for _, ref := range op.Parameters {
		if ref == nil || ref.Value == nil {
			continue
		}
		params = append(params, ref.Value)
		seen[ref.Value.In+":"+ref.Value.Name] = true
	}
	if item != nil {
		for _, ref := range item.Parameters {
			if ref == nil || ref.Value == nil || seen[ref.Value.In+":"+ref.Value.Name] {
				continue
			}
			params = append(params, ref.Value)
		}
	}
	return params
}

// readJSONBody decodes a JSON request body for shaping. Bodies that are not
// JSON, too large or malformed are ignored.
func (s *Server) readJSONBody(r *http.Request) (any, bool) {
	if r.Body == nil || !isJSONContent(r.Header.Get("Content-Type")) {
		return nil, false
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxShapingBody+1))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	if len(data) > maxShapingBody {
		s.log.Debug("request body too large for shaping", "path", r.URL.Path)
		return nil, false
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		s.log.Debug("ignoring malformed JSON request body", "path", r.URL.Path, "error", err)
		return nil, false
	}
	return payload, true
}

func isJSONContent(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteNotFound(w, "The requested endpoint does not exist")
}
