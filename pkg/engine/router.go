package engine

import (
	"context"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gorilla/mux"
)

// methodOrder is the order operations of one path are registered in.
var methodOrder = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodHead,
	http.MethodPatch,
}

// Route is one registered operation.
type Route struct {
	Method string
	// Path is the OpenAPI path template, e.g. /pets/{petId}.
	Path      string
	Operation *openapi3.Operation
	PathItem  *openapi3.PathItem
}

var placeholderPattern = regexp.MustCompile(`\{([^{}/]+)\}`)

// ConvertPath rewrites an OpenAPI path template into a mux template. Each
// {name} becomes {pN}, matching one run of non-slash characters; names holds
// the original names by N. The rename keeps names with characters mux
// reserves, such as ':', intact.
func ConvertPath(template string) (muxTemplate string, names []string) {
	muxTemplate = placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		names = append(names, match[1:len(match)-1])
		return "{p" + strconv.Itoa(len(names)-1) + "}"
	})
	return muxTemplate, names
}

// registerRoutes adds one route per operation, paths in sorted order.
func (s *Server) registerRoutes(router *mux.Router) {
	if s.doc.Paths == nil {
		return
	}

	paths := make([]string, 0, s.doc.Paths.Len())
	for p := range s.doc.Paths.Map() {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := s.doc.Paths.Value(path)
		if item == nil {
			continue
		}
		muxPath, names := ConvertPath(path)
		ops := item.Operations()

		var declared []string
		for _, method := range methodOrder {
			op := ops[method]
			if op == nil {
				continue
			}
			rt := Route{Method: method, Path: path, Operation: op, PathItem: item}
			h := s.instrument(path, s.operationHandler(rt, names))
			if err := router.Handle(muxPath, h).Methods(method).GetError(); err != nil {
				s.log.Warn("skipping unroutable path", "path", path, "method", method, "error", err)
				continue
			}
			s.routes = append(s.routes, rt)
			declared = append(declared, method)
			s.log.Debug("registered route", "method", method, "path", path)
		}

		if len(declared) > 0 && ops[http.MethodOptions] == nil {
			h := s.instrument(path, optionsHandler(declared))
			_ = router.Handle(muxPath, h).Methods(http.MethodOptions)
		}
	}
}

// optionsHandler answers OPTIONS for a path without its own options
// operation, advertising the declared methods.
func optionsHandler(methods []string) http.Handler {
	allow := strings.Join(methods, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", allow)
		w.WriteHeader(http.StatusOK)
	})
}

type pathParamsKey struct{}

// PathParams returns the path captures of the current request keyed by
// their names in the OpenAPI template.
func PathParams(r *http.Request) map[string]string {
	params, _ := r.Context().Value(pathParamsKey{}).(map[string]string)
	return params
}

// withPathParams maps the mux captures {pN} of r back to names.
func withPathParams(r *http.Request, names []string) *http.Request {
	if len(names) == 0 {
		return r
	}
	vars := mux.Vars(r)
	params := make(map[string]string, len(names))
	for i, name := range names {
		params[name] = vars["p"+strconv.Itoa(i)]
	}
	return r.WithContext(context.WithValue(r.Context(), pathParamsKey{}, params))
}
