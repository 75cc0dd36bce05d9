package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/golang-jwt/jwt/v5"

	"github.com/getmockd/restmock/pkg/logging"
)

const (
	schemeAPIKey        = "apiKey"
	schemeHTTP          = "http"
	schemeOAuth2        = "oauth2"
	schemeOpenIDConnect = "openIdConnect"
)

// Evaluator checks requests against security requirements.
type Evaluator struct {
	log    *slog.Logger
	parser *jwt.Parser
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger used for per-request debug output.
func WithLogger(log *slog.Logger) Option {
	return func(e *Evaluator) {
		e.log = log
	}
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		log:    logging.Nop(),
		parser: jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logging.Scoped(e.log, "auth")
	return e
}

var defaultEvaluator = NewEvaluator()

// Evaluate checks r with an Evaluator that does not log.
func Evaluate(r *http.Request, op *openapi3.Operation, doc *openapi3.T) error {
	return defaultEvaluator.Evaluate(r, op, doc)
}

// Evaluate returns nil when r satisfies at least one security requirement of
// op, falling back to the document-level requirements when op declares none.
// Otherwise it returns an *AuthenticationError.
func (e *Evaluator) Evaluate(r *http.Request, op *openapi3.Operation, doc *openapi3.T) error {
	requirements := effectiveRequirements(op, doc)
	if len(requirements) == 0 {
		return nil
	}

	var schemes openapi3.SecuritySchemes
	if doc != nil && doc.Components != nil {
		schemes = doc.Components.SecuritySchemes
	}

	authErr := &AuthenticationError{}
	for _, req := range requirements {
		names := sortedNames(req)
		var reasons []string
		for _, name := range names {
			ref, ok := schemes[name]
			if !ok || ref == nil {
				reasons = append(reasons, fmt.Sprintf("Security scheme %q not found in components/securitySchemes", name))
				continue
			}
			if ref.Value == nil {
				continue
			}
			if reason := checkScheme(r, ref.Value); reason != "" {
				reasons = append(reasons, reason)
			}
		}

		if len(reasons) == 0 {
			e.logSatisfied(r, names)
			return nil
		}
		authErr.Failures = append(authErr.Failures, RequirementFailure{Schemes: names, Reasons: reasons})
	}

	e.log.Debug("authentication failed", "method", r.Method, "path", r.URL.Path, "error", authErr.Error())
	return authErr
}

func (e *Evaluator) logSatisfied(r *http.Request, schemes []string) {
	if !e.log.Enabled(r.Context(), slog.LevelDebug) {
		return
	}
	attrs := []any{"method", r.Method, "path", r.URL.Path, "schemes", schemes}
	if sub := e.bearerSubject(r); sub != "" {
		attrs = append(attrs, "sub", sub)
	}
	e.log.Debug("security requirement satisfied", attrs...)
}

// bearerSubject returns the unverified "sub" claim of a JWT bearer token, or
// "" when the header holds no parseable JWT.
func (e *Evaluator) bearerSubject(r *http.Request) string {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return ""
	}
	parsed, _, err := e.parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

func effectiveRequirements(op *openapi3.Operation, doc *openapi3.T) openapi3.SecurityRequirements {
	if op != nil && op.Security != nil {
		return *op.Security
	}
	if doc != nil {
		return doc.Security
	}
	return nil
}

// checkScheme returns the reason scheme is not satisfied by r, or "".
func checkScheme(r *http.Request, scheme *openapi3.SecurityScheme) string {
	switch scheme.Type {
	case schemeAPIKey:
		if apiKeyValue(r, scheme.In, scheme.Name) == "" {
			return fmt.Sprintf("Missing API key %q in %s", scheme.Name, scheme.In)
		}
	case schemeHTTP:
		header := r.Header.Get("Authorization")
		if header == "" {
			return "Missing Authorization header"
		}
		switch strings.ToLower(scheme.Scheme) {
		case "basic":
			if !hasPrefixFold(header, "basic ") {
				return "Authorization header must be Basic"
			}
		case "bearer":
			if !hasPrefixFold(header, "bearer ") {
				return "Authorization header must be Bearer"
			}
		}
	case schemeOAuth2, schemeOpenIDConnect:
		if _, ok := bearerToken(r.Header.Get("Authorization")); !ok {
			return "Missing or invalid Bearer token in Authorization header"
		}
	}
	return ""
}

func apiKeyValue(r *http.Request, in, name string) string {
	switch in {
	case "header":
		return r.Header.Get(name)
	case "query":
		return r.URL.Query().Get(name)
	case "cookie":
		if c, err := r.Cookie(name); err == nil {
			return c.Value
		}
	}
	return ""
}

// bearerToken extracts the credentials of a "Bearer" Authorization header.
// The scheme match is case-insensitive and the token may be empty.
func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if !hasPrefixFold(header, prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func sortedNames(req openapi3.SecurityRequirement) []string {
	names := make([]string, 0, len(req))
	for name := range req {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
