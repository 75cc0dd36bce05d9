// Package response picks the response an operation answers with and shapes
// its body from the incoming request.
package response

import (
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultStatus is used when an operation declares no numeric status code.
const DefaultStatus = 200

// Placeholder is returned for operations that declare no usable response.
func Placeholder() *openapi3.Response {
	return openapi3.NewResponse().WithDescription("Default response")
}

// Select returns the response op should answer with, and its status code.
//
// Only three-digit numeric keys with a resolved value are candidates. The
// lowest 2xx code wins; without one, the lowest code of any class. With no
// candidates at all the "default" response is used with DefaultStatus, and
// failing that a Placeholder.
func Select(op *openapi3.Operation) (*openapi3.Response, int) {
	if op == nil || op.Responses == nil {
		return Placeholder(), DefaultStatus
	}

	var (
		best, bestSuccess         *openapi3.Response
		bestCode, bestSuccessCode int
	)
	for key, ref := range op.Responses.Map() {
		code, ok := statusCode(key)
		if !ok || ref == nil || ref.Value == nil {
			continue
		}
		if code >= 200 && code < 300 && (bestSuccess == nil || code < bestSuccessCode) {
			bestSuccess, bestSuccessCode = ref.Value, code
		}
		if best == nil || code < bestCode {
			best, bestCode = ref.Value, code
		}
	}

	switch {
	case bestSuccess != nil:
		return bestSuccess, bestSuccessCode
	case best != nil:
		return best, bestCode
	}

	if ref := op.Responses.Default(); ref != nil && ref.Value != nil {
		return ref.Value, DefaultStatus
	}
	return Placeholder(), DefaultStatus
}

// statusCode parses a response key that is exactly three decimal digits.
func statusCode(key string) (int, bool) {
	if len(key) != 3 {
		return 0, false
	}
	for i := range len(key) {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	code, err := strconv.Atoi(key)
	return code, err == nil
}
