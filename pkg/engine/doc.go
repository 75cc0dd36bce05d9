// Package engine serves a merged OpenAPI document as a mock HTTP API.
//
// Every (path, method) operation in the document becomes a route. A request
// to an operation runs through:
//
//  1. the security requirements (pkg/auth), failing with 400
//  2. required query parameters, failing with 400
//  3. response selection (pkg/response)
//  4. body and header synthesis (pkg/mockgen)
//  5. shaping of the body with a JSON request body
//
// Around the router sit CORS, request logging and panic recovery, so every
// response, including 404 and 500, carries CORS headers. Optional Prometheus
// metrics and a Swagger UI at /api-docs are registered ahead of the
// document's own routes.
package engine
