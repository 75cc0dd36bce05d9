// Package cli provides the restmock command-line interface.
//
// Commands:
//   - serve: load the OpenAPI documents at --path and serve mock responses
//     (the default when no command is given)
//   - validate: load and merge the documents, then list the operations that
//     would be served
//   - version: show build information
//
// Configuration is resolved as defaults, then the YAML file given with
// --config, then RESTMOCK_* environment variables, then flags set on the
// command line.
//
// Usage:
//
//	restmock --path ./specs --port 4000
//	restmock serve -c restmock.yaml --seed 42
//	restmock validate --path openapi.yaml
//	restmock version --json
package cli
