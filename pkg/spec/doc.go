// Package spec loads OpenAPI 3.x documents from disk and merges several of them
// into one logical API surface.
//
// Documents are parsed and validated with kin-openapi. A path may be a single
// .yaml/.yml/.json file or a directory, which is searched recursively. Merging keeps
// the first definition of a duplicate path and the last definition of a duplicate
// component schema or security scheme.
package spec
