// Package auth checks requests against the security requirements of an
// OpenAPI operation.
//
// Only the presence and shape of credentials are checked: an API key must be
// non-empty, an Authorization header must carry the expected scheme prefix.
// Credentials are never verified. Requirements are ORed together and the
// schemes inside one requirement are ANDed, as in OpenAPI.
//
// Unknown scheme types and unresolved scheme references pass.
package auth
