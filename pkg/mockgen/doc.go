// Package mockgen synthesizes mock values from OpenAPI schema fragments.
//
// Generation follows a fixed priority chain:
//
//  1. An explicit example on the schema is returned verbatim.
//  2. Objects recurse into every property, using the property name as a hint.
//  3. Arrays produce minItems elements (10 by default) from the items schema.
//  4. Strings use the format, then the property-name hint, then enum, then a
//     literal pattern substitution, then a random "mock-" token.
//  5. Numbers honour minimum/maximum and look realistic for price- and
//     amount-like property names.
//  6. Booleans are random; anything else is null.
//
// A Generator is not safe for concurrent use when it carries its own *rand.Rand.
// Without one it falls back to the global math/rand/v2 source, which is.
package mockgen
