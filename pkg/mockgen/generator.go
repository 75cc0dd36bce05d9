package mockgen

import (
	mathrand "math/rand/v2"
	"sort"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// DefaultArrayLength is the element count for arrays without a positive minItems.
const DefaultArrayLength = 10

// Generator produces example values from OpenAPI schemas.
type Generator struct {
	rng         *mathrand.Rand
	now         func() time.Time
	arrayLength int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand makes generation draw from rng. A nil rng selects the global
// math/rand/v2 source.
func WithRand(rng *mathrand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithClock sets the time source for date and date-time formats.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithArrayLength overrides DefaultArrayLength. Non-positive values are ignored.
func WithArrayLength(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.arrayLength = n
		}
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:         time.Now,
		arrayLength: DefaultArrayLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces a value for schema. hint is the property or header name
// the value is destined for and may be empty.
func (g *Generator) Generate(schema *openapi3.Schema, hint string) any {
	return g.generate(schema, hint, map[*openapi3.Schema]bool{})
}

// generate walks schema. active holds the object and array schemas currently
// being expanded; re-entering one of them means the schema graph is cyclic.
func (g *Generator) generate(schema *openapi3.Schema, hint string, active map[*openapi3.Schema]bool) any {
	if schema == nil {
		return nil
	}
	if schema.Example != nil {
		return schema.Example
	}

	switch schemaType(schema) {
	case openapi3.TypeObject:
		return g.generateObject(schema, active)
	case openapi3.TypeArray:
		return g.generateArray(schema, hint, active)
	case openapi3.TypeString:
		return g.generateString(schema, hint)
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return g.generateNumber(schema, hint)
	case openapi3.TypeBoolean:
		return rngIntN(g.rng, 2) == 0
	default:
		return nil
	}
}

func (g *Generator) generateObject(schema *openapi3.Schema, active map[*openapi3.Schema]bool) any {
	obj := make(map[string]any, len(schema.Properties))
	if len(schema.Properties) == 0 {
		return obj
	}

	active[schema] = true
	defer delete(active, schema)

	// Sorted so a seeded generator draws in the same order on every run.
	for _, name := range sortedKeys(schema.Properties) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil || active[ref.Value] {
			obj[name] = nil
			continue
		}
		obj[name] = g.generate(ref.Value, name, active)
	}
	return obj
}

func (g *Generator) generateArray(schema *openapi3.Schema, hint string, active map[*openapi3.Schema]bool) any {
	if schema.Items == nil || schema.Items.Value == nil || active[schema.Items.Value] {
		return []any{}
	}

	count := g.arrayLength
	if schema.MinItems > 0 {
		count = int(schema.MinItems)
	}

	active[schema] = true
	defer delete(active, schema)

	items := make([]any, count)
	for i := range items {
		items[i] = g.generate(schema.Items.Value, hint, active)
	}
	return items
}

// schemaType returns the first non-null type of schema, or "".
func schemaType(schema *openapi3.Schema) string {
	for _, t := range schema.Type.Slice() {
		if t != "null" {
			return t
		}
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
