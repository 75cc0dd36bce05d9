package mockgen

import (
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	tokenPrefix   = "mock-"
	tokenLength   = 8
	tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// patternReplacer substitutes a fixed set of character classes. It is not a
// regex engine: everything else in the pattern is emitted verbatim.
var patternReplacer = strings.NewReplacer(
	"[a-zA-Z]", "A",
	"[0-9]", "1",
	"[a-zA-Z0-9]", "X",
)

func (g *Generator) generateString(schema *openapi3.Schema, hint string) any {
	if v := g.stringForFormat(schema.Format); v != "" {
		return v
	}
	if v := stringForHint(g.rng, hint); v != "" {
		return v
	}
	if len(schema.Enum) > 0 {
		return pick(g.rng, schema.Enum)
	}
	if schema.Pattern != "" {
		return patternReplacer.Replace(schema.Pattern)
	}
	return g.token()
}

func (g *Generator) stringForFormat(format string) string {
	switch format {
	case "date":
		return g.now().UTC().Format(time.DateOnly)
	case "date-time":
		return g.now().UTC().Format("2006-01-02T15:04:05.000Z")
	case "email":
		return email(g.rng)
	case "uri", "url":
		return resourceURL(g.rng)
	case "uuid":
		return rngUUID(g.rng)
	}
	return ""
}

// token returns "mock-" followed by lowercase base36 characters.
func (g *Generator) token() string {
	var b strings.Builder
	b.Grow(len(tokenPrefix) + tokenLength)
	b.WriteString(tokenPrefix)
	for range tokenLength {
		b.WriteByte(tokenAlphabet[rngIntN(g.rng, len(tokenAlphabet))])
	}
	return b.String()
}
