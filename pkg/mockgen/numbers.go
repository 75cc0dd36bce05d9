package mockgen

import (
	"math"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	defaultMinimum = 0.0
	defaultMaximum = 1000.0
)

// priceEndings are the cent values a realistic price is built from.
var priceEndings = []float64{0, 0.99, 0.95, 0.50, 0.49}

func (g *Generator) generateNumber(schema *openapi3.Schema, hint string) any {
	lo, hi := defaultMinimum, defaultMaximum
	if schema.Min != nil {
		lo = *schema.Min
	}
	if schema.Max != nil {
		hi = *schema.Max
	}

	h := strings.ToLower(hint)
	switch {
	case containsAny(h, "price", "cost", "rate"):
		return g.price(lo, hi)
	case containsAny(h, "amount", "quantity", "total"):
		if rngIntN(g.rng, 2) == 0 {
			return g.integer(lo, hi)
		}
		return g.decimal(lo, hi)
	case schemaType(schema) == openapi3.TypeInteger:
		return g.integer(lo, hi)
	default:
		return g.decimal(lo, hi)
	}
}

// price returns a whole amount in [lo, hi) plus a common cent ending, never
// exceeding hi.
func (g *Generator) price(lo, hi float64) float64 {
	base := math.Floor(lo + rngFloat64(g.rng)*(hi-lo))
	p := base + pick(g.rng, priceEndings)
	if p > hi {
		p = hi
	}
	return round2(p)
}

// integer returns a uniform integer in [ceil(lo), floor(hi)].
func (g *Generator) integer(lo, hi float64) int {
	return randomInt(g.rng, int(math.Ceil(lo)), int(math.Floor(hi)))
}

// decimal returns a uniform value in [lo, hi] rounded to two places.
func (g *Generator) decimal(lo, hi float64) float64 {
	v := round2(lo + rngFloat64(g.rng)*(hi-lo))
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
