package mockgen

import (
	mathrand "math/rand/v2"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uuidPattern = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func seeded(seed uint64) *Generator {
	return New(WithRand(mathrand.New(mathrand.NewPCG(seed, seed+1))))
}

func TestGenerate_ExampleWins(t *testing.T) {
	t.Parallel()

	schema := openapi3.NewObjectSchema().WithProperty("id", openapi3.NewIntegerSchema())
	schema.Example = map[string]any{"id": 7}

	g := New()
	for range 5 {
		assert.Equal(t, map[string]any{"id": 7}, g.Generate(schema, ""))
	}
}

func TestGenerate_ObjectKeysAndTypes(t *testing.T) {
	t.Parallel()

	schema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewIntegerSchema()).
		WithProperty("score", openapi3.NewFloat64Schema()).
		WithProperty("active", openapi3.NewBoolSchema()).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("tags", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("meta", openapi3.NewObjectSchema())

	for seed := range uint64(20) {
		out, ok := seeded(seed).Generate(schema, "").(map[string]any)
		require.True(t, ok)
		require.Len(t, out, 6)

		assert.IsType(t, 0, out["id"])
		assert.IsType(t, 0.0, out["score"])
		assert.IsType(t, true, out["active"])
		assert.IsType(t, "", out["label"])
		assert.IsType(t, []any{}, out["tags"])
		assert.Equal(t, map[string]any{}, out["meta"])
	}
}

func TestGenerate_ArrayLength(t *testing.T) {
	t.Parallel()

	t.Run("default", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewArraySchema().WithItems(openapi3.NewIntegerSchema())
		assert.Len(t, New().Generate(schema, ""), DefaultArrayLength)
	})

	t.Run("minItems", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewArraySchema().WithItems(openapi3.NewIntegerSchema())
		schema.MinItems = 3
		assert.Len(t, New().Generate(schema, ""), 3)
	})

	t.Run("configured default", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewArraySchema().WithItems(openapi3.NewIntegerSchema())
		assert.Len(t, New(WithArrayLength(2)).Generate(schema, ""), 2)
	})

	t.Run("missing items", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []any{}, New().Generate(openapi3.NewArraySchema(), ""))
	})

	t.Run("hint reused for elements", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
		schema.MinItems = 4
		out := New().Generate(schema, "emails").([]any)
		for _, v := range out {
			assert.Contains(t, v, "@")
		}
	})
}

func TestGenerate_StringFormats(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, 3, 9, 14, 5, 6, 789_000_000, time.UTC)
	g := New(WithClock(func() time.Time { return fixed }))

	assert.Equal(t, "2024-03-09", g.Generate(openapi3.NewStringSchema().WithFormat("date"), ""))
	assert.Equal(t, "2024-03-09T14:05:06.789Z", g.Generate(openapi3.NewStringSchema().WithFormat("date-time"), ""))
	assert.Contains(t, g.Generate(openapi3.NewStringSchema().WithFormat("email"), ""), "@")
	assert.True(t, strings.HasPrefix(g.Generate(openapi3.NewStringSchema().WithFormat("uri"), "").(string), "https://example.com/resource/"))
	assert.True(t, strings.HasPrefix(g.Generate(openapi3.NewStringSchema().WithFormat("url"), "").(string), "https://example.com/resource/"))

	// Format beats hint.
	assert.Equal(t, "2024-03-09", g.Generate(openapi3.NewStringSchema().WithFormat("date"), "email"))
}

func TestGenerate_UUID(t *testing.T) {
	t.Parallel()

	schema := openapi3.NewStringSchema().WithFormat("uuid")
	for _, g := range []*Generator{New(), seeded(42)} {
		for range 50 {
			assert.Regexp(t, uuidPattern, g.Generate(schema, ""))
		}
	}

	assert.Equal(t, seeded(9).Generate(schema, ""), seeded(9).Generate(schema, ""))
}

func TestGenerate_StringFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("enum", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewStringSchema().WithEnum("available", "pending", "sold")
		for range 30 {
			assert.Contains(t, []any{"available", "pending", "sold"}, New().Generate(schema, "status"))
		}
	})

	t.Run("hint beats enum", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewStringSchema().WithEnum("x")
		assert.Contains(t, New().Generate(schema, "email"), "@")
	})

	t.Run("pattern", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewStringSchema().WithPattern("^[a-zA-Z][0-9]-[a-zA-Z0-9]{3}$")
		assert.Equal(t, "^A1-X{3}$", New().Generate(schema, ""))
	})

	t.Run("token", func(t *testing.T) {
		t.Parallel()
		out := New().Generate(openapi3.NewStringSchema(), "")
		assert.Regexp(t, `^mock-[0-9a-z]{8}$`, out)
	})
}

func TestGenerate_Hints(t *testing.T) {
	t.Parallel()

	str := openapi3.NewStringSchema()
	tests := []struct {
		hint  string
		check func(t *testing.T, v string)
	}{
		{"contactEmail", func(t *testing.T, v string) { assert.Regexp(t, `^[a-z]+\.[a-z]+@[a-z.]+$`, v) }},
		{"phoneNumber", func(t *testing.T, v string) { assert.Regexp(t, `^\+1 \(\d{3}\) \d{3}-\d{4}$`, v) }},
		{"avatarUrl", func(t *testing.T, v string) { assert.True(t, strings.HasPrefix(v, "https://i.pravatar.cc/200?u=")) }},
		{"profilePhoto", func(t *testing.T, v string) { assert.True(t, strings.HasPrefix(v, "https://picsum.photos/id/")) }},
		{"website", func(t *testing.T, v string) { assert.True(t, strings.HasPrefix(v, "https://example.com/resource/")) }},
		{"firstName", func(t *testing.T, v string) { assert.Contains(t, firstNames, v) }},
		{"lastName", func(t *testing.T, v string) { assert.Contains(t, lastNames, v) }},
		{"name", func(t *testing.T, v string) { assert.Len(t, strings.Fields(v), 2) }},
		{"userName", func(t *testing.T, v string) { assert.Regexp(t, `^[a-z]+\d{1,3}$`, v) }},
		{"user", func(t *testing.T, v string) { assert.Regexp(t, `^[a-z]+\d{1,3}$`, v) }},
		{"streetAddress", func(t *testing.T, v string) { assert.Regexp(t, `^\d+ [A-Za-z]+ Street$`, v) }},
		{"city", func(t *testing.T, v string) { assert.Contains(t, cities, v) }},
		{"state", func(t *testing.T, v string) { assert.Contains(t, states, v) }},
		{"zipCode", func(t *testing.T, v string) { assert.Regexp(t, `^\d{5}$`, v) }},
		{"country", func(t *testing.T, v string) { assert.Contains(t, countries, v) }},
		{"currency", func(t *testing.T, v string) { assert.Contains(t, currencies, v) }},
		{"company", func(t *testing.T, v string) { assert.Contains(t, companies, v) }},
		{"companyName", func(t *testing.T, v string) { assert.Len(t, strings.Fields(v), 2) }},
		{"organization", func(t *testing.T, v string) { assert.Contains(t, companies, v) }},
		{"jobTitle", func(t *testing.T, v string) { assert.Contains(t, jobTitles, v) }},
		{"bio", func(t *testing.T, v string) { assert.Contains(t, descriptions, v) }},
		{"fileName", func(t *testing.T, v string) { assert.True(t, strings.HasPrefix(v, "mock-")) }},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			t.Parallel()
			v, ok := New().Generate(str, tt.hint).(string)
			require.True(t, ok)
			tt.check(t, v)
		})
	}
}

func TestGenerate_Numbers(t *testing.T) {
	t.Parallel()

	t.Run("integer bounds", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewIntegerSchema().WithMin(5).WithMax(8)
		seen := map[int]bool{}
		for range 200 {
			v := New().Generate(schema, "").(int)
			assert.GreaterOrEqual(t, v, 5)
			assert.LessOrEqual(t, v, 8)
			seen[v] = true
		}
		assert.Len(t, seen, 4)
	})

	t.Run("integer defaults", func(t *testing.T) {
		t.Parallel()
		for range 100 {
			v := New().Generate(openapi3.NewIntegerSchema(), "").(int)
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 1000)
		}
	})

	t.Run("float rounded", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewFloat64Schema().WithMin(1).WithMax(2)
		for range 100 {
			v := New().Generate(schema, "").(float64)
			assert.GreaterOrEqual(t, v, 1.0)
			assert.LessOrEqual(t, v, 2.0)
			assert.InDelta(t, v, round2(v), 1e-9)
		}
	})

	t.Run("price", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewFloat64Schema().WithMin(10).WithMax(20)
		for range 200 {
			v := New().Generate(schema, "unitPrice").(float64)
			assert.GreaterOrEqual(t, v, 10.0)
			assert.LessOrEqual(t, v, 20.0)
			cents := round2(v - float64(int(v)))
			assert.Contains(t, []float64{0, 0.99, 0.95, 0.5, 0.49}, cents)
		}
	})

	t.Run("amount", func(t *testing.T) {
		t.Parallel()
		schema := openapi3.NewIntegerSchema().WithMin(1).WithMax(100)
		for range 100 {
			switch v := New().Generate(schema, "totalAmount").(type) {
			case int:
				assert.GreaterOrEqual(t, v, 1)
				assert.LessOrEqual(t, v, 100)
			case float64:
				assert.GreaterOrEqual(t, v, 1.0)
				assert.LessOrEqual(t, v, 100.0)
			default:
				t.Fatalf("unexpected type %T", v)
			}
		}
	})
}

func TestGenerate_UnknownType(t *testing.T) {
	t.Parallel()

	assert.Nil(t, New().Generate(&openapi3.Schema{}, "name"))
	assert.Nil(t, New().Generate(nil, ""))
}

func TestGenerate_Cycles(t *testing.T) {
	t.Parallel()

	node := openapi3.NewObjectSchema().WithProperty("id", openapi3.NewIntegerSchema())
	node.Properties["parent"] = openapi3.NewSchemaRef("", node)
	children := openapi3.NewArraySchema()
	children.Items = openapi3.NewSchemaRef("", node)
	node.Properties["children"] = openapi3.NewSchemaRef("", children)

	out, ok := New().Generate(node, "").(map[string]any)
	require.True(t, ok)
	assert.IsType(t, 0, out["id"])
	assert.Nil(t, out["parent"])
	assert.Equal(t, []any{}, out["children"])
}

func TestGenerate_SeededReproducible(t *testing.T) {
	t.Parallel()

	schema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema().WithFormat("uuid")).
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("price", openapi3.NewFloat64Schema()).
		WithProperty("tags", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))

	assert.Equal(t, seeded(7).Generate(schema, ""), seeded(7).Generate(schema, ""))
}
