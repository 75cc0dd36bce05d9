package mockgen

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// JSONMediaType is the only content type bodies are synthesized for.
const JSONMediaType = "application/json"

// GenerateBody synthesizes the JSON body of resp. A media type with no schema
// falls back to its example, then to an empty object.
func (g *Generator) GenerateBody(resp *openapi3.Response) any {
	if resp == nil || resp.Content == nil {
		return map[string]any{}
	}
	media := resp.Content.Get(JSONMediaType)
	if media == nil {
		return map[string]any{}
	}
	if media.Schema != nil && media.Schema.Value != nil {
		return g.Generate(media.Schema.Value, "")
	}
	if media.Example != nil {
		return media.Example
	}
	return map[string]any{}
}

// GenerateHeaders synthesizes a value for every resolved header of resp,
// using the header name as the hint.
func (g *Generator) GenerateHeaders(resp *openapi3.Response) map[string]string {
	out := map[string]string{}
	if resp == nil {
		return out
	}
	for _, name := range sortedKeys(resp.Headers) {
		ref := resp.Headers[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		h := ref.Value
		switch {
		case h.Schema != nil && h.Schema.Value != nil:
			out[name] = headerString(g.Generate(h.Schema.Value, name))
		case h.Example != nil:
			out[name] = headerString(h.Example)
		}
	}
	return out
}

// headerString renders v as a header value: strings verbatim, everything else
// as JSON.
func headerString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
