package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeBody_ShapesFromRequest(t *testing.T) {
	t.Parallel()

	template := map[string]any{
		"id":      12,
		"name":    "Emma Smith",
		"email":   "emma.smith@example.com",
		"profile": map[string]any{"city": "Boston", "zip": "02134"},
	}
	request := map[string]any{
		"name":    "Jane",
		"profile": map[string]any{"city": "Hamburg"},
	}

	got := MergeBody(template, request).(map[string]any)

	assert.Equal(t, "Jane", got["name"])
	assert.Equal(t, "emma.smith@example.com", got["email"])
	assert.Equal(t, 12, got["id"])
	assert.Equal(t, map[string]any{"city": "Hamburg", "zip": "02134"}, got["profile"])
}

func TestMergeBody_AddsAndReplaces(t *testing.T) {
	t.Parallel()

	template := map[string]any{"tags": []any{"a"}, "owner": "x"}
	request := map[string]any{"tags": []any{"b", "c"}, "owner": map[string]any{"id": 1}, "extra": true}

	got := MergeBody(template, request)
	assert.Equal(t, map[string]any{
		"tags":  []any{"b", "c"},
		"owner": map[string]any{"id": 1},
		"extra": true,
	}, got)
}

func TestMergeBody_NonObjects(t *testing.T) {
	t.Parallel()

	list := []any{1, 2}
	assert.Equal(t, list, MergeBody(list, map[string]any{"a": 1}))

	obj := map[string]any{"a": 1}
	assert.Equal(t, obj, MergeBody(obj, []any{"x"}))
	assert.Equal(t, obj, MergeBody(obj, "text"))
	assert.Equal(t, obj, MergeBody(obj, nil))
}

func TestMergeBody_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	template := map[string]any{"profile": map[string]any{"city": "Boston"}}
	request := map[string]any{"profile": map[string]any{"city": "Hamburg"}, "items": []any{map[string]any{"n": 1}}}

	got := MergeBody(template, request).(map[string]any)
	got["items"].([]any)[0].(map[string]any)["n"] = 2
	got["profile"].(map[string]any)["city"] = "Paris"

	assert.Equal(t, map[string]any{"profile": map[string]any{"city": "Boston"}}, template)
	assert.Equal(t, 1, request["items"].([]any)[0].(map[string]any)["n"])
	assert.Equal(t, "Hamburg", request["profile"].(map[string]any)["city"])
}
