package response

// MergeBody shapes a synthesized body with the decoded JSON request body.
//
// When both template and request are JSON objects, every request key is
// copied over the template, recursing where both sides hold objects. Any
// other combination returns template unchanged. Neither argument is modified:
// templates often alias examples held by the document.
func MergeBody(template, request any) any {
	dst, ok := template.(map[string]any)
	if !ok {
		return template
	}
	src, ok := request.(map[string]any)
	if !ok {
		return template
	}
	out := clone(dst).(map[string]any)
	mergeObjects(out, src)
	return out
}

func mergeObjects(dst, src map[string]any) {
	for k, v := range src {
		if srcObj, ok := v.(map[string]any); ok {
			if dstObj, ok := dst[k].(map[string]any); ok {
				mergeObjects(dstObj, srcObj)
				continue
			}
		}
		dst[k] = clone(v)
	}
}

// clone deep-copies decoded JSON so the result shares no maps or slices with
// the request.
func clone(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = clone(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = clone(e)
		}
		return out
	default:
		return v
	}
}
