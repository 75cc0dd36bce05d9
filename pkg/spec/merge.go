package spec

import (
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/restmock/pkg/logging"
)

// Info assigned to a document merged from two or more specs.
const (
	MergedTitle   = "Merged API Specifications"
	MergedVersion = "1.0.0"
)

// Merge combines documents into one.
//
// A single document is returned as is. For two or more, paths are taken in input
// order and the first definition of a path wins; later duplicates are skipped with
// a warning. Every operation of an admitted path is tagged with the title of the
// spec it came from. Component schemas and security schemes are unioned with the
// opposite policy: a later definition replaces an earlier one.
//
// Inputs are never modified; admitted path items and operations are copied.
func Merge(specs []*openapi3.T, opts ...Option) (*openapi3.T, error) {
	if len(specs) == 0 {
		return nil, &ParseError{Err: ErrEmptyInput}
	}
	if len(specs) == 1 {
		return specs[0], nil
	}

	log := logging.Scoped(newOptions(opts).log, "merger")

	merged := &openapi3.T{
		OpenAPI: specs[0].OpenAPI,
		Info: &openapi3.Info{
			Title:   MergedTitle,
			Version: MergedVersion,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{},
	}

	for _, doc := range specs {
		if doc == nil {
			continue
		}
		origin := title(doc)

		merged.Tags = mergeTags(merged.Tags, doc.Tags, origin)
		mergeComponents(merged.Components, doc.Components)

		if doc.Paths == nil {
			continue
		}
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			if merged.Paths.Value(path) != nil {
				log.Warn("duplicate path, using first occurrence", "path", path, "spec", origin)
				continue
			}
			merged.Paths.Set(path, adoptPathItem(item, origin, doc.Security))
		}
	}

	return merged, nil
}

// adoptPathItem copies item, tagging each operation with origin. Operations
// without their own security requirements take the origin document's default,
// which would otherwise be lost once the documents are combined.
func adoptPathItem(item *openapi3.PathItem, origin string, docSecurity openapi3.SecurityRequirements) *openapi3.PathItem {
	adopted := *item
	for method, op := range item.Operations() {
		if op == nil {
			continue
		}
		cp := *op
		cp.Tags = slices.Clone(op.Tags)
		if origin != "" && !slices.Contains(cp.Tags, origin) {
			cp.Tags = append(cp.Tags, origin)
		}
		if cp.Security == nil && len(docSecurity) > 0 {
			inherited := slices.Clone(docSecurity)
			cp.Security = &inherited
		}
		adopted.SetOperation(method, &cp)
	}
	return &adopted
}

// mergeTags unions top-level tags by name (first wins) and adds one tag per origin
// title so the merged documentation can group operations by source.
func mergeTags(dst, src openapi3.Tags, origin string) openapi3.Tags {
	for _, tag := range src {
		if tag == nil || dst.Get(tag.Name) != nil {
			continue
		}
		dst = append(dst, tag)
	}
	if origin != "" && dst.Get(origin) == nil {
		dst = append(dst, &openapi3.Tag{Name: origin})
	}
	return dst
}

func mergeComponents(dst, src *openapi3.Components) {
	if src == nil {
		return
	}
	dst.Schemas = unionLastWins(dst.Schemas, src.Schemas)
	dst.SecuritySchemes = unionLastWins(dst.SecuritySchemes, src.SecuritySchemes)
	dst.Parameters = unionLastWins(dst.Parameters, src.Parameters)
	dst.Headers = unionLastWins(dst.Headers, src.Headers)
	dst.RequestBodies = unionLastWins(dst.RequestBodies, src.RequestBodies)
	dst.Responses = unionLastWins(dst.Responses, src.Responses)
	dst.Examples = unionLastWins(dst.Examples, src.Examples)
}

func unionLastWins[M ~map[string]V, V any](dst, src M) M {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(M, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
