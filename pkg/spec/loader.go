package spec

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/restmock/pkg/logging"
)

// specExtensions are the file extensions treated as OpenAPI documents.
var specExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

type options struct {
	log      *slog.Logger
	validate bool
}

// Option configures the Loader and Merge.
type Option func(*options)

// WithLogger sets the logger used for per-file and duplicate-path messages.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithValidation toggles kin-openapi document validation after parsing.
// Validation is on by default.
func WithValidation(enabled bool) Option {
	return func(o *options) {
		o.validate = enabled
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: logging.Nop(), validate: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Loader resolves a file or directory path to parsed OpenAPI documents.
type Loader struct {
	opts *options
	log  *slog.Logger
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	o := newOptions(opts)
	return &Loader{opts: o, log: logging.Scoped(o.log, "loader")}
}

// LoadPath is shorthand for NewLoader(opts...).Load(ctx, path).
func LoadPath(ctx context.Context, path string, opts ...Option) ([]*openapi3.T, error) {
	return NewLoader(opts...).Load(ctx, path)
}

// Load parses the document at path, or every spec file below path when it is a
// directory. Invalid files inside a directory are skipped with a warning; a
// directory that yields no valid document is an error.
func (l *Loader) Load(ctx context.Context, path string) ([]*openapi3.T, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: "Path not found: " + path}
	}

	if !info.IsDir() {
		if !IsSpecFile(path) {
			return nil, &ParseError{Path: path, Message: "File must be an OpenAPI spec file (.yaml, .yml, or .json)"}
		}
		doc, err := l.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		return []*openapi3.T{doc}, nil
	}

	files, err := FindSpecFiles(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: "failed to scan directory", Err: err}
	}
	if len(files) == 0 {
		return nil, &ParseError{Path: path, Message: "No OpenAPI spec files found in directory: " + path}
	}

	docs := make([]*openapi3.T, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := l.LoadFile(ctx, file)
		if err != nil {
			l.log.Warn("skipped invalid spec", "file", file, "error", err)
			continue
		}
		l.log.Info("loaded spec", "file", file, "title", title(doc))
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, &ParseError{Path: path, Message: "No valid OpenAPI specs found"}
	}
	return docs, nil
}

// LoadFile parses and, unless disabled, validates a single document.
func (l *Loader) LoadFile(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: "Failed to parse OpenAPI specification", Err: err}
	}

	if l.opts.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, &ParseError{Path: path, Message: "Failed to parse OpenAPI specification", Err: err}
		}
	}
	return doc, nil
}

// IsSpecFile reports whether name has a .yaml, .yml or .json extension.
func IsSpecFile(name string) bool {
	return specExtensions[strings.ToLower(filepath.Ext(name))]
}

// FindSpecFiles returns every spec file below dir, recursively, sorted so that
// merge order is deterministic.
func FindSpecFiles(dir string) ([]string, error) {
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, "**/*")
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if !IsSpecFile(match) {
			continue
		}
		info, err := fs.Stat(fsys, match)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if info.IsDir() {
			continue
		}
		files = append(files, filepath.Join(dir, filepath.FromSlash(match)))
	}

	sort.Strings(files)
	return files, nil
}

func title(doc *openapi3.T) string {
	if doc == nil || doc.Info == nil {
		return ""
	}
	return doc.Info.Title
}
