package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrPathNotFound is returned when a path does not resolve to a value.
var ErrPathNotFound = errors.New("path not found")

// PathExtractor is an interface for extracting a value with the given path from a given value.
type PathExtractor[T any] interface {
	ExtractPath(t T, path string) (any, error)
}

// DocumentExtractor is a PathExtractor for documents.
type DocumentExtractor struct{}

// ExtractPath implements the PathExtractor interface.
func (DocumentExtractor) ExtractPath(d Document, path string) (any, error) {
	return ExtractPath(d, path)
}

// ExtractPath extracts the value at the given dot separated path from nested maps and slices.
// Slice elements are addressed by index, and a "*" segment collects the rest of the path
// from every element of a slice, flattening slice results into one slice.
func ExtractPath(v any, path string) (any, error) {
	if path == "" {
		return v, nil
	}

	head, rest, _ := strings.Cut(path, ".")
	if head == "" {
		return ExtractPath(v, rest)
	}

	switch vv := v.(type) {
	case map[string]any:
		next, ok := vv[head]
		if !ok {
			return nil, fmt.Errorf("%w: key %q", ErrPathNotFound, head)
		}
		return ExtractPath(next, rest)
	case []any:
		if head == "*" {
			return extractWildcard(vv, rest)
		}

		i, err := strconv.Atoi(head)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", head, err)
		}
		if i < 0 || i >= len(vv) {
			return nil, fmt.Errorf("%w: index %d out of range", ErrPathNotFound, i)
		}
		return ExtractPath(vv[i], rest)
	case nil:
		return nil, fmt.Errorf("%w: cannot extract path %q from null", ErrPathNotFound, path)
	default:
		return nil, fmt.Errorf("cannot extract path %q from %T", path, v)
	}
}

func extractWildcard(vv []any, rest string) ([]any, error) {
	result := make([]any, 0, len(vv))
	for _, e := range vv {
		ev, err := ExtractPath(e, rest)
		if errors.Is(err, ErrPathNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		switch ev := ev.(type) {
		case []any:
			result = append(result, ev...)
		default:
			result = append(result, ev)
		}
	}
	return result, nil
}
