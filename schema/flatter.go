package schema

// Flatter is an interface for flattening a hierarchy of values to a map of paths -> values.
type Flatter[T any] interface {
	Flatten(t T) (map[string]any, error)
}

// DocumentFlatter flattens nested objects of a document to dot separated paths.
// Slices are kept as leaf values.
type DocumentFlatter struct{}

// Flatten implements the Flatter interface.
func (DocumentFlatter) Flatten(d Document) (map[string]any, error) {
	flat := make(map[string]any)
	flattenInto(flat, "", d)
	return flat, nil
}

func flattenInto(flat map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}

		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flattenInto(flat, path, nested)
			continue
		}
		flat[path] = v
	}
}
