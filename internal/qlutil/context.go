package qlutil

import (
	"encoding/json"
	"time"

	qlvalue "github.com/araddon/qlbridge/value"
	"github.com/ehsanranjbar/sortkeys/schema"
)

// ContextWrapper exposes a document to qlbridge expressions through the qlbridge.ContextReader interface.
type ContextWrapper struct {
	id        uint32
	doc       schema.Document
	extractor schema.PathExtractor[schema.Document]
	flatter   schema.Flatter[schema.Document]
}

// NewContextWrapper creates a new ContextWrapper.
func NewContextWrapper(id uint32, doc schema.Document) *ContextWrapper {
	return &ContextWrapper{
		id:        id,
		doc:       doc,
		extractor: schema.DocumentExtractor{},
		flatter:   schema.DocumentFlatter{},
	}
}

// Get implements the qlbridge.ContextReader interface.
func (c *ContextWrapper) Get(key string) (qlvalue.Value, bool) {
	switch {
	case key == "_id":
		return qlvalue.NewValue(int64(c.id)), true
	default:
		v, err := c.extractor.ExtractPath(c.doc, key)
		if err != nil {
			return qlvalue.NewErrorValue(err), false
		}
		return qlvalue.NewValue(Normalize(v)), true
	}
}

// Row implements the qlbridge.ContextReader interface.
func (c *ContextWrapper) Row() map[string]qlvalue.Value {
	flat, err := c.flatter.Flatten(c.doc)
	if err != nil {
		return nil
	}
	row := make(map[string]qlvalue.Value, len(flat))
	for k, v := range flat {
		row[k] = qlvalue.NewValue(Normalize(v))
	}
	return row
}

// Ts implements the qlbridge.ContextReader interface.
func (c *ContextWrapper) Ts() time.Time { return time.Time{} }

// Normalize converts json.Number values, including the nested ones, to int64 or float64
// which are the numeric types qlbridge understands.
func Normalize(v any) any {
	switch vv := v.(type) {
	case json.Number:
		if i, err := vv.Int64(); err == nil {
			return i
		}
		if f, err := vv.Float64(); err == nil {
			return f
		}
		return vv.String()
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[k] = Normalize(e)
		}
		return out
	default:
		return v
	}
}
