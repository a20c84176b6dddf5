package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/ehsanranjbar/sortkeys/codec/lex"
	"github.com/ehsanranjbar/sortkeys/schema"
	"github.com/stretchr/testify/require"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

func TestParseJSON(t *testing.T) {
	d, err := schema.ParseJSON([]byte(`{"n": 12345678901234567890.123456789, "s": "x", "l": [1, null, true]}`))
	require.NoError(t, err)
	require.Equal(t, json.Number("12345678901234567890.123456789"), d["n"])

	v, err := schema.ValueAt(d, "n")
	require.NoError(t, err)
	require.Equal(t, 0, lex.Compare(lex.MustParseDecimal("12345678901234567890.123456789"), v))

	v, err = schema.ValueAt(d, "l")
	require.NoError(t, err)
	require.Equal(t, 0, lex.Compare(lex.Seq(lex.Int(1), lex.Null{}, lex.Bool(true)), v))

	for _, invalid := range []string{`[1, 2]`, `null`, `{"a": 1} {"b": 2}`, `{`} {
		_, err := schema.ParseJSON([]byte(invalid))
		require.Error(t, err, "ParseJSON(%s)", invalid)
	}
}

func TestParseMsgpack(t *testing.T) {
	data, err := msgpack.Marshal(map[string]any{
		"name":  "bob",
		"age":   42,
		"score": -1.5,
		"tags":  []string{"a", "b"},
		"meta":  map[string]any{"ok": true},
	})
	require.NoError(t, err)

	d, err := schema.ParseMsgpack(data)
	require.NoError(t, err)

	tests := []struct {
		path     string
		expected lex.Value
	}{
		{"name", lex.Text("bob")},
		{"age", lex.Int(42)},
		{"score", lex.MustParseDecimal("-1.5")},
		{"tags", lex.Seq(lex.Text("a"), lex.Text("b"))},
		{"tags.1", lex.Text("b")},
		{"meta.ok", lex.Bool(true)},
	}

	for _, test := range tests {
		v, err := schema.ValueAt(d, test.path)
		require.NoError(t, err, test.path)
		require.Equal(t, 0, lex.Compare(test.expected, v), "ValueAt(%s) = %s, want %s", test.path, v, test.expected)
	}

	_, err = schema.ValueAt(d, "meta")
	require.ErrorIs(t, err, lex.ErrUnsupportedType)

	_, err = schema.ValueAt(d, "missing")
	require.ErrorIs(t, err, schema.ErrPathNotFound)

	data, err = msgpack.Marshal([]int{1})
	require.NoError(t, err)
	_, err = schema.ParseMsgpack(data)
	require.Error(t, err)
}
