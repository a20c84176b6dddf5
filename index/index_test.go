package index_test

import (
	"testing"

	"github.com/ehsanranjbar/sortkeys/codec/lex"
	"github.com/ehsanranjbar/sortkeys/expr"
	"github.com/ehsanranjbar/sortkeys/index"
	"github.com/ehsanranjbar/sortkeys/iters"
	"github.com/ehsanranjbar/sortkeys/testutil"
	"github.com/stretchr/testify/require"
)

var (
	vNull  = lex.Null{}
	vNeg   = lex.MustParseDecimal("-1.5")
	vOne   = lex.Int(1)
	vTwo   = lex.Int(2)
	vTen   = lex.Int(10)
	vText  = lex.Text("a")
	vSeq   = lex.Seq(lex.Int(1))
	sorted = []lex.Value{vNull, vNeg, vOne, vTwo, vTen, vText, vSeq}
)

func keysOf(vs ...lex.Value) []lex.Key {
	keys := make([]lex.Key, len(vs))
	for i, v := range vs {
		keys[i] = lex.MustEncode(v)
	}
	return keys
}

func prepareIndex(t *testing.T) (*index.Instance, *index.Instance) {
	txn := testutil.PrepareTxn(t, true)
	ins := index.New([]byte("i1")).Instantiate(txn)
	other := index.New([]byte("i2")).Instantiate(txn)

	entries := []struct {
		v   lex.Value
		ids []uint32
	}{
		{vTen, []uint32{8}},
		{vOne, []uint32{1}},
		{vTwo, []uint32{2}},
		{vTwo, []uint32{3}},
		{vText, []uint32{4}},
		{vNull, []uint32{5}},
		{vSeq, []uint32{6}},
		{vNeg, []uint32{7}},
	}
	for _, e := range entries {
		require.NoError(t, ins.Add(e.v, e.ids...))
	}
	require.NoError(t, other.Add(vOne, 100))
	require.NoError(t, other.Add(lex.Text("zzz"), 101))

	return ins, other
}

func TestIndexGet(t *testing.T) {
	ins, other := prepareIndex(t)

	bm, err := ins.Get(vTwo)
	require.NoError(t, err)
	require.Equal(t, []uint32{2, 3}, bm.ToArray())

	bm, err = ins.Get(lex.Int(3))
	require.NoError(t, err)
	require.True(t, bm.IsEmpty())

	bm, err = other.GetKey(lex.EncodeInteger(1))
	require.NoError(t, err)
	require.Equal(t, []uint32{100}, bm.ToArray())

	_, err = ins.Get(lex.Text("\x01"))
	require.ErrorIs(t, err, lex.ErrInvalidCharacter)
}

func TestIndexIterator(t *testing.T) {
	ins, _ := prepareIndex(t)

	tests := []struct {
		name     string
		r        expr.Range[lex.Value]
		reverse  bool
		expected []lex.Value
	}{
		{"All", expr.All[lex.Value](), false, sorted},
		{"AllReverse", expr.All[lex.Value](), true, []lex.Value{vSeq, vText, vTen, vTwo, vOne, vNeg, vNull}},
		{"Exact", expr.Exact[lex.Value](vTwo), false, []lex.Value{vTwo}},
		{"ExactMissing", expr.Exact[lex.Value](lex.Int(3)), false, nil},
		{"AtLeast", expr.AtLeast[lex.Value](vTwo), false, []lex.Value{vTwo, vTen, vText, vSeq}},
		{"GreaterThan", expr.GreaterThan[lex.Value](vTwo), false, []lex.Value{vTen, vText, vSeq}},
		{"AtMost", expr.AtMost[lex.Value](vOne), false, []lex.Value{vNull, vNeg, vOne}},
		{"LessThan", expr.LessThan[lex.Value](vOne), false, []lex.Value{vNull, vNeg}},
		{
			"Numbers",
			expr.NewRange(expr.NewBound[lex.Value](lex.Bool(true), true), expr.NewBound[lex.Value](lex.Text(""), true)),
			false,
			[]lex.Value{vNeg, vOne, vTwo, vTen},
		},
		{
			"NumbersReverse",
			expr.NewRange(expr.NewBound[lex.Value](vNeg, true), expr.NewBound[lex.Value](vTen, false)),
			true,
			[]lex.Value{vTen, vTwo, vOne},
		},
		{"LessThanReverse", expr.LessThan[lex.Value](vText), true, []lex.Value{vTen, vTwo, vOne, vNeg, vNull}},
		{"GreaterThanReverse", expr.GreaterThan[lex.Value](vText), true, []lex.Value{vSeq}},
		{"Empty", expr.NewRange(expr.NewBound[lex.Value](vTen, false), expr.NewBound[lex.Value](vOne, false)), false, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var opts []index.IteratorOption
			if test.reverse {
				opts = append(opts, index.WithReverse())
			}

			iter, err := ins.NewIterator(test.r, opts...)
			require.NoError(t, err)
			defer iter.Close()

			keys := iters.CollectKeys(iter)
			if test.expected == nil {
				require.Empty(t, keys)
				return
			}
			require.Equal(t, keysOf(test.expected...), keys)
		})
	}

	_, err := ins.NewIterator(expr.AtLeast[lex.Value](lex.Text("\x01")))
	require.ErrorIs(t, err, lex.ErrInvalidCharacter)
}

func TestIndexLookup(t *testing.T) {
	ins, _ := prepareIndex(t)

	bm, err := ins.Lookup(expr.All[lex.Value]())
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 3, 4, 5, 6, 7, 8}, bm.ToArray())

	bm, err = ins.Lookup(expr.AtLeast[lex.Value](vTwo))
	require.NoError(t, err)
	require.Equal(t, []uint32{2, 3, 4, 6, 8}, bm.ToArray())
}

func TestIndexRemove(t *testing.T) {
	ins, _ := prepareIndex(t)

	require.NoError(t, ins.Remove(vTwo, 2))
	bm, err := ins.Get(vTwo)
	require.NoError(t, err)
	require.Equal(t, []uint32{3}, bm.ToArray())

	require.NoError(t, ins.Remove(vTwo, 3))
	require.NoError(t, ins.Remove(lex.Int(3), 1))

	iter, err := ins.NewIterator(expr.All[lex.Value]())
	require.NoError(t, err)
	defer iter.Close()
	require.Equal(t, keysOf(vNull, vNeg, vOne, vTen, vText, vSeq), iters.CollectKeys(iter))

	values, err := iters.Collect(iter)
	require.NoError(t, err)
	require.Len(t, values, 6)
	require.Equal(t, []uint32{5}, values[0].ToArray())
}
