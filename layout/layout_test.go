package layout

import (
	"testing"

	"github.com/arc-language/typelayout/hirtype"
	"github.com/arc-language/typelayout/resolve"
	"github.com/arc-language/typelayout/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOracle builds an Oracle over a standalone copy of the named
// built-in target spec, independent of the process-wide target.Current
// so tests can run in any order without interfering with each other.
func newOracle(t *testing.T, triple string) *Oracle {
	t.Helper()
	require.NoError(t, target.SetCurrent(triple))
	spec := *target.Current()
	return New(&spec, resolve.NewStatic())
}

func TestPrimitiveSizes(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	size, align, ok := o.SizeAlign(hirtype.Primitive{Core: hirtype.U8})
	require.True(t, ok)
	assert.EqualValues(t, 1, size)
	assert.EqualValues(t, 1, align)

	size, align, ok = o.SizeAlign(hirtype.Primitive{Core: hirtype.U32})
	require.True(t, ok)
	assert.EqualValues(t, 4, size)
	assert.EqualValues(t, 4, align)

	size, align, ok = o.SizeAlign(hirtype.Primitive{Core: hirtype.U64})
	require.True(t, ok)
	assert.EqualValues(t, 8, size)
	assert.EqualValues(t, 8, align)

	size, align, ok = o.SizeAlign(hirtype.Primitive{Core: hirtype.U128})
	require.True(t, ok)
	assert.EqualValues(t, 16, size)
	assert.EqualValues(t, 16, align)
}

func TestU128EmulatedAlignsToU64(t *testing.T) {
	o := newOracle(t, "i586-linux-gnu") // emulate-i128=true, x86 arch
	_, align, ok := o.SizeAlign(hirtype.Primitive{Core: hirtype.U128})
	require.True(t, ok)
	assert.EqualValues(t, 4, align) // x86's own u64 align is 4
}

func TestX86SizesAndAlignment(t *testing.T) {
	o := newOracle(t, "i586-linux-gnu")

	size, align, ok := o.SizeAlign(hirtype.Primitive{Core: hirtype.U64})
	require.True(t, ok)
	assert.EqualValues(t, 8, size)
	assert.EqualValues(t, 4, align)

	size, align, ok = o.SizeAlign(hirtype.Primitive{Core: hirtype.U128})
	require.True(t, ok)
	assert.EqualValues(t, 16, size)
	assert.EqualValues(t, 4, align)

	size, align, ok = o.SizeAlign(hirtype.Primitive{Core: hirtype.Usize})
	require.True(t, ok)
	assert.EqualValues(t, 4, size)
	assert.EqualValues(t, 4, align)
}

func TestArraySizes(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	size, align, ok := o.SizeAlign(hirtype.Array{Elem: hirtype.Primitive{Core: hirtype.U32}, Len: 3})
	require.True(t, ok)
	assert.EqualValues(t, 12, size)
	assert.EqualValues(t, 4, align)

	size, align, ok = o.SizeAlign(hirtype.Array{Elem: hirtype.Primitive{Core: hirtype.U8}, Len: 0})
	require.True(t, ok)
	assert.EqualValues(t, 0, size)
	assert.EqualValues(t, 1, align)
}

func TestStrReferenceIsFatPointer(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")
	size, align, ok := o.SizeAlign(hirtype.Borrow{Inner: hirtype.Primitive{Core: hirtype.Str}})
	require.True(t, ok)
	assert.EqualValues(t, 16, size) // 2 * 8-byte pointer width
	assert.EqualValues(t, 8, align)
}

func TestOptionReferenceNonZero(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	refU32 := hirtype.Borrow{Inner: hirtype.Primitive{Core: hirtype.U32}}
	optionDef := &hirtype.EnumDef{
		Name: "Option",
		Kind: hirtype.EnumKindData,
		Variants: []hirtype.EnumVariant{
			{Name: "None", Payload: nil},
			{Name: "Some", Payload: []hirtype.Ref{refU32}},
		},
	}

	repr, ok := o.EnumRepr(optionDef)
	require.True(t, ok)

	refSize, refAlign, _ := o.SizeAlign(refU32)
	assert.Equal(t, refSize, repr.Size)
	assert.Equal(t, refAlign, repr.Align)

	mode, isNonZero := repr.Variant.(NonZeroMode)
	require.True(t, isNonZero)
	assert.Equal(t, 0, mode.ZeroVariant) // None is variant 0
	assert.Equal(t, 1, mode.FieldPath.TopIndex)
}

func TestResultUnitReferenceNonZero(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	refU32 := hirtype.Borrow{Inner: hirtype.Primitive{Core: hirtype.U32}}
	resultDef := &hirtype.EnumDef{
		Name: "Result",
		Kind: hirtype.EnumKindData,
		Variants: []hirtype.EnumVariant{
			{Name: "Ok", Payload: nil},
			{Name: "Err", Payload: []hirtype.Ref{refU32}},
		},
	}

	repr, ok := o.EnumRepr(resultDef)
	require.True(t, ok)

	refSize, _, _ := o.SizeAlign(refU32)
	assert.Equal(t, refSize, repr.Size)

	mode, isNonZero := repr.Variant.(NonZeroMode)
	require.True(t, isNonZero)
	assert.Equal(t, 0, mode.ZeroVariant) // Ok(()) is the zero pattern
}

func TestMultiFieldVariantSkipsNonZero(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	refU32 := hirtype.Borrow{Inner: hirtype.Primitive{Core: hirtype.U32}}
	def := &hirtype.EnumDef{
		Name: "Sparse2",
		Kind: hirtype.EnumKindData,
		Variants: []hirtype.EnumVariant{
			{Name: "None", Payload: nil},
			{Name: "Some", Payload: []hirtype.Ref{refU32, hirtype.Primitive{Core: hirtype.U8}}},
		},
	}

	repr, ok := o.EnumRepr(def)
	require.True(t, ok)

	// A two-field non-unit variant can't be NonZero-optimised even
	// though its first field would qualify alone; it must fall back to
	// an explicit tag instead.
	_, isNonZero := repr.Variant.(NonZeroMode)
	assert.False(t, isNonZero)
	mode, isValues := repr.Variant.(ValuesMode)
	require.True(t, isValues)
	assert.Len(t, mode.Values, 2)
}

func TestValueEnumDiscriminantWidth(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	def := &hirtype.EnumDef{
		Name: "Sparse",
		Kind: hirtype.EnumKindValue,
		Repr: hirtype.EnumReprRust,
		Variants: []hirtype.EnumVariant{
			{Name: "A", Discriminant: 0},
			{Name: "B", Discriminant: 5},
			{Name: "C", Discriminant: 300},
		},
	}

	repr, ok := o.EnumRepr(def)
	require.True(t, ok)
	assert.EqualValues(t, 2, repr.Size)
	assert.EqualValues(t, 2, repr.Align)

	mode, isValues := repr.Variant.(ValuesMode)
	require.True(t, isValues)
	require.Len(t, mode.Values, 3)
	assert.EqualValues(t, 0, mode.Values[0].Int64())
	assert.EqualValues(t, 5, mode.Values[1].Int64())
	assert.EqualValues(t, 300, mode.Values[2].Int64())
}

func TestDataEnumExplicitTag(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	def := &hirtype.EnumDef{
		Name: "Mixed",
		Kind: hirtype.EnumKindData,
		Variants: []hirtype.EnumVariant{
			{Name: "A", Payload: []hirtype.Ref{hirtype.Primitive{Core: hirtype.U8}}},
			{Name: "B", Payload: []hirtype.Ref{hirtype.Primitive{Core: hirtype.U8}, hirtype.Primitive{Core: hirtype.U8}}},
			{Name: "C", Payload: nil},
		},
	}

	repr, ok := o.EnumRepr(def)
	require.True(t, ok)
	assert.EqualValues(t, 3, repr.Size)
	assert.EqualValues(t, 1, repr.Align)

	mode, isValues := repr.Variant.(ValuesMode)
	require.True(t, isValues)
	assert.Equal(t, len(def.Variants), mode.TagPath.TopIndex)
	require.Len(t, repr.Fields, 4) // 3 variant payloads + trailing tag
	assert.EqualValues(t, 2, repr.Fields[3].Offset)
}

func TestPackedStruct(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	def := &hirtype.StructDef{
		Name: "Packed",
		Repr: hirtype.ReprPacked,
		Fields: []hirtype.FieldDef{
			{Name: "a", Type: hirtype.Primitive{Core: hirtype.U8}},
			{Name: "b", Type: hirtype.Primitive{Core: hirtype.U32}},
		},
	}

	repr, ok := o.StructRepr(def)
	require.True(t, ok)
	assert.EqualValues(t, 5, repr.Size)
	assert.EqualValues(t, 1, repr.Align)
	assert.EqualValues(t, 0, repr.Fields[0].Offset)
	assert.EqualValues(t, 1, repr.Fields[1].Offset)
}

func TestUnionSize(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	def := &hirtype.UnionDef{
		Name: "U",
		Fields: []hirtype.FieldDef{
			{Name: "a", Type: hirtype.Primitive{Core: hirtype.U32}},
			{Name: "b", Type: hirtype.Array{Elem: hirtype.Primitive{Core: hirtype.U8}, Len: 3}},
		},
	}

	repr, ok := o.UnionRepr(def)
	require.True(t, ok)
	assert.EqualValues(t, 4, repr.Size)
	assert.EqualValues(t, 4, repr.Align)
	assert.EqualValues(t, 0, repr.Fields[0].Offset)
	assert.EqualValues(t, 0, repr.Fields[1].Offset)
}

func TestTupleMatchesNamedStructLayout(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")

	tuple := hirtype.Tuple{Elems: []hirtype.Ref{
		hirtype.Primitive{Core: hirtype.U8},
		hirtype.Primitive{Core: hirtype.U32},
	}}
	tupleRepr, ok := o.tupleRepr(tuple)
	require.True(t, ok)

	namedDef := &hirtype.StructDef{
		Name: "Named",
		Repr: hirtype.ReprRust,
		Fields: []hirtype.FieldDef{
			{Name: "x", Type: hirtype.Primitive{Core: hirtype.U8}},
			{Name: "y", Type: hirtype.Primitive{Core: hirtype.U32}},
		},
	}
	namedRepr, ok := o.StructRepr(namedDef)
	require.True(t, ok)

	assert.Equal(t, namedRepr.Size, tupleRepr.Size)
	assert.Equal(t, namedRepr.Align, tupleRepr.Align)
}

func TestGenericParamIsUnknown(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")
	_, _, ok := o.SizeAlign(hirtype.Generic{Name: "T"})
	assert.False(t, ok)
}

func TestClosureAtLayoutIsBug(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")
	assert.Panics(t, func() {
		o.SizeAlign(hirtype.Closure{Name: "c0"})
	})
}

func TestMemoReturnsStablePointer(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")
	def := &hirtype.StructDef{
		Name:   "S",
		Repr:   hirtype.ReprRust,
		Fields: []hirtype.FieldDef{{Name: "a", Type: hirtype.Primitive{Core: hirtype.U32}}},
	}
	first, ok := o.StructRepr(def)
	require.True(t, ok)
	second, ok := o.StructRepr(def)
	require.True(t, ok)
	assert.Same(t, first, second)
}

func TestOffsetWalker(t *testing.T) {
	o := newOracle(t, "x86_64-linux-gnu")
	inner := &hirtype.StructDef{
		Name: "Inner",
		Repr: hirtype.ReprRust,
		Fields: []hirtype.FieldDef{
			{Name: "a", Type: hirtype.Primitive{Core: hirtype.U8}},
			{Name: "b", Type: hirtype.Primitive{Core: hirtype.U32}},
		},
	}
	outer := &hirtype.StructDef{
		Name: "Outer",
		Repr: hirtype.ReprRust,
		Fields: []hirtype.FieldDef{
			{Name: "x", Type: hirtype.Primitive{Core: hirtype.U8}},
			{Name: "y", Type: hirtype.Path{Binding: hirtype.StructBinding{Def: inner}}},
		},
	}

	repr, ok := o.StructRepr(outer)
	require.True(t, ok)

	off, ok := o.Offset(repr, FieldPath{TopIndex: 1, Sub: []int{1}, LeafSize: 4})
	require.True(t, ok)
	// outer.y starts at offset 4 (after padding for inner's own 4-byte
	// alignment); inner.b sits at offset 4 within Inner.
	assert.EqualValues(t, 8, off)
}
