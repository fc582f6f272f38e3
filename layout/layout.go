// Package layout is the type-representation engine: given a resolved
// type expression and a target spec, it computes size, alignment,
// field offsets, and (for sum types) discriminant placement. It is
// deliberately blind to everything upstream of a resolved type — no
// parsing, macro expansion, or trait solving lives here.
package layout

import (
	"github.com/arc-language/typelayout/hirtype"
	"github.com/arc-language/typelayout/int128"
)

// UnknownSize marks a type whose byte size cannot be known without
// accompanying metadata (str, [T], dyn Trait, extern types, and any
// composite whose trailing field is one of those).
const UnknownSize int64 = -1

// TypeRepr is the physical layout of a composite type: total size,
// alignment, its fields in the order the builder recorded them, and
// how (if at all) it discriminates between sum-type variants.
type TypeRepr struct {
	Size    int64
	Align   uint8
	Packed  bool
	Fields  []Field
	Variant VariantMode
}

// Field is one member of a TypeRepr: its byte offset from the start of
// the containing repr, and its resolved type. For a struct these are
// the declared data members; for an enum, one Field per variant
// (carrying that variant's payload as a synthetic tuple) plus
// optionally a trailing explicit-tag field; for a union, every
// alternative at offset 0.
type Field struct {
	Offset int64
	Type   hirtype.Ref
}

// FieldPath locates a leaf inside a TypeRepr: a top-level field index,
// then zero or more sub-field indices descending further (e.g. into a
// nested struct or tuple), plus the byte size of the leaf itself. Sub
// is stored outer-to-inner; callers walk it in that order.
type FieldPath struct {
	TopIndex int
	Sub      []int
	LeafSize int64
}

// VariantModeKind tags the VariantMode sum type.
type VariantModeKind int

const (
	VariantNone VariantModeKind = iota
	VariantValues
	VariantLinear
	VariantNonZero
)

func (k VariantModeKind) String() string {
	switch k {
	case VariantNone:
		return "none"
	case VariantValues:
		return "values"
	case VariantLinear:
		return "linear"
	case VariantNonZero:
		return "nonzero"
	default:
		return "invalid"
	}
}

// VariantMode describes how a sum type's active variant is recovered
// from its bit pattern. Modeled as a tagged sum with a dispatch table
// rather than an inheritance hierarchy, the same way hirtype.Ref is.
type VariantMode interface {
	Kind() VariantModeKind
}

// NoneMode means the type has zero or one variant and needs no
// discriminator at all.
type NoneMode struct{}

func (NoneMode) Kind() VariantModeKind { return VariantNone }

// ValuesMode is an explicit tag field: variant i is selected when the
// value at TagPath equals Values[i]. Used both for C-like value enums
// (declared discriminants) and for data enums that fell through to an
// appended explicit tag (values 0..n-1 in that case).
type ValuesMode struct {
	TagPath FieldPath
	Values  []int128.S128
}

func (ValuesMode) Kind() VariantModeKind { return VariantValues }

// LinearMode packs the discriminant into a niche reused from an inner
// type's own tag space (or an unused range of bit patterns, like
// char's values above 0x10FFFF). Variant i is selected when the tag
// field equals Offset+i; values below Offset belong to the host
// variant (the one whose niche is being reused).
type LinearMode struct {
	TagPath     FieldPath
	Offset      uint64
	NumVariants uint64
}

func (LinearMode) Kind() VariantModeKind { return VariantLinear }

// NonZeroMode encodes a two-variant enum where one variant (a unit
// payload) is represented as all-zero bytes at FieldPath, and the
// other variant is any other bit pattern.
type NonZeroMode struct {
	FieldPath   FieldPath
	ZeroVariant int
}

func (NonZeroMode) Kind() VariantModeKind { return VariantNonZero }

func alignUp(n int64, align uint8) int64 {
	a := int64(align)
	if a <= 1 {
		return n
	}
	if rem := n % a; rem != 0 {
		return n + (a - rem)
	}
	return n
}
