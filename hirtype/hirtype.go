// Package hirtype defines the resolved type-expression tagged union
// that the layout engine inspects.
//
// Building this tree — parsing, macro expansion, trait solving,
// generic substitution — is out of scope for this module; HIR
// construction proper belongs to the compiler frontend. What lives
// here is only the shape of a *fully resolved* type expression, since
// the oracle's entire job (package layout) is to dispatch on that
// shape. Model it as a tagged sum plus a dispatch table, not an
// inheritance hierarchy: each variant carries its own payload, and
// callers switch on Kind() the same way arch/amd64/abi.go in the
// codegen backend switches on types.Type.Kind().
package hirtype

// Kind tags the variant of a resolved type expression.
type Kind int

const (
	KindPrimitive Kind = iota
	KindTuple
	KindPath
	KindGeneric
	KindTraitObject
	KindErasedType
	KindArray
	KindSlice
	KindBorrow
	KindPointer
	KindFunction
	KindClosure
	KindInfer
	KindDiverge
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindTuple:
		return "Tuple"
	case KindPath:
		return "Path"
	case KindGeneric:
		return "Generic"
	case KindTraitObject:
		return "TraitObject"
	case KindErasedType:
		return "ErasedType"
	case KindArray:
		return "Array"
	case KindSlice:
		return "Slice"
	case KindBorrow:
		return "Borrow"
	case KindPointer:
		return "Pointer"
	case KindFunction:
		return "Function"
	case KindClosure:
		return "Closure"
	case KindInfer:
		return "Infer"
	case KindDiverge:
		return "Diverge"
	default:
		return "Unknown"
	}
}

// Ref is a resolved type expression. Implementations are the only
// concrete types in this package; callers dispatch with a type switch
// or by comparing Kind().
type Ref interface {
	Kind() Kind
	// Equal reports structural equality. Two independently-built Refs
	// describing the same monomorphised type must compare equal. (The
	// memo cache in package layout does not call Equal: it keys nominal
	// types by definition pointer and tuples by their String form.)
	Equal(other Ref) bool
	String() string
}

// CoreType enumerates the scalar primitives, including the one
// intrinsically-unsized primitive (Str).
type CoreType int

const (
	Bool CoreType = iota
	U8
	I8
	U16
	I16
	U32
	I32
	Char
	U64
	I64
	U128
	I128
	Usize
	Isize
	F32
	F64
	Str
)

func (c CoreType) String() string {
	names := [...]string{"bool", "u8", "i8", "u16", "i16", "u32", "i32", "char",
		"u64", "i64", "u128", "i128", "usize", "isize", "f32", "f64", "str"}
	if int(c) < len(names) {
		return names[c]
	}
	return "?"
}

// Primitive is a scalar type.
type Primitive struct{ Core CoreType }

func (Primitive) Kind() Kind          { return KindPrimitive }
func (p Primitive) String() string    { return p.Core.String() }
func (p Primitive) Equal(o Ref) bool {
	op, ok := o.(Primitive)
	return ok && op.Core == p.Core
}

// Tuple is a positional product type, including the empty tuple `()`.
type Tuple struct{ Elems []Ref }

func (Tuple) Kind() Kind { return KindTuple }
func (t Tuple) String() string {
	s := "("
	for i, e := range t.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}
func (t Tuple) Equal(o Ref) bool {
	ot, ok := o.(Tuple)
	if !ok || len(ot.Elems) != len(t.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equal(ot.Elems[i]) {
			return false
		}
	}
	return true
}

// StructRepr is the declared layout representation of a struct.
type StructRepr int

const (
	ReprRust StructRepr = iota
	ReprC
	ReprPacked
	ReprSimd
	ReprTransparent
	ReprAligned
)

// StructShape distinguishes unit, tuple and named-field structs; it
// affects nothing about layout (field order is field order) but is
// kept for fidelity with the source language's grammar.
type StructShape int

const (
	ShapeUnit StructShape = iota
	ShapeTuple
	ShapeNamed
)

// FieldDef is one data member of a struct or union.
type FieldDef struct {
	Name string // empty for tuple-style fields
	Type Ref
}

// StructDef describes a struct or tuple-struct definition after
// monomorphisation: every FieldDef.Type here is already a closed type.
type StructDef struct {
	Name  string
	Repr  StructRepr
	Shape StructShape
	Fields []FieldDef

	// NonZeroMarked records an explicit
	// #[rustc_nonnull_optimization_guaranteed] annotation: a
	// single-field wrapper struct whose only legal values are those of
	// its field, letting the enum niche search treat it as non-zero
	// without inspecting its field recursively.
	NonZeroMarked bool

	// BoundedMax, when non-nil, marks this as an integer-like newtype
	// whose first field never exceeds *BoundedMax — a supplementary
	// niche source mirroring the reference compiler's
	// m_struct_markings.bounded_max.
	BoundedMax *uint64
}

// EnumKind distinguishes payload-carrying enums from C-like
// (all-unit, explicit discriminant) enums; the two use unrelated
// layout strategies (see package layout's enum builder).
type EnumKind int

const (
	EnumKindData EnumKind = iota
	EnumKindValue
)

// EnumRepr is the declared discriminant representation of a
// EnumKindValue enum; it is ignored for EnumKindData enums.
type EnumRepr int

const (
	EnumReprRust EnumRepr = iota
	EnumReprC
	EnumReprU8
	EnumReprU16
	EnumReprU32
	EnumReprU64
	EnumReprUsize
)

// EnumVariant is one arm of an enum. A data variant carries Payload
// (the product of its field types, empty for a unit variant); a value
// variant instead carries a fixed Discriminant.
type EnumVariant struct {
	Name        string
	Payload     []Ref
	Discriminant int64
}

// EnumDef describes an enum definition after monomorphisation.
type EnumDef struct {
	Name     string
	Kind     EnumKind
	Variants []EnumVariant
	Repr     EnumRepr
}

// UnionDef describes a union definition after monomorphisation.
type UnionDef struct {
	Name   string
	Fields []FieldDef
}

// PathBinding is what a Path type resolves to.
type PathBinding interface{ isPathBinding() }

type StructBinding struct{ Def *StructDef }
type EnumBinding struct{ Def *EnumDef }
type UnionBinding struct{ Def *UnionDef }
type ExternTypeBinding struct{ Name string }

// OpaqueBinding is an unresolved associated-type projection
// (`<T as Trait>::Assoc`); trait resolution that would expand it is out
// of scope, so the oracle treats it as "unknown layout" (§7
// Recoverable).
type OpaqueBinding struct{ Name string }

func (StructBinding) isPathBinding()     {}
func (EnumBinding) isPathBinding()       {}
func (UnionBinding) isPathBinding()      {}
func (ExternTypeBinding) isPathBinding() {}
func (OpaqueBinding) isPathBinding()     {}

// Path is a nominal type: struct, enum, union, extern type or an
// unresolved opaque associated-type projection.
type Path struct{ Binding PathBinding }

func (Path) Kind() Kind { return KindPath }
func (p Path) String() string {
	switch b := p.Binding.(type) {
	case StructBinding:
		return b.Def.Name
	case EnumBinding:
		return b.Def.Name
	case UnionBinding:
		return b.Def.Name
	case ExternTypeBinding:
		return b.Name
	case OpaqueBinding:
		return "<opaque " + b.Name + ">"
	default:
		return "<path>"
	}
}
func (p Path) Equal(o Ref) bool {
	op, ok := o.(Path)
	if !ok {
		return false
	}
	// Structural equality on nominal paths is by identity of the
	// underlying definition pointer plus name for extern/opaque
	// bindings — two distinct struct definitions are never equal even
	// if shaped the same, matching the reference compiler's path-based
	// type identity.
	switch b := p.Binding.(type) {
	case StructBinding:
		ob, ok := op.Binding.(StructBinding)
		return ok && ob.Def == b.Def
	case EnumBinding:
		ob, ok := op.Binding.(EnumBinding)
		return ok && ob.Def == b.Def
	case UnionBinding:
		ob, ok := op.Binding.(UnionBinding)
		return ok && ob.Def == b.Def
	case ExternTypeBinding:
		ob, ok := op.Binding.(ExternTypeBinding)
		return ok && ob.Name == b.Name
	case OpaqueBinding:
		ob, ok := op.Binding.(OpaqueBinding)
		return ok && ob.Name == b.Name
	default:
		return false
	}
}

// Generic is an unsubstituted generic parameter; the oracle always
// returns "unknown" for it (§4.3).
type Generic struct{ Name string }

func (Generic) Kind() Kind       { return KindGeneric }
func (g Generic) String() string { return g.Name }
func (g Generic) Equal(o Ref) bool {
	og, ok := o.(Generic)
	return ok && og.Name == g.Name
}

// TraitObject is an unsized `dyn Trait` type; a reference to one
// carries vtable-pointer metadata.
type TraitObject struct{ TraitName string }

func (TraitObject) Kind() Kind       { return KindTraitObject }
func (t TraitObject) String() string { return "dyn " + t.TraitName }
func (t TraitObject) Equal(o Ref) bool {
	ot, ok := o.(TraitObject)
	return ok && ot.TraitName == t.TraitName
}

// ErasedType is an `impl Trait` position that should never survive to
// the layout stage; encountering one is an internal bug (§7).
type ErasedType struct{ TraitName string }

func (ErasedType) Kind() Kind       { return KindErasedType }
func (e ErasedType) String() string { return "impl " + e.TraitName }
func (e ErasedType) Equal(o Ref) bool {
	oe, ok := o.(ErasedType)
	return ok && oe.TraitName == e.TraitName
}

// Array is a fixed-length homogeneous sequence `[T; N]`.
type Array struct {
	Elem Ref
	Len  int64
}

func (Array) Kind() Kind { return KindArray }
func (a Array) String() string {
	return "[" + a.Elem.String() + "; " + itoa(a.Len) + "]"
}
func (a Array) Equal(o Ref) bool {
	oa, ok := o.(Array)
	return ok && oa.Len == a.Len && oa.Elem.Equal(a.Elem)
}

// Slice is an unsized homogeneous sequence `[T]`.
type Slice struct{ Elem Ref }

func (Slice) Kind() Kind       { return KindSlice }
func (s Slice) String() string { return "[" + s.Elem.String() + "]" }
func (s Slice) Equal(o Ref) bool {
	os, ok := o.(Slice)
	return ok && os.Elem.Equal(s.Elem)
}

// Borrow is a safe reference `&T` / `&mut T`.
type Borrow struct {
	Inner   Ref
	Mutable bool
}

func (Borrow) Kind() Kind { return KindBorrow }
func (b Borrow) String() string {
	if b.Mutable {
		return "&mut " + b.Inner.String()
	}
	return "&" + b.Inner.String()
}
func (b Borrow) Equal(o Ref) bool {
	ob, ok := o.(Borrow)
	return ok && ob.Mutable == b.Mutable && ob.Inner.Equal(b.Inner)
}

// Pointer is a raw pointer `*const T` / `*mut T`.
type Pointer struct {
	Inner   Ref
	Mutable bool
}

func (Pointer) Kind() Kind { return KindPointer }
func (p Pointer) String() string {
	if p.Mutable {
		return "*mut " + p.Inner.String()
	}
	return "*const " + p.Inner.String()
}
func (p Pointer) Equal(o Ref) bool {
	op, ok := o.(Pointer)
	return ok && op.Mutable == p.Mutable && op.Inner.Equal(p.Inner)
}

// Function is a function pointer type.
type Function struct {
	Params []Ref
	Ret    Ref
}

func (Function) Kind() Kind { return KindFunction }
func (f Function) String() string {
	s := "fn("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + f.Ret.String()
}
func (f Function) Equal(o Ref) bool {
	of, ok := o.(Function)
	if !ok || len(of.Params) != len(f.Params) || !of.Ret.Equal(f.Ret) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(of.Params[i]) {
			return false
		}
	}
	return true
}

// Closure is a closure type. All closures must be lowered away before
// layout is queried (§4.3); encountering one here is an internal bug.
type Closure struct{ Name string }

func (Closure) Kind() Kind       { return KindClosure }
func (c Closure) String() string { return "closure " + c.Name }
func (c Closure) Equal(o Ref) bool {
	oc, ok := o.(Closure)
	return ok && oc.Name == c.Name
}

// Infer is the `_` type-inference placeholder. Asking for its size is
// an internal bug (§7); it should never survive to this stage.
type Infer struct{}

func (Infer) Kind() Kind       { return KindInfer }
func (Infer) String() string   { return "_" }
func (Infer) Equal(o Ref) bool { _, ok := o.(Infer); return ok }

// Diverge is the never type `!`. It is zero-sized and has no layout
// concerns of its own.
type Diverge struct{}

func (Diverge) Kind() Kind       { return KindDiverge }
func (Diverge) String() string   { return "!" }
func (Diverge) Equal(o Ref) bool { _, ok := o.(Diverge); return ok }

// Unit returns the empty tuple `()`, the canonical zero-sized type.
func Unit() Ref { return Tuple{} }

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
