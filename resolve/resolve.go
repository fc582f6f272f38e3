// Package resolve defines the StaticTraitResolve collaborator the
// layout engine queries but does not implement: trait solving,
// associated-type projection expansion and fat-pointer metadata
// classification. A full resolver needs a trait solver, generic
// bounds, and a crate graph — all out of scope here (see spec.md §1).
//
// What this package provides instead is the narrow interface the
// oracle actually calls through, plus a Static resolver covering the
// built-in cases (slices, str, trait objects, structs whose only
// unsized field is itself resolvable) that don't require trait
// solving at all. Tooling with a real trait solver attached swaps in
// its own Resolver.
package resolve

import "github.com/arc-language/typelayout/hirtype"

// MetadataKind is the kind of pointer metadata a reference or raw
// pointer to a type must carry.
type MetadataKind int

const (
	// MetaUnknown means Sized-ness could not be determined (the type
	// depends on a generic parameter or unresolved opaque projection).
	MetaUnknown MetadataKind = iota
	// MetaNone means the referent is Sized with ordinary thin-pointer
	// metadata.
	MetaNone
	// MetaZero means the referent is Sized and carries no metadata, as
	// None does; kept distinct for parity with the reference compiler,
	// which reserves it for zero-sized Sized types.
	MetaZero
	// MetaSlice means the referent is `[T]` or `str`: metadata is an
	// element count.
	MetaSlice
	// MetaTraitObject means the referent is `dyn Trait`: metadata is a
	// vtable pointer.
	MetaTraitObject
)

// Resolver is the subset of StaticTraitResolve the layout engine
// depends on.
type Resolver interface {
	// MetadataType reports what fat-pointer metadata a reference to ty
	// would need.
	MetadataType(ty hirtype.Ref) MetadataKind
	// ExpandOpaque attempts to resolve an associated-type projection to
	// its concrete type. ok is false if the projection can't be
	// resolved yet (not enough trait information) — the oracle then
	// reports "unknown layout" for anything depending on it.
	ExpandOpaque(name string) (ty hirtype.Ref, ok bool)
}

// Static is a Resolver that only understands cases decidable without a
// trait solver: built-in Sized-ness of primitives, tuples, arrays,
// slices, str and trait objects, and structs/enums/unions whose
// trailing field (if any) is unsized only through one of those same
// built-ins. Anything routed through a user trait bound or associated
// type reports MetaUnknown / !ok, matching §7's "Recoverable" case.
type Static struct {
	// Opaques, when non-nil, lets tests and simple tools pre-seed
	// resolved associated-type projections without a real trait
	// solver.
	Opaques map[string]hirtype.Ref
}

// NewStatic returns a Static resolver with no pre-seeded projections.
func NewStatic() *Static { return &Static{Opaques: map[string]hirtype.Ref{}} }

func (s *Static) ExpandOpaque(name string) (hirtype.Ref, bool) {
	ty, ok := s.Opaques[name]
	return ty, ok
}

func (s *Static) MetadataType(ty hirtype.Ref) MetadataKind {
	switch t := ty.(type) {
	case hirtype.Primitive:
		if t.Core == hirtype.Str {
			return MetaSlice
		}
		return MetaNone
	case hirtype.Slice:
		return MetaSlice
	case hirtype.TraitObject:
		return MetaTraitObject
	case hirtype.Path:
		switch b := t.Binding.(type) {
		case hirtype.StructBinding:
			return s.structMetadata(b.Def)
		case hirtype.EnumBinding, hirtype.UnionBinding:
			return MetaNone
		case hirtype.ExternTypeBinding:
			// Extern types are unsized with no metadata at all; callers
			// treat that as "None" sized-ness-wise since a pointer to
			// one is still a single thin pointer.
			return MetaNone
		case hirtype.OpaqueBinding:
			if expanded, ok := s.ExpandOpaque(b.Name); ok {
				return s.MetadataType(expanded)
			}
			return MetaUnknown
		}
		return MetaUnknown
	case hirtype.Generic:
		return MetaUnknown
	case hirtype.Tuple, hirtype.Array, hirtype.Borrow, hirtype.Pointer,
		hirtype.Function, hirtype.Diverge:
		return MetaNone
	default:
		return MetaUnknown
	}
}

// structMetadata delegates to the trailing field of a struct: a struct
// is unsized exactly when its last field is, and carries that field's
// metadata kind.
func (s *Static) structMetadata(def *hirtype.StructDef) MetadataKind {
	if len(def.Fields) == 0 {
		return MetaZero
	}
	return s.MetadataType(def.Fields[len(def.Fields)-1].Type)
}
