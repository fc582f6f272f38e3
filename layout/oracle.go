package layout

import (
	"github.com/arc-language/typelayout/hirtype"
	"github.com/arc-language/typelayout/resolve"
	"github.com/arc-language/typelayout/target"
)

// Oracle answers size_align queries (§4.3) and owns the memo table
// composite layouts are built into. One Oracle is typically built per
// compilation, wrapping the process-wide target spec and whatever
// trait resolver the caller has on hand.
type Oracle struct {
	Spec     *target.Spec
	Resolver resolve.Resolver
	Memo     *Memo
}

// New builds an Oracle over spec and resolver, with a fresh memo.
func New(spec *target.Spec, resolver resolve.Resolver) *Oracle {
	return &Oracle{Spec: spec, Resolver: resolver, Memo: NewMemo()}
}

// SizeAlign returns the size and alignment of ty, or ok=false if ty
// depends on an unresolved generic parameter or opaque projection.
// size is UnknownSize for types that need metadata to be sized.
func (o *Oracle) SizeAlign(ty hirtype.Ref) (size int64, align uint8, ok bool) {
	switch t := ty.(type) {
	case hirtype.Primitive:
		return o.primitiveSizeAlign(t.Core)

	case hirtype.Borrow:
		return o.refSizeAlign(t.Inner)

	case hirtype.Pointer:
		return o.refSizeAlign(t.Inner)

	case hirtype.Function:
		ptrBytes := int64(o.Spec.Arch.PointerBits / 8)
		return ptrBytes, o.Spec.Arch.Alignments.Ptr, true

	case hirtype.Array:
		return o.arraySizeAlign(t)

	case hirtype.Slice:
		_, elemAlign, ok := o.SizeAlign(t.Elem)
		if !ok {
			return 0, 0, false
		}
		return UnknownSize, elemAlign, true

	case hirtype.Tuple:
		repr, ok := o.tupleRepr(t)
		if !ok {
			return 0, 0, false
		}
		return repr.Size, repr.Align, true

	case hirtype.Path:
		return o.pathSizeAlign(t)

	case hirtype.TraitObject:
		return UnknownSize, o.Spec.Arch.Alignments.Ptr, true

	case hirtype.Generic:
		return 0, 0, false

	case hirtype.Diverge:
		// The never type occupies no storage; treated like unit.
		return 0, 1, true

	case hirtype.Closure:
		bug("closure reached the layout oracle; closures must be lowered away first")

	case hirtype.Infer, hirtype.ErasedType:
		bug("sizeof of an inference placeholder or erased type")
	}
	return 0, 0, false
}

func (o *Oracle) primitiveSizeAlign(core hirtype.CoreType) (int64, uint8, bool) {
	a := o.Spec.Arch
	ptrBytes := uint8(a.PointerBits / 8)
	switch core {
	case hirtype.Bool, hirtype.U8, hirtype.I8:
		return 1, 1, true
	case hirtype.U16, hirtype.I16:
		return 2, a.Alignments.U16, true
	case hirtype.U32, hirtype.I32, hirtype.Char:
		return 4, a.Alignments.U32, true
	case hirtype.U64, hirtype.I64:
		return 8, a.Alignments.U64, true
	case hirtype.U128, hirtype.I128:
		align := a.Alignments.U128
		if o.Spec.BackendC.EmulateI128 {
			align = a.Alignments.U64
		}
		return 16, align, true
	case hirtype.Usize, hirtype.Isize:
		return int64(ptrBytes), ptrBytes, true
	case hirtype.F32:
		return 4, a.Alignments.F32, true
	case hirtype.F64:
		return 8, a.Alignments.F64, true
	case hirtype.Str:
		return UnknownSize, 1, true
	}
	bug("unknown primitive core type")
	return 0, 0, false
}

// refSizeAlign handles both &T and *T: one pointer wide unless the
// referent carries fat-pointer metadata, in which case it's two.
func (o *Oracle) refSizeAlign(inner hirtype.Ref) (int64, uint8, bool) {
	meta := o.Resolver.MetadataType(inner)
	if meta == resolve.MetaUnknown {
		return 0, 0, false
	}
	ptrBytes := int64(o.Spec.Arch.PointerBits / 8)
	align := o.Spec.Arch.Alignments.Ptr
	if meta == resolve.MetaSlice || meta == resolve.MetaTraitObject {
		return ptrBytes * 2, align, true
	}
	return ptrBytes, align, true
}

func (o *Oracle) arraySizeAlign(t hirtype.Array) (int64, uint8, bool) {
	elemSize, elemAlign, ok := o.SizeAlign(t.Elem)
	if !ok {
		return 0, 0, false
	}
	if elemSize == UnknownSize {
		bug("array element type is unsized")
	}
	if t.Len == 0 {
		align := elemAlign
		if align == 0 {
			align = 1
		}
		return 0, align, true
	}
	total := elemSize * t.Len
	if elemSize != 0 && total/t.Len != elemSize {
		bug("overflow computing array size")
	}
	return total, elemAlign, true
}

func (o *Oracle) pathSizeAlign(t hirtype.Path) (int64, uint8, bool) {
	switch b := t.Binding.(type) {
	case hirtype.StructBinding:
		repr, ok := o.StructRepr(b.Def)
		if !ok {
			return 0, 0, false
		}
		return repr.Size, repr.Align, true
	case hirtype.EnumBinding:
		repr, ok := o.EnumRepr(b.Def)
		if !ok {
			return 0, 0, false
		}
		return repr.Size, repr.Align, true
	case hirtype.UnionBinding:
		repr, ok := o.UnionRepr(b.Def)
		if !ok {
			return 0, 0, false
		}
		return repr.Size, repr.Align, true
	case hirtype.ExternTypeBinding:
		return UnknownSize, 0, true
	case hirtype.OpaqueBinding:
		expanded, ok := o.Resolver.ExpandOpaque(b.Name)
		if !ok {
			return 0, 0, false
		}
		return o.SizeAlign(expanded)
	}
	return 0, 0, false
}
