package layout

import "github.com/arc-language/typelayout/hirtype"

// StructRepr returns (building and memoizing if necessary) the layout
// of a struct definition.
func (o *Oracle) StructRepr(def *hirtype.StructDef) (*TypeRepr, bool) {
	if tr, ok := o.Memo.lookupStruct(def); ok {
		return tr, true
	}
	tr, ok := o.buildStructRepr(def)
	if !ok {
		return nil, false
	}
	return o.Memo.insertStruct(def, tr), true
}

func (o *Oracle) buildStructRepr(def *hirtype.StructDef) (*TypeRepr, bool) {
	fieldTypes := make([]hirtype.Ref, len(def.Fields))
	for i, f := range def.Fields {
		fieldTypes[i] = f.Type
	}
	return o.buildFieldsRepr(fieldTypes, def.Repr)
}

// tupleRepr treats a tuple as an anonymous Rust-repr struct. Tuples
// have no declaration site to key a pointer off of, so they're
// memoized by their (deterministic) string form instead.
func (o *Oracle) tupleRepr(t hirtype.Tuple) (*TypeRepr, bool) {
	key := t.String()
	if tr, ok := o.Memo.lookupTuple(key); ok {
		return tr, true
	}
	tr, ok := o.buildFieldsRepr(t.Elems, hirtype.ReprRust)
	if !ok {
		return nil, false
	}
	return o.Memo.insertTuple(key, tr), true
}

// buildFieldsRepr is the §4.4 struct/tuple algorithm, shared by named
// structs, tuples, and the per-variant payload product inside data
// enums. Field order is preserved as given — sorting by descending
// (align, size) is permitted by the design but not required, and this
// implementation follows the reference compiler in leaving fields
// unsorted.
func (o *Oracle) buildFieldsRepr(fieldTypes []hirtype.Ref, repr hirtype.StructRepr) (*TypeRepr, bool) {
	packed := repr == hirtype.ReprPacked

	type sizedField struct {
		ty    hirtype.Ref
		size  int64
		align uint8
	}
	sized := make([]sizedField, len(fieldTypes))
	for i, ty := range fieldTypes {
		sz, al, ok := o.SizeAlign(ty)
		if !ok {
			return nil, false
		}
		sized[i] = sizedField{ty, sz, al}
	}

	fields := make([]Field, len(sized))
	var cursor int64
	var maxAlign uint8 = 1
	unsized := false

	for i, f := range sized {
		if f.size == UnknownSize {
			if i != len(sized)-1 {
				bug("unsized field not in trailing position")
			}
			unsized = true
		}
		align := f.align
		if packed {
			align = 1
		} else if align > maxAlign {
			maxAlign = align
		}
		if !packed && align > 0 {
			cursor = alignUp(cursor, align)
		}
		fields[i] = Field{Offset: cursor, Type: f.ty}
		if f.size != UnknownSize {
			cursor += f.size
		}
	}

	var total int64
	var finalAlign uint8
	if packed {
		finalAlign = 1
		total = cursor
	} else {
		finalAlign = maxAlign
		total = alignUp(cursor, finalAlign)
	}
	if unsized {
		total = UnknownSize
	}

	return &TypeRepr{Size: total, Align: finalAlign, Packed: packed, Fields: fields, Variant: NoneMode{}}, true
}
