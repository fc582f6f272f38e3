package layout

import "github.com/arc-language/typelayout/hirtype"

// UnionRepr returns (building and memoizing if necessary) the layout
// of a union definition: every field at offset 0, sized to the widest
// alternative.
func (o *Oracle) UnionRepr(def *hirtype.UnionDef) (*TypeRepr, bool) {
	if tr, ok := o.Memo.lookupUnion(def); ok {
		return tr, true
	}
	tr, ok := o.buildUnionRepr(def)
	if !ok {
		return nil, false
	}
	return o.Memo.insertUnion(def, tr), true
}

func (o *Oracle) buildUnionRepr(def *hirtype.UnionDef) (*TypeRepr, bool) {
	fields := make([]Field, len(def.Fields))
	var maxSize int64
	var maxAlign uint8 = 1
	for i, f := range def.Fields {
		sz, al, ok := o.SizeAlign(f.Type)
		if !ok {
			return nil, false
		}
		if sz == UnknownSize {
			bug("unsized union field")
		}
		fields[i] = Field{Offset: 0, Type: f.Type}
		if sz > maxSize {
			maxSize = sz
		}
		if al > maxAlign {
			maxAlign = al
		}
	}
	total := alignUp(maxSize, maxAlign)
	return &TypeRepr{Size: total, Align: maxAlign, Fields: fields, Variant: NoneMode{}}, true
}
