package layout

import "github.com/arc-language/typelayout/hirtype"

// InnerType implements the `inner_type` half of §4.6: walk idx then
// sub, descending through nested tuples/structs/enums/unions, and
// return the type at the end of the chain.
func (o *Oracle) InnerType(repr *TypeRepr, idx int, sub []int) (hirtype.Ref, bool) {
	if idx < 0 || idx >= len(repr.Fields) {
		return nil, false
	}
	ty := repr.Fields[idx].Type
	for _, s := range sub {
		subRepr, ok := o.subRepr(ty)
		if !ok || s < 0 || s >= len(subRepr.Fields) {
			return nil, false
		}
		ty = subRepr.Fields[s].Type
	}
	return ty, true
}

// Offset implements the `offset` half of §4.6: accumulate byte offsets
// descending path from repr, fetching each sub-repr from the memo as
// it goes.
func (o *Oracle) Offset(repr *TypeRepr, path FieldPath) (int64, bool) {
	if path.TopIndex < 0 || path.TopIndex >= len(repr.Fields) {
		return 0, false
	}
	total := repr.Fields[path.TopIndex].Offset
	ty := repr.Fields[path.TopIndex].Type
	for _, s := range path.Sub {
		subRepr, ok := o.subRepr(ty)
		if !ok || s < 0 || s >= len(subRepr.Fields) {
			return 0, false
		}
		total += subRepr.Fields[s].Offset
		ty = subRepr.Fields[s].Type
	}
	return total, true
}

func (o *Oracle) subRepr(ty hirtype.Ref) (*TypeRepr, bool) {
	switch t := ty.(type) {
	case hirtype.Tuple:
		return o.tupleRepr(t)
	case hirtype.Path:
		switch b := t.Binding.(type) {
		case hirtype.StructBinding:
			return o.StructRepr(b.Def)
		case hirtype.EnumBinding:
			return o.EnumRepr(b.Def)
		case hirtype.UnionBinding:
			return o.UnionRepr(b.Def)
		}
	}
	return nil, false
}
