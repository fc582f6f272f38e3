package layout

import (
	"github.com/arc-language/typelayout/hirtype"
	"github.com/arc-language/typelayout/int128"
)

// EnumRepr returns (building and memoizing if necessary) the layout of
// an enum definition, dispatching between the value-enum and
// data-enum algorithms of §4.4.
func (o *Oracle) EnumRepr(def *hirtype.EnumDef) (*TypeRepr, bool) {
	if tr, ok := o.Memo.lookupEnum(def); ok {
		return tr, true
	}
	tr, ok := o.buildEnumRepr(def)
	if !ok {
		return nil, false
	}
	return o.Memo.insertEnum(def, tr), true
}

func (o *Oracle) buildEnumRepr(def *hirtype.EnumDef) (*TypeRepr, bool) {
	if def.Kind == hirtype.EnumKindValue {
		return o.buildValueEnumRepr(def)
	}
	return o.buildDataEnumRepr(def)
}

// buildValueEnumRepr handles C-like enums: all variants unit, each
// with an explicit discriminant. The discriminant's integer type comes
// from the declared representation.
func (o *Oracle) buildValueEnumRepr(def *hirtype.EnumDef) (*TypeRepr, bool) {
	core := o.discriminantCore(def)
	size, align, ok := o.primitiveSizeAlign(core)
	if !ok {
		return nil, false
	}
	values := make([]int128.S128, len(def.Variants))
	for i, v := range def.Variants {
		values[i] = int128.FromInt64(v.Discriminant)
	}
	fields := []Field{{Offset: 0, Type: hirtype.Primitive{Core: core}}}
	mode := ValuesMode{TagPath: FieldPath{TopIndex: 0, LeafSize: size}, Values: values}
	return &TypeRepr{Size: size, Align: align, Fields: fields, Variant: mode}, true
}

func (o *Oracle) discriminantCore(def *hirtype.EnumDef) hirtype.CoreType {
	switch def.Repr {
	case hirtype.EnumReprC:
		return hirtype.U32
	case hirtype.EnumReprU8:
		return hirtype.U8
	case hirtype.EnumReprU16:
		return hirtype.U16
	case hirtype.EnumReprU32:
		return hirtype.U32
	case hirtype.EnumReprU64:
		return hirtype.U64
	case hirtype.EnumReprUsize:
		return hirtype.Usize
	default: // EnumReprRust: smallest signed integer that fits every discriminant.
		var lo, hi int64
		for _, v := range def.Variants {
			if v.Discriminant < lo {
				lo = v.Discriminant
			}
			if v.Discriminant > hi {
				hi = v.Discriminant
			}
		}
		switch {
		case lo >= -128 && hi <= 127:
			return hirtype.I8
		case lo >= -32768 && hi <= 32767:
			return hirtype.I16
		case lo >= -2147483648 && hi <= 2147483647:
			return hirtype.I32
		default:
			return hirtype.I64
		}
	}
}

// buildDataEnumRepr handles enums whose variants carry payloads, in
// the priority order from §4.4: non-zero optimisation, then niche
// (Linear) optimisation, falling back to an explicit tag.
func (o *Oracle) buildDataEnumRepr(def *hirtype.EnumDef) (*TypeRepr, bool) {
	variantReprs := make([]*TypeRepr, len(def.Variants))
	for i, v := range def.Variants {
		repr, ok := o.buildFieldsRepr(v.Payload, hirtype.ReprRust)
		if !ok {
			return nil, false
		}
		variantReprs[i] = repr
	}

	var maxSize int64
	var maxAlign uint8 = 1
	for _, r := range variantReprs {
		if r.Size > maxSize {
			maxSize = r.Size
		}
		if r.Align > maxAlign {
			maxAlign = r.Align
		}
	}

	if mode, ok := o.tryNonZero(def.Variants); ok {
		return &TypeRepr{Size: maxSize, Align: maxAlign, Fields: variantFields(def.Variants), Variant: mode}, true
	}

	if mode, host, ok := o.tryLinear(def.Variants, variantReprs); ok {
		return &TypeRepr{Size: host.Size, Align: host.Align, Fields: variantFields(def.Variants), Variant: mode}, true
	}

	mode, tagField, total, align := o.explicitTag(len(def.Variants), maxSize, maxAlign)
	fields := append(variantFields(def.Variants), tagField)
	return &TypeRepr{Size: total, Align: align, Fields: fields, Variant: mode}, true
}

// variantFields records each variant's payload as a synthetic tuple
// field at offset 0 (variants overlay one another); the walker
// descends into it via the ordinary tuple layout.
func variantFields(variants []hirtype.EnumVariant) []Field {
	fields := make([]Field, len(variants))
	for i, v := range variants {
		fields[i] = Field{Offset: 0, Type: hirtype.Tuple{Elems: v.Payload}}
	}
	return fields
}

// tryNonZero implements §4.4(a): exactly two variants, one with a unit
// payload, the other containing a field whose zero bit pattern is
// never legal.
func (o *Oracle) tryNonZero(variants []hirtype.EnumVariant) (VariantMode, bool) {
	if len(variants) != 2 {
		return nil, false
	}
	unitIdx, otherIdx := -1, -1
	for i, v := range variants {
		if len(v.Payload) == 0 {
			unitIdx = i
		} else {
			otherIdx = i
		}
	}
	if unitIdx == -1 || otherIdx == -1 {
		return nil, false
	}
	// NonZero is single-field, two-variant only: a multi-field payload
	// is a composite type the reference compiler's get_nonzero_path
	// never descends into (it switches on the one field's type and
	// falls to default: break for anything else), so it always falls
	// through to the tag-based encoding instead.
	if len(variants[otherIdx].Payload) != 1 {
		return nil, false
	}
	sub, leafSize, ok := o.findNonZeroField(variants[otherIdx].Payload[0])
	if !ok {
		return nil, false
	}
	path := FieldPath{TopIndex: otherIdx, Sub: sub, LeafSize: leafSize}
	return NonZeroMode{FieldPath: path, ZeroVariant: unitIdx}, true
}

// findNonZeroField tests the variant's sole payload field for a
// never-zero bit pattern.
func (o *Oracle) findNonZeroField(ty hirtype.Ref) (sub []int, leafSize int64, ok bool) {
	leaf, inner, found := nonZeroLeafType(ty)
	if !found {
		return nil, 0, false
	}
	size, _, sok := o.SizeAlign(leaf)
	if !sok || size == UnknownSize {
		return nil, 0, false
	}
	full := append([]int{0}, inner...)
	return full, size, true
}

// nonZeroLeafType recognises the built-in never-zero shapes: non-null
// references, function pointers, and structs explicitly marked as
// non-zero-optimisable (recursing one field deep into plain wrapper
// structs, the way a `struct Wrapper(NonZero<T>)` is seen through).
func nonZeroLeafType(ty hirtype.Ref) (leaf hirtype.Ref, sub []int, ok bool) {
	switch t := ty.(type) {
	case hirtype.Borrow:
		return ty, nil, true
	case hirtype.Function:
		return ty, nil, true
	case hirtype.Path:
		sb, isStruct := t.Binding.(hirtype.StructBinding)
		if !isStruct {
			return nil, nil, false
		}
		if sb.Def.NonZeroMarked {
			return ty, nil, true
		}
		for i, f := range sb.Def.Fields {
			if innerLeaf, innerSub, found := nonZeroLeafType(f.Type); found {
				return innerLeaf, append([]int{i}, innerSub...), true
			}
		}
	}
	return nil, nil, false
}

// tryLinear implements §4.4(b): find the single largest variant (ties
// disqualify), then search it for a niche at an offset the other
// variants' bytes can't reach.
func (o *Oracle) tryLinear(variants []hirtype.EnumVariant, variantReprs []*TypeRepr) (VariantMode, *TypeRepr, bool) {
	sizes := make([]int64, len(variantReprs))
	for i, r := range variantReprs {
		sizes[i] = r.Size
	}
	idx, secondLargest, ok := largestVariantIndex(sizes)
	if !ok {
		return nil, nil, false
	}
	cand, ok := o.findNiche(variants[idx].Payload, secondLargest)
	if !ok {
		return nil, nil, false
	}
	numVariants := uint64(len(variants))
	if cand.capacity < numVariants {
		return nil, nil, false
	}
	path := FieldPath{TopIndex: idx, Sub: cand.sub, LeafSize: cand.leafSize}
	return LinearMode{TagPath: path, Offset: cand.offset, NumVariants: numVariants}, variantReprs[idx], true
}

// largestVariantIndex returns the index of the strictly largest size
// in sizes and the runner-up size, or ok=false if the maximum is tied.
func largestVariantIndex(sizes []int64) (idx int, second int64, ok bool) {
	idx = -1
	var best int64 = -1
	tied := false
	second = 0
	for i, s := range sizes {
		switch {
		case s > best:
			second = best
			best = s
			idx = i
			tied = false
		case s == best:
			tied = true
		case s > second:
			second = s
		}
	}
	if idx == -1 || tied {
		return -1, 0, false
	}
	if second < 0 {
		second = 0
	}
	return idx, second, true
}

type nicheCandidate struct {
	sub      []int
	leafSize int64
	offset   uint64
	capacity uint64
}

// findNiche walks a variant's payload fields, looking for a niche host
// at or past minOffset — the point past which the second-largest
// variant's own bytes can't reach, so reusing bits there can't collide
// with any other variant's data.
func (o *Oracle) findNiche(payload []hirtype.Ref, minOffset int64) (nicheCandidate, bool) {
	var cursor int64
	for i, ty := range payload {
		sz, al, ok := o.SizeAlign(ty)
		if !ok {
			return nicheCandidate{}, false
		}
		if al > 0 {
			cursor = alignUp(cursor, al)
		}
		if cursor >= minOffset {
			if sub, leafSize, offset, capacity, found := o.nicheInField(ty); found {
				return nicheCandidate{
					sub:      append([]int{i}, sub...),
					leafSize: leafSize,
					offset:   offset,
					capacity: capacity,
				}, true
			}
		}
		cursor += sz
	}
	return nicheCandidate{}, false
}

// nicheInField recognises the built-in niche sources: an inner enum
// that already reserved a Linear tag with spare values, a bounded
// integer wrapper whose declared max leaves values unused, or a char
// (whose legal range stops at 0x10FFFF, leaving the rest of its 4
// bytes free).
func (o *Oracle) nicheInField(ty hirtype.Ref) (sub []int, leafSize int64, offset, capacity uint64, ok bool) {
	switch t := ty.(type) {
	case hirtype.Primitive:
		if t.Core == hirtype.Char {
			size, _, sok := o.SizeAlign(ty)
			if !sok {
				return nil, 0, 0, 0, false
			}
			const charLimit = 0x10FFFF
			return nil, size, charLimit + 1, capForHostSize(size) - (charLimit + 1), true
		}
	case hirtype.Path:
		if sb, isStruct := t.Binding.(hirtype.StructBinding); isStruct && sb.Def.BoundedMax != nil && len(sb.Def.Fields) == 1 {
			size, _, sok := o.SizeAlign(sb.Def.Fields[0].Type)
			if !sok {
				return nil, 0, 0, 0, false
			}
			cap := capForHostSize(size)
			used := *sb.Def.BoundedMax + 1
			if used >= cap {
				return nil, 0, 0, 0, false
			}
			return []int{0}, size, used, cap - used, true
		}
		if eb, isEnum := t.Binding.(hirtype.EnumBinding); isEnum {
			repr, rok := o.EnumRepr(eb.Def)
			if !rok {
				return nil, 0, 0, 0, false
			}
			if lm, isLinear := repr.Variant.(LinearMode); isLinear {
				cap := capForHostSize(lm.TagPath.LeafSize)
				used := lm.Offset + lm.NumVariants
				if used >= cap {
					return nil, 0, 0, 0, false
				}
				return append([]int{lm.TagPath.TopIndex}, lm.TagPath.Sub...), lm.TagPath.LeafSize, used, cap - used, true
			}
		}
	}
	return nil, 0, 0, 0, false
}

// capForHostSize is the number of distinct bit patterns a niche host
// field of the given byte width can hold. When the host is 8 bytes
// wide this deliberately returns 2^32, not 2^64: the source treats the
// wider cap as unproven and caps conservatively (§9 open question).
func capForHostSize(size int64) uint64 {
	if size >= 8 {
		return 1 << 32
	}
	if size <= 0 {
		return 0
	}
	return uint64(1) << uint(size*8)
}

// explicitTag implements §4.4(c): append a U8 (or U16, past 255
// variants) tag after the widest variant's payload, padded to the
// tag's own alignment.
func (o *Oracle) explicitTag(numVariants int, maxSize int64, maxAlign uint8) (mode VariantMode, tagField Field, total int64, align uint8) {
	core := hirtype.U8
	if numVariants > 255 {
		core = hirtype.U16
	}
	tagSize, tagAlign, _ := o.primitiveSizeAlign(core)
	tagOffset := alignUp(maxSize, tagAlign)
	finalAlign := maxAlign
	if tagAlign > finalAlign {
		finalAlign = tagAlign
	}
	total = alignUp(tagOffset+tagSize, finalAlign)
	tagField = Field{Offset: tagOffset, Type: hirtype.Primitive{Core: core}}
	path := FieldPath{TopIndex: numVariants, LeafSize: tagSize}
	return ValuesMode{TagPath: path, Values: identityValues(numVariants)}, tagField, total, finalAlign
}

func identityValues(n int) []int128.S128 {
	values := make([]int128.S128, n)
	for i := range values {
		values[i] = int128.FromInt64(int64(i))
	}
	return values
}
