package main

import (
	"fmt"

	"github.com/arc-language/typelayout/hirtype"
)

// catalog resolves the small set of type names this CLI understands
// into a hirtype.Ref. Building real types needs a parser and a
// resolved HIR, both out of scope; this lets the demo commands
// exercise the oracle without one.
func catalog(name string) (hirtype.Ref, error) {
	prim := map[string]hirtype.CoreType{
		"bool": hirtype.Bool, "u8": hirtype.U8, "i8": hirtype.I8,
		"u16": hirtype.U16, "i16": hirtype.I16, "u32": hirtype.U32, "i32": hirtype.I32,
		"char": hirtype.Char, "u64": hirtype.U64, "i64": hirtype.I64,
		"u128": hirtype.U128, "i128": hirtype.I128,
		"usize": hirtype.Usize, "isize": hirtype.Isize,
		"f32": hirtype.F32, "f64": hirtype.F64, "str": hirtype.Str,
	}
	if core, ok := prim[name]; ok {
		return hirtype.Primitive{Core: core}, nil
	}
	switch name {
	case "&str":
		return hirtype.Borrow{Inner: hirtype.Primitive{Core: hirtype.Str}}, nil
	case "&u32":
		return hirtype.Borrow{Inner: hirtype.Primitive{Core: hirtype.U32}}, nil
	case "[u32;3]":
		return hirtype.Array{Elem: hirtype.Primitive{Core: hirtype.U32}, Len: 3}, nil
	case "[u8;0]":
		return hirtype.Array{Elem: hirtype.Primitive{Core: hirtype.U8}, Len: 0}, nil
	case "option<&u32>":
		return hirtype.Path{Binding: hirtype.EnumBinding{Def: &hirtype.EnumDef{
			Name: "Option", Kind: hirtype.EnumKindData,
			Variants: []hirtype.EnumVariant{
				{Name: "None"},
				{Name: "Some", Payload: []hirtype.Ref{hirtype.Borrow{Inner: hirtype.Primitive{Core: hirtype.U32}}}},
			},
		}}}, nil
	}
	return nil, fmt.Errorf("unknown catalog type %q", name)
}
