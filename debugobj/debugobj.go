// Package debugobj serializes TypeRepr values into an ELF object file
// as a symbol table over a synthetic .typelayout section, so external
// tooling (linkers, debuggers, a future codegen backend) can recover a
// type's layout without re-running the oracle. It repurposes the
// ELF writer in package format/elf for layout introspection rather than
// compiled machine code, since codegen itself is out of scope here.
package debugobj

import (
	"fmt"
	"io"
	"strings"

	"github.com/arc-language/typelayout/format/elf"
	"github.com/arc-language/typelayout/layout"
)

// Entry names a TypeRepr for serialization.
type Entry struct {
	Name string
	Repr *layout.TypeRepr
}

// Write emits entries as an ELF relocatable object. Each entry becomes
// an STT_OBJECT symbol in a .typelayout section; the symbol's value is
// the byte offset, within that section, of the entry's encoded
// description, and its size is the length of that encoding.
func Write(w io.Writer, entries []Entry) error {
	f := elf.NewFile()
	sec := f.AddSection(".typelayout", elf.SHT_PROGBITS, elf.SHF_ALLOC, nil)

	var content []byte
	for _, e := range entries {
		block := encode(e.Repr)
		offset := uint64(len(content))
		content = append(content, block...)
		f.AddSymbol(e.Name, elf.MakeSymbolInfo(elf.STB_GLOBAL, elf.STT_OBJECT), sec, offset, uint64(len(block)))
	}
	sec.Content = content

	return f.WriteTo(w)
}

// encode renders a TypeRepr as a small human-readable block: one
// summary line, then one line per field. This is what Read parses back.
func encode(repr *layout.TypeRepr) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "size=%d align=%d packed=%t variant=%s\n",
		repr.Size, repr.Align, repr.Packed, repr.Variant.Kind())
	for i, f := range repr.Fields {
		fmt.Fprintf(&b, "field[%d] offset=%d type=%s\n", i, f.Offset, f.Type.String())
	}
	return []byte(b.String())
}
