package debugobj

import (
	"debug/elf"
	"fmt"
	"io"
)

// ReadEntry is one parsed layout description recovered from an object
// written by Write.
type ReadEntry struct {
	Name string
	Text string
}

// Read parses an object produced by Write back into its named text
// blocks. It uses the standard library's ELF reader rather than a
// hand-rolled parser, since reading arbitrary ELF is a well-understood
// format-compliance problem or this codebase's writer, not a layout
// concern worth a third-party dependency of its own.
func Read(r io.ReaderAt) ([]ReadEntry, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("debugobj: %w", err)
	}
	defer f.Close()

	sec := f.Section(".typelayout")
	if sec == nil {
		return nil, fmt.Errorf("debugobj: missing .typelayout section")
	}
	data, err := sec.Data()
	if err != nil {
		return nil, fmt.Errorf("debugobj: reading .typelayout: %w", err)
	}

	syms, err := f.Symbols()
	if err != nil {
		return nil, fmt.Errorf("debugobj: reading symbol table: %w", err)
	}

	var entries []ReadEntry
	for _, s := range syms {
		if s.Name == "" {
			continue
		}
		if s.Value+s.Size > uint64(len(data)) {
			continue
		}
		entries = append(entries, ReadEntry{Name: s.Name, Text: string(data[s.Value : s.Value+s.Size])})
	}
	return entries, nil
}
