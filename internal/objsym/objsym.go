// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objsym decodes the FUNC symbols of a compiled ELF object,
// following the layout the linker itself honors: name and binding
// (LOCAL/GLOBAL/WEAK) out of the symbol table section (SHT_SYMTAB).
//
// The format is 32- or 64-bit, little- or big-endian, auto-detected
// from the ELF identification bytes; debug/elf already does that
// detection, so there's no need to hand-decode the byte layout.
package objsym

import (
	"debug/elf"
	"fmt"
	"io"
)

// Binding is a symbol's linker binding, decoded from the high nibble of
// the ELF symbol's info byte.
type Binding int

const (
	Local Binding = iota
	Global
	Weak
)

func (b Binding) String() string {
	switch b {
	case Local:
		return "LOCAL"
	case Global:
		return "GLOBAL"
	case Weak:
		return "WEAK"
	default:
		return "UNKNOWN"
	}
}

// Func is one FUNC-typed symbol read from an object's symbol table.
type Func struct {
	Name    string
	Binding Binding
}

// UnknownBindingError reports a symbol binding debug/elf decoded that
// isn't one of LOCAL, GLOBAL, or WEAK.
type UnknownBindingError struct {
	Path, Name string
	Raw        elf.SymBind
}

func (e *UnknownBindingError) Error() string {
	return fmt.Sprintf("%s: symbol %q has unknown binding %v", e.Path, e.Name, e.Raw)
}

// MalformedObjectError reports an ELF relocatable object whose number of
// SHT_SYMTAB sections isn't exactly one, so there is no single symbol
// table a linker (or this reader) could treat as authoritative.
type MalformedObjectError struct {
	Path  string
	Count int
}

func (e *MalformedObjectError) Error() string {
	return fmt.Sprintf("%s: expected exactly one symbol-table section, found %d", e.Path, e.Count)
}

// Read decodes every FUNC symbol in the ELF relocatable object at path,
// read through r. Only the symbol table section is consumed; any other
// section (and any non-FUNC symbol) is ignored.
func Read(path string, r io.ReaderAt) ([]Func, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("%s: not an ELF object: %w", path, err)
	}
	defer f.Close()

	symtabs := 0
	for _, sec := range f.Sections {
		if sec.Type == elf.SHT_SYMTAB {
			symtabs++
		}
	}
	if symtabs != 1 {
		return nil, &MalformedObjectError{Path: path, Count: symtabs}
	}

	syms, err := f.Symbols()
	if err != nil {
		return nil, fmt.Errorf("%s: reading symbol table: %w", path, err)
	}

	var out []Func
	for _, s := range syms {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC {
			continue
		}

		var binding Binding
		switch b := elf.ST_BIND(s.Info); b {
		case elf.STB_LOCAL:
			binding = Local
		case elf.STB_GLOBAL:
			binding = Global
		case elf.STB_WEAK:
			binding = Weak
		default:
			return nil, &UnknownBindingError{Path: path, Name: s.Name, Raw: b}
		}

		out = append(out, Func{Name: s.Name, Binding: binding})
	}
	return out, nil
}
