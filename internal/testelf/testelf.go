// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testelf synthesizes minimal ELF64 relocatable objects for use
// as test fixtures, since the Go toolchain isn't available to produce
// real compiled objects in this repository's test runs.
package testelf

import (
	"bytes"
	"encoding/binary"
)

// SymSpec describes one ELF64 symbol table entry to synthesize.
type SymSpec struct {
	Name    string
	Bind    uint8 // ELF STB_* value
	Typ     uint8 // ELF STT_* value
	Section uint16
}

// Build synthesizes a minimal little-endian ELF64 relocatable object
// containing exactly the symbols described by specs, laid out the way
// gas/gcc would emit one: a null section, a .strtab of symbol names, a
// .symtab referencing it via sh_link, and a .shstrtab naming the
// sections. This is enough for debug/elf.NewFile + (*elf.File).Symbols
// to parse.
func Build(specs []SymSpec) []byte {
	return BuildWithSymtabSections(specs, 1)
}

// BuildWithSymtabSections is Build generalized to emit symtabSections
// copies of the SHT_SYMTAB section header (all pointing at the same
// symbol table bytes), so malformed objects with zero or multiple
// symbol tables can be synthesized for tests.
func BuildWithSymtabSections(specs []SymSpec, symtabSections int) []byte {
	const (
		ehdrSize = 64
		shdrSize = 64
		symSize  = 24
	)

	strtab := []byte{0}
	nameOff := make([]uint32, len(specs))
	for i, s := range specs {
		nameOff[i] = uint32(len(strtab))
		strtab = append(strtab, []byte(s.Name)...)
		strtab = append(strtab, 0)
	}

	symtab := make([]byte, symSize) // index 0: STN_UNDEF
	for i, s := range specs {
		var entry [symSize]byte
		binary.LittleEndian.PutUint32(entry[0:4], nameOff[i])
		entry[4] = s.Bind<<4 | (s.Typ & 0xf)
		binary.LittleEndian.PutUint16(entry[6:8], s.Section)
		symtab = append(symtab, entry[:]...)
	}

	shstrtab := []byte{0}
	offFor := func(name string) uint32 {
		off := uint32(len(shstrtab))
		shstrtab = append(shstrtab, []byte(name)...)
		shstrtab = append(shstrtab, 0)
		return off
	}
	nameStrtab := offFor(".strtab")
	nameSymtab := offFor(".symtab")
	nameShstrtab := offFor(".shstrtab")

	strtabOff := uint64(ehdrSize)
	symtabOff := strtabOff + uint64(len(strtab))
	shstrtabOff := symtabOff + uint64(len(symtab))
	shoff := shstrtabOff + uint64(len(shstrtab))

	var buf bytes.Buffer

	ident := [16]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}
	buf.Write(ident[:])

	type ehdrRest struct {
		Type, Machine       uint16
		Version             uint32
		Entry, Phoff, Shoff uint64
		Flags               uint32
		Ehsize, Phentsize   uint16
		Phnum               uint16
		Shentsize           uint16
		Shnum               uint16
		Shstrndx            uint16
	}
	rest := ehdrRest{
		Type:      1, // ET_REL
		Machine:   62,
		Version:   1,
		Shoff:     shoff,
		Ehsize:    ehdrSize,
		Shentsize: shdrSize,
		Shnum:     uint16(3 + symtabSections),
		Shstrndx:  uint16(2 + symtabSections),
	}
	binary.Write(&buf, binary.LittleEndian, rest)

	buf.Write(strtab)
	buf.Write(symtab)
	buf.Write(shstrtab)

	type shdr struct {
		Name, Type       uint32
		Flags, Addr, Off uint64
		Size             uint64
		Link, Info       uint32
		Addralign, Entsz uint64
	}
	writeShdr := func(s shdr) { binary.Write(&buf, binary.LittleEndian, s) }

	writeShdr(shdr{})
	writeShdr(shdr{Name: nameStrtab, Type: 3, Off: strtabOff, Size: uint64(len(strtab)), Addralign: 1})
	for i := 0; i < symtabSections; i++ {
		writeShdr(shdr{Name: nameSymtab, Type: 2, Off: symtabOff, Size: uint64(len(symtab)), Link: 1, Info: 1, Addralign: 8, Entsz: symSize})
	}
	writeShdr(shdr{Name: nameShstrtab, Type: 3, Off: shstrtabOff, Size: uint64(len(shstrtab)), Addralign: 1})

	return buf.Bytes()
}
