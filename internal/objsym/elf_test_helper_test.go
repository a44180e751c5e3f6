// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objsym

import (
	"bytes"
	"encoding/binary"
)

// symSpec describes one ELF64 symbol table entry to synthesize for tests.
type symSpec struct {
	name    string
	bind    uint8 // ELF STB_* value
	typ     uint8 // ELF STT_* value
	section uint16
}

// buildELF64 synthesizes a minimal little-endian ELF64 relocatable object
// containing exactly the symbols described by specs, laid out the way
// gas/gcc would emit one: a null section, a .strtab of symbol names, a
// .symtab referencing it via sh_link, and a .shstrtab naming the
// sections. This is enough for debug/elf.NewFile + (*elf.File).Symbols
// to parse, which is all objsym.Read relies on.
func buildELF64(specs []symSpec) []byte {
	return buildELF64WithSymtabSections(specs, 1)
}

// buildELF64WithSymtabSections is buildELF64 generalized to emit
// symtabSections copies of the SHT_SYMTAB section header, for
// exercising objsym.Read's validation of malformed objects with zero
// or multiple symbol tables.
func buildELF64WithSymtabSections(specs []symSpec, symtabSections int) []byte {
	const (
		ehdrSize = 64
		shdrSize = 64
		symSize  = 24
	)

	// .strtab: symbol name strings, starting with a mandatory NUL.
	strtab := []byte{0}
	nameOff := make([]uint32, len(specs))
	for i, s := range specs {
		nameOff[i] = uint32(len(strtab))
		strtab = append(strtab, []byte(s.name)...)
		strtab = append(strtab, 0)
	}

	// .symtab: the null symbol followed by one entry per spec.
	symtab := make([]byte, symSize) // index 0: STN_UNDEF, all zero
	for i, s := range specs {
		var entry [symSize]byte
		binary.LittleEndian.PutUint32(entry[0:4], nameOff[i])
		entry[4] = s.bind<<4 | (s.typ & 0xf)
		entry[5] = 0
		binary.LittleEndian.PutUint16(entry[6:8], s.section)
		// Value, Size left zero.
		symtab = append(symtab, entry[:]...)
	}

	// .shstrtab: section name strings.
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

	// Section data is laid out right after the ELF header, in order:
	// .strtab, .symtab, .shstrtab, then the section header table.
	strtabOff := uint64(ehdrSize)
	symtabOff := strtabOff + uint64(len(strtab))
	shstrtabOff := symtabOff + uint64(len(symtab))
	shoff := shstrtabOff + uint64(len(shstrtab))

	var buf bytes.Buffer

	// e_ident
	ident := [16]byte{0x7f, 'E', 'L', 'F', 2 /* ELFCLASS64 */, 1 /* ELFDATA2LSB */, 1 /* EV_CURRENT */, 0}
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
		Shnum:     uint16(3 + symtabSections), // NULL, .strtab, .symtab(s), .shstrtab
		Shstrndx:  uint16(2 + symtabSections),
	}
	binary.Write(&buf, binary.LittleEndian, rest)

	buf.Write(strtab)
	buf.Write(symtab)
	buf.Write(shstrtab)

	type shdr struct {
		Name, Type        uint32
		Flags, Addr, Off  uint64
		Size              uint64
		Link, Info        uint32
		Addralign, Entsz  uint64
	}
	writeShdr := func(s shdr) { binary.Write(&buf, binary.LittleEndian, s) }

	writeShdr(shdr{}) // NULL section
	writeShdr(shdr{Name: nameStrtab, Type: 3 /* SHT_STRTAB */, Off: strtabOff, Size: uint64(len(strtab)), Addralign: 1})
	for i := 0; i < symtabSections; i++ {
		writeShdr(shdr{Name: nameSymtab, Type: 2 /* SHT_SYMTAB */, Off: symtabOff, Size: uint64(len(symtab)), Link: 1, Info: 1, Addralign: 8, Entsz: symSize})
	}
	writeShdr(shdr{Name: nameShstrtab, Type: 3 /* SHT_STRTAB */, Off: shstrtabOff, Size: uint64(len(shstrtab)), Addralign: 1})

	return buf.Bytes()
}
