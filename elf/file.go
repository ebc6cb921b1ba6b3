package elf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Resources:
// https://refspecs.linuxfoundation.org/

// File is the decoded view of one elf object: its file header plus the
// full section table in table order.
type File struct {
	FileHeader
	Sections []Section
}

func (file *File) GetSection(name string) (*Section, bool) {
	for idx := range file.Sections {
		if file.Sections[idx].Name == name {
			return &file.Sections[idx], true
		}
	}

	return nil, false
}

// Parse decodes the file header followed by the section table.  The source
// must be positioned at offset 0 and is exclusively owned by the parser for
// the duration of the call.
func Parse(src io.ReadSeeker) (*File, error) {
	header, err := ParseHeader(src)
	if err != nil {
		return nil, err
	}

	sections, err := ParseSections(src, header)
	if err != nil {
		return nil, err
	}

	return &File{
		FileHeader: *header,
		Sections:   sections,
	}, nil
}

// ParseHeader decodes the elf file header from the start of the source.
// The source's position advances sequentially; no seeking is performed.
//
// A magic mismatch fails with ErrNotElf before anything past the
// identifier is read.  Anything other than a 64-bit little-endian object
// is rejected.  Short reads wrap the underlying io error.
func ParseHeader(src io.Reader) (*FileHeader, error) {
	header := &FileHeader{}

	// NOTE: the identifier (e_ident) has no endian-ness.  It must be parsed
	// first to determine how to decode the rest of the header.
	_, err := io.ReadFull(src, header.Identifier[:])
	if err != nil {
		return nil, fmt.Errorf("failed to read identifier: %w", err)
	}

	if !bytes.Equal(header.Magic(), IdentifierMagic) {
		return nil, ErrNotElf
	}

	// EI_CLASS selects the field-width strategy for the remaining 8-byte
	// fields.  Only the 64-bit layout is implemented.
	if class := header.Class(); class != Class64 {
		return nil, fmt.Errorf("unsupported elf class: %s", class)
	}

	encoding := header.DataEncoding()
	if encoding != DataEncodingTwosComplementLittleEndian {
		return nil, fmt.Errorf("unsupported data encoding: %s", encoding)
	}

	content := make([]byte, Elf64HeaderSize-IdentifierSize)
	_, err = io.ReadFull(src, content)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	header.FileType = FileType(DecodeU16(content[0:2]))
	header.MachineArchitecture = MachineArchitecture(DecodeU16(content[2:4]))
	header.FormatVersion = DecodeU32(content[4:8])
	header.EntryPointAddress = DecodeU64(content[8:16])
	header.ProgramHeaderOffset = DecodeU64(content[16:24])
	header.SectionHeaderOffset = DecodeU64(content[24:32])
	header.ArchitectureFlags = DecodeU32(content[32:36])
	header.ElfHeaderSize = DecodeU16(content[36:38])
	header.ProgramHeaderEntrySize = DecodeU16(content[38:40])
	header.NumProgramHeaderEntries = DecodeU16(content[40:42])
	header.SectionHeaderEntrySize = DecodeU16(content[42:44])
	header.NumSectionHeaderEntries = DecodeU16(content[44:46])
	header.SectionStringTableIndex = SectionIndex(DecodeU16(content[46:48]))

	return header, nil
}

// ParseSections decodes the section table located by the file header, reads
// each section's payload, and resolves every section's name against the
// section name table.
//
// On success the returned slice has exactly NumSectionHeaderEntries
// elements in table order.  Any failure aborts the whole operation with no
// partial results.
func ParseSections(
	src io.ReadSeeker,
	header *FileHeader,
) (
	[]Section,
	error,
) {
	numEntries := int(header.NumSectionHeaderEntries)
	sections := make([]Section, 0, numEntries)
	for idx := 0; idx < numEntries; idx++ {
		position := header.SectionHeaderOffset +
			uint64(idx)*uint64(header.SectionHeaderEntrySize)

		entry, err := parseSectionHeaderEntry(src, position)
		if err != nil {
			return nil, fmt.Errorf("failed to parse section header %d: %w", idx, err)
		}

		sections = append(
			sections,
			Section{
				SectionHeaderEntry: entry,
			})
	}

	for idx := range sections {
		err := readSectionData(src, idx, &sections[idx])
		if err != nil {
			return nil, err
		}
	}

	err := resolveSectionNames(header, sections)
	if err != nil {
		return nil, err
	}

	return sections, nil
}

func parseSectionHeaderEntry(
	src io.ReadSeeker,
	position uint64,
) (
	SectionHeaderEntry,
	error,
) {
	entry := SectionHeaderEntry{
		SourcePosition: position,
	}

	_, err := src.Seek(int64(position), io.SeekStart)
	if err != nil {
		return entry, fmt.Errorf("failed to seek to %d: %w", position, err)
	}

	content := make([]byte, Elf64SectionHeaderEntrySize)
	_, err = io.ReadFull(src, content)
	if err != nil {
		return entry, fmt.Errorf("failed to read entry: %w", err)
	}

	entry.NameOffset = DecodeU32(content[0:4])
	entry.SectionType = SectionType(DecodeU32(content[4:8]))
	entry.SectionFlags = SectionFlags(DecodeU64(content[8:16]))
	entry.VirtualAddress = DecodeU64(content[16:24])
	entry.Offset = DecodeU64(content[24:32])
	entry.Size = DecodeU64(content[32:40])
	entry.Link = DecodeU32(content[40:44])
	entry.Info = DecodeU32(content[44:48])
	entry.AddressAlignment = DecodeU64(content[48:56])
	entry.EntrySize = DecodeU64(content[56:64])

	return entry, nil
}

func readSectionData(src io.ReadSeeker, idx int, section *Section) error {
	if section.SectionType == SectionTypeNoSpace {
		// The declared size is memory footprint only.  The section occupies
		// no file space.
		return nil
	}

	_, err := src.Seek(int64(section.Offset), io.SeekStart)
	if err != nil {
		return fmt.Errorf("failed to seek to section %d data: %w", idx, err)
	}

	data := make([]byte, section.Size)
	numRead, err := io.ReadFull(src, data)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf(
			"%w: section %d: read %d of %d bytes",
			ErrTruncatedSection,
			idx,
			numRead,
			section.Size)
	} else if err != nil {
		return fmt.Errorf("failed to read section %d data: %w", idx, err)
	}

	section.Data = data
	return nil
}

func resolveSectionNames(header *FileHeader, sections []Section) error {
	idx := int(header.SectionStringTableIndex)
	if idx >= len(sections) {
		return fmt.Errorf(
			"%w: section name table index %d (table size %d)",
			ErrIndexOutOfRange,
			idx,
			len(sections))
	}

	table := &sections[idx]
	if table.SectionType != SectionTypeStringTable {
		return fmt.Errorf(
			"%w: section name table index %d points to %s",
			ErrInvalidStringTable,
			idx,
			table.SectionType)
	}

	// The name table names itself.  Resolve against a copy so that lookups
	// never alias the table being updated.
	names := make([]byte, len(table.Data))
	copy(names, table.Data)

	for idx := range sections {
		name, err := DecodeString(names, sections[idx].NameOffset)
		if err != nil {
			return fmt.Errorf("failed to resolve section %d name: %w", idx, err)
		}

		sections[idx].Name = name
	}

	return nil
}
