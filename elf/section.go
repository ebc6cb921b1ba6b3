package elf

import (
	"bytes"
)

// Section pairs a section header entry with the section's raw payload.
// Data holds exactly Size bytes, except for NoSpace sections whose declared
// size describes memory footprint only and which occupy no file space.
type Section struct {
	SectionHeaderEntry

	// Resolved from the section name table.  Empty when NameOffset points
	// directly at a terminator.
	Name string

	Data []byte
}

// StringAt decodes the null-terminated string at offset in the section's
// payload.  Only meaningful for string table sections.
func (section *Section) StringAt(offset uint32) (string, error) {
	return DecodeString(section.Data, offset)
}

// Strings lists the null-terminated entries of a string table section's
// payload, in payload order.  The leading empty entry shared by all
// non-empty string tables is skipped.
func (section *Section) Strings() []string {
	content := section.Data
	if len(content) > 0 && content[0] == 0 {
		content = content[1:]
	}

	result := []string{}
	for len(content) > 0 {
		end := bytes.IndexByte(content, 0)
		if end == -1 {
			result = append(result, string(content))
			break
		}

		result = append(result, string(content[:end]))
		content = content[end+1:]
	}

	return result
}

// NumStrings counts the null-terminated entries of a string table section's
// payload, excluding the leading empty entry.
func (section *Section) NumStrings() int {
	if len(section.Data) == 0 {
		return 0
	}

	count := 0
	for _, b := range section.Data[1:] {
		if b == 0 {
			count += 1
		}
	}
	return count
}
