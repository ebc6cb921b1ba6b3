package elf

import (
	"errors"
)

// Decode failure kinds.  Parse errors wrap one of these sentinels (plus
// positional context) so that callers can classify failures with errors.Is.
// I/O failures have no sentinel of their own; they wrap the underlying
// read/seek error instead.
var (
	// The source does not begin with the 4 elf magic bytes.
	ErrNotElf = errors.New("not an elf file")

	// The section designated by the file header's section name table index
	// is not a string table section.
	ErrInvalidStringTable = errors.New("not a string table section")

	// The section name table index points past the end of the section table.
	ErrIndexOutOfRange = errors.New("section index out of bound")

	// A section's payload ended before its declared size.
	ErrTruncatedSection = errors.New("truncated section")

	// A string offset points past the end of the string table, or the string
	// has no null terminator before the table's end.
	ErrInvalidString = errors.New("invalid string table entry")
)
