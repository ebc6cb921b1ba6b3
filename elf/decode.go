package elf

import (
	"fmt"
)

// Fixed-width little-endian decoders.  The elf identifier has no
// endian-ness, and everything after it in a well-formed object of
// DataEncodingTwosComplementLittleEndian is little-endian, so these are
// hard-wired rather than parameterized on a byte order.
//
// The input slice must hold at least the decoded width.  Shorter input
// panics.

func DecodeU16(content []byte) uint16 {
	_ = content[1]
	return uint16(content[0]) | uint16(content[1])<<8
}

func DecodeU32(content []byte) uint32 {
	_ = content[3]
	return uint32(content[0]) |
		uint32(content[1])<<8 |
		uint32(content[2])<<16 |
		uint32(content[3])<<24
}

func DecodeU64(content []byte) uint64 {
	_ = content[7]
	result := uint64(0)
	for idx, value := range content[:8] {
		result |= uint64(value) << (8 * idx)
	}
	return result
}

// DecodeString decodes the null-terminated string beginning at start.  The
// trailing null byte is excluded from the result.
//
// A start past the end of content fails with ErrInvalidString.  A string
// with no null terminator before the end of content also fails with
// ErrInvalidString, but still returns the partial string (everything from
// start to the end of content) for diagnostics.
func DecodeString(content []byte, start uint32) (string, error) {
	if uint64(start) > uint64(len(content)) {
		return "", fmt.Errorf(
			"%w: offset %d out of bound (%d)",
			ErrInvalidString,
			start,
			len(content))
	}

	chunk := content[start:]
	for idx, char := range chunk {
		if char == 0 {
			return string(chunk[:idx]), nil
		}
	}

	return string(chunk), fmt.Errorf(
		"%w: string at offset %d not terminated",
		ErrInvalidString,
		start)
}
