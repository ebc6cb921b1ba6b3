package elf

import (
	"errors"
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type DecodeSuite struct{}

func TestDecode(t *testing.T) {
	suite.RunTests(t, &DecodeSuite{})
}

func (DecodeSuite) TestU16(t *testing.T) {
	expect.Equal(t, uint16(0x0201), DecodeU16([]byte{0x01, 0x02}))
	expect.Equal(t, uint16(0), DecodeU16([]byte{0, 0}))
	expect.Equal(t, uint16(0xffff), DecodeU16([]byte{0xff, 0xff}))
	expect.Equal(t, uint16(255), DecodeU16([]byte{0xff, 0}))
}

func (DecodeSuite) TestU32(t *testing.T) {
	expect.Equal(
		t,
		uint32(0x04030201),
		DecodeU32([]byte{0x01, 0x02, 0x03, 0x04}))
	expect.Equal(t, uint32(255), DecodeU32([]byte{0xff, 0, 0, 0}))
	expect.Equal(
		t,
		uint32(0xffffffff),
		DecodeU32([]byte{0xff, 0xff, 0xff, 0xff}))
}

func (DecodeSuite) TestU64(t *testing.T) {
	expect.Equal(
		t,
		uint64(0x0807060504030201),
		DecodeU64([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}))
	expect.Equal(
		t,
		uint64(255),
		DecodeU64([]byte{0xff, 0, 0, 0, 0, 0, 0, 0}))
	expect.Equal(
		t,
		uint64(1)<<56,
		DecodeU64([]byte{0, 0, 0, 0, 0, 0, 0, 0x01}))
}

func (DecodeSuite) TestString(t *testing.T) {
	content := []byte{0x41, 0x42, 0x00, 0x43}

	value, err := DecodeString(content, 0)
	expect.Nil(t, err)
	expect.Equal(t, "AB", value)

	value, err = DecodeString(content, 1)
	expect.Nil(t, err)
	expect.Equal(t, "B", value)

	// offset 2 points directly at a terminator
	value, err = DecodeString(content, 2)
	expect.Nil(t, err)
	expect.Equal(t, "", value)
}

func (DecodeSuite) TestStringNotTerminated(t *testing.T) {
	content := []byte{0x41, 0x42, 0x00, 0x43}

	// The partial string is still returned alongside the error.
	value, err := DecodeString(content, 3)
	expect.True(t, errors.Is(err, ErrInvalidString))
	expect.Equal(t, "C", value)
}

func (DecodeSuite) TestStringOutOfBound(t *testing.T) {
	content := []byte{0x41, 0x42, 0x00, 0x43}

	// start == len(content) yields the empty string without error in c
	// string tables, but there is nothing to decode past the end.
	value, err := DecodeString(content, 5)
	expect.True(t, errors.Is(err, ErrInvalidString))
	expect.Equal(t, "", value)

	_, err = DecodeString(nil, 1)
	expect.True(t, errors.Is(err, ErrInvalidString))
}

func (DecodeSuite) TestStringTableWalk(t *testing.T) {
	content := []byte("\x00Milkshake\x00shake\x00no\x00")

	value, err := DecodeString(content, 1)
	expect.Nil(t, err)
	expect.Equal(t, "Milkshake", value)

	value, err = DecodeString(content, 5)
	expect.Nil(t, err)
	expect.Equal(t, "shake", value)

	value, err = DecodeString(content, 17)
	expect.Nil(t, err)
	expect.Equal(t, "no", value)
}
