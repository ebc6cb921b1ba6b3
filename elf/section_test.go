package elf

import (
	"errors"
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type SectionSuite struct{}

func TestSection(t *testing.T) {
	suite.RunTests(t, &SectionSuite{})
}

func newTestStringTable(content string) *Section {
	return &Section{
		SectionHeaderEntry: SectionHeaderEntry{
			SectionType: SectionTypeStringTable,
			Size:        uint64(len(content)),
		},
		Data: []byte(content),
	}
}

func (SectionSuite) TestStringAt(t *testing.T) {
	table := newTestStringTable("\x00Milkshake\x00shake\x00no\x00")

	value, err := table.StringAt(1)
	expect.Nil(t, err)
	expect.Equal(t, "Milkshake", value)

	value, err = table.StringAt(5)
	expect.Nil(t, err)
	expect.Equal(t, "shake", value)

	value, err = table.StringAt(10)
	expect.Nil(t, err)
	expect.Equal(t, "", value)

	value, err = table.StringAt(11)
	expect.Nil(t, err)
	expect.Equal(t, "shake", value)

	value, err = table.StringAt(17)
	expect.Nil(t, err)
	expect.Equal(t, "no", value)

	value, err = table.StringAt(18)
	expect.Nil(t, err)
	expect.Equal(t, "o", value)

	_, err = table.StringAt(100)
	expect.True(t, errors.Is(err, ErrInvalidString))
}

func (SectionSuite) TestStrings(t *testing.T) {
	table := newTestStringTable("\x00Milkshake\x00shake\x00no\x00")
	expect.Equal(t, []string{"Milkshake", "shake", "no"}, table.Strings())
	expect.Equal(t, 3, table.NumStrings())

	empty := newTestStringTable("")
	expect.Equal(t, 0, len(empty.Strings()))
	expect.Equal(t, 0, empty.NumStrings())

	// tolerate a missing trailing terminator when enumerating
	unterminated := newTestStringTable("\x00abc\x00de")
	expect.Equal(t, []string{"abc", "de"}, unterminated.Strings())
}

func (SectionSuite) TestNumStrings(t *testing.T) {
	table := newTestStringTable("\x00a\x00bc\x00def\x00")
	expect.Equal(t, 3, table.NumStrings())
}
