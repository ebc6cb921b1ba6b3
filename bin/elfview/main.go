package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/pattyshack/elfview/elf"
)

type command struct {
	name string
	help string
	run  func(*elf.File, []string) error
}

var (
	commands = []command{
		{
			name: "header",
			help: "print the elf file header",
			run:  printHeader,
		},
		{
			name: "sections",
			help: "print the section table",
			run:  printSections,
		},
		{
			name: "section",
			help: "section <name|index>: hexdump a section's payload",
			run:  dumpSection,
		},
		{
			name: "strings",
			help: "strings <name|index>: print a string table's entries",
			run:  printStrings,
		},
	}
)

func printHeader(file *elf.File, args []string) error {
	fmt.Println("Class:                       ", file.Class())
	fmt.Println("Data encoding:               ", file.DataEncoding())
	fmt.Println("OS/ABI:                      ", file.OperatingSystemABI())
	fmt.Println("File type:                   ", file.FileType)
	fmt.Println("Machine:                     ", file.MachineArchitecture)
	fmt.Println("Format version:              ", file.FormatVersion)
	fmt.Printf("Entry point address:          %#x\n", file.EntryPointAddress)
	fmt.Println("Program header offset:       ", file.ProgramHeaderOffset)
	fmt.Println("Section header offset:       ", file.SectionHeaderOffset)
	fmt.Println("Num program header entries:  ", file.NumProgramHeaderEntries)
	fmt.Println("Num section header entries:  ", file.NumSectionHeaderEntries)
	fmt.Println("Section string table index:  ", file.SectionStringTableIndex)
	return nil
}

func printSections(file *elf.File, args []string) error {
	for idx, section := range file.Sections {
		fmt.Printf(
			"[%2d] %-24s %-22s %s addr: %#-12x offset: %-8d size: %d\n",
			idx,
			section.Name,
			section.SectionType,
			section.SectionFlags,
			section.VirtualAddress,
			section.Offset,
			section.Size)
	}
	return nil
}

func findSection(file *elf.File, arg string) (*elf.Section, bool) {
	idx, err := strconv.Atoi(arg)
	if err == nil {
		if idx < 0 || idx >= len(file.Sections) {
			fmt.Println("section index out of bound:", idx)
			return nil, false
		}
		return &file.Sections[idx], true
	}

	section, ok := file.GetSection(arg)
	if !ok {
		fmt.Println("no such section:", arg)
		return nil, false
	}
	return section, true
}

func dumpSection(file *elf.File, args []string) error {
	if len(args) != 1 {
		fmt.Println("section name or index not specified")
		return nil
	}

	section, ok := findSection(file, args[0])
	if !ok {
		return nil
	}

	if section.SectionType == elf.SectionTypeNoSpace {
		fmt.Printf(
			"%s occupies no file space (%d bytes in memory)\n",
			section.Name,
			section.Size)
		return nil
	}

	fmt.Print(hex.Dump(section.Data))
	return nil
}

func printStrings(file *elf.File, args []string) error {
	if len(args) != 1 {
		fmt.Println("section name or index not specified")
		return nil
	}

	section, ok := findSection(file, args[0])
	if !ok {
		return nil
	}

	if section.SectionType != elf.SectionTypeStringTable {
		fmt.Printf("%s is not a string table (%s)\n", section.Name, section.SectionType)
		return nil
	}

	for idx, entry := range section.Strings() {
		fmt.Printf("%d: %s\n", idx, entry)
	}
	return nil
}

func printHelp() {
	for _, cmd := range commands {
		fmt.Printf("%-10s %s\n", cmd.name, cmd.help)
	}
	fmt.Printf("%-10s %s\n", "help", "print this message")
	fmt.Printf("%-10s %s\n", "quit", "exit")
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("USAGE: elfview <file>")
		os.Exit(1)
	}

	src, err := os.Open(os.Args[1])
	if err != nil {
		panic(err)
	}
	defer src.Close()

	file, err := elf.Parse(src)
	if err != nil {
		panic(err)
	}

	fmt.Printf(
		"loaded %s (%d sections)\n",
		os.Args[1],
		len(file.Sections))

	rl, err := readline.New("elfview > ")
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	lastLine := ""
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				break
			}
			panic(err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			line = lastLine
		}
		lastLine = line

		if line == "" {
			continue
		}

		args := strings.Split(line, " ")
		if args[0] == "" {
			fmt.Println("invalid command: (empty string)")
		}

		if args[0] == "quit" || args[0] == "exit" {
			break
		}

		if args[0] == "help" {
			printHelp()
			continue
		}

		found := false
		for _, cmd := range commands {
			if cmd.name == args[0] {
				found = true
				err := cmd.run(file, args[1:])
				if err != nil {
					panic(err)
				}
				break
			}
		}

		if !found {
			fmt.Println("invalid command:", args[0])
		}
	}
}
