package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pattyshack/elfview/elf"
)

type headerView struct {
	Class                   string `yaml:"class"`
	DataEncoding            string `yaml:"data_encoding"`
	OperatingSystemABI      string `yaml:"os_abi"`
	FileType                string `yaml:"file_type"`
	Machine                 string `yaml:"machine"`
	FormatVersion           uint32 `yaml:"format_version"`
	EntryPointAddress       string `yaml:"entry_point_address"`
	ProgramHeaderOffset     uint64 `yaml:"program_header_offset"`
	SectionHeaderOffset     uint64 `yaml:"section_header_offset"`
	ArchitectureFlags       uint32 `yaml:"architecture_flags"`
	NumProgramHeaderEntries uint16 `yaml:"num_program_header_entries"`
	NumSectionHeaderEntries uint16 `yaml:"num_section_header_entries"`
	SectionStringTableIndex uint16 `yaml:"section_string_table_index"`
}

type sectionView struct {
	Index            int    `yaml:"index"`
	Name             string `yaml:"name"`
	Type             string `yaml:"type"`
	Flags            string `yaml:"flags"`
	VirtualAddress   string `yaml:"virtual_address"`
	Offset           uint64 `yaml:"offset"`
	Size             uint64 `yaml:"size"`
	Link             uint32 `yaml:"link"`
	Info             uint32 `yaml:"info"`
	AddressAlignment uint64 `yaml:"address_alignment"`
	EntrySize        uint64 `yaml:"entry_size"`
}

type fileView struct {
	Header   headerView    `yaml:"header"`
	Sections []sectionView `yaml:"sections"`
}

func newFileView(file *elf.File) fileView {
	view := fileView{
		Header: headerView{
			Class:                   file.Class().String(),
			DataEncoding:            file.DataEncoding().String(),
			OperatingSystemABI:      file.OperatingSystemABI().String(),
			FileType:                file.FileType.String(),
			Machine:                 file.MachineArchitecture.String(),
			FormatVersion:           file.FormatVersion,
			EntryPointAddress:       fmt.Sprintf("%#x", file.EntryPointAddress),
			ProgramHeaderOffset:     file.ProgramHeaderOffset,
			SectionHeaderOffset:     file.SectionHeaderOffset,
			ArchitectureFlags:       file.ArchitectureFlags,
			NumProgramHeaderEntries: file.NumProgramHeaderEntries,
			NumSectionHeaderEntries: file.NumSectionHeaderEntries,
			SectionStringTableIndex: uint16(file.SectionStringTableIndex),
		},
	}

	for idx, section := range file.Sections {
		view.Sections = append(
			view.Sections,
			sectionView{
				Index:            idx,
				Name:             section.Name,
				Type:             section.SectionType.String(),
				Flags:            section.SectionFlags.String(),
				VirtualAddress:   fmt.Sprintf("%#x", section.VirtualAddress),
				Offset:           section.Offset,
				Size:             section.Size,
				Link:             section.Link,
				Info:             section.Info,
				AddressAlignment: section.AddressAlignment,
				EntrySize:        section.EntrySize,
			})
	}

	return view
}

func printText(file *elf.File) {
	fmt.Println("Header:")
	fmt.Println("  Class:                       ", file.Class())
	fmt.Println("  Data encoding:               ", file.DataEncoding())
	fmt.Println("  OS/ABI:                      ", file.OperatingSystemABI())
	fmt.Println("  File type:                   ", file.FileType)
	fmt.Println("  Machine:                     ", file.MachineArchitecture)
	fmt.Println("  Format version:              ", file.FormatVersion)
	fmt.Printf("  Entry point address:          %#x\n", file.EntryPointAddress)
	fmt.Println("  Program header offset:       ", file.ProgramHeaderOffset)
	fmt.Println("  Section header offset:       ", file.SectionHeaderOffset)
	fmt.Println("  Architecture flags:          ", file.ArchitectureFlags)
	fmt.Println("  Num program header entries:  ", file.NumProgramHeaderEntries)
	fmt.Println("  Num section header entries:  ", file.NumSectionHeaderEntries)
	fmt.Println("  Section string table index:  ", file.SectionStringTableIndex)

	fmt.Println("Sections:", len(file.Sections))
	for idx, section := range file.Sections {
		fmt.Printf(
			"  [%2d] %-24s %-22s %s addr: %#-12x offset: %-8d size: %d\n",
			idx,
			section.Name,
			section.SectionType,
			section.SectionFlags,
			section.VirtualAddress,
			section.Offset,
			section.Size)

		if section.SectionType == elf.SectionTypeStringTable {
			fmt.Printf("    Number of string entries: %d\n", section.NumStrings())
		}
	}
}

func printYaml(file *elf.File) {
	content, err := yaml.Marshal(newFileView(file))
	if err != nil {
		panic(err)
	}

	os.Stdout.Write(content)
}

func main() {
	asYaml := false
	flag.BoolVar(&asYaml, "yaml", false, "print as a yaml document")

	flag.Parse()
	args := flag.Args()

	if len(args) != 1 {
		fmt.Println("USAGE: print-elf [-yaml] <file>")
		os.Exit(1)
	}

	src, err := os.Open(args[0])
	if err != nil {
		panic(err)
	}
	defer src.Close()

	file, err := elf.Parse(src)
	if err != nil {
		panic(err)
	}

	if asYaml {
		printYaml(file)
	} else {
		printText(file)
	}
}
