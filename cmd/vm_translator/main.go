package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/teris-io/cli"

	"hackforge.io/n2t/pkg/asm"
	"hackforge.io/n2t/pkg/translator"
	"hackforge.io/n2t/pkg/vm"
)

var Description = strings.ReplaceAll(`
The VM Translator translates programs (composed of multiple modules/files) written in
the VM language into Hack assembly code that can be further elaborated. The VM language
is a higher-level (bytecode'like) language tailored for use with the Hack computer arch.
`, "\n", " ")

var VmTranslator = cli.New(Description).
	// PATH is either a single '.vm' file or a directory containing one or more of them;
	// a directory translates to a single monolithic '.asm' output, same as the course's
	// reference tool.
	WithArg(cli.NewArg("path", "A .vm file, or a directory of .vm files, to translate")).
	WithOption(cli.NewOption("verbose", "Logs translation progress to stderr").
		WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Printf("ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	inputs, err := discoverInputs(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to resolve input path: %s\n", err)
		return -1
	}

	outputPath := stem(args[0]) + ".asm"
	output, err := os.Create(outputPath)
	if err != nil {
		fmt.Printf("ERROR: Unable to open output file: %s\n", err)
		return -1
	}
	defer output.Close()

	var logger *logrus.Logger
	if _, verbose := options["verbose"]; verbose {
		logger = logrus.New()
	}

	// Every file is parsed independently into its own Unit; a 'static' segment location
	// in one file never leaks into another, the Driver keys it off each Unit's own
	// Namespace rather than off any shared state here.
	units := make([]translator.Unit, 0, len(inputs))
	for _, input := range inputs {
		content, err := os.ReadFile(input)
		if err != nil {
			fmt.Printf("ERROR: Unable to open input file: %s\n", err)
			return -1
		}

		parser := vm.NewParser(bytes.NewReader(content))
		module, err := parser.Parse()
		if err != nil {
			fmt.Printf("ERROR: Unable to complete 'parsing' pass: %s\n", err)
			return -1
		}

		units = append(units, translator.Unit{Namespace: translator.Namespace(input), Module: module})
	}

	driver := translator.NewDriver(logger)
	program, err := driver.Translate(units)
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'translation' pass: %s\n", err)
		return -1
	}

	codegen := asm.NewCodeGenerator(program)
	compiled, err := codegen.Generate()
	if err != nil {
		fmt.Printf("ERROR: Unable to complete 'codegen' pass: %s\n", err)
		return -1
	}

	for _, comp := range compiled {
		line := fmt.Sprintf("%s\n", comp)
		output.Write([]byte(line))
	}

	return 0
}

// discoverInputs resolves path (per spec.md §6, either a single .vm file or a directory)
// to the ordered list of .vm files to translate. Directory traversal is lexicographic,
// same ordering guarantee the Translator Driver (component I) makes for the Units it's
// handed, so discovery order never actually matters downstream, it just reads cleaner.
func discoverInputs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.vm"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// stem derives the output file's base name from path: a directory "foo/bar" or a file
// "foo/bar/Main.vm" both produce "bar.asm" / "Main.asm" in the current working
// directory, per spec.md §6 ("{stem(PATH)}.asm").
func stem(path string) string {
	trimmed := strings.TrimRight(path, string(filepath.Separator))
	base := filepath.Base(trimmed)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func main() { os.Exit(VmTranslator.Run(os.Args, os.Stdout)) }
