package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/teris-io/cli"

	"hackforge.io/n2t/pkg/asm"
)

var Description = strings.ReplaceAll(`
Translates Hack assembly (.asm) source into the 16-bit binary instructions (.hack) the
Hack CPU executes, resolving labels and variables against the predefined symbol table
along the way.
`, "\n", " ")

var HackAssembler = cli.New(Description).
	WithArg(cli.NewArg("input", "The assembler (.asm) file to be compiled")).
	WithArg(cli.NewArg("output", "The compiled binary output (.hack)")).
	WithOption(cli.NewOption("verbose", "Logs the size of the compiled output").
		WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	input, err := os.Open(args[0])
	if err != nil {
		fmt.Printf("ERROR: Unable to open input file: %s\n", err)
		return -1
	}
	defer input.Close()

	output, err := os.Create(args[1])
	if err != nil {
		fmt.Printf("ERROR: Unable to open output file: %s\n", err)
		return -1
	}
	defer output.Close()

	if err := asm.Assemble(input, output); err != nil {
		fmt.Printf("ERROR: Unable to assemble %q: %s\n", args[0], err)
		return -1
	}

	if _, verbose := options["verbose"]; verbose {
		logger := logrus.New()
		if info, err := output.Stat(); err == nil {
			logger.WithFields(logrus.Fields{
				"input":  args[0],
				"output": args[1],
				"bytes":  info.Size(),
			}).Info("assembled Hack binary")
		}
	}

	return 0
}

func main() { os.Exit(HackAssembler.Run(os.Args, os.Stdout)) }
