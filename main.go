package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/vladimir-sama/arx-lang/internal/compiler"
)

const version = "0.3.0"

// mapDirs collects repeated -L flags.
type mapDirs []string

func (m *mapDirs) String() string { return fmt.Sprint(*m) }

func (m *mapDirs) Set(value string) error {
	*m = append(*m, value)
	return nil
}

func main() {
	// Define flags
	debug := flag.Bool("d", false, "Enable debug output")
	showVersion := flag.Bool("v", false, "Show version")
	flag.BoolVar(debug, "debug", false, "Enable debug output")
	flag.BoolVar(showVersion, "version", false, "Show version")

	output := flag.String("o", "", "Output executable path")
	entry := flag.String("entry", "", "Entry function wrapped by the C main (default: _exec)")
	libPath := flag.String("lib", "", "Directory holding extern C library sources")
	emitLLVM := flag.Bool("emit-llvm", false, "Write textual LLVM IR and stop")

	var dirs mapDirs
	flag.Var(&dirs, "L", "Extra extern descriptor directory (repeatable)")

	flag.Parse()

	// Handle version
	if *showVersion {
		fmt.Printf("arx compiler version %s\n", version)
		os.Exit(0)
	}

	// Get entry file
	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: arx [options] <file.ast.json>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	entryFile := args[0]

	// Compile
	result := compiler.Compile(&compiler.Options{
		EntryFile:        entryFile,
		MapDirs:          dirs,
		LibPath:          *libPath,
		OutputExecutable: *output,
		Entry:            *entry,
		EmitLLVMOnly:     *emitLLVM,
		Debug:            *debug,
	})

	result.Diagnostics.EmitAll()

	// Exit code
	if !result.Success {
		os.Exit(1)
	}
}
