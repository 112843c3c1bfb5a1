// Package compiler is the facade over the compilation pipeline: it
// loads a frontend AST dump, resolves extern descriptors, lowers the
// unit to LLVM IR and drives the native build.
package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vladimir-sama/arx-lang/colors"
	"github.com/vladimir-sama/arx-lang/internal/ast"
	"github.com/vladimir-sama/arx-lang/internal/codegen"
	"github.com/vladimir-sama/arx-lang/internal/diagnostics"
	"github.com/vladimir-sama/arx-lang/internal/externs"
	"github.com/vladimir-sama/arx-lang/internal/irgen"
)

// Options for compilation
type Options struct {
	// Frontend AST dump to compile
	EntryFile string
	// Extra descriptor directories searched before the default c_map
	MapDirs []string
	// Directory holding extern C library sources (default: c_lib next
	// to the compiler executable)
	LibPath string
	// Output executable path (if empty, uses default: out/<unitName>)
	OutputExecutable string
	// Entry function wrapped by the emitted C main (default: _exec)
	Entry string
	// Stop after writing textual IR; no toolchain is invoked
	EmitLLVMOnly bool
	// Debug output
	Debug bool
}

// Result of compilation
type Result struct {
	Success bool
	// Path of the produced artifact: the executable, or the .ll file
	// when EmitLLVMOnly is set
	Output      string
	Diagnostics *diagnostics.DiagnosticBag
}

// Compile compiles one AST dump and returns the result. Diagnostics are
// collected in the returned bag; the caller decides when to emit them.
func Compile(opts *Options) Result {
	bag := diagnostics.NewDiagnosticBag()

	absPath, err := filepath.Abs(opts.EntryFile)
	if err != nil {
		bag.Add(diagnostics.NewError(fmt.Sprintf("failed to resolve path: %v", err)))
		return Result{Diagnostics: bag}
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		bag.Add(diagnostics.NewError(fmt.Sprintf("file not found: %s", opts.EntryFile)))
		return Result{Diagnostics: bag}
	}

	if opts.Debug {
		colors.CYAN.Printf("[Phase 1] Loading AST from %s\n", absPath)
	}
	prog, err := ast.LoadFile(absPath)
	if err != nil {
		report(bag, err)
		return Result{Diagnostics: bag}
	}
	if prog.Name == "" {
		prog.Name = unitName(absPath)
	}

	return CompileProgram(prog, absPath, opts, bag)
}

// CompileProgram compiles an already decoded program. The entry path
// only anchors the build and output directories.
func CompileProgram(prog *ast.Program, entryPath string, opts *Options, bag *diagnostics.DiagnosticBag) Result {
	execPath, _ := os.Executable()
	execDir := filepath.Dir(execPath)
	unitDir := filepath.Dir(entryPath)

	mapDirs := append([]string{}, opts.MapDirs...)
	mapDirs = append(mapDirs, filepath.Join(execDir, "c_map"))

	if opts.Debug {
		colors.CYAN.Printf("[Phase 2] Resolving externs for modules %v\n", prog.Uses)
	}
	table, err := externs.Load(mapDirs, prog.Uses, bag)
	if err != nil {
		report(bag, err)
		return Result{Diagnostics: bag}
	}

	if opts.Debug {
		colors.CYAN.Printf("[Phase 3] Lowering %d function(s)\n", len(prog.Functions))
	}
	gen := irgen.New(table)
	if opts.Entry != "" {
		gen.SetEntry(opts.Entry)
	}
	mod, err := gen.Generate(prog)
	if err != nil {
		report(bag, err)
		return Result{Diagnostics: bag}
	}

	buildOpts := codegen.DefaultBuildOptions()
	buildOpts.Debug = opts.Debug
	buildOpts.BuildDir = filepath.Join(unitDir, "build")
	buildOpts.OutDir = filepath.Join(unitDir, "out")
	buildOpts.LibPath = filepath.Join(execDir, "c_lib")
	if opts.LibPath != "" {
		buildOpts.LibPath = opts.LibPath
	}
	if opts.OutputExecutable != "" {
		buildOpts.OutputPath = opts.OutputExecutable
		if !filepath.IsAbs(buildOpts.OutputPath) {
			if abs, err := filepath.Abs(buildOpts.OutputPath); err == nil {
				buildOpts.OutputPath = abs
			}
		}
	}

	if opts.EmitLLVMOnly {
		llPath := filepath.Join(buildOpts.BuildDir, prog.Name+".ll")
		if err := codegen.WriteModule(mod, llPath); err != nil {
			report(bag, err)
			return Result{Diagnostics: bag}
		}
		return Result{Success: !bag.HasErrors(), Output: llPath, Diagnostics: bag}
	}

	if opts.Debug {
		colors.CYAN.Printf("[Phase 4] Building executable\n")
	}
	outPath, err := codegen.BuildExecutable(mod, prog.Name, table.Modules(), buildOpts)
	if err != nil {
		report(bag, err)
		return Result{Diagnostics: bag}
	}

	return Result{Success: !bag.HasErrors(), Output: outPath, Diagnostics: bag}
}

// report funnels an error into the bag, preserving code and notes when
// it already is a diagnostic.
func report(bag *diagnostics.DiagnosticBag, err error) {
	var diag *diagnostics.Diagnostic
	if errors.As(err, &diag) {
		bag.Add(diag)
		return
	}
	bag.Add(diagnostics.NewError(err.Error()))
}

// unitName derives the compilation unit name from the AST dump path.
func unitName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimSuffix(name, ".ast")
	if name == "" {
		name = "unit"
	}
	return name
}
