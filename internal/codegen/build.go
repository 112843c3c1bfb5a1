// Package codegen turns a lowered module into a native executable by
// driving the external toolchain: the static compiler (llc) for the IR
// and a C toolchain for the extern libraries and the final link.
package codegen

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/llir/llvm/ir"
	"github.com/pkg/errors"

	"github.com/vladimir-sama/arx-lang/colors"
	"github.com/vladimir-sama/arx-lang/internal/diagnostics"
)

// BuildOptions configures how to build the executable
type BuildOptions struct {
	LLC        string   // Static compiler (llc)
	CC         string   // C compiler used for extern libraries and linking
	LLCFlags   []string // Extra llc flags
	CCFlags    []string // Extra link flags
	LibPath    string   // Directory holding extern C library sources
	BuildDir   string   // Intermediate artifacts (IR text, objects)
	OutDir     string   // Final executable directory
	OutputPath string   // Explicit executable path (overrides OutDir)
	Debug      bool
}

// DefaultBuildOptions returns default build options
func DefaultBuildOptions() *BuildOptions {
	llc := os.Getenv("ARX_LLC")
	if llc == "" {
		llc = "llc"
	}

	cc := os.Getenv("ARX_CC")
	if cc == "" {
		cc = os.Getenv("CC")
	}
	if cc == "" {
		cc = "gcc"
	}

	return &BuildOptions{
		LLC:      llc,
		CC:       cc,
		LibPath:  "c_lib",
		BuildDir: "build",
		OutDir:   "out",
	}
}

// WriteModule serializes the module's textual IR to path.
func WriteModule(mod *ir.Module, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating build directory")
	}
	if err := os.WriteFile(path, []byte(mod.String()), 0644); err != nil {
		return errors.Wrap(err, "writing module IR")
	}
	return nil
}

// BuildExecutable lowers the module to an object file, compiles one C
// library per loaded extern module, and links everything into a native
// executable. Both toolchain binaries must exist before any artifact is
// written; any process exiting non-zero is fatal, though intermediate
// objects may remain on disk.
func BuildExecutable(mod *ir.Module, name string, externModules []string, opts *BuildOptions) (string, error) {
	if opts == nil {
		opts = DefaultBuildOptions()
	}

	llcPath, err := exec.LookPath(opts.LLC)
	if err != nil {
		return "", diagnostics.ToolchainMissing(opts.LLC)
	}
	ccPath, err := exec.LookPath(opts.CC)
	if err != nil {
		return "", diagnostics.ToolchainMissing(opts.CC)
	}

	if err := os.MkdirAll(opts.BuildDir, 0755); err != nil {
		return "", errors.Wrap(err, "creating build directory")
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return "", errors.Wrap(err, "creating output directory")
	}

	objExt := ".o"
	exeExt := ""
	if runtime.GOOS == "windows" {
		objExt = ".obj"
		exeExt = ".exe"
	}

	llPath := filepath.Join(opts.BuildDir, name+".ll")
	if err := WriteModule(mod, llPath); err != nil {
		return "", err
	}

	objPath := filepath.Join(opts.BuildDir, name+objExt)
	args := append([]string{llPath, "-filetype=obj", "-o", objPath}, opts.LLCFlags...)
	if opts.Debug {
		colors.CYAN.Printf("[llc] %s %v\n", llcPath, args)
	}
	if err := run(llcPath, args); err != nil {
		return "", diagnostics.ProcessFailed("llc", err)
	}

	linkInputs := []string{objPath}
	total := len(externModules) + 1
	for i, module := range externModules {
		colors.GREY.Printf("[ %d/%d ] [lib] (%s)\n", i+1, total, module)
		src := filepath.Join(opts.LibPath, module+".c")
		obj := filepath.Join(opts.BuildDir, module+objExt)
		if err := run(ccPath, []string{"-c", "-o", obj, src}); err != nil {
			return "", diagnostics.ProcessFailed(opts.CC, err)
		}
		linkInputs = append(linkInputs, obj)
	}

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = filepath.Join(opts.OutDir, name+exeExt)
	}

	colors.GREY.Printf("[ %d/%d ] [main]\n", total, total)
	args = append(append([]string{}, linkInputs...), opts.CCFlags...)
	args = append(args, "-o", outPath)
	if opts.Debug {
		colors.CYAN.Printf("[link] %s %v\n", ccPath, args)
	}
	if err := run(ccPath, args); err != nil {
		return "", diagnostics.ProcessFailed(opts.CC, err)
	}

	colors.GREEN.Printf("Built at [ %s ]\n", outPath)
	return outPath, nil
}

func run(bin string, args []string) error {
	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", bin, err)
	}
	return nil
}
