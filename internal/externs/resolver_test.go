package externs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vladimir-sama/arx-lang/internal/diagnostics"
)

// Helper to write one descriptor file into a fresh search directory
func writeDescriptor(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

const coreDescriptor = `[meta]
name = core

[functions]
print:string = core_print_str > void
print:int = core_print_int > void
read_line = core_read_line > str
`

func TestLoadCoreAlways(t *testing.T) {
	dir := writeDescriptor(t, "core.map", coreDescriptor)

	// core loads even with an empty uses list.
	table, err := Load([]string{dir}, nil, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !table.Has("core.print") {
		t.Error("core.print should be registered")
	}
	target, err := table.Resolve("core.print", []string{"int"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if target.Symbol != "core_print_int" {
		t.Errorf("Resolve(int) = %q, want %q", target.Symbol, "core_print_int")
	}

	mods := table.Modules()
	if len(mods) != 1 || mods[0] != "core" {
		t.Errorf("Modules() = %v, want [core]", mods)
	}
}

func TestLoadFiltersUnrequestedModules(t *testing.T) {
	content := `[meta]
name = math

[functions]
sqrt:float = arx_math_sqrt > float
`
	dir := writeDescriptor(t, "math.map", content)

	table, err := Load([]string{dir}, nil, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Has("math.sqrt") {
		t.Error("math should not load when the unit does not use it")
	}

	table, err = Load([]string{dir}, []string{"math"}, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !table.Has("math.sqrt") {
		t.Error("math.sqrt should be registered when math is used")
	}
}

func TestLoadReturnTagNormalized(t *testing.T) {
	dir := writeDescriptor(t, "core.map", coreDescriptor)

	table, err := Load([]string{dir}, nil, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	target, err := table.Resolve("core.read_line", nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if target.ReturnTag != "string" {
		t.Errorf("ReturnTag = %q, want %q", target.ReturnTag, "string")
	}
}

func TestLoadCatchAllEntry(t *testing.T) {
	content := `[meta]
name = core

[functions]
log = core_log > void
`
	dir := writeDescriptor(t, "core.map", content)

	table, err := Load([]string{dir}, nil, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	target, err := table.Resolve("core.log", []string{"string", "int"})
	if err != nil {
		t.Fatalf("a tuple-less entry should match any arguments: %v", err)
	}
	if target.Symbol != "core_log" {
		t.Errorf("Resolve = %q, want %q", target.Symbol, "core_log")
	}
}

func TestLoadDuplicateEntryWarns(t *testing.T) {
	content := `[meta]
name = core

[functions]
print:int = core_print_old > void
print:int = core_print_new > void
`
	dir := writeDescriptor(t, "core.map", content)

	bag := diagnostics.NewDiagnosticBag()
	table, err := Load([]string{dir}, nil, bag)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Last entry wins, and the overwrite is reported as a warning.
	target, err := table.Resolve("core.print", []string{"int"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if target.Symbol != "core_print_new" {
		t.Errorf("Resolve = %q, want the later entry %q", target.Symbol, "core_print_new")
	}
	if bag.WarningCount() != 1 {
		t.Fatalf("WarningCount = %d, want 1", bag.WarningCount())
	}
	if code := bag.Diagnostics()[0].Code; code != diagnostics.WarnOverloadOverwritten {
		t.Errorf("warning code = %q, want %q", code, diagnostics.WarnOverloadOverwritten)
	}
}

func TestLoadMalformedDescriptors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing meta", "[functions]\nprint = p > void\n"},
		{"missing module name", "[meta]\n\n[functions]\nprint = p > void\n"},
		{"missing functions", "[meta]\nname = core\n"},
		{"missing return tag", "[meta]\nname = core\n\n[functions]\nprint = core_print\n"},
		{"empty symbol", "[meta]\nname = core\n\n[functions]\nprint = > void\n"},
	}

	for _, tt := range tests {
		dir := writeDescriptor(t, "bad.map", tt.content)
		if _, err := Load([]string{dir}, nil, nil); err == nil {
			t.Errorf("%s: Load should fail", tt.name)
		}
	}
}

func TestLoadMergesDirectories(t *testing.T) {
	coreDir := writeDescriptor(t, "core.map", coreDescriptor)
	ioDir := writeDescriptor(t, "io.map", `[meta]
name = io

[functions]
open:string = arx_io_open > int
`)

	table, err := Load([]string{coreDir, ioDir}, []string{"io"}, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !table.Has("core.print") || !table.Has("io.open") {
		t.Error("entries from both directories should be registered")
	}

	mods := table.Modules()
	if len(mods) != 2 || mods[0] != "core" || mods[1] != "io" {
		t.Errorf("Modules() = %v, want [core io]", mods)
	}
}
