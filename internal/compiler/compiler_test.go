package compiler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const demoUnit = `{
	"name": "demo",
	"uses": ["io"],
	"functions": [
		{
			"name": "_exec",
			"params": [],
			"return_type": "int",
			"body": [
				{"kind": "expression", "expr": {"kind": "call_method", "object": "io", "method": "print", "args": [{"kind": "string", "value": "hello"}]}},
				{"kind": "return", "value": {"kind": "int", "value": 0}}
			]
		}
	]
}`

const ioDescriptor = `[meta]
name = io

[functions]
print:string = arx_io_print_str > void
`

func writeUnit(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	astPath := filepath.Join(dir, "demo.ast.json")
	if err := os.WriteFile(astPath, []byte(demoUnit), 0644); err != nil {
		t.Fatal(err)
	}

	mapDir := filepath.Join(dir, "c_map")
	if err := os.MkdirAll(mapDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mapDir, "io.map"), []byte(ioDescriptor), 0644); err != nil {
		t.Fatal(err)
	}
	return astPath, mapDir
}

func TestCompileEmitLLVMOnly(t *testing.T) {
	astPath, mapDir := writeUnit(t)

	result := Compile(&Options{
		EntryFile:    astPath,
		MapDirs:      []string{mapDir},
		EmitLLVMOnly: true,
	})

	if !result.Success {
		t.Fatalf("compilation failed:\n%s", result.Diagnostics.EmitAllToString())
	}
	if filepath.Base(result.Output) != "demo.ll" {
		t.Errorf("Output = %q, want a demo.ll path", result.Output)
	}

	data, err := os.ReadFile(result.Output)
	if err != nil {
		t.Fatalf("reading emitted IR: %v", err)
	}
	ir := string(data)
	if !strings.Contains(ir, "define i32 @_exec()") {
		t.Error("emitted IR should define the entry function")
	}
	if !strings.Contains(ir, "@arx_io_print_str") {
		t.Error("emitted IR should reference the resolved extern symbol")
	}
	if !strings.Contains(ir, "define i32 @main()") {
		t.Error("emitted IR should wrap the entry in a C main")
	}
}

func TestCompileMissingEntryFile(t *testing.T) {
	result := Compile(&Options{
		EntryFile: filepath.Join(t.TempDir(), "nope.ast.json"),
	})

	if result.Success {
		t.Fatal("compiling a missing file should fail")
	}
	if result.Diagnostics.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", result.Diagnostics.ErrorCount())
	}
}

func TestCompileReportsLoweringDiagnostics(t *testing.T) {
	dir := t.TempDir()
	astPath := filepath.Join(dir, "bad.ast.json")
	doc := `{"name":"bad","functions":[{"name":"_exec","return_type":"int","body":[
		{"kind":"return","value":{"kind":"var","name":"ghost"}}
	]}]}`
	if err := os.WriteFile(astPath, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	result := Compile(&Options{EntryFile: astPath, EmitLLVMOnly: true})
	if result.Success {
		t.Fatal("lowering an unbound variable should fail")
	}

	diags := result.Diagnostics.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("collected %d diagnostics, want 1", len(diags))
	}
	if !strings.Contains(diags[0].Message, "ghost") {
		t.Errorf("diagnostic should name the variable, got %q", diags[0].Message)
	}
}

func TestUnitName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/demo.ast.json", "demo"},
		{"demo.json", "demo"},
		{"demo", "demo"},
		{".", "unit"},
	}

	for _, tt := range tests {
		if got := unitName(tt.path); got != tt.want {
			t.Errorf("unitName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
