package externs

import (
	"testing"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"int", "int"},
		{"bool", "bool"},
		{"float", "float"},
		{"void", "void"},
		{"int*", "int*"},
		{"str", "string"},
		{"string", "string"},
		{"list", "list"},
		{"list int", "list"},
		{"list_str", "list"},
		{" int ", "int"},
		{"banana", "void"},
		{"", "void"},
	}

	for _, tt := range tests {
		if got := NormalizeTag(tt.tag); got != tt.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestTupleKey(t *testing.T) {
	tests := []struct {
		tags []string
		want string
	}{
		{nil, ""},
		{[]string{"int"}, "int"},
		{[]string{"int", "str"}, "int,string"},
		{[]string{" int ", "list int"}, "int,list"},
	}

	for _, tt := range tests {
		if got := TupleKey(tt.tags); got != tt.want {
			t.Errorf("TupleKey(%v) = %q, want %q", tt.tags, got, tt.want)
		}
	}
}

func TestResolveExactOverload(t *testing.T) {
	table := NewTable()
	table.register("io.print", []string{"int"}, Target{Symbol: "arx_print_int", ReturnTag: "void"})
	table.register("io.print", []string{"string"}, Target{Symbol: "arx_print_str", ReturnTag: "void"})

	target, err := table.Resolve("io.print", []string{"int"})
	if err != nil {
		t.Fatalf("Resolve(int) failed: %v", err)
	}
	if target.Symbol != "arx_print_int" {
		t.Errorf("Resolve(int) = %q, want %q", target.Symbol, "arx_print_int")
	}

	target, err = table.Resolve("io.print", []string{"string"})
	if err != nil {
		t.Fatalf("Resolve(string) failed: %v", err)
	}
	if target.Symbol != "arx_print_str" {
		t.Errorf("Resolve(string) = %q, want %q", target.Symbol, "arx_print_str")
	}
}

func TestResolveFallback(t *testing.T) {
	table := NewTable()
	table.register("io.log", nil, Target{Symbol: "arx_log", ReturnTag: "void"})

	// A tuple-less entry matches any argument types.
	for _, tags := range [][]string{nil, {"int"}, {"string", "float", "bool"}} {
		target, err := table.Resolve("io.log", tags)
		if err != nil {
			t.Fatalf("Resolve(%v) failed: %v", tags, err)
		}
		if target.Symbol != "arx_log" {
			t.Errorf("Resolve(%v) = %q, want %q", tags, target.Symbol, "arx_log")
		}
	}
}

func TestResolveNoMatch(t *testing.T) {
	table := NewTable()
	table.register("io.print", []string{"int"}, Target{Symbol: "arx_print_int", ReturnTag: "void"})

	if _, err := table.Resolve("io.print", []string{"float"}); err == nil {
		t.Error("Resolve with unregistered tuple should fail")
	}
	if _, err := table.Resolve("io.missing", nil); err == nil {
		t.Error("Resolve of unknown name should fail")
	}
}

func TestRegisterReportsOverwrite(t *testing.T) {
	table := NewTable()

	if table.register("m.f", []string{"int"}, Target{Symbol: "a"}) {
		t.Error("first registration should not report an overwrite")
	}
	if !table.register("m.f", []string{"int"}, Target{Symbol: "b"}) {
		t.Error("second registration of the same tuple should report an overwrite")
	}

	target, err := table.Resolve("m.f", []string{"int"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if target.Symbol != "b" {
		t.Errorf("last registration should win, got %q", target.Symbol)
	}
}

func TestModulesDeduplicated(t *testing.T) {
	table := NewTable()
	table.addModule("core")
	table.addModule("io")
	table.addModule("core")

	mods := table.Modules()
	if len(mods) != 2 || mods[0] != "core" || mods[1] != "io" {
		t.Errorf("Modules() = %v, want [core io]", mods)
	}
}
