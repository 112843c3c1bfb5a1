package externs

import (
	"strings"

	"github.com/vladimir-sama/arx-lang/internal/diagnostics"
)

// Target is one resolved extern function: the native symbol to call and
// the type tag of its return value.
type Target struct {
	Symbol    string
	ReturnTag string
}

// overloadSet holds every registered variant of one qualified name.
// Entries written without an argument tuple become the fallback and match
// any argument types, matching the behaviour of plain descriptor entries.
type overloadSet struct {
	variants map[string]Target
	fallback *Target
}

// Table maps qualified extern names ("module.function") to overload sets.
// It is built once by Load and read-only afterwards.
type Table struct {
	entries map[string]*overloadSet
	modules []string
}

// NewTable creates an empty overload table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*overloadSet)}
}

// Modules returns the loaded extern module names in load order. The build
// pipeline compiles one C library per entry.
func (t *Table) Modules() []string {
	return t.modules
}

// Has reports whether any overload is registered for the qualified name.
func (t *Table) Has(qualified string) bool {
	_, ok := t.entries[qualified]
	return ok
}

// Resolve selects the overload of qualified matching the argument type
// tags exactly, falling back to a tuple-less entry when one exists.
func (t *Table) Resolve(qualified string, tags []string) (Target, error) {
	set, ok := t.entries[qualified]
	if !ok {
		return Target{}, diagnostics.ExternNotFound(qualified)
	}
	if target, ok := set.variants[TupleKey(tags)]; ok {
		return target, nil
	}
	if set.fallback != nil {
		return *set.fallback, nil
	}
	return Target{}, diagnostics.OverloadMismatch(qualified, tags)
}

// register adds one descriptor entry, reporting true when it overwrote an
// earlier one.
func (t *Table) register(qualified string, tags []string, target Target) bool {
	set, ok := t.entries[qualified]
	if !ok {
		set = &overloadSet{variants: make(map[string]Target)}
		t.entries[qualified] = set
	}
	if tags == nil {
		replaced := set.fallback != nil
		set.fallback = &target
		return replaced
	}
	key := TupleKey(tags)
	_, replaced := set.variants[key]
	set.variants[key] = target
	return replaced
}

func (t *Table) addModule(name string) {
	for _, m := range t.modules {
		if m == name {
			return
		}
	}
	t.modules = append(t.modules, name)
}

// TupleKey canonicalizes an argument tag tuple into a map key.
func TupleKey(tags []string) string {
	normalized := make([]string, len(tags))
	for i, tag := range tags {
		normalized[i] = NormalizeTag(tag)
	}
	return strings.Join(normalized, ",")
}

// NormalizeTag maps a descriptor type tag onto its canonical spelling.
// Unrecognized tags read as void, the descriptor format's default.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	switch tag {
	case "int", "bool", "float", "void", "int*":
		return tag
	case "str", "string":
		return "string"
	}
	if strings.HasPrefix(tag, "list") {
		return "list"
	}
	return "void"
}
