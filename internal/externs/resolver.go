package externs

import (
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/vladimir-sama/arx-lang/internal/diagnostics"
)

// Descriptor files (*.map) are INI documents mapping source-level extern
// functions onto native symbols:
//
//	[meta]
//	name = io
//
//	[functions]
//	print:string = arx_io_print_str > void
//	print:int    = arx_io_print_int > void
//	read_line    = arx_io_read_line > str
//
// A key may carry a colon-separated argument tag tuple; entries sharing a
// function name form overloads of the same qualified name.

// Extension marks descriptor files inside a search directory.
const Extension = ".map"

// loadOptions keeps ini from treating the tuple colon as a key/value
// delimiter, and preserves duplicate keys so last-wins merging is visible.
var loadOptions = ini.LoadOptions{
	KeyValueDelimiters:       "=",
	AllowShadows:             true,
	SpaceBeforeInlineComment: true,
}

// Load scans each directory for descriptor files and merges them into one
// overload table. The module named core always loads; any other module
// loads only when its name appears in using. Any parse failure is fatal:
// the resolver runs to completion or not at all.
func Load(dirs []string, using []string, bag *diagnostics.DiagnosticBag) (*Table, error) {
	requested := make(map[string]bool, len(using))
	for _, name := range using {
		requested[name] = true
	}

	table := NewTable()
	for _, dir := range dirs {
		paths, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
		if err != nil {
			return nil, diagnostics.DescriptorError(dir, err.Error())
		}
		sort.Strings(paths)
		for _, path := range paths {
			if err := loadFile(table, path, requested, bag); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}

func loadFile(table *Table, path string, requested map[string]bool, bag *diagnostics.DiagnosticBag) error {
	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return diagnostics.DescriptorError(path, err.Error())
	}

	meta, err := cfg.GetSection("meta")
	if err != nil {
		return diagnostics.DescriptorError(path, "missing meta section")
	}
	moduleName := strings.TrimSpace(meta.Key("name").String())
	if moduleName == "" {
		return diagnostics.DescriptorError(path, "missing module name in meta section")
	}

	if moduleName != "core" && !requested[moduleName] {
		return nil
	}

	functions, err := cfg.GetSection("functions")
	if err != nil {
		return diagnostics.DescriptorError(path, "missing functions section")
	}

	for _, key := range functions.Keys() {
		name, tags := splitEntryKey(key.Name())
		if name == "" {
			return diagnostics.DescriptorError(path, "empty function name in entry "+key.Name())
		}
		qualified := moduleName + "." + name
		for _, value := range key.ValueWithShadows() {
			target, perr := parseTarget(value)
			if perr != "" {
				return diagnostics.DescriptorError(path, "entry "+key.Name()+": "+perr)
			}
			if table.register(qualified, tags, target) && bag != nil {
				bag.Add(diagnostics.OverloadOverwritten(qualified, TupleKey(tags)))
			}
		}
	}

	table.addModule(moduleName)
	return nil
}

// splitEntryKey separates "name:tag,tag" into the function name and its
// argument tag tuple. A key without a colon has a nil tuple and matches
// any argument types.
func splitEntryKey(key string) (string, []string) {
	name, tuple, found := strings.Cut(key, ":")
	name = strings.TrimSpace(name)
	if !found {
		return name, nil
	}
	if strings.TrimSpace(tuple) == "" {
		return name, []string{}
	}
	return name, strings.Split(tuple, ",")
}

// parseTarget splits "symbol > returnTag" into a Target. The second
// return value is a non-empty description on malformed input.
func parseTarget(value string) (Target, string) {
	symbol, returnTag, found := strings.Cut(value, ">")
	if !found {
		return Target{}, "expected symbol > returnType, got " + strings.TrimSpace(value)
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Target{}, "empty target symbol"
	}
	return Target{Symbol: symbol, ReturnTag: NormalizeTag(returnTag)}, ""
}
