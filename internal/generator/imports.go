package generator

import (
	"fmt"
	"sort"
	"strings"
)

// importManager deduplicates type imports for one generated file and
// renders them as sorted `import type` statements.
type importManager struct {
	names map[string]map[string]struct{} // import path -> type names
	value map[string]map[string]struct{} // value imports (request helper etc.)
}

func newImportManager() *importManager {
	return &importManager{
		names: make(map[string]map[string]struct{}),
		value: make(map[string]map[string]struct{}),
	}
}

// AddType records one type-only import
func (im *importManager) AddType(path, name string) {
	if path == "" || name == "" {
		return
	}
	if im.names[path] == nil {
		im.names[path] = make(map[string]struct{})
	}
	im.names[path][name] = struct{}{}
}

// AddValue records one value import
func (im *importManager) AddValue(path, name string) {
	if path == "" || name == "" {
		return
	}
	if im.value[path] == nil {
		im.value[path] = make(map[string]struct{})
	}
	im.value[path][name] = struct{}{}
}

// Render produces the import block, value imports first, both sorted by
// path for deterministic output.
func (im *importManager) Render() string {
	var b strings.Builder
	for _, path := range sortedKeys(im.value) {
		b.WriteString(fmt.Sprintf("import { %s } from '%s';\n", joinSorted(im.value[path]), path))
	}
	for _, path := range sortedKeys(im.names) {
		b.WriteString(fmt.Sprintf("import type { %s } from '%s';\n", joinSorted(im.names[path]), path))
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func sortedKeys(m map[string]map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinSorted(set map[string]struct{}) string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
