package models

// TypeImport groups the type names imported from a single source file
type TypeImport struct {
	File  string   // path relative to the analysis root
	Types []string // deduplicated, first-seen order
}

// ResolvedTypeDeps is the outcome of resolving one textual type occurrence.
// ResolvedType carries no embedded cross-file qualifiers; every qualifier
// found in RawType appears exactly once under its origin file in
// Dependencies. Instances are created once and never mutated.
type ResolvedTypeDeps struct {
	RawType      string       // type text as reported by the AST service
	ResolvedType string       // qualifier-free type text
	OriginFile   string       // file the type text was read from
	Dependencies []TypeImport // file -> type names, first-seen order
	LocalTypes   []string     // qualifier targets living in OriginFile itself
}

// MergeImports folds additional dependency edges into an existing ordered
// list, preserving first-seen order of both files and type names.
func MergeImports(into []TypeImport, extra []TypeImport) []TypeImport {
	for _, imp := range extra {
		into = mergeOne(into, imp.File, imp.Types)
	}
	return into
}

func mergeOne(into []TypeImport, file string, types []string) []TypeImport {
	for i := range into {
		if into[i].File != file {
			continue
		}
		for _, name := range types {
			if !containsString(into[i].Types, name) {
				into[i].Types = append(into[i].Types, name)
			}
		}
		return into
	}
	return append(into, TypeImport{File: file, Types: append([]string(nil), types...)})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
