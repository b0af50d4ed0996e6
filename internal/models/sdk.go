package models

import "github.com/sdkwire/sdkwire/internal/route"

// Method is one generated client method: a verb, a parsed route, the
// merged parameter slots, and the resolved return type. Methods without a
// recognized verb marker never make it into the model.
type Method struct {
	Name       string
	HTTPMethod HTTPMethod
	Route      route.Route
	Params     MethodParams
	ReturnType ResolvedTypeDeps
}

// Controller groups the generated methods of one annotated class
type Controller struct {
	ClassName        string // class name in the analyzed source
	RegistrationName string // camel-cased class name unless overridden
	SourcePath       string // source file, relative to the analysis root
	Methods          []Method
}

// Module groups controllers the way the analyzed source groups them.
// Ownership is exclusive: one controller belongs to exactly one module.
type Module struct {
	Name        string
	Controllers []Controller
}

// TypeDecl is one extracted type declaration destined for the _types tree
type TypeDecl struct {
	Name         string
	Code         string       // qualifier-free declaration text
	Dependencies []TypeImport // cross-file deps of the declaration itself
}

// TypeFile is the set of declarations extracted from one source file
type TypeFile struct {
	Path  string // normalized path relative to the analysis root
	Decls []TypeDecl
}

// TypeFileIndex lists every source file contributing type declarations,
// in first-seen order.
type TypeFileIndex []TypeFile

// Lookup returns the declarations recorded for a path
func (idx TypeFileIndex) Lookup(path string) (TypeFile, bool) {
	for _, tf := range idx {
		if tf.Path == path {
			return tf, true
		}
	}
	return TypeFile{}, false
}

// SdkContent is the complete, immutable output of analysis. Generation
// only reads it; each generated file is a pure function of this value.
type SdkContent struct {
	Types   TypeFileIndex
	Modules []Module
}
