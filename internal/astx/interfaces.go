// Package astx is the boundary to the external source AST service.
//
// The core never parses annotated source itself; it queries declarations
// through the Service interface. Textual type representations arrive with
// cross-file references embedded as import qualifiers, exactly as the
// upstream type checker prints them.
package astx

// DecoratorArg is one argument of a decorator call. Non-literal arguments
// (variables, computed expressions) are reported with Literal == false and
// an opaque source rendering in Value.
type DecoratorArg struct {
	Value   string `json:"value"`
	Literal bool   `json:"literal"`
}

// Decorator is a marker attached to a class, method or parameter
type Decorator struct {
	Name string         `json:"name"`
	Args []DecoratorArg `json:"args,omitempty"`
}

// TypeRef is the textual representation of an already-checked type
type TypeRef struct {
	Text       string   `json:"text"`
	Object     bool     `json:"object"`               // whether the type is object-shaped
	Properties []string `json:"properties,omitempty"` // property names when object-shaped
}

// Param is one declared method parameter
type Param struct {
	Name       string      `json:"name"`
	Decorators []Decorator `json:"decorators,omitempty"`
	Type       TypeRef     `json:"type"`
}

// Method is one declared class method
type Method struct {
	Name       string      `json:"name"`
	Decorators []Decorator `json:"decorators,omitempty"`
	Params     []Param     `json:"params,omitempty"`
	ReturnType TypeRef     `json:"returnType"`
}

// Class is one declared class, with its source file relative to the
// analysis root
type Class struct {
	Name       string      `json:"name"`
	SourcePath string      `json:"sourcePath"`
	Decorators []Decorator `json:"decorators,omitempty"`
	Methods    []Method    `json:"methods,omitempty"`
}

// ModuleDecl is one module with the classes it owns. Grouping is computed
// by the external traversal; ownership is exclusive.
type ModuleDecl struct {
	Name    string  `json:"name"`
	Classes []Class `json:"classes"`
}

// Service is everything the core asks of the AST side
type Service interface {
	// Root returns the analysis root all source paths are relative to
	Root() string

	// Modules enumerates module declarations in source order
	Modules() []ModuleDecl

	// TypeDeclaration returns the declaration text of a named type in a
	// file, with cross-file references embedded as import qualifiers
	TypeDeclaration(file, name string) (string, error)
}

// Find returns the first decorator with the given name, if any
func Find(decorators []Decorator, name string) (Decorator, bool) {
	for _, d := range decorators {
		if d.Name == name {
			return d, true
		}
	}
	return Decorator{}, false
}
