package analyzer

import (
	"github.com/sdkwire/sdkwire/internal/astx"
	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/models"
	"github.com/sdkwire/sdkwire/internal/typeres"
)

// typeRegistry accumulates every type declaration the generated SDK needs,
// following dependency edges transitively. Declarations are fetched from
// the AST service, resolved, and recorded once per (file, name) pair in
// first-seen order.
type typeRegistry struct {
	service  astx.Service
	resolver *typeres.Resolver
	files    []string                       // first-seen file order
	decls    map[string][]models.TypeDecl   // file -> declarations, first-seen order
	seen     map[string]map[string]struct{} // file -> names already registered
}

func newTypeRegistry(service astx.Service, resolver *typeres.Resolver) *typeRegistry {
	return &typeRegistry{
		service:  service,
		resolver: resolver,
		decls:    make(map[string][]models.TypeDecl),
		seen:     make(map[string]map[string]struct{}),
	}
}

// register records every dependency edge of one resolved type, pulling
// declaration texts and recursing into their own dependencies.
func (tr *typeRegistry) register(deps models.ResolvedTypeDeps) error {
	for _, imp := range deps.Dependencies {
		for _, name := range imp.Types {
			if err := tr.add(imp.File, name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (tr *typeRegistry) add(file, name string) error {
	if names, ok := tr.seen[file]; ok {
		if _, done := names[name]; done {
			return nil
		}
	} else {
		tr.seen[file] = make(map[string]struct{})
		tr.files = append(tr.files, file)
	}
	// mark before recursing so dependency cycles terminate
	tr.seen[file][name] = struct{}{}

	code, err := tr.service.TypeDeclaration(file, name)
	if err != nil {
		return errors.Wrapf(errors.SnapshotErrorCode, err,
			"declaration of type %q in %q is not available", name, file).
			WithSuggestion("Re-run the source analyzer so the snapshot covers every referenced type")
	}

	resolved, err := tr.resolver.Resolve(code, file)
	if err != nil {
		return err
	}

	tr.decls[file] = append(tr.decls[file], models.TypeDecl{
		Name:         name,
		Code:         resolved.ResolvedType,
		Dependencies: resolved.Dependencies,
	})

	return tr.register(resolved)
}

// index returns the accumulated type-file index in first-seen order
func (tr *typeRegistry) index() models.TypeFileIndex {
	idx := make(models.TypeFileIndex, 0, len(tr.files))
	for _, file := range tr.files {
		idx = append(idx, models.TypeFile{Path: file, Decls: tr.decls[file]})
	}
	return idx
}
