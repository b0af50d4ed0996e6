package generator

import (
	"fmt"
	"strings"

	"github.com/sdkwire/sdkwire/internal/models"
)

// renderController emits one controller file. Both flavors share the
// wrapper object; the builder flavor appends the descriptor table.
func renderController(module models.Module, controller models.Controller, flavor Flavor, opts Options) (string, error) {
	im := newImportManager()
	// controller files live one directory below the tree root
	im.AddValue(strings.Repeat("../", 1)+"central", "request")

	for _, method := range controller.Methods {
		addTypeImports(im, method.ReturnType)
		for _, deps := range method.Params.AllDeps() {
			addTypeImports(im, deps)
		}
	}

	var queries, mutations []renderedMethod
	for _, method := range controller.Methods {
		rm, err := renderMethod(method)
		if err != nil {
			return "", err
		}
		if rm.IsQuery {
			queries = append(queries, rm)
		} else {
			mutations = append(mutations, rm)
		}
	}

	objectName := identSafe(controller.RegistrationName)

	var b strings.Builder
	b.WriteString(fileHeader)
	b.WriteString(im.Render())
	b.WriteString(fmt.Sprintf("const %s = {\n", objectName))
	writeMethodBlock(&b, "Queries", queries)
	if len(queries) > 0 && len(mutations) > 0 {
		b.WriteString("\n")
	}
	writeMethodBlock(&b, "Mutations", mutations)
	b.WriteString("};\n\n")

	if flavor == FlavorBuilder {
		b.WriteString(renderBuilderTable(controller, objectName, queries, mutations))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("export default %s;\n", objectName))
	return b.String(), nil
}

// writeMethodBlock emits one presentational block of methods. The
// queries/mutations split changes nothing about behavior.
func writeMethodBlock(b *strings.Builder, title string, methods []renderedMethod) {
	if len(methods) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("  // %s\n\n", title))
	for _, rm := range methods {
		b.WriteString(fmt.Sprintf("  async %s%s: %s {\n", rm.Name, rm.signature(), rm.ReturnType))
		b.WriteString(rm.Body)
		b.WriteString("  },\n")
	}
}

// addTypeImports records every (file, type) pair of one resolved type,
// rewritten into the generated _types tree
func addTypeImports(im *importManager, deps models.ResolvedTypeDeps) {
	for _, imp := range deps.Dependencies {
		specifier := typeImportPath(imp.File, 1)
		for _, name := range imp.Types {
			im.AddType(specifier, name)
		}
	}
}
