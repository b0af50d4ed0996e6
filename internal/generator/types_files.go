package generator

import (
	"strings"

	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/models"
	"github.com/sdkwire/sdkwire/internal/typeres"
)

// renderTypeFile emits one file of the extracted type tree. The file keeps
// the source layout, so declarations import their own dependencies through
// relative specifiers pointing at sibling type files.
func renderTypeFile(tf models.TypeFile) (string, string, error) {
	normalized := typeres.NormalizeExternalFilePath(tf.Path)
	if strings.HasPrefix(normalized, "..") || strings.HasPrefix(normalized, "/") {
		return "", "", errors.Internal("type file path %q escapes the output tree", tf.Path)
	}
	name := "_types/" + normalized + ".ts"

	var merged []models.TypeImport
	for _, decl := range tf.Decls {
		merged = models.MergeImports(merged, decl.Dependencies)
	}

	im := newImportManager()
	for _, dep := range merged {
		if dep.File == tf.Path {
			continue
		}
		spec := relativeSpecifier(normalized, typeres.NormalizeExternalFilePath(dep.File))
		for _, typeName := range dep.Types {
			im.AddType(spec, typeName)
		}
	}

	var b strings.Builder
	b.WriteString(fileHeader)
	if block := im.Render(); block != "" {
		b.WriteString(block)
		b.WriteString("\n")
	}
	for i, decl := range tf.Decls {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(exported(decl.Code))
		b.WriteString("\n")
	}
	return name, b.String(), nil
}

// exported makes sure an extracted declaration is visible to importers
func exported(code string) string {
	trimmed := strings.TrimLeft(code, " \t\n")
	if strings.HasPrefix(trimmed, "export ") || strings.HasPrefix(trimmed, "export\n") {
		return code
	}
	return "export " + trimmed
}

// relativeSpecifier builds the import specifier from the file at fromPath
// to the file at toPath, both slash separated and rooted at the type tree.
func relativeSpecifier(fromPath, toPath string) string {
	fromDir := ""
	if idx := strings.LastIndex(fromPath, "/"); idx >= 0 {
		fromDir = fromPath[:idx]
	}

	fromParts := []string{}
	if fromDir != "" {
		fromParts = strings.Split(fromDir, "/")
	}
	toParts := strings.Split(toPath, "/")

	common := 0
	for common < len(fromParts) && common < len(toParts)-1 && fromParts[common] == toParts[common] {
		common++
	}

	var b strings.Builder
	if common == len(fromParts) {
		b.WriteString("./")
	} else {
		for i := common; i < len(fromParts); i++ {
			b.WriteString("../")
		}
	}
	b.WriteString(strings.Join(toParts[common:], "/"))
	return b.String()
}
