// Package typeres resolves textual type representations into qualifier-free
// type strings plus explicit cross-file dependency edges.
//
// The AST service reports types with cross-file references embedded as
// qualifiers of the fixed form `import("<path>").<TypeName>`. The resolver
// never re-derives type soundness; it only rewrites the already-checked
// textual representation.
package typeres

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/models"
)

// qualifierPattern matches one embedded cross-file qualifier:
// import("…/file").TypeName or import('…/file').TypeName
var qualifierPattern = regexp.MustCompile(`import\((["'])([^"')]+)["']\)\.([A-Za-z_$][A-Za-z0-9_$]*)`)

// Resolver rewrites type texts against one analysis root
type Resolver struct {
	root string // analysis root; absolute qualifier paths become relative to it
}

// NewResolver creates a resolver for the given analysis root
func NewResolver(root string) *Resolver {
	return &Resolver{root: path.Clean(toSlash(root))}
}

// Resolve scans every embedded qualifier in typeText in a single pass,
// producing the cleaned type string and the dependency edges together.
//
// Every qualifier is recorded exactly once (deduplicated) under its
// normalized origin file, in first-seen order. Qualifiers pointing back at
// originFile are additionally listed as local types.
func (r *Resolver) Resolve(typeText, originFile string) (models.ResolvedTypeDeps, error) {
	origin := r.normalize(originFile)

	deps := models.ResolvedTypeDeps{
		RawType:    typeText,
		OriginFile: origin,
	}

	var (
		out  strings.Builder
		last int
	)
	for _, m := range qualifierPattern.FindAllStringSubmatchIndex(typeText, -1) {
		// m: [full start,end, quote, path start,end, ident start,end]
		file := typeText[m[4]:m[5]]
		name := typeText[m[6]:m[7]]

		normalized := r.normalize(file)
		deps.Dependencies = mergeDep(deps.Dependencies, normalized, name)
		if normalized == origin && !contains(deps.LocalTypes, name) {
			deps.LocalTypes = append(deps.LocalTypes, name)
		}

		out.WriteString(typeText[last:m[0]])
		out.WriteString(name)
		last = m[1]
	}
	out.WriteString(typeText[last:])
	deps.ResolvedType = out.String()

	// Both checks below guard against defects in the rewrite itself, not
	// against bad input. Emitting anything past them would corrupt output.
	if strings.Contains(deps.ResolvedType, `import(`) {
		return models.ResolvedTypeDeps{}, errors.Internal(
			"resolved type %q still contains an embedded import qualifier", deps.ResolvedType)
	}
	for _, imp := range deps.Dependencies {
		if path.IsAbs(imp.File) {
			return models.ResolvedTypeDeps{}, errors.Internal(
				"normalized dependency path %q is still absolute (analysis root %q)", imp.File, r.root)
		}
	}

	return deps, nil
}

// normalize maps a qualifier path to a path relative to the analysis root.
// Absolute paths are relativized; already-relative paths pass through
// (cleaned).
func (r *Resolver) normalize(p string) string {
	clean := path.Clean(toSlash(p))
	if !path.IsAbs(clean) {
		return clean
	}
	return relSlash(r.root, clean)
}

// NormalizeExternalFilePath maps paths climbing N levels above the
// analysis root into a depth-tagged synthetic directory, so generated
// type-import files never need to climb above the generated output root:
//
//	../../shared/types -> _external2/shared/types
func NormalizeExternalFilePath(p string) string {
	clean := path.Clean(toSlash(p))
	depth := 0
	rest := clean
	for rest == ".." || strings.HasPrefix(rest, "../") {
		depth++
		rest = strings.TrimPrefix(strings.TrimPrefix(rest, ".."), "/")
	}
	if depth == 0 {
		return clean
	}
	if rest == "" || rest == "." {
		return fmt.Sprintf("_external%d", depth)
	}
	return fmt.Sprintf("_external%d/%s", depth, rest)
}

// relSlash computes target relative to base for slash-separated paths
func relSlash(base, target string) string {
	baseParts := splitPath(base)
	targetParts := splitPath(target)

	common := 0
	for common < len(baseParts) && common < len(targetParts) && baseParts[common] == targetParts[common] {
		common++
	}

	var parts []string
	for i := common; i < len(baseParts); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, targetParts[common:]...)
	if len(parts) == 0 {
		return "."
	}
	return strings.Join(parts, "/")
}

func splitPath(p string) []string {
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func mergeDep(deps []models.TypeImport, file, name string) []models.TypeImport {
	for i := range deps {
		if deps[i].File != file {
			continue
		}
		for _, existing := range deps[i].Types {
			if existing == name {
				return deps
			}
		}
		deps[i].Types = append(deps[i].Types, name)
		return deps
	}
	return append(deps, models.TypeImport{File: file, Types: []string{name}})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
