// Package generator renders the completed SDK model into one in-memory
// file map per requested output flavor. Writing, directory handling and
// formatting belong to the surrounding CLI layer; every generated file is
// a pure function of the immutable SdkContent.
package generator

import (
	"fmt"
	"path"
	"strings"

	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/models"
	"github.com/sdkwire/sdkwire/internal/typeres"
	"github.com/sdkwire/sdkwire/internal/utils"
)

// Flavor selects one target shape of generated client code
type Flavor string

const (
	// FlavorPlain emits async request wrapper functions
	FlavorPlain Flavor = "plain"
	// FlavorBuilder additionally emits typed query/mutation builder tables
	FlavorBuilder Flavor = "builder"
)

// ParseFlavor validates a flavor name from configuration
func ParseFlavor(s string) (Flavor, error) {
	switch Flavor(s) {
	case FlavorPlain:
		return FlavorPlain, nil
	case FlavorBuilder:
		return FlavorBuilder, nil
	default:
		return "", errors.Newf(errors.ConfigurationErrorCode,
			"unknown generation flavor %q (want %q or %q)", s, FlavorPlain, FlavorBuilder)
	}
}

// NamingRules are the configured suffix adjustments for controller class,
// file and export names
type NamingRules struct {
	StripClassSuffix string // trimmed from the class name before deriving names
	FileSuffix       string // appended to the controller file base name
	ExportSuffix     string // appended to the controller export name
}

// Options carries generation configuration into the backend
type Options struct {
	Naming NamingRules
}

// fileHeader opens every generated file. Its presence in the aggregation
// entry file is how a prior generation is recognized on regeneration.
const fileHeader = "/* eslint-disable */\n// Generated by sdkwire. Do not edit.\n\n"

// EntryFileName is the aggregation entry file of a generated tree
const EntryFileName = "index.ts"

// Generate renders one flavor of the SDK. Flavors are independent,
// order-insensitive outputs; callers write each returned map into its own
// disjoint subtree.
func Generate(content *models.SdkContent, flavor Flavor, opts Options) (map[string]string, error) {
	files := make(map[string]string)

	files["central.ts"] = renderCentral()

	for _, tf := range content.Types {
		name, body, err := renderTypeFile(tf)
		if err != nil {
			return nil, err
		}
		files[name] = body
	}

	for _, module := range content.Modules {
		for _, controller := range module.Controllers {
			body, err := renderController(module, controller, flavor, opts)
			if err != nil {
				return nil, err
			}
			files[path.Join(module.Name, opts.controllerFileName(controller))] = body
		}
		files[path.Join(module.Name, EntryFileName)] = renderModuleIndex(module, flavor, opts)
	}

	files[EntryFileName] = renderRootIndex(content, flavor, opts)

	return files, nil
}

// controllerBase derives the shared base name of a controller's file and
// export from its class name
func (o Options) controllerBase(c models.Controller) string {
	return utils.CamelCase(utils.StripSuffix(c.ClassName, o.Naming.StripClassSuffix))
}

func (o Options) controllerFileName(c models.Controller) string {
	return o.controllerBase(c) + o.Naming.FileSuffix + ".ts"
}

func (o Options) controllerModuleSpecifier(c models.Controller) string {
	return "./" + o.controllerBase(c) + o.Naming.FileSuffix
}

// controllerExportName is the identifier a module index re-exports the
// controller under. Registration names may carry path separators, so the
// name is sanitized before the configured suffix is appended.
func (o Options) controllerExportName(c models.Controller) string {
	return identSafe(c.RegistrationName) + o.Naming.ExportSuffix
}

// renderCentral emits the shared request-dispatch entry point. Its
// request(method, route, body, query) contract is stable across flavors
// so hand-written dispatch implementations keep working.
func renderCentral() string {
	var b strings.Builder
	b.WriteString(fileHeader)
	b.WriteString(`export type HttpMethod = 'GET' | 'POST' | 'PUT' | 'PATCH' | 'DELETE';

export type RequestHandler = (
  method: HttpMethod,
  route: string,
  body: unknown,
  query: Record<string, unknown>,
) => Promise<any>;

let handler: RequestHandler | null = null;

export function setRequestHandler(fn: RequestHandler): void {
  handler = fn;
}

export function request(method: HttpMethod, route: string, body: unknown, query: Record<string, unknown>): Promise<any> {
  if (!handler) {
    throw new Error('sdkwire: no request handler registered, call setRequestHandler() first');
  }
  return handler(method, route, body, query);
}
`)
	return b.String()
}

// renderModuleIndex re-exports every controller of one module under its
// stable registration name
func renderModuleIndex(module models.Module, flavor Flavor, opts Options) string {
	var b strings.Builder
	b.WriteString(fileHeader)
	for _, controller := range module.Controllers {
		b.WriteString(fmt.Sprintf("export { default as %s } from '%s';\n",
			opts.controllerExportName(controller), opts.controllerModuleSpecifier(controller)))
		if flavor == FlavorBuilder {
			b.WriteString(fmt.Sprintf("export { %s } from '%s';\n",
				builderExportName(controller), opts.controllerModuleSpecifier(controller)))
		}
	}
	return b.String()
}

// renderRootIndex emits the aggregation entry file for a whole tree
func renderRootIndex(content *models.SdkContent, flavor Flavor, opts Options) string {
	var b strings.Builder
	b.WriteString(fileHeader)
	b.WriteString("export { request, setRequestHandler } from './central';\n")
	b.WriteString("export type { HttpMethod, RequestHandler } from './central';\n\n")
	for _, module := range content.Modules {
		b.WriteString(fmt.Sprintf("export * as %s from './%s';\n", module.Name, module.Name))
	}
	if flavor == FlavorBuilder {
		b.WriteString("\n")
		b.WriteString(renderBuilderAggregation(content, opts))
	}
	return b.String()
}

// typeImportPath maps a dependency file to the import specifier one
// generated file uses to reach it inside the _types tree. fromDepth is
// the directory depth of the importing file below the tree root.
func typeImportPath(depFile string, fromDepth int) string {
	normalized := typeres.NormalizeExternalFilePath(depFile)
	return strings.Repeat("../", fromDepth) + "_types/" + normalized
}
