package generator

import (
	"fmt"
	"strings"

	"github.com/sdkwire/sdkwire/internal/models"
)

// builderExportName is the stable export name of one controller's
// query/mutation descriptor table
func builderExportName(c models.Controller) string {
	return identSafe(c.RegistrationName) + "Builder"
}

// renderBuilderTable emits the static descriptor table of one controller.
// Each descriptor closes over the caller's argument object and invokes
// the controller's own method, so dispatch behavior is identical to the
// plain wrappers.
func renderBuilderTable(controller models.Controller, objectName string, queries, mutations []renderedMethod) string {
	reg := controller.RegistrationName

	var b strings.Builder
	b.WriteString(fmt.Sprintf("export const %s = {\n", builderExportName(controller)))

	b.WriteString("  queries: {\n")
	for _, rm := range queries {
		b.WriteString(renderDescriptor(reg, objectName, rm, "fetch"))
	}
	b.WriteString("  },\n")

	b.WriteString("  mutations: {\n")
	for _, rm := range mutations {
		b.WriteString(renderDescriptor(reg, objectName, rm, "run"))
	}
	b.WriteString("  },\n")

	b.WriteString("};\n")
	return b.String()
}

// renderDescriptor emits one query/mutation descriptor entry
func renderDescriptor(reg, objectName string, rm renderedMethod, invoke string) string {
	if rm.ParamsType == "" {
		return fmt.Sprintf("    %s: () => ({\n      key: ['%s', '%s'] as const,\n      %s: () => %s.%s(),\n    }),\n",
			rm.Name, reg, rm.Name, invoke, objectName, rm.Name)
	}
	return fmt.Sprintf("    %s: (params: %s) => ({\n      key: ['%s', '%s', params] as const,\n      %s: () => %s.%s(params),\n    }),\n",
		rm.Name, rm.ParamsType, reg, rm.Name, invoke, objectName, rm.Name)
}

// renderBuilderAggregation emits the function merging every controller's
// descriptor table into one builder, keyed by registration name.
func renderBuilderAggregation(content *models.SdkContent, opts Options) string {
	var (
		imports strings.Builder
		entries strings.Builder
	)
	for _, module := range content.Modules {
		for _, controller := range module.Controllers {
			imports.WriteString(fmt.Sprintf("import { %s } from './%s/%s%s';\n",
				builderExportName(controller), module.Name, opts.controllerBase(controller), opts.Naming.FileSuffix))
			entries.WriteString(fmt.Sprintf("    %s: %s,\n",
				identSafe(controller.RegistrationName), builderExportName(controller)))
		}
	}

	var b strings.Builder
	b.WriteString(imports.String())
	b.WriteString("\nexport function createSdkBuilder() {\n")
	b.WriteString("  return {\n")
	b.WriteString(entries.String())
	b.WriteString("  } as const;\n")
	b.WriteString("}\n")
	return b.String()
}
