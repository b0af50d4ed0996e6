// Package analyzer walks the declarations exposed by the AST service and
// builds the immutable SdkContent model consumed by generation.
package analyzer

import (
	"github.com/sdkwire/sdkwire/internal/astx"
	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/models"
	"github.com/sdkwire/sdkwire/internal/params"
	"github.com/sdkwire/sdkwire/internal/route"
	"github.com/sdkwire/sdkwire/internal/typeres"
	"github.com/sdkwire/sdkwire/internal/utils"
)

// ControllerMarker registers a class as an API surface. Classes without
// it are assumed to be helpers and skipped with a warning.
const ControllerMarker = "Controller"

// verbMarkers maps recognized method decorators to HTTP verbs. A method
// carrying none of these is not part of the public API surface.
var verbMarkers = map[string]models.HTTPMethod{
	"Get":    models.HTTPGet,
	"Post":   models.HTTPPost,
	"Put":    models.HTTPPut,
	"Patch":  models.HTTPPatch,
	"Delete": models.HTTPDelete,
}

// Analyzer builds the SDK model from the AST service
type Analyzer struct {
	service  astx.Service
	resolver *typeres.Resolver
	registry *typeRegistry
	diag     *utils.DiagnosticSystem
}

// New creates an analyzer over one AST service
func New(service astx.Service, diag *utils.DiagnosticSystem) *Analyzer {
	resolver := typeres.NewResolver(service.Root())
	return &Analyzer{
		service:  service,
		resolver: resolver,
		registry: newTypeRegistry(service, resolver),
		diag:     diag,
	}
}

// Analyze resolves every module, controller and method. Analysis fully
// completes before generation begins; any fatal error aborts the whole
// run with nothing written.
func (a *Analyzer) Analyze() (*models.SdkContent, error) {
	var modules []models.Module

	for _, moduleDecl := range a.service.Modules() {
		module := models.Module{Name: moduleDecl.Name}

		for _, class := range moduleDecl.Classes {
			controller, ok, err := a.analyzeController(class)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			module.Controllers = append(module.Controllers, controller)
		}

		if len(module.Controllers) == 0 {
			a.diag.Verbose("Module %s declares no controllers, skipping", moduleDecl.Name)
			continue
		}
		modules = append(modules, module)
	}

	return &models.SdkContent{
		Types:   a.registry.index(),
		Modules: modules,
	}, nil
}

// analyzeController builds one controller, or reports ok=false when the
// class carries no registration marker.
func (a *Analyzer) analyzeController(class astx.Class) (models.Controller, bool, error) {
	loc := errors.SourceLocation{File: class.SourcePath, Controller: class.Name}

	marker, found := astx.Find(class.Decorators, ControllerMarker)
	if !found {
		a.diag.Warn("Class %s (%s) carries no @%s marker, skipping it", class.Name, class.SourcePath, ControllerMarker)
		return models.Controller{}, false, nil
	}

	registrationName, explicit, err := registrationName(class, marker, loc)
	if err != nil {
		return models.Controller{}, false, err
	}

	controller := models.Controller{
		ClassName:        class.Name,
		RegistrationName: registrationName,
		SourcePath:       class.SourcePath,
	}

	for _, method := range class.Methods {
		built, ok, err := a.analyzeMethod(class, method, registrationName, explicit)
		if err != nil {
			return models.Controller{}, false, err
		}
		if !ok {
			continue
		}
		controller.Methods = append(controller.Methods, built)
	}

	return controller, true, nil
}

// registrationName resolves the controller's registration name and whether
// it was explicitly declared
func registrationName(class astx.Class, marker astx.Decorator, loc errors.SourceLocation) (string, bool, error) {
	switch len(marker.Args) {
	case 0:
		return utils.CamelCase(class.Name), false, nil
	case 1:
		if !marker.Args[0].Literal {
			return "", false, errors.Newf(errors.MarkerArgumentErrorCode,
				"@%s on class %s takes a computed name; registration names must be string literals",
				ControllerMarker, class.Name).
				WithLocation(loc)
		}
		return marker.Args[0].Value, true, nil
	default:
		return "", false, errors.Newf(errors.MarkerArgumentErrorCode,
			"@%s on class %s takes %d arguments; at most one registration name is allowed",
			ControllerMarker, class.Name, len(marker.Args)).
			WithLocation(loc)
	}
}

// analyzeMethod builds one method, or reports ok=false when the method
// carries no recognized verb marker.
func (a *Analyzer) analyzeMethod(class astx.Class, method astx.Method, registrationName string, explicit bool) (models.Method, bool, error) {
	loc := errors.SourceLocation{File: class.SourcePath, Controller: class.Name, Method: method.Name}

	verb, template, ok, err := a.verbAndTemplate(method, loc)
	if err != nil {
		return models.Method{}, false, err
	}
	if !ok {
		a.diag.Verbose("Method %s.%s carries no HTTP verb marker, not part of the API surface", class.Name, method.Name)
		return models.Method{}, false, nil
	}

	// an explicitly registered controller prefixes every route it owns
	if explicit {
		template = "/" + registrationName + template
	}

	parsed, err := route.Parse(template)
	if err != nil {
		if we, isWire := err.(*errors.BaseError); isWire {
			return models.Method{}, false, we.WithLocation(loc)
		}
		return models.Method{}, false, err
	}

	merged, err := params.Extract(params.Context{
		Controller: class.Name,
		Method:     method.Name,
		SourceFile: class.SourcePath,
		HTTPMethod: verb,
		Route:      parsed,
		Args:       method.Params,
		Resolver:   a.resolver,
	})
	if err != nil {
		return models.Method{}, false, err
	}

	returnType, err := a.resolver.Resolve(method.ReturnType.Text, class.SourcePath)
	if err != nil {
		return models.Method{}, false, err
	}

	if err := a.registry.register(returnType); err != nil {
		return models.Method{}, false, err
	}
	for _, deps := range merged.AllDeps() {
		if err := a.registry.register(deps); err != nil {
			return models.Method{}, false, err
		}
	}

	return models.Method{
		Name:       method.Name,
		HTTPMethod: verb,
		Route:      parsed,
		Params:     merged,
		ReturnType: returnType,
	}, true, nil
}

// verbAndTemplate finds the method's verb marker and route template.
// ok=false means no recognized verb marker.
func (a *Analyzer) verbAndTemplate(method astx.Method, loc errors.SourceLocation) (models.HTTPMethod, string, bool, error) {
	var (
		verb   models.HTTPMethod
		marker astx.Decorator
		count  int
	)
	for _, d := range method.Decorators {
		if v, recognized := verbMarkers[d.Name]; recognized {
			verb, marker = v, d
			count++
		}
	}
	if count == 0 {
		return "", "", false, nil
	}
	if count > 1 {
		return "", "", false, errors.Newf(errors.AmbiguousVerbErrorCode,
			"method carries %d HTTP verb markers; exactly one is allowed", count).
			WithLocation(loc)
	}

	switch len(marker.Args) {
	case 0:
		// just the controller prefix
		return verb, "", true, nil
	case 1:
		if !marker.Args[0].Literal {
			return "", "", false, errors.Newf(errors.MarkerArgumentErrorCode,
				"@%s takes a computed route; computed routes cannot be statically rendered", marker.Name).
				WithLocation(loc)
		}
		template := marker.Args[0].Value
		if template != "" && template[0] != '/' {
			template = "/" + template
		}
		// "/" and trailing slashes are the decorator spelling of the bare
		// controller prefix; canonicalize before parsing
		for len(template) > 0 && template[len(template)-1] == '/' {
			template = template[:len(template)-1]
		}
		return verb, template, true, nil
	default:
		return "", "", false, errors.Newf(errors.MarkerArgumentErrorCode,
			"@%s takes %d arguments; at most one route template is allowed", marker.Name, len(marker.Args)).
			WithLocation(loc)
	}
}
