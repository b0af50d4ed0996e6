// Package params reconciles the decorated arguments of one method into the
// three independent parameter slots of the model.
package params

import (
	"github.com/sdkwire/sdkwire/internal/astx"
	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/models"
	"github.com/sdkwire/sdkwire/internal/route"
	"github.com/sdkwire/sdkwire/internal/typeres"
)

// Marker names recognized on method parameters. Anything else on a
// parameter is treated as absence.
const (
	RouteMarker = "Param"
	QueryMarker = "Query"
	BodyMarker  = "Body"
)

// Context carries everything needed to merge one method's arguments
type Context struct {
	Controller string
	Method     string
	SourceFile string
	HTTPMethod models.HTTPMethod
	Route      route.Route
	Args       []astx.Param
	Resolver   *typeres.Resolver
}

func (c Context) location() errors.SourceLocation {
	return errors.SourceLocation{
		File:       c.SourceFile,
		Controller: c.Controller,
		Method:     c.Method,
	}
}

// decoratedArg pairs a declared argument with its recognized marker
type decoratedArg struct {
	param astx.Param
	key   string // explicit key from the marker argument, "" when keyless
}

// Extract merges the decorated arguments into MethodParams. All contract
// violations are fatal; merging the same argument set twice yields
// structurally identical results.
func Extract(ctx Context) (models.MethodParams, error) {
	groups := map[models.ParamKind][]decoratedArg{}

	for _, arg := range ctx.Args {
		kind, dec, ok := recognizeMarker(arg.Decorators)
		if !ok {
			// undecorated arguments (framework context objects and the
			// like) are not part of the client surface
			continue
		}
		key, err := markerKey(ctx, arg, dec)
		if err != nil {
			return models.MethodParams{}, err
		}
		groups[kind] = append(groups[kind], decoratedArg{param: arg, key: key})
	}

	var (
		merged models.MethodParams
		err    error
	)
	if merged.RouteParams, err = buildSlot(ctx, models.ParamKindRoute, groups[models.ParamKindRoute]); err != nil {
		return models.MethodParams{}, err
	}
	if merged.QueryParams, err = buildSlot(ctx, models.ParamKindQuery, groups[models.ParamKindQuery]); err != nil {
		return models.MethodParams{}, err
	}
	if merged.BodyParams, err = buildSlot(ctx, models.ParamKindBody, groups[models.ParamKindBody]); err != nil {
		return models.MethodParams{}, err
	}

	if err := validateRouteSlot(ctx, merged.RouteParams); err != nil {
		return models.MethodParams{}, err
	}
	if err := validateVerb(ctx, merged); err != nil {
		return models.MethodParams{}, err
	}

	return merged, nil
}

// recognizeMarker finds the first recognized parameter marker; all other
// decorators are treated as absence.
func recognizeMarker(decorators []astx.Decorator) (models.ParamKind, astx.Decorator, bool) {
	for _, d := range decorators {
		switch d.Name {
		case RouteMarker:
			return models.ParamKindRoute, d, true
		case QueryMarker:
			return models.ParamKindQuery, d, true
		case BodyMarker:
			return models.ParamKindBody, d, true
		}
	}
	return 0, astx.Decorator{}, false
}

// markerKey extracts the explicit key of a marker, or "" when keyless
func markerKey(ctx Context, arg astx.Param, dec astx.Decorator) (string, error) {
	switch len(dec.Args) {
	case 0:
		return "", nil
	case 1:
		if !dec.Args[0].Literal {
			return "", errors.Newf(errors.MarkerArgumentErrorCode,
				"@%s on argument %q takes a computed value; parameter keys must be string literals",
				dec.Name, arg.Name).
				WithLocation(ctx.location()).
				WithContext("argument", arg.Name)
		}
		return dec.Args[0].Value, nil
	default:
		return "", errors.Newf(errors.MarkerArgumentErrorCode,
			"@%s on argument %q takes %d arguments; at most one key is allowed",
			dec.Name, arg.Name, len(dec.Args)).
			WithLocation(ctx.location()).
			WithContext("argument", arg.Name)
	}
}

// buildSlot turns one kind's decorated arguments into a tagged slot
func buildSlot(ctx Context, kind models.ParamKind, args []decoratedArg) (models.ParamSlot, error) {
	if len(args) == 0 {
		return models.AbsentSlot(), nil
	}

	var keyed, keyless []decoratedArg
	for _, a := range args {
		if a.key == "" {
			keyless = append(keyless, a)
		} else {
			keyed = append(keyed, a)
		}
	}

	if len(keyed) > 0 && len(keyless) > 0 {
		return models.ParamSlot{}, errors.Newf(errors.ParamContractErrorCode,
			"cannot mix keyed and keyless @%s parameters in the same method", markerName(kind)).
			WithLocation(ctx.location()).
			WithSuggestion("Either give every parameter of this kind an explicit key, or use a single whole-object parameter")
	}

	if len(keyless) > 0 {
		if len(keyless) > 1 {
			return models.ParamSlot{}, errors.Newf(errors.ParamContractErrorCode,
				"method declares %d keyless @%s parameters; only one whole-object parameter is allowed",
				len(keyless), markerName(kind)).
				WithLocation(ctx.location())
		}
		arg := keyless[0]
		if !arg.param.Type.Object {
			return models.ParamSlot{}, errors.Newf(errors.ParamContractErrorCode,
				"keyless @%s argument %q has non-object type %q; a keyless parameter must be a whole object",
				markerName(kind), arg.param.Name, arg.param.Type.Text).
				WithLocation(ctx.location()).
				WithSuggestion("Give the parameter an explicit key, or type it as an object")
		}
		deps, err := ctx.Resolver.Resolve(arg.param.Type.Text, ctx.SourceFile)
		if err != nil {
			return models.ParamSlot{}, err
		}
		return models.SingleSlot(deps), nil
	}

	seen := make(map[string]struct{}, len(keyed))
	entries := make([]models.KeyedParam, 0, len(keyed))
	for _, a := range keyed {
		if _, dup := seen[a.key]; dup {
			return models.ParamSlot{}, errors.Newf(errors.ParamContractErrorCode,
				"%s parameter %q is used twice in controller method", markerName(kind), a.key).
				WithLocation(ctx.location()).
				WithContext("key", a.key)
		}
		seen[a.key] = struct{}{}
		deps, err := ctx.Resolver.Resolve(a.param.Type.Text, ctx.SourceFile)
		if err != nil {
			return models.ParamSlot{}, err
		}
		entries = append(entries, models.KeyedParam{Name: a.key, Type: deps})
	}
	return models.KeyedSlot(entries), nil
}

// validateRouteSlot checks that every exposed route-slot name appears in
// the route template; the rule is applied uniformly, including routes
// without any parameter segments.
func validateRouteSlot(ctx Context, slot models.ParamSlot) error {
	var names []string
	switch slot.Kind {
	case models.SlotAbsent:
		return nil
	case models.SlotSingle:
		names = routeSlotPropertyNames(ctx)
	case models.SlotKeyed:
		names = slot.Keys()
	}

	for _, name := range names {
		if !ctx.Route.HasParam(name) {
			return errors.Newf(errors.ParamContractErrorCode,
				"route param %q does not appear in route URL %q", name, ctx.Route.Unparse()).
				WithLocation(ctx.location()).
				WithContext("http_method", string(ctx.HTTPMethod)).
				WithContext("route", ctx.Route.Unparse())
		}
	}
	return nil
}

// routeSlotPropertyNames finds the declared property names of the single
// whole-object route parameter
func routeSlotPropertyNames(ctx Context) []string {
	for _, arg := range ctx.Args {
		kind, dec, ok := recognizeMarker(arg.Decorators)
		if ok && kind == models.ParamKindRoute && len(dec.Args) == 0 {
			return arg.Type.Properties
		}
	}
	return nil
}

// validateVerb enforces the transport semantics: no body on GET, no query
// on anything else.
func validateVerb(ctx Context, merged models.MethodParams) error {
	if ctx.HTTPMethod == models.HTTPGet && !merged.BodyParams.IsAbsent() {
		return errors.Newf(errors.ParamContractErrorCode,
			"GET method declares a @%s parameter; bodies are not meaningful on GET", BodyMarker).
			WithLocation(ctx.location()).
			WithContext("http_method", string(ctx.HTTPMethod))
	}
	if ctx.HTTPMethod != models.HTTPGet && !merged.QueryParams.IsAbsent() {
		return errors.Newf(errors.ParamContractErrorCode,
			"%s method declares a @%s parameter; query params are only supported on GET", ctx.HTTPMethod, QueryMarker).
			WithLocation(ctx.location()).
			WithContext("http_method", string(ctx.HTTPMethod))
	}
	return nil
}

func markerName(kind models.ParamKind) string {
	switch kind {
	case models.ParamKindRoute:
		return RouteMarker
	case models.ParamKindQuery:
		return QueryMarker
	default:
		return BodyMarker
	}
}
