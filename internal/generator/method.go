package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sdkwire/sdkwire/internal/models"
)

// renderedMethod is one method prepared for emission
type renderedMethod struct {
	Name       string
	ParamsType string // "" when the method takes no argument object
	ReturnType string
	Body       string // indented statement block
	IsQuery    bool
}

// renderMethod lowers one model method into TypeScript. The caller-side
// contract: route params are destructured out of the single argument
// object in route order, the remainder becomes the query payload on GET
// or the body payload otherwise.
func renderMethod(m models.Method) (renderedMethod, error) {
	routeNames := m.Route.Params()

	payloadSlot := m.Params.BodyParams
	if m.HTTPMethod.IsQuery() {
		payloadSlot = m.Params.QueryParams
	}

	paramsType := paramsTypeExpr(m, payloadSlot)

	routeExpr, err := routeLiteral(m)
	if err != nil {
		return renderedMethod{}, err
	}

	var b strings.Builder
	if paramsType == "" {
		b.WriteString(fmt.Sprintf("    return request('%s', %s, null, {});\n", m.HTTPMethod, routeExpr))
	} else {
		rest := restBinding(routeNames)
		names := append(append([]string(nil), routeNames...), "..."+rest)
		b.WriteString(fmt.Sprintf("    const { %s } = params;\n", strings.Join(names, ", ")))
		if m.HTTPMethod.IsQuery() {
			b.WriteString(fmt.Sprintf("    return request('%s', %s, null, %s);\n", m.HTTPMethod, routeExpr, rest))
		} else {
			b.WriteString(fmt.Sprintf("    return request('%s', %s, %s, {});\n", m.HTTPMethod, routeExpr, rest))
		}
	}

	return renderedMethod{
		Name:       m.Name,
		ParamsType: paramsType,
		ReturnType: promisify(m.ReturnType.ResolvedType),
		Body:       b.String(),
		IsQuery:    m.HTTPMethod.IsQuery(),
	}, nil
}

// restBinding picks the remainder binding name, stepping aside when a
// route parameter already claims it
func restBinding(routeNames []string) string {
	rest := "rest"
	for taken(routeNames, rest) {
		rest = "_" + rest
	}
	return rest
}

func taken(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// signature renders the argument list of one method
func (rm renderedMethod) signature() string {
	if rm.ParamsType == "" {
		return "()"
	}
	return fmt.Sprintf("(params: %s)", rm.ParamsType)
}

// routeLiteral renders the final route expression: a plain string when the
// route has no parameters, a template literal interpolating the
// destructured locals otherwise.
func routeLiteral(m models.Method) (string, error) {
	if len(m.Route.Params()) == 0 {
		rendered, err := m.Route.ResolveWith(func(string) string { return "" })
		if err != nil {
			return "", err
		}
		return "'" + rendered + "'", nil
	}
	rendered, err := m.Route.ResolveWith(func(name string) string {
		return "${" + name + "}"
	})
	if err != nil {
		return "", err
	}
	return "`" + rendered + "`", nil
}

// paramsTypeExpr combines the route slot and the payload slot into the
// type of the single caller-supplied argument object.
func paramsTypeExpr(m models.Method, payloadSlot models.ParamSlot) string {
	var parts []string
	if routePart := routeSlotType(m); routePart != "" {
		parts = append(parts, routePart)
	}
	if payloadPart := slotTypeExpr(payloadSlot); payloadPart != "" {
		parts = append(parts, payloadPart)
	}
	return strings.Join(parts, " & ")
}

// routeSlotType types the route-sourced part of the argument object.
// Every route parameter is covered: declared keys use their resolved
// types, parameters the method does not declare default to string.
func routeSlotType(m models.Method) string {
	names := m.Route.Params()
	slot := m.Params.RouteParams

	if slot.Kind == models.SlotSingle {
		return slot.Single.ResolvedType
	}
	if len(names) == 0 {
		return slotTypeExpr(slot)
	}

	declared := make(map[string]string)
	if slot.Kind == models.SlotKeyed {
		for _, p := range slot.Keyed {
			declared[p.Name] = p.Type.ResolvedType
		}
	}

	fields := make([]string, 0, len(names))
	for _, name := range names {
		typ, ok := declared[name]
		if !ok {
			typ = "string"
		}
		fields = append(fields, fmt.Sprintf("%s: %s", propertyKey(name), typ))
	}
	return "{ " + strings.Join(fields, "; ") + " }"
}

// slotTypeExpr types one slot on its own
func slotTypeExpr(slot models.ParamSlot) string {
	switch slot.Kind {
	case models.SlotSingle:
		return slot.Single.ResolvedType
	case models.SlotKeyed:
		fields := make([]string, 0, len(slot.Keyed))
		for _, p := range slot.Keyed {
			fields = append(fields, fmt.Sprintf("%s: %s", propertyKey(p.Name), p.Type.ResolvedType))
		}
		return "{ " + strings.Join(fields, "; ") + " }"
	default:
		return ""
	}
}

var tsIdent = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// propertyKey quotes object keys that are not plain TS identifiers
func propertyKey(name string) string {
	if tsIdent.MatchString(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "\\'") + "'"
}

// promisify wraps a return type in Promise unless it already is one
func promisify(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		t = "void"
	}
	if strings.HasPrefix(t, "Promise<") {
		return t
	}
	return "Promise<" + t + ">"
}

var identUnsafe = regexp.MustCompile(`[^A-Za-z0-9_$]`)

// identSafe maps a registration name to a valid TS identifier
func identSafe(name string) string {
	safe := identUnsafe.ReplaceAllString(name, "_")
	if safe == "" || (safe[0] >= '0' && safe[0] <= '9') {
		safe = "_" + safe
	}
	return safe
}
