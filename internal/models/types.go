package models

// HTTPMethod is the HTTP verb a generated method dispatches with
type HTTPMethod string

const (
	HTTPGet    HTTPMethod = "GET"
	HTTPPost   HTTPMethod = "POST"
	HTTPPut    HTTPMethod = "PUT"
	HTTPPatch  HTTPMethod = "PATCH"
	HTTPDelete HTTPMethod = "DELETE"
)

// IsQuery reports whether the verb lands in the "queries" block of
// generated output. Everything else is a mutation.
func (m HTTPMethod) IsQuery() bool {
	return m == HTTPGet
}

// ParamKind represents where a decorated argument is sourced from
type ParamKind int

const (
	ParamKindRoute ParamKind = iota
	ParamKindQuery
	ParamKindBody
)

// String returns the decorator-facing name of the parameter kind
func (k ParamKind) String() string {
	switch k {
	case ParamKindRoute:
		return "path"
	case ParamKindQuery:
		return "query"
	case ParamKindBody:
		return "body"
	default:
		return "unknown"
	}
}
