package models

// SlotKind tags the three states a parameter slot can be in. Consumers
// must handle all three; mixing is rejected at construction time by the
// parameter merger.
type SlotKind int

const (
	SlotAbsent SlotKind = iota
	SlotSingle
	SlotKeyed
)

// KeyedParam is one named entry of a keyed parameter slot
type KeyedParam struct {
	Name string
	Type ResolvedTypeDeps
}

// ParamSlot is a tagged variant: absent, a single pass-through type, or a
// keyed composite. Exactly one of Single/Keyed is populated, per Kind.
type ParamSlot struct {
	Kind   SlotKind
	Single *ResolvedTypeDeps // set when Kind == SlotSingle
	Keyed  []KeyedParam      // set when Kind == SlotKeyed, declaration order
}

// AbsentSlot returns the empty slot
func AbsentSlot() ParamSlot {
	return ParamSlot{Kind: SlotAbsent}
}

// SingleSlot returns a pass-through slot carrying one whole-object type
func SingleSlot(deps ResolvedTypeDeps) ParamSlot {
	return ParamSlot{Kind: SlotSingle, Single: &deps}
}

// KeyedSlot returns a keyed composite slot
func KeyedSlot(params []KeyedParam) ParamSlot {
	return ParamSlot{Kind: SlotKeyed, Keyed: params}
}

// IsAbsent reports whether the slot carries no parameters
func (s ParamSlot) IsAbsent() bool {
	return s.Kind == SlotAbsent
}

// Keys returns the exposed names of a keyed slot, in declaration order
func (s ParamSlot) Keys() []string {
	if s.Kind != SlotKeyed {
		return nil
	}
	names := make([]string, len(s.Keyed))
	for i, p := range s.Keyed {
		names[i] = p.Name
	}
	return names
}

// Deps returns every resolved type the slot references
func (s ParamSlot) Deps() []ResolvedTypeDeps {
	switch s.Kind {
	case SlotSingle:
		return []ResolvedTypeDeps{*s.Single}
	case SlotKeyed:
		deps := make([]ResolvedTypeDeps, len(s.Keyed))
		for i, p := range s.Keyed {
			deps[i] = p.Type
		}
		return deps
	default:
		return nil
	}
}

// MethodParams holds the three independently-optional parameter slots of
// one method.
type MethodParams struct {
	RouteParams ParamSlot
	QueryParams ParamSlot
	BodyParams  ParamSlot
}

// AllDeps returns every resolved type referenced by any slot
func (p MethodParams) AllDeps() []ResolvedTypeDeps {
	var deps []ResolvedTypeDeps
	deps = append(deps, p.RouteParams.Deps()...)
	deps = append(deps, p.QueryParams.Deps()...)
	deps = append(deps, p.BodyParams.Deps()...)
	return deps
}
