package compose

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"source-composer/internal/common"
	"source-composer/internal/diagnostic"
	"source-composer/internal/match"
	"source-composer/internal/model"
)

// link resolves every type-name occurrence in the graph. Each occurrence is
// a single lookup by identity; the linked Type is shared, never copied.
func (r *run) link() {
	for _, t := range slices.Clone(r.scope.graph.Types()) {
		r.linkType(t)
	}

	for _, a := range r.aliases {
		r.linkAlias(a)
	}

	for _, f := range r.functions {
		r.linkMethod(f, f.DefinedIn, nil)
	}

	for _, g := range r.globals {
		r.linkTypeName(g.TypeName, g.DefinedIn, nil)
	}
}

func (r *run) linkType(t *model.Type) {
	scope := t.Identity
	outer := common.ParentIdentity(t.Identity)
	skip := genericNames(t)

	t.InheritedTypes = r.resolveNames(t.InheritedTypeNames, outer, skip)

	if t.Kind == model.KindProtocolComposition {
		t.ComposedTypes = r.resolveNames(t.ComposedTypeNames, outer, skip)
	}

	for _, p := range t.GenericParameters {
		r.linkTypeName(p.BoundTypeName, scope, skip)
	}

	for _, req := range t.GenericRequirements {
		r.linkTypeName(req.LeftTypeName, scope, skip)
		r.linkTypeName(req.RightTypeName, scope, skip)
	}

	for _, v := range t.Variables {
		r.linkTypeName(v.TypeName, scope, skip)
	}

	for _, m := range t.Methods {
		r.linkMethod(m, scope, skip)
	}

	for _, c := range t.Cases {
		for _, av := range c.AssociatedValues {
			r.linkTypeName(av.TypeName, scope, skip)
		}
	}

	if t.Kind == model.KindEnum {
		t.RawTypeName = r.rawType(t, outer)
	}
}

// linkAlias links the alias's target expression. A composition the alias
// materialized is linked to that type rather than to an inline one.
func (r *run) linkAlias(a *model.Typealias) {
	skip := genericNames(a.Parent)

	if a.TypeName != nil && a.Type != nil && a.Type.Identity == a.Identity {
		a.TypeName.Type = a.Type
		r.links++

		for _, op := range a.TypeName.Composition {
			r.linkTypeName(op, a.ParentIdentity, skip)
		}

		return
	}

	r.linkTypeName(a.TypeName, a.ParentIdentity, skip)
}

func (r *run) linkMethod(m *model.Method, scope string, skip map[string]bool) {
	if len(m.GenericParameters) > 0 {
		skip = withGenerics(skip, m.GenericParameters)

		for _, p := range m.GenericParameters {
			r.linkTypeName(p.BoundTypeName, scope, skip)
		}
	}

	for _, p := range m.Parameters {
		r.linkTypeName(p.TypeName, scope, skip)
	}

	r.linkTypeName(m.ReturnTypeName, scope, skip)
}

// linkTypeName links tn and every expression nested in it.
func (r *run) linkTypeName(tn *model.TypeName, scope string, skip map[string]bool) {
	if tn == nil {
		return
	}

	if tn.IsComposition() {
		tn.Type = r.synthetic(tn, scope, skip)
		r.links++

		for _, op := range tn.Composition {
			r.linkTypeName(op, scope, skip)
		}

		return
	}

	if name := tn.LookupName(); name != "" && !skip[rootName(name)] {
		r.resolveOccurrence(tn, name, scope)
	}

	for _, child := range tn.Children() {
		r.linkTypeName(child, scope, skip)
	}
}

func (r *run) resolveOccurrence(tn *model.TypeName, name, scope string) {
	alias, t := r.scope.lookup(name, scope)
	if alias != nil {
		tn.ActualTypeName = alias.ActualTypeName
		t = alias.Type
	}

	if t == nil {
		r.unresolved++

		if alias == nil {
			r.reportUnresolved(name, scope)
		}

		return
	}

	tn.Type = t
	r.links++
}

// resolveNames links each name and returns the types found, in order.
func (r *run) resolveNames(names []string, scope string, skip map[string]bool) []*model.Type {
	var out []*model.Type

	for _, name := range names {
		tn := model.ParseTypeName(name)
		r.linkTypeName(tn, scope, skip)

		if t := tn.Linked(); t != nil {
			out = append(out, t)
		}
	}

	return out
}

// rawType returns the enum's raw value type: the first inherited name that
// is not a protocol, if it denotes a raw-representable type. Names that do
// not resolve and are not raw-representable are assumed to be protocols.
func (r *run) rawType(t *model.Type, scope string) *model.TypeName {
	for _, name := range t.InheritedTypeNames {
		tn := model.ParseTypeName(name)
		if tn == nil {
			continue
		}

		actual := tn.LookupName()

		alias, decl := r.scope.lookup(actual, scope)
		if alias != nil {
			decl = alias.Type
			tn.ActualTypeName = alias.ActualTypeName

			if alias.ActualTypeName != nil {
				actual = alias.ActualTypeName.LookupName()
			}
		}

		if decl != nil && (decl.IsProtocol() || decl.Kind == model.KindProtocolComposition) {
			continue
		}

		if r.rawSet[actual] {
			tn.Type = decl
			return tn
		}

		if decl != nil {
			return nil
		}
	}

	return nil
}

func (r *run) reportUnresolved(name, scope string) {
	if !r.config.ReportUnresolved || builtinNames[name] || r.rawSet[name] || r.reported[name] {
		return
	}

	r.reported[name] = true

	known := r.scope.graph.Identities()
	known = append(known, slices.Sorted(maps.Keys(r.scope.aliases))...)

	r.diags.Add(diagnostic.Diagnostic{
		Severity:    diagnostic.DiagnosticInfo,
		Code:        diagnostic.CodeUnresolvedReference,
		Message:     fmt.Sprintf("type %s does not resolve to a declaration of this run", name),
		Identity:    scope,
		Suggestions: match.Suggest(name, known, r.config.MaxSuggestions),
	})
}

// genericNames collects the generic parameter names of t and its ancestors.
func genericNames(t *model.Type) map[string]bool {
	var into map[string]bool

	for ; t != nil; t = t.Parent {
		for _, p := range t.GenericParameters {
			if into == nil {
				into = make(map[string]bool)
			}

			into[p.Name] = true
		}
	}

	return into
}

// withGenerics returns a copy of skip extended by params.
func withGenerics(skip map[string]bool, params []*model.GenericParameter) map[string]bool {
	out := make(map[string]bool, len(skip)+len(params))
	maps.Copy(out, skip)

	for _, p := range params {
		out[p.Name] = true
	}

	return out
}

// rootName returns the first component of a dotted name.
func rootName(name string) string {
	root, _, _ := strings.Cut(name, common.IdentitySep)
	return root
}
