package compose

import (
	"strings"

	"source-composer/internal/common"
	"source-composer/internal/diagnostic"
	"source-composer/internal/model"
)

// Result is the composed graph of one run. It is not modified after
// Compose returns.
type Result struct {
	// Types in first-discovery order; compositions materialized from
	// aliases and inline expressions follow the declared types.
	Types []*model.Type
	// Typealiases declared at file scope.
	Typealiases []*model.Typealias
	// Functions declared at file scope.
	Functions []*model.Method
	// Globals are file-scope variables.
	Globals []*model.Variable

	Diagnostics diagnostic.Diagnostics

	scope *resolver
}

// Type returns the type with the given identity, or nil.
func (r *Result) Type(identity string) *model.Type {
	return r.scope.graph.Get(identity)
}

// Typealias returns the alias with the given identity, or nil.
func (r *Result) Typealias(identity string) *model.Typealias {
	return r.scope.aliases[identity]
}

// ResolveTypeName resolves a type expression as written inside scope
// (an identity, empty for file scope) to the type it denotes, following
// typealiases. Compositions resolve to their materialized type.
func (r *Result) ResolveTypeName(name, scope string) *model.Type {
	tn := model.ParseTypeName(name)
	if tn == nil {
		return nil
	}

	if tn.IsComposition() {
		return r.scope.graph.Get(r.scope.compositionID(tn, scope, nil))
	}

	alias, t := r.scope.lookup(tn.LookupName(), scope)
	if alias != nil {
		return alias.Type
	}

	return t
}

// Flattened returns the flattened variables and methods of the type with
// the given identity, or false if no such type exists.
func (r *Result) Flattened(identity string) ([]*model.Variable, []*model.Method, bool) {
	t := r.Type(identity)
	if t == nil {
		return nil, nil, false
	}

	return t.AllVariables, t.AllMethods, true
}

// resolver answers scoped name lookups against the graph and the aliases.
type resolver struct {
	graph   *model.Graph
	aliases map[string]*model.Typealias
}

func newResolver() *resolver {
	return &resolver{
		graph:   model.NewGraph(),
		aliases: make(map[string]*model.Typealias),
	}
}

// lookup finds name as seen from scope: each enclosing scope is tried
// innermost first, an alias shadowing a type at the same level.
func (s *resolver) lookup(name, scope string) (*model.Typealias, *model.Type) {
	if name == "" {
		return nil, nil
	}

	for _, level := range common.ScopeChain(scope) {
		id := common.JoinIdentity(level, name)
		if a := s.aliases[id]; a != nil {
			return a, nil
		}

		if t := s.graph.Get(id); t != nil {
			return nil, t
		}
	}

	return nil, nil
}

// compositionID identifies an inline composition by the identities its
// plain operands resolve to in scope. Other operands keep their text.
func (s *resolver) compositionID(tn *model.TypeName, scope string, skip map[string]bool) string {
	parts := make([]string, len(tn.Composition))

	for i, op := range tn.Composition {
		parts[i] = op.Unwrapped

		name := op.LookupName()
		if !op.IsPlain() || skip[rootName(name)] {
			continue
		}

		alias, t := s.lookup(name, scope)
		if alias != nil {
			t = alias.Type
		}

		if t != nil {
			parts[i] = t.Identity
		}
	}

	return strings.Join(parts, " & ")
}
