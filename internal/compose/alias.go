package compose

import (
	"fmt"
	"slices"
	"strings"

	"source-composer/internal/diagnostic"
	"source-composer/internal/model"
)

type aliasState int

const (
	aliasPending aliasState = iota
	aliasResolving
	aliasResolved
	aliasFailed
)

// resolveAliases resolves every typealias chain. A cycle leaves every alias
// on it unresolved and is reported once per alias.
func (r *run) resolveAliases() error {
	for _, a := range r.aliases {
		if err := r.resolveAlias(a); err != nil {
			return err
		}
	}

	return nil
}

// resolveAlias follows the chain starting at a, looking each target up in
// the scope of the alias declaring it.
func (r *run) resolveAlias(a *model.Typealias) error {
	if r.aliasState[a.Identity] != aliasPending {
		return nil
	}

	var chain []*model.Typealias

	for cur := a; ; {
		chain = append(chain, cur)
		r.aliasState[cur.Identity] = aliasResolving

		next := r.nextAlias(cur)
		if next == nil {
			return r.finish(chain)
		}

		switch r.aliasState[next.Identity] {
		case aliasResolving:
			r.reportCycle(chain, next)
			return nil
		case aliasFailed:
			r.fail(chain)
			return nil
		case aliasResolved:
			r.settle(chain, next.ActualTypeName, next.Type)
			return nil
		}

		cur = next
	}
}

// nextAlias returns the alias named by a's target, or nil if the target is
// not a plain alias name.
func (r *run) nextAlias(a *model.Typealias) *model.Typealias {
	if a.TypeName == nil || !a.TypeName.IsPlain() {
		return nil
	}

	next, _ := r.scope.lookup(a.TypeName.Unwrapped, a.ParentIdentity)

	return next
}

// finish settles a chain whose last alias targets a non-alias expression.
func (r *run) finish(chain []*model.Typealias) error {
	last := chain[len(chain)-1]
	tn := last.TypeName

	var target *model.Type

	switch {
	case tn == nil:
	case tn.IsComposition():
		if r.scope.graph.Get(last.Identity) != nil {
			r.warn(diagnostic.CodeKindConflict,
				fmt.Sprintf("typealias %s composes protocols but its identity is declared as a type", last.Identity),
				last.Identity, "")

			break
		}

		t, err := r.materialize(last)
		if err != nil {
			return err
		}

		target = t
	default:
		_, target = r.scope.lookup(tn.LookupName(), last.ParentIdentity)
	}

	r.settle(chain, tn, target)

	return nil
}

// settle records the resolution of every alias of chain. Optionality
// written on an alias carries over to the aliases naming it.
func (r *run) settle(chain []*model.Typealias, actual *model.TypeName, target *model.Type) {
	for i := len(chain) - 1; i >= 0; i-- {
		a := chain[i]
		if a.TypeName != nil && a.TypeName.IsOptional && actual != nil && !actual.IsOptional {
			opt := *actual
			opt.IsOptional = true
			opt.Name = opt.String()
			actual = &opt
		}

		a.ActualTypeName = actual
		a.Type = target
		r.aliasState[a.Identity] = aliasResolved
	}
}

func (r *run) fail(chain []*model.Typealias) {
	for _, a := range chain {
		r.aliasState[a.Identity] = aliasFailed
	}
}

func (r *run) reportCycle(chain []*model.Typealias, back *model.Typealias) {
	start := slices.Index(chain, back)
	cycle := chain[start:]

	path := make([]string, 0, len(cycle)+1)
	for _, a := range cycle {
		path = append(path, a.Identity)
	}

	path = append(path, back.Identity)

	for _, a := range cycle {
		r.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     diagnostic.CodeAliasCycle,
			Message:  "typealias cycle " + strings.Join(path, " -> ") + ", left unresolved",
			Identity: a.Identity,
		})
	}

	r.fail(chain)
}

// materialize creates the composition type an alias denotes. It carries the
// alias's identity, so lookups of the alias name and of the identity agree.
func (r *run) materialize(a *model.Typealias) (*model.Type, error) {
	t := compositionType(a.Identity, a.Name, a.TypeName)
	t.AccessLevel = a.AccessLevel
	t.Annotations = a.Annotations.Clone()
	t.Parent = r.scope.graph.Get(a.ParentIdentity)

	if !r.scope.graph.Add(t) {
		return nil, fmt.Errorf("composition %q registered twice: %w", a.Identity, ErrInvariant)
	}

	return t, nil
}

// synthetic returns the composition type for an inline "A & B" expression,
// creating and linking it on first use. Expressions whose operands resolve
// to the same declarations share one type.
func (r *run) synthetic(tn *model.TypeName, scope string, skip map[string]bool) *model.Type {
	id := r.scope.compositionID(tn, scope, skip)
	if t := r.scope.graph.Get(id); t != nil {
		return t
	}

	t := compositionType(id, tn.Unwrapped, tn)
	t.IsSynthetic = true
	r.scope.graph.Add(t)

	t.InheritedTypes = r.resolveNames(t.InheritedTypeNames, scope, skip)
	t.ComposedTypes = slices.Clone(t.InheritedTypes)

	return t
}

func compositionType(identity, name string, tn *model.TypeName) *model.Type {
	names := tn.ComposedNames()

	return &model.Type{
		Identity:           identity,
		Name:               name,
		Kind:               model.KindProtocolComposition,
		AccessLevel:        model.AccessInternal,
		InheritedTypeNames: names,
		ComposedTypeNames:  slices.Clone(names),
	}
}
