package compose

import (
	"fmt"
	"slices"

	"source-composer/internal/common"
	"source-composer/internal/diagnostic"
	"source-composer/internal/model"
	"source-composer/internal/normalize"
)

// merge groups type entries by identity and folds each group into one
// canonical type. Typealiases, functions and globals are collected as is.
func (r *run) merge(entries []*normalize.DeclEntry) error {
	groups := make(map[string][]*normalize.DeclEntry)

	var order []string

	for _, e := range entries {
		if e.Identity == "" {
			return fmt.Errorf("%s entry at %s:%d has no identity: %w",
				e.Kind, e.Order.Path, e.Order.Offset, ErrInvariant)
		}

		switch {
		case e.IsType():
			if _, ok := groups[e.Identity]; !ok {
				order = append(order, e.Identity)
			}

			groups[e.Identity] = append(groups[e.Identity], e)
		case e.Typealias != nil:
			r.addAlias(e)
		case e.Function != nil:
			r.functions = append(r.functions, e.Function)
		case e.Global != nil:
			r.globals = append(r.globals, e.Global)
		default:
			return fmt.Errorf("%s entry %q carries no declaration: %w", e.Kind, e.Identity, ErrInvariant)
		}
	}

	for _, id := range order {
		if !r.scope.graph.Add(r.fold(id, groups[id])) {
			return fmt.Errorf("identity %q merged twice: %w", id, ErrInvariant)
		}
	}

	r.nest(entries)
	r.attachAliases()

	return nil
}

// fold merges every entry of one identity: primary declarations first, then
// extensions, each in run order.
func (r *run) fold(identity string, group []*normalize.DeclEntry) *model.Type {
	ordered := make([]*normalize.DeclEntry, 0, len(group))
	for _, e := range group {
		if !e.IsExtension() {
			ordered = append(ordered, e)
		}
	}

	for _, e := range group {
		if e.IsExtension() {
			ordered = append(ordered, e)
		}
	}

	t := &model.Type{
		Identity:    identity,
		Name:        common.LocalName(identity),
		Kind:        model.KindUnknown,
		IsExtension: true,
		AccessLevel: ordered[0].AccessLevel,
	}

	var (
		primary  *normalize.DeclEntry
		vars     = make(map[string]bool)
		methods  = make(map[string]bool)
		cases    = make(map[string]bool)
		defaultV []*model.Variable
		defaultM []*model.Method
	)

	for _, e := range ordered {
		if !e.IsExtension() {
			if primary != nil && primary.Kind != e.Kind {
				r.diags.Add(diagnostic.Diagnostic{
					Severity: diagnostic.DiagnosticWarning,
					Code:     diagnostic.CodeKindConflict,
					Message: fmt.Sprintf("%s %s redeclared as %s, last declaration wins",
						primary.Kind, identity, e.Kind),
					Identity: identity,
					File:     e.Order.Path,
					Offset:   e.Order.Offset,
				})
			}

			primary = e
			t.Kind = e.ModelKind()
			t.IsExtension = false
			t.AccessLevel = e.AccessLevel
			t.Modifiers = common.AppendUnique(t.Modifiers, e.Modifiers...)

			// Requirements of an extension constrain only its own members.
			for _, req := range e.GenericRequirements {
				if !slices.ContainsFunc(t.GenericRequirements, func(q *model.GenericRequirement) bool {
					return q.String() == req.String()
				}) {
					t.GenericRequirements = append(t.GenericRequirements, req)
				}
			}
		}

		t.Annotations = t.Annotations.Merge(e.Annotations)
		t.InheritedTypeNames = common.AppendUnique(t.InheritedTypeNames, e.InheritedTypeNames...)

		for _, p := range e.GenericParameters {
			if !slices.ContainsFunc(t.GenericParameters, func(q *model.GenericParameter) bool { return q.Name == p.Name }) {
				t.GenericParameters = append(t.GenericParameters, p)
			}
		}

		addedV := appendBySignature(&t.Variables, vars, e.Variables)
		addedM := appendBySignature(&t.Methods, methods, e.Methods)
		appendBySignature(&t.Cases, cases, e.Cases)

		if e.IsExtension() {
			defaultV = append(defaultV, addedV...)
			defaultM = append(defaultM, addedM...)
		}
	}

	if t.IsProtocol() {
		for _, v := range defaultV {
			v.IsDefault = true
		}

		for _, m := range defaultM {
			m.IsDefault = true
		}
	}

	return t
}

type signed interface {
	Signature() string
}

// appendBySignature appends the members of add whose signature is not yet
// in seen, and returns the appended ones.
func appendBySignature[T signed](dst *[]T, seen map[string]bool, add []T) []T {
	var added []T

	for _, m := range add {
		sig := m.Signature()
		if seen[sig] {
			continue
		}

		seen[sig] = true
		*dst = append(*dst, m)
		added = append(added, m)
	}

	return added
}

// nest fills ContainedTypes and Parent. Types nested in a primary body come
// first, in declaration order, followed by types provided by extensions.
// An extension of a dotted name whose parent is known counts as
// extension-provided nesting of that parent.
func (r *run) nest(entries []*normalize.DeclEntry) {
	graph := r.scope.graph

	var (
		body   = make(map[string][]*model.Type)
		ext    = make(map[string][]*model.Type)
		placed = make(map[string]bool)
	)

	place := func(lists map[string][]*model.Type, parentID, childID string) {
		if placed[childID] || parentID == "" || parentID == childID {
			return
		}

		parent, child := graph.Get(parentID), graph.Get(childID)
		if parent == nil || child == nil {
			return
		}

		placed[childID] = true
		child.Parent = parent
		lists[parentID] = append(lists[parentID], child)
	}

	for _, e := range entries {
		if e.IsType() && !e.IsExtension() && !e.InExtension && e.ParentIdentity != "" {
			place(body, e.ParentIdentity, e.Identity)
		}
	}

	for _, e := range entries {
		if !e.IsType() {
			continue
		}

		if !e.IsExtension() && e.ParentIdentity != "" {
			place(ext, e.ParentIdentity, e.Identity)
		} else {
			place(ext, common.ParentIdentity(e.Identity), e.Identity)
		}
	}

	for _, t := range graph.Types() {
		if nested := append(body[t.Identity], ext[t.Identity]...); len(nested) > 0 {
			t.ContainedTypes = nested
		}
	}
}

func (r *run) addAlias(e *normalize.DeclEntry) {
	a := e.Typealias

	if prev := r.scope.aliases[a.Identity]; prev != nil {
		r.diags.Add(diagnostic.Diagnostic{
			Severity: diagnostic.DiagnosticWarning,
			Code:     diagnostic.CodeDuplicateTypealias,
			Message:  fmt.Sprintf("typealias %s redeclared, last declaration wins", a.Identity),
			Identity: a.Identity,
			File:     e.Order.Path,
			Offset:   e.Order.Offset,
		})

		r.aliases = slices.DeleteFunc(r.aliases, func(x *model.Typealias) bool { return x == prev })
	}

	r.scope.aliases[a.Identity] = a
	r.aliases = append(r.aliases, a)
}

// attachAliases hands each alias to its declaring type.
func (r *run) attachAliases() {
	for _, a := range r.aliases {
		if a.ParentIdentity == "" {
			r.topAliases = append(r.topAliases, a)
			continue
		}

		parent := r.scope.graph.Get(a.ParentIdentity)
		if parent == nil {
			r.warn(diagnostic.CodeOrphanMember,
				fmt.Sprintf("typealias %s is declared in unknown scope %s", a.Name, a.ParentIdentity),
				a.ParentIdentity, a.Name)

			continue
		}

		a.Parent = parent
		parent.Typealiases = append(parent.Typealiases, a)
	}
}
