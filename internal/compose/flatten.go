package compose

import "source-composer/internal/model"

type flatView struct {
	vars    []*model.Variable
	methods []*model.Method
}

// flatten computes AllVariables and AllMethods for every type: own members
// (requirements, then extension defaults) followed by the flattened view of
// each inherited type in order, skipping signatures already present.
func (r *run) flatten() {
	done := make(map[*model.Type]*flatView)
	visiting := make(map[*model.Type]bool)

	for _, t := range r.scope.graph.Types() {
		v, _ := flattenType(t, done, visiting)
		t.AllVariables, t.AllMethods = v.vars, v.methods
	}
}

// flattenType returns the view of t and whether it is complete. A view cut
// short by an inheritance cycle is not memoized: each type on a cycle is
// flattened starting from itself.
func flattenType(t *model.Type, done map[*model.Type]*flatView, visiting map[*model.Type]bool) (*flatView, bool) {
	if v, ok := done[t]; ok {
		return v, true
	}

	if visiting[t] {
		return &flatView{}, false
	}

	visiting[t] = true
	defer delete(visiting, t)

	var (
		v        = &flatView{}
		vars     = make(map[string]bool)
		methods  = make(map[string]bool)
		complete = true
	)

	appendBySignature(&v.vars, vars, t.Variables)
	appendBySignature(&v.methods, methods, t.Methods)

	for _, parent := range t.InheritedTypes {
		pv, ok := flattenType(parent, done, visiting)
		complete = complete && ok

		appendBySignature(&v.vars, vars, pv.vars)
		appendBySignature(&v.methods, methods, pv.methods)
	}

	if complete {
		done[t] = v
	}

	return v, complete
}
