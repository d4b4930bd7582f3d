package normalize

import (
	"slices"

	"source-composer/internal/model"
	"source-composer/internal/source"
)

func isStatic(modifiers []string) bool {
	return slices.Contains(modifiers, "static") || slices.Contains(modifiers, "class")
}

func genericParameters(raw []source.RawGenericParameter) []*model.GenericParameter {
	if len(raw) == 0 {
		return nil
	}

	out := make([]*model.GenericParameter, len(raw))
	for i, p := range raw {
		out[i] = &model.GenericParameter{
			Name:          p.Name,
			BoundTypeName: model.ParseTypeName(p.Bound),
		}
	}

	return out
}

func (fn *fileNormalizer) variable(e *DeclEntry, m *source.RawMember) *model.Variable {
	return &model.Variable{
		Name:         m.Name,
		TypeName:     model.ParseTypeName(m.TypeName),
		AccessLevel:  model.ParseAccessLevel(m.AccessLevel),
		Modifiers:    slices.Clone(m.Modifiers),
		IsStatic:     isStatic(m.Modifiers),
		IsComputed:   m.IsComputed,
		IsReadOnly:   m.IsReadOnly,
		DefaultValue: m.DefaultValue,
		Annotations:  fn.scope.ForMember(m),
		DefinedIn:    e.Identity,
	}
}

func (fn *fileNormalizer) method(e *DeclEntry, m *source.RawMember) *model.Method {
	params := fn.parameters(m.Parameters, m.Range.Start)

	return &model.Method{
		Name:           m.Name,
		Selector:       model.BuildSelector(m.Name, params),
		Parameters:     params,
		ReturnTypeName: model.ParseTypeName(m.TypeName),
		Throws:         m.Throws,
		Async:          m.Async,
		IsStatic:       isStatic(m.Modifiers),
		AccessLevel:    model.ParseAccessLevel(m.AccessLevel),
		Modifiers:      slices.Clone(m.Modifiers),
		Annotations:    fn.scope.ForMember(m),
		DefinedIn:      e.Identity,
	}
}

func (fn *fileNormalizer) enumCase(m *source.RawMember) *model.EnumCase {
	c := &model.EnumCase{
		Name:        m.Name,
		RawValue:    m.RawValue,
		IsIndirect:  slices.Contains(m.Modifiers, "indirect"),
		Annotations: fn.scope.ForMember(m),
	}

	for i := range m.Parameters {
		p := &m.Parameters[i]
		c.AssociatedValues = append(c.AssociatedValues, &model.AssociatedValue{
			LocalName:    p.Name,
			ExternalName: p.Label,
			TypeName:     model.ParseTypeName(p.TypeName),
			DefaultValue: p.DefaultValue,
			Annotations:  fn.scope.ForParameter(p, m.Range.Start),
		})
	}

	return c
}

func (fn *fileNormalizer) parameters(raw []source.RawParameter, offset int) []*model.MethodParameter {
	if len(raw) == 0 {
		return nil
	}

	out := make([]*model.MethodParameter, len(raw))
	for i := range raw {
		p := &raw[i]
		out[i] = &model.MethodParameter{
			Label:        p.Label,
			Name:         p.Name,
			TypeName:     model.ParseTypeName(p.TypeName),
			DefaultValue: p.DefaultValue,
			Annotations:  fn.scope.ForParameter(p, offset),
		}
	}

	return out
}

// function builds a free function, or a method when declared in a type.
func (fn *fileNormalizer) function(d *source.RawDeclaration, parent string, topLevel bool) *model.Method {
	params := fn.parameters(d.Parameters, d.Range.Start)

	return &model.Method{
		Name:              d.Name,
		Selector:          model.BuildSelector(d.Name, params),
		Parameters:        params,
		ReturnTypeName:    model.ParseTypeName(d.TypeName),
		Throws:            d.Throws,
		Async:             d.Async,
		IsStatic:          isStatic(d.Modifiers),
		AccessLevel:       model.ParseAccessLevel(d.AccessLevel),
		Modifiers:         slices.Clone(d.Modifiers),
		Annotations:       fn.scope.ForDeclaration(d, topLevel),
		GenericParameters: genericParameters(d.GenericParameters),
		DefinedIn:         parent,
	}
}

// global builds a file-scope variable, or a property when declared in a type.
func (fn *fileNormalizer) global(d *source.RawDeclaration, parent string, topLevel bool) *model.Variable {
	return &model.Variable{
		Name:        d.Name,
		TypeName:    model.ParseTypeName(d.TypeName),
		AccessLevel: model.ParseAccessLevel(d.AccessLevel),
		Modifiers:   slices.Clone(d.Modifiers),
		IsStatic:    isStatic(d.Modifiers),
		Annotations: fn.scope.ForDeclaration(d, topLevel),
		DefinedIn:   parent,
	}
}
