package export

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"source-composer/internal/common"
	"source-composer/internal/compose"
	"source-composer/internal/model"
)

// Build converts a composed graph into a Document.
func Build(res *compose.Result) *Document {
	doc := &Document{Types: make([]TypeDoc, 0, len(res.Types))}

	for _, t := range res.Types {
		doc.Types = append(doc.Types, exportType(t))
	}

	for _, a := range res.Typealiases {
		doc.Typealiases = append(doc.Typealiases, exportAlias(a))
	}

	for _, f := range res.Functions {
		doc.Functions = append(doc.Functions, exportMethod(f))
	}

	for _, g := range res.Globals {
		doc.Globals = append(doc.Globals, exportVariable(g))
	}

	for _, d := range res.Diagnostics.All() {
		doc.Diagnostics = append(doc.Diagnostics, d.Severity.String()+": "+d.String())
	}

	return doc
}

// YAML encodes the Document of a composed graph.
func YAML(res *compose.Result) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(Build(res)); err != nil {
		return nil, fmt.Errorf("failed to encode composed graph: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode composed graph: %w", err)
	}

	return buf.Bytes(), nil
}

func exportType(t *model.Type) TypeDoc {
	td := TypeDoc{
		Identity:           t.Identity,
		Name:               t.Name,
		Kind:               t.Kind,
		IsExtension:        t.IsExtension,
		IsSynthetic:        t.IsSynthetic,
		AccessLevel:        t.AccessLevel,
		Modifiers:          t.Modifiers,
		Annotations:        t.Annotations,
		ContainedTypes:     identities(t.ContainedTypes),
		InheritedTypeNames: t.InheritedTypeNames,
		InheritedTypes:     identities(t.InheritedTypes),
		ComposedTypeNames:  t.ComposedTypeNames,
		ComposedTypes:      identities(t.ComposedTypes),
		GenericParameters:  exportGenerics(t.GenericParameters),
		RawType:            typeRef(t.RawTypeName),
	}

	if t.Parent != nil {
		td.Parent = t.Parent.Identity
	}

	for _, req := range t.GenericRequirements {
		td.GenericRequirements = append(td.GenericRequirements, req.String())
	}

	for _, a := range t.Typealiases {
		td.Typealiases = append(td.Typealiases, exportAlias(a))
	}

	for _, v := range t.Variables {
		td.Variables = append(td.Variables, exportVariable(v))
	}

	for _, m := range t.Methods {
		td.Methods = append(td.Methods, exportMethod(m))
	}

	for _, c := range t.Cases {
		td.Cases = append(td.Cases, exportCase(c))
	}

	for _, v := range t.AllVariables {
		td.AllVariables = append(td.AllVariables, MemberRef{Signature: v.Signature(), DefinedIn: v.DefinedIn, IsDefault: v.IsDefault})
	}

	for _, m := range t.AllMethods {
		td.AllMethods = append(td.AllMethods, MemberRef{Signature: m.Signature(), DefinedIn: m.DefinedIn, IsDefault: m.IsDefault})
	}

	return td
}

func exportAlias(a *model.Typealias) AliasDoc {
	ad := AliasDoc{
		Identity:    a.Identity,
		Name:        a.Name,
		Target:      typeRef(a.TypeName),
		AccessLevel: a.AccessLevel,
		Annotations: a.Annotations,
	}

	if ad.Target != nil && a.ActualTypeName != nil {
		ad.Target.Actual = a.ActualTypeName.String()
	}

	if ad.Target != nil && a.Type != nil {
		ad.Target.Type = a.Type.Identity
	}

	return ad
}

func exportVariable(v *model.Variable) VariableDoc {
	return VariableDoc{
		Name:         v.Name,
		Type:         typeRef(v.TypeName),
		AccessLevel:  v.AccessLevel,
		IsStatic:     v.IsStatic,
		IsComputed:   v.IsComputed,
		IsReadOnly:   v.IsReadOnly,
		DefaultValue: v.DefaultValue,
		Annotations:  v.Annotations,
		DefinedIn:    v.DefinedIn,
		IsDefault:    v.IsDefault,
	}
}

func exportMethod(m *model.Method) MethodDoc {
	md := MethodDoc{
		Name:        m.Name,
		Selector:    m.Selector,
		Return:      typeRef(m.ReturnTypeName),
		Throws:      m.Throws,
		Async:       m.Async,
		IsStatic:    m.IsStatic,
		AccessLevel: m.AccessLevel,
		Annotations: m.Annotations,
		Generics:    exportGenerics(m.GenericParameters),
		DefinedIn:   m.DefinedIn,
		IsDefault:   m.IsDefault,
	}

	for _, p := range m.Parameters {
		md.Parameters = append(md.Parameters, ParameterDoc{
			Label:        p.Label,
			Name:         p.Name,
			Type:         typeRef(p.TypeName),
			DefaultValue: p.DefaultValue,
			Annotations:  p.Annotations,
		})
	}

	return md
}

func exportCase(c *model.EnumCase) CaseDoc {
	cd := CaseDoc{
		Name:        c.Name,
		RawValue:    c.RawValue,
		IsIndirect:  c.IsIndirect,
		Annotations: c.Annotations,
	}

	for _, av := range c.AssociatedValues {
		cd.AssociatedValues = append(cd.AssociatedValues, ParameterDoc{
			Label:        av.ExternalName,
			Name:         av.LocalName,
			Type:         typeRef(av.TypeName),
			DefaultValue: av.DefaultValue,
			Annotations:  av.Annotations,
		})
	}

	return cd
}

func exportGenerics(params []*model.GenericParameter) []GenericDoc {
	var out []GenericDoc

	for _, p := range params {
		out = append(out, GenericDoc{Name: p.Name, Bound: typeRef(p.BoundTypeName)})
	}

	return out
}

// typeRef exports an occurrence; nil for an absent expression.
func typeRef(tn *model.TypeName) *TypeRef {
	if tn == nil {
		return nil
	}

	ref := &TypeRef{Name: tn.String()}

	if tn.ActualTypeName != nil {
		ref.Actual = tn.ActualTypeName.String()
	}

	if t := tn.Linked(); t != nil {
		ref.Type = t.Identity
	}

	ref.Links = collectLinks(tn, nil)

	// A plain linked name needs no separate link list.
	if len(ref.Links) == 1 && ref.Links[0] == ref.Type {
		ref.Links = nil
	}

	return ref
}

func collectLinks(tn *model.TypeName, into []string) []string {
	if tn == nil {
		return into
	}

	if t := tn.Linked(); t != nil {
		into = common.AppendUnique(into, t.Identity)
	}

	for _, child := range tn.Children() {
		into = collectLinks(child, into)
	}

	return into
}

func identities(types []*model.Type) []string {
	if len(types) == 0 {
		return nil
	}

	ids := make([]string, len(types))
	for i, t := range types {
		ids[i] = t.Identity
	}

	return ids
}
