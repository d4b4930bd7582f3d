package export

import (
	"source-composer/internal/annotation"
	"source-composer/internal/model"
)

// Document is the exported form of a composition run.
type Document struct {
	Types       []TypeDoc     `yaml:"types"`
	Typealiases []AliasDoc    `yaml:"typealiases,omitempty"`
	Functions   []MethodDoc   `yaml:"functions,omitempty"`
	Globals     []VariableDoc `yaml:"globals,omitempty"`
	Diagnostics []string      `yaml:"diagnostics,omitempty"`
}

// TypeDoc is an exported canonical type.
type TypeDoc struct {
	Identity    string            `yaml:"identity"`
	Name        string            `yaml:"name"`
	Kind        model.Kind        `yaml:"kind"`
	IsExtension bool              `yaml:"is_extension,omitempty"`
	IsSynthetic bool              `yaml:"synthetic,omitempty"`
	AccessLevel model.AccessLevel `yaml:"access"`
	Modifiers   []string          `yaml:"modifiers,omitempty"`
	Annotations annotation.Map    `yaml:"annotations,omitempty"`

	Parent         string   `yaml:"parent,omitempty"`
	ContainedTypes []string `yaml:"contained_types,omitempty"`

	InheritedTypeNames []string `yaml:"inherits,omitempty"`
	InheritedTypes     []string `yaml:"inherited_types,omitempty"`
	ComposedTypeNames  []string `yaml:"composes,omitempty"`
	ComposedTypes      []string `yaml:"composed_types,omitempty"`

	GenericParameters   []GenericDoc `yaml:"generic_parameters,omitempty"`
	GenericRequirements []string     `yaml:"generic_requirements,omitempty"`
	RawType             *TypeRef     `yaml:"raw_type,omitempty"`

	Typealiases []AliasDoc    `yaml:"typealiases,omitempty"`
	Variables   []VariableDoc `yaml:"variables,omitempty"`
	Methods     []MethodDoc   `yaml:"methods,omitempty"`
	Cases       []CaseDoc     `yaml:"cases,omitempty"`

	AllVariables []MemberRef `yaml:"all_variables,omitempty"`
	AllMethods   []MemberRef `yaml:"all_methods,omitempty"`
}

// TypeRef is an exported type-name occurrence.
type TypeRef struct {
	Name   string `yaml:"name"`
	Actual string `yaml:"actual,omitempty"`
	// Type is the identity of the linked declaration.
	Type string `yaml:"type,omitempty"`
	// Links are the identities linked anywhere inside the expression.
	Links []string `yaml:"links,omitempty"`
}

// GenericDoc is an exported generic parameter.
type GenericDoc struct {
	Name  string   `yaml:"name"`
	Bound *TypeRef `yaml:"bound,omitempty"`
}

// AliasDoc is an exported typealias.
type AliasDoc struct {
	Identity    string            `yaml:"identity"`
	Name        string            `yaml:"name"`
	Target      *TypeRef          `yaml:"target,omitempty"`
	AccessLevel model.AccessLevel `yaml:"access"`
	Annotations annotation.Map    `yaml:"annotations,omitempty"`
}

// VariableDoc is an exported variable.
type VariableDoc struct {
	Name         string            `yaml:"name"`
	Type         *TypeRef          `yaml:"type,omitempty"`
	AccessLevel  model.AccessLevel `yaml:"access"`
	IsStatic     bool              `yaml:"static,omitempty"`
	IsComputed   bool              `yaml:"computed,omitempty"`
	IsReadOnly   bool              `yaml:"read_only,omitempty"`
	DefaultValue string            `yaml:"default,omitempty"`
	Annotations  annotation.Map    `yaml:"annotations,omitempty"`
	DefinedIn    string            `yaml:"defined_in,omitempty"`
	IsDefault    bool              `yaml:"is_default,omitempty"`
}

// MethodDoc is an exported method or free function.
type MethodDoc struct {
	Name        string            `yaml:"name"`
	Selector    string            `yaml:"selector"`
	Parameters  []ParameterDoc    `yaml:"parameters,omitempty"`
	Return      *TypeRef          `yaml:"returns,omitempty"`
	Throws      bool              `yaml:"throws,omitempty"`
	Async       bool              `yaml:"async,omitempty"`
	IsStatic    bool              `yaml:"static,omitempty"`
	AccessLevel model.AccessLevel `yaml:"access"`
	Annotations annotation.Map    `yaml:"annotations,omitempty"`
	Generics    []GenericDoc      `yaml:"generic_parameters,omitempty"`
	DefinedIn   string            `yaml:"defined_in,omitempty"`
	IsDefault   bool              `yaml:"is_default,omitempty"`
}

// ParameterDoc is an exported method parameter or associated value.
type ParameterDoc struct {
	Label        string         `yaml:"label,omitempty"`
	Name         string         `yaml:"name,omitempty"`
	Type         *TypeRef       `yaml:"type,omitempty"`
	DefaultValue string         `yaml:"default,omitempty"`
	Annotations  annotation.Map `yaml:"annotations,omitempty"`
}

// CaseDoc is an exported enum case.
type CaseDoc struct {
	Name             string         `yaml:"name"`
	RawValue         string         `yaml:"raw_value,omitempty"`
	AssociatedValues []ParameterDoc `yaml:"associated_values,omitempty"`
	IsIndirect       bool           `yaml:"indirect,omitempty"`
	Annotations      annotation.Map `yaml:"annotations,omitempty"`
}

// MemberRef names a flattened member and where it is declared.
type MemberRef struct {
	Signature string `yaml:"signature"`
	DefinedIn string `yaml:"defined_in,omitempty"`
	IsDefault bool   `yaml:"is_default,omitempty"`
}
