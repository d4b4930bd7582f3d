package normalize

import (
	"source-composer/internal/annotation"
	"source-composer/internal/model"
	"source-composer/internal/source"
)

// Order locates an entry for deterministic ordering.
type Order struct {
	File   int // index of the file in the run
	Path   string
	Offset int // byte offset of the declaration in its file
	Seq    int // position of the entry across the whole run
}

// DeclEntry is a normalized declaration.
type DeclEntry struct {
	Identity string
	Name     string
	Kind     source.Kind

	// ParentIdentity is the identity of the enclosing declaration,
	// empty for file-scope declarations.
	ParentIdentity string
	// InExtension is true if the enclosing declaration is an extension.
	InExtension bool

	AccessLevel model.AccessLevel
	Modifiers   []string
	Annotations annotation.Map

	InheritedTypeNames  []string
	GenericParameters   []*model.GenericParameter
	GenericRequirements []*model.GenericRequirement

	Variables []*model.Variable
	Methods   []*model.Method
	Cases     []*model.EnumCase

	// Exactly one payload is set for typealias, function and global kinds.
	Typealias *model.Typealias
	Function  *model.Method
	Global    *model.Variable

	Order Order
}

// IsExtension returns true for extension entries.
func (e *DeclEntry) IsExtension() bool {
	return e.Kind == source.KindExtension
}

// IsType returns true for entries contributing to a canonical type.
func (e *DeclEntry) IsType() bool {
	return e.Kind.IsType()
}

// ModelKind maps a primary entry kind to the canonical kind.
func (e *DeclEntry) ModelKind() model.Kind {
	switch e.Kind {
	case source.KindClass:
		return model.KindClass
	case source.KindStruct:
		return model.KindStruct
	case source.KindEnum:
		return model.KindEnum
	case source.KindProtocol:
		return model.KindProtocol
	default:
		return model.KindUnknown
	}
}
