package source

// Kind is the kind of a raw declaration as reported by the parser.
type Kind string

const (
	KindClass     Kind = "class"
	KindStruct    Kind = "struct"
	KindEnum      Kind = "enum"
	KindProtocol  Kind = "protocol"
	KindExtension Kind = "extension"
	KindTypealias Kind = "typealias"
	KindFunction  Kind = "function"
	KindGlobal    Kind = "global"
)

// IsValid returns true if the kind is a recognized value.
func (k Kind) IsValid() bool {
	switch k {
	case KindClass, KindStruct, KindEnum, KindProtocol, KindExtension,
		KindTypealias, KindFunction, KindGlobal:
		return true
	default:
		return false
	}
}

// IsType returns true for kinds that produce (or extend) a canonical type.
func (k Kind) IsType() bool {
	switch k {
	case KindClass, KindStruct, KindEnum, KindProtocol, KindExtension:
		return true
	default:
		return false
	}
}

// MemberKind is the kind of a member inside a type body.
type MemberKind string

const (
	MemberVariable    MemberKind = "variable"
	MemberMethod      MemberKind = "method"
	MemberCase        MemberKind = "case"
	MemberDeclaration MemberKind = "declaration"
)

// Range is a byte range inside a source file.
type Range struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End && r != other
}

// File holds the declarations of one source file, in file-byte order.
type File struct {
	// Path of the source file the declarations were parsed from.
	Path string `yaml:"path"`

	// Declarations at file scope (and flat nested ones with a ParentPath).
	Declarations []RawDeclaration `yaml:"declarations"`

	// Comments that are not attached to any declaration, such as
	// a block "end" directive before a closing brace.
	Comments []Comment `yaml:"comments,omitempty"`
}

// Comment is a free-standing comment and its position.
type Comment struct {
	Text   string `yaml:"text"`
	Offset int    `yaml:"offset"`
}

// RawDeclaration is a declaration as extracted from source text.
type RawDeclaration struct {
	Kind Kind   `yaml:"kind"`
	Name string `yaml:"name"`

	// ParentPath lists enclosing type names; empty at file scope.
	ParentPath []string `yaml:"parent_path,omitempty"`

	AccessLevel string   `yaml:"access,omitempty"`
	Modifiers   []string `yaml:"modifiers,omitempty"`

	// InheritedTypeNames as written, in order.
	InheritedTypeNames []string `yaml:"inherits,omitempty"`

	GenericParameters   []RawGenericParameter `yaml:"generic_parameters,omitempty"`
	GenericRequirements []string              `yaml:"generic_requirements,omitempty"`

	Members []RawMember `yaml:"members,omitempty"`

	// TypeName is the aliased type of a typealias, the type of a global,
	// or the return type of a function.
	TypeName string `yaml:"type,omitempty"`

	// Parameters of a function.
	Parameters []RawParameter `yaml:"parameters,omitempty"`
	Throws     bool           `yaml:"throws,omitempty"`
	Async      bool           `yaml:"async,omitempty"`

	LeadingComment  string `yaml:"leading_comment,omitempty"`
	TrailingComment string `yaml:"trailing_comment,omitempty"`

	Range Range `yaml:"range"`
}

// RawGenericParameter is a generic parameter with an optional bound.
type RawGenericParameter struct {
	Name  string `yaml:"name"`
	Bound string `yaml:"bound,omitempty"`
}

// RawMember is a member declared inside a type or extension body.
type RawMember struct {
	Kind MemberKind `yaml:"kind"`
	Name string     `yaml:"name"`

	AccessLevel string   `yaml:"access,omitempty"`
	Modifiers   []string `yaml:"modifiers,omitempty"`

	// TypeName is a variable's type or a method's return type.
	TypeName string `yaml:"type,omitempty"`

	// Parameters of a method, or associated values of a case.
	Parameters []RawParameter `yaml:"parameters,omitempty"`

	IsComputed   bool   `yaml:"computed,omitempty"`
	IsReadOnly   bool   `yaml:"read_only,omitempty"`
	DefaultValue string `yaml:"default,omitempty"`
	RawValue     string `yaml:"raw_value,omitempty"`
	Throws       bool   `yaml:"throws,omitempty"`
	Async        bool   `yaml:"async,omitempty"`

	// Declaration is set for MemberDeclaration: a nested type,
	// typealias or extension body.
	Declaration *RawDeclaration `yaml:"declaration,omitempty"`

	LeadingComment  string `yaml:"leading_comment,omitempty"`
	TrailingComment string `yaml:"trailing_comment,omitempty"`

	Range Range `yaml:"range"`
}

// RawParameter is a method parameter or an enum case associated value.
type RawParameter struct {
	Label        string `yaml:"label,omitempty"`
	Name         string `yaml:"name,omitempty"`
	TypeName     string `yaml:"type"`
	DefaultValue string `yaml:"default,omitempty"`

	// Comment holds the comments adjacent to the parameter,
	// including inline block comments inside the parameter list.
	Comment string `yaml:"comment,omitempty"`

	Range Range `yaml:"range"`
}
