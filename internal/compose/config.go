package compose

import "source-composer/internal/annotation"

// Config holds configuration for a composition run.
type Config struct {
	// Prefix is the annotation directive prefix, e.g. "sourcery".
	Prefix string
	// Jobs limits parallel file normalization (0 = GOMAXPROCS).
	Jobs int
	// RawRepresentableTypes lists type names usable as enum raw types.
	RawRepresentableTypes []string
	// ReportUnresolved emits an info diagnostic per unresolved type name.
	ReportUnresolved bool
	// MaxSuggestions limits "did you mean" suggestions per unresolved name.
	MaxSuggestions int
}

// DefaultRawRepresentableTypes are the builtin types an enum can use as its raw type.
var DefaultRawRepresentableTypes = []string{
	"String", "Character",
	"Int", "Int8", "Int16", "Int32", "Int64",
	"UInt", "UInt8", "UInt16", "UInt32", "UInt64",
	"Float", "Double",
}

// builtinNames are never reported as unresolved.
var builtinNames = map[string]bool{
	"Void": true, "Any": true, "AnyObject": true, "Self": true, "Never": true,
	"Bool": true, "Array": true, "Dictionary": true, "Set": true, "Optional": true,
}

// DefaultConfig returns the default composition configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:                annotation.DefaultPrefix,
		RawRepresentableTypes: DefaultRawRepresentableTypes,
		MaxSuggestions:        3,
	}
}
