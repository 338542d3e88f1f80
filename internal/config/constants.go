package config

const SourceFileExt = ".yaml"

// SourceFileExtensions are all recognized concrete syntax interchange extensions
var SourceFileExtensions = []string{".yaml", ".yml"}

// ProjectFileName is looked up from the source directory upwards.
const ProjectFileName = "tinyml.yaml"

// IsTestMode indicates if the program is running in test mode.
// Hole names are normalized in this mode so output is deterministic.
var IsTestMode = false

// Built-in type names
const (
	IntTypeName    = "int"
	StringTypeName = "string"
	UnitTypeName   = "unit"
	LocalTypeName  = "local"
	ListTypeName   = "list"
)

// BuiltinTypes are seeded into the type scope of every lowering context.
var BuiltinTypes = []string{IntTypeName, StringTypeName, UnitTypeName, LocalTypeName}

// DefaultRecursionBudget bounds how deeply lowering may nest before it gives
// up on the input.
const DefaultRecursionBudget = 10000

// FreshPrefix starts every synthesized variable name: _1, _2, ...
const FreshPrefix = "_"

// SupportedSyntax is the range of interchange format versions this build reads.
const SupportedSyntax = ">= 1.0.0, < 2.0.0"

// Color modes for diagnostic output
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
