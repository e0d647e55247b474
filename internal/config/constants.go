package config

const SourceFileExt = ".seam"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{SourceFileExt, ".sm"}

// ProjectFileName is the per-project configuration file, looked up in the
// directory of the checked file and its ancestors.
const ProjectFileName = "seam.yaml"

// BaseTypeNames are the built-in nullary types.
var BaseTypeNames = []string{
	"Int",
	"Nat",
	"Float",
	"Bool",
	"String",
	"Char",
	"Unit",
}

// Keyword spellings of the surface syntax.
const (
	TypeKeyword   = "type"
	AssertKeyword = "assert"
	FnKeyword     = "fn"
	ForallKeyword = "forall"
	MuKeyword     = "mu"
	StructKeyword = "struct"
	EnumKeyword   = "enum"
)
