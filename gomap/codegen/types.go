package codegen

// PackageInfo holds information about a Go package
type PackageInfo struct {
	// Path is the package import path (e.g., "github.com/user/project/models")
	Path string

	// Dir is the directory containing the package
	Dir string

	// Name is the package name (e.g., "models")
	Name string

	// Files contains paths to all .go files in the package
	Files []string
}

// StructInfo is the member table of one struct.
type StructInfo struct {
	// Name is the struct type name
	Name string

	// SnakeCase is set when the struct opts into snake_case wire names
	// with a blank `tiny:"snakecase"` field.
	SnakeCase bool

	// Fields in descriptor order: own fields, then promoted fields of
	// embedded structs.
	Fields []*FieldInfo
}

// FieldInfo holds one member of a struct.
type FieldInfo struct {
	// Name is the Go field name
	Name string

	// WireName is the override from `tiny:"field=name"`, if any
	WireName string

	// Omit is set by `tiny:"omit"` or `tiny:"-"`
	Omit bool

	// Depth is 0 for own fields and grows by one per embedding level.
	Depth int
}

// Config holds configuration for code generation
type Config struct {
	// OutputFile is the output file for generated Go code (default: <package>_tinyjson.go)
	OutputFile string

	// Dir is the directory to scan for Go files (default: current directory)
	Dir string

	// Recursive indicates whether to scan subdirectories recursively
	Recursive bool

	// Types restricts generation to the named types when not empty.
	Types []string
}
