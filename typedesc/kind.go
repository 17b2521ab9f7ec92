package typedesc

type Kind int

const (
	Unsupported Kind = iota
	Bool
	Int
	Uint
	Float
	String
	Enum
	Time
	Struct
	Slice
	Array
	Map
	Set
	Pointer
	Interface
	Node
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		Unsupported: "Unsupported",
		Bool:        "Bool",
		Int:         "Int",
		Uint:        "Uint",
		Float:       "Float",
		String:      "String",
		Enum:        "Enum",
		Time:        "Time",
		Struct:      "Struct",
		Slice:       "Slice",
		Array:       "Array",
		Map:         "Map",
		Set:         "Set",
		Pointer:     "Pointer",
		Interface:   "Interface",
		Node:        "Node",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// IsScalar reports whether values of the kind are written as a single
// JSON literal.
func (k Kind) IsScalar() bool {
	switch k {
	case Bool, Int, Uint, Float, String, Enum, Time:
		return true
	default:
		return false
	}
}

// IsSequence reports whether values of the kind are written as a JSON array.
func (k Kind) IsSequence() bool {
	switch k {
	case Slice, Array, Set:
		return true
	default:
		return false
	}
}
