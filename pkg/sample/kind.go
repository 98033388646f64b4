package sample

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the category of a sample value.
type Kind int

const (
	KindNull     Kind = iota // null
	KindBool                 // boolean
	KindInteger              // integer
	KindFloat                // float
	KindString               // string
	KindSequence             // sequence
	KindMapping              // mapping
)

// IsScalar reports whether the kind carries no nested values.
func (k Kind) IsScalar() bool {
	switch k {
	case KindSequence, KindMapping:
		return false
	default:
		return true
	}
}

// IsContainer reports whether values of this kind hold nested values.
func (k Kind) IsContainer() bool {
	return !k.IsScalar()
}
