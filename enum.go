package vouch

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Struct fields of an Enumerable type, or slices of them, can be checked with the "enum" validate tag.
type Enumerable interface {
	String() string
	Valid() error
}
