package models

// MarkerSuffix is the required suffix on a candidate's simple name. It is
// stripped to produce the output type's name, so for a non-empty suffix the
// output name never equals the input name.
const MarkerSuffix = "Data"

// DeclKind represents the aggregate kind of a scanned declaration
type DeclKind int

const (
	KindStruct DeclKind = iota
	KindInterface
	KindAlias
	KindOther
)

// String returns the string representation of the declaration kind
func (k DeclKind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindAlias:
		return "alias"
	default:
		return "other"
	}
}

// EqualKind selects the pairwise equality policy for one property
type EqualKind int

const (
	EqualOp        EqualKind = iota // compare with ==
	EqualNullable                   // nil-aware pointee compare
	EqualFloat                      // total-order comparison, CompareFloat == 0
	EqualFloatNull                  // substitute canonical zero for nil, then EqualFloat
)

// HashKind selects the hash helper for one property
type HashKind int

const (
	HashPlain HashKind = iota
	HashNullable
	HashFloating
	HashFloatingNull
)

// FormatKind selects the String() rendering helper for one property
type FormatKind int

const (
	FormatPlain FormatKind = iota
	FormatNullable
)
