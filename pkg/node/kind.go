// pkg/node/kind.go
package node

// Kind tags the variant a Node holds. Corresponds to spec.md section 3's
// list of plist value variants.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindKey
	KindData
	KindDate
	KindUid
	KindNull
	KindArray
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Integer"
	case KindReal:
		return "Real"
	case KindString:
		return "String"
	case KindKey:
		return "Key"
	case KindData:
		return "Data"
	case KindDate:
		return "Date"
	case KindUid:
		return "Uid"
	case KindNull:
		return "Null"
	case KindArray:
		return "Array"
	case KindDict:
		return "Dict"
	default:
		return "Invalid"
	}
}

// IsContainer reports whether k holds children (Array or Dict).
func (k Kind) IsContainer() bool { return k == KindArray || k == KindDict }

// IntWidth distinguishes the two on-wire integer widths spec.md §3
// describes: 64-bit signed/unsigned range, and the 128-bit-wire unsigned
// extension used only for values in (MaxInt64, MaxUint64].
type IntWidth int

const (
	// Width64 covers every negative value and every non-negative value
	// that fits in a signed or unsigned 64-bit word.
	Width64 IntWidth = iota
	// Width128 is written as 16 bytes on the wire in the binary codec;
	// never used for negative values (spec.md invariant 4).
	Width128
)
