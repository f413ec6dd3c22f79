// pkg/node/node.go
package node

import "time"

// MacEpochOffset is the number of seconds the Apple/Mac reference date
// (2001-01-01T00:00:00Z) sits after the Unix epoch.
const MacEpochOffset = 978307200

// Node is a single value in a plist tree. Exactly one of the scalar fields
// is meaningful for a given Kind; Array/Dict nodes instead hold children.
//
// Node intentionally stores container children in a slice rather than the
// doubly linked list the C original uses (see original_source/libcnary):
// a slice already gives O(1) positional access, so Array's "lazy index
// cache" from spec.md §4.1 is represented here only as a threshold flag
// (see array.go) kept for behavioral fidelity, not as a second data
// structure. Dict's hash index is real, because keyed lookup over a slice
// of alternating Key/value children is otherwise O(n). See DESIGN.md.
type Node struct {
	kind   Kind
	parent *Node

	boolVal bool
	intBits uint64 // raw 64-bit pattern for KindInt; see Width()
	width   IntWidth
	realVal float64
	strVal  string  // KindString, KindKey
	dataVal []byte  // KindData
	dateVal float64 // KindDate: seconds since MacEpoch
	uidVal  uint64  // KindUid

	children []*Node // KindArray: items. KindDict: alternating Key, value.

	dictIndex map[string]*Node // lazily built once len(children)/2 > dictIndexThreshold
	arrIndex  bool             // true once the array has crossed arrIndexThreshold

	iterGen uint64 // bumped on every structural change; invalidates iterators
}

// Parent returns the owning container, or nil for a detached/root node.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// GetType returns the node's tag.
func GetType(n *Node) Kind {
	if n == nil {
		return KindInvalid
	}
	return n.kind
}

// Detach removes n from its parent container, if any, leaving n parentless.
// It is a no-op on an already-detached node and fails silently on nil,
// matching plist_free's tolerance of NULL (spec.md §4.1).
func Detach(n *Node) error {
	if n == nil {
		return nil
	}
	p := n.parent
	if p == nil {
		return nil
	}
	switch p.kind {
	case KindArray:
		return p.removeChildPtr(n)
	case KindDict:
		return p.dictDetach(n)
	default:
		return Wrap(KindInvalidArg, "detach", ErrWrongKind)
	}
}

// Free detaches n (if attached) so the subtree becomes eligible for garbage
// collection. Go has no manual free; this exists so callers translating the
// C API 1:1 have an explicit "I am done with this subtree" statement, and so
// that a subtree detached mid-traversal cannot be observed half-attached.
func Free(n *Node) {
	_ = Detach(n)
}

func newLeaf(k Kind) *Node { return &Node{kind: k} }

// NewBool allocates a detached Bool node.
func NewBool(v bool) *Node { n := newLeaf(KindBool); n.boolVal = v; return n }

// NewInt allocates a detached Integer node holding a signed 64-bit value.
// Negative values always encode with Width64 (spec.md invariant 4).
func NewInt(v int64) *Node {
	n := newLeaf(KindInt)
	n.intBits = uint64(v)
	n.width = Width64
	return n
}

// NewUint allocates a detached Integer node. Values beyond math.MaxInt64
// are stored with Width128, the only case the binary codec emits as the
// 16-byte wire form.
func NewUint(v uint64) *Node {
	n := newLeaf(KindInt)
	n.intBits = v
	if v > 1<<63-1 {
		n.width = Width128
	} else {
		n.width = Width64
	}
	return n
}

// NewUintWidth allocates a detached Integer node with an explicit wire
// width, bypassing the magnitude-based Width128 inference NewUint applies.
// The binary codec needs this: a 128-bit wire value only ever contributes
// its low 64 bits to intBits (spec.md §4.2), so the magnitude of those 64
// bits alone cannot always be trusted to reconstruct which width produced
// them.
func NewUintWidth(bits uint64, width IntWidth) *Node {
	n := newLeaf(KindInt)
	n.intBits = bits
	n.width = width
	return n
}

// NewReal allocates a detached Real (double) node.
func NewReal(v float64) *Node { n := newLeaf(KindReal); n.realVal = v; return n }

// NewDate allocates a detached Date node from seconds since the Apple epoch.
func NewDate(secondsSinceMacEpoch float64) *Node {
	n := newLeaf(KindDate)
	n.dateVal = secondsSinceMacEpoch
	return n
}

// NewUnixDate allocates a Date node from a Unix time.
func NewUnixDate(t time.Time) *Node {
	return NewDate(float64(t.Unix()) - MacEpochOffset + float64(t.Nanosecond())/1e9)
}

// NewUid allocates a detached Uid node.
func NewUid(v uint64) *Node { n := newLeaf(KindUid); n.uidVal = v; return n }

// NewNull allocates a detached Null sentinel node.
func NewNull() *Node { return newLeaf(KindNull) }

// NewString allocates a detached String node.
func NewString(s string) *Node { n := newLeaf(KindString); n.strVal = s; return n }

// NewKey allocates a detached Key node. A Key is only legal as the
// even-indexed child of a Dict (spec.md invariant 1); elsewhere it behaves
// exactly like a String.
func NewKey(s string) *Node { n := newLeaf(KindKey); n.strVal = s; return n }

// NewData allocates a detached Data node. The byte slice is copied so the
// node owns its payload independently of the caller's buffer.
func NewData(b []byte) *Node {
	n := newLeaf(KindData)
	if b != nil {
		n.dataVal = append([]byte(nil), b...)
	}
	return n
}

// NewArray allocates a detached, empty Array node.
func NewArray() *Node { return newLeaf(KindArray) }

// NewDict allocates a detached, empty Dict node.
func NewDict() *Node { return newLeaf(KindDict) }

// ---- typed getters: wrong kind yields the zero value, never an error,
// matching spec.md §7's "typed getters silently yield zero/empty values". ----

func GetBoolVal(n *Node) bool {
	if n == nil || n.kind != KindBool {
		return false
	}
	return n.boolVal
}

// GetIntVal returns the signed interpretation of an Integer node.
func GetIntVal(n *Node) int64 {
	if n == nil || n.kind != KindInt {
		return 0
	}
	return int64(n.intBits)
}

// GetUintVal returns the unsigned interpretation of an Integer node.
func GetUintVal(n *Node) uint64 {
	if n == nil || n.kind != KindInt {
		return 0
	}
	return n.intBits
}

// GetWidth reports the wire width attribute of an Integer node.
func GetWidth(n *Node) IntWidth {
	if n == nil || n.kind != KindInt {
		return Width64
	}
	return n.width
}

func GetRealVal(n *Node) float64 {
	if n == nil || n.kind != KindReal {
		return 0
	}
	return n.realVal
}

func GetStringVal(n *Node) string {
	if n == nil || (n.kind != KindString && n.kind != KindKey) {
		return ""
	}
	return n.strVal
}

func GetKeyVal(n *Node) string {
	if n == nil || n.kind != KindKey {
		return ""
	}
	return n.strVal
}

// GetStringPtr returns a read-only view of a String/Key payload. The view
// is valid only until n mutates or is freed (spec.md §4.1 borrowing
// getters); Go gives us that for free via string's immutability.
func GetStringPtr(n *Node) string { return GetStringVal(n) }

// GetDataVal returns a copy of a Data node's payload; nil for any other kind.
func GetDataVal(n *Node) []byte {
	if n == nil || n.kind != KindData {
		return nil
	}
	return append([]byte(nil), n.dataVal...)
}

// GetDataPtr returns a read-only view of a Data node's payload without
// copying.
func GetDataPtr(n *Node) []byte {
	if n == nil || n.kind != KindData {
		return nil
	}
	return n.dataVal
}

// GetDateVal returns the seconds-since-Apple-epoch value of a Date node.
func GetDateVal(n *Node) float64 {
	if n == nil || n.kind != KindDate {
		return 0
	}
	return n.dateVal
}

// GetUnixDateVal converts a Date node to a time.Time in UTC.
func GetUnixDateVal(n *Node) time.Time {
	if n == nil || n.kind != KindDate {
		return time.Unix(0, 0).UTC()
	}
	total := n.dateVal + MacEpochOffset
	sec := int64(total)
	nsec := int64((total - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC()
}

func GetUidVal(n *Node) uint64 {
	if n == nil || n.kind != KindUid {
		return 0
	}
	return n.uidVal
}

// ---- typed setters: change tag and payload of an existing node, freeing
// any previous container children. ----

func (n *Node) resetScalar() {
	n.boolVal = false
	n.intBits = 0
	n.width = Width64
	n.realVal = 0
	n.strVal = ""
	n.dataVal = nil
	n.dateVal = 0
	n.uidVal = 0
	if n.kind.IsContainer() {
		for _, c := range n.children {
			c.parent = nil
		}
		n.children = nil
		n.dictIndex = nil
		n.arrIndex = false
		n.iterGen++
	}
}

func SetBoolVal(n *Node, v bool) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindBool
	n.boolVal = v
}

func SetIntVal(n *Node, v int64) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindInt
	n.intBits = uint64(v)
	n.width = Width64
}

func SetUintVal(n *Node, v uint64) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindInt
	n.intBits = v
	if v > 1<<63-1 {
		n.width = Width128
	} else {
		n.width = Width64
	}
}

func SetRealVal(n *Node, v float64) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindReal
	n.realVal = v
}

func SetStringVal(n *Node, s string) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindString
	n.strVal = s
}

// SetKeyVal renames a Key node. If n is attached to a parent Dict and the
// new string collides with a sibling key, the call is a no-op (spec.md
// §4.1: "Keys may not be set to a string that already exists in the parent
// Dict").
func SetKeyVal(n *Node, s string) {
	if n == nil {
		return
	}
	if n.kind == KindKey && n.parent != nil && n.parent.kind == KindDict {
		if s != n.strVal {
			if _, exists := n.parent.dictLookup(s); exists {
				return
			}
		}
		n.parent.dictRenameKey(n, s)
		return
	}
	n.resetScalar()
	n.kind = KindKey
	n.strVal = s
}

func SetDataVal(n *Node, b []byte) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindData
	if b != nil {
		n.dataVal = append([]byte(nil), b...)
	}
}

func SetDateVal(n *Node, secondsSinceMacEpoch float64) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindDate
	n.dateVal = secondsSinceMacEpoch
}

func SetUnixDateVal(n *Node, t time.Time) {
	SetDateVal(n, float64(t.Unix())-MacEpochOffset+float64(t.Nanosecond())/1e9)
}

func SetUidVal(n *Node, v uint64) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindUid
	n.uidVal = v
}

func SetNull(n *Node) {
	if n == nil {
		return
	}
	n.resetScalar()
	n.kind = KindNull
}
