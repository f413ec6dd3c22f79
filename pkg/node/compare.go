// pkg/node/compare.go
package node

import "bytes"

// CompareValue implements spec.md §4.1's plist_compare_node_value: scalar
// kinds compare structurally; Array/Dict compare only by identity. Data and
// Uid get explicit byte-exact / numeric paths (original_source/Node.cpp
// special-cases both; spec.md's distillation folds them into "scalars").
func CompareValue(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt:
		return a.intBits == b.intBits && a.width == b.width
	case KindReal:
		return a.realVal == b.realVal
	case KindString, KindKey:
		return a.strVal == b.strVal
	case KindData:
		return bytes.Equal(a.dataVal, b.dataVal)
	case KindDate:
		return a.dateVal == b.dateVal
	case KindUid:
		return a.uidVal == b.uidVal
	case KindNull:
		return true
	case KindArray, KindDict:
		return a == b
	default:
		return false
	}
}

// DeepEqual recursively compares two trees for structural equality,
// including ordered child-list equality for containers. This is what
// spec.md §8's round-trip properties (read(write(T)) ≡ T) are stated
// against; CompareValue alone cannot express it for containers since it is
// intentionally identity-only there.
func DeepEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	if !a.kind.IsContainer() {
		return CompareValue(a, b)
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !DeepEqual(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
