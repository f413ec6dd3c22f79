// pkg/node/dict.go
package node

import (
	"encoding/binary"
	"strconv"
)

// dictIndexThreshold is the pair count beyond which Dict builds its
// key -> value hash index (spec.md §4.1: "built lazily when the dict
// exceeds 500 entries").
const dictIndexThreshold = 500

// IsHashIndexed reports whether a Dict has built its lookup cache.
func IsHashIndexed(n *Node) bool {
	if n == nil || n.kind != KindDict {
		return false
	}
	return n.dictIndex != nil
}

func (n *Node) rebuildDictIndex() {
	n.dictIndex = make(map[string]*Node, len(n.children)/2)
	for i := 0; i+1 < len(n.children); i += 2 {
		n.dictIndex[n.children[i].strVal] = n.children[i+1]
	}
}

func (n *Node) maybeBuildDictIndex() {
	if n.dictIndex == nil && GetSize(n) > dictIndexThreshold {
		n.rebuildDictIndex()
	}
}

// dictLookup returns the value node for key and whether it was found. It
// uses the hash index when built, otherwise scans linearly.
func (n *Node) dictLookup(key string) (*Node, bool) {
	if n.dictIndex != nil {
		v, ok := n.dictIndex[key]
		return v, ok
	}
	for i := 0; i+1 < len(n.children); i += 2 {
		if n.children[i].strVal == key {
			return n.children[i+1], true
		}
	}
	return nil, false
}

// DictGetItem returns the value bound to key in Dict n, or nil if absent.
func DictGetItem(n *Node, key string) *Node {
	if n == nil || n.kind != KindDict {
		return nil
	}
	v, _ := n.dictLookup(key)
	return v
}

// DictItemGetKey returns the key string that binds to value, the sibling
// immediately preceding it in its parent Dict's child list. Returns "" if
// value is not the value-half of a Dict pair.
func DictItemGetKey(value *Node) string {
	if value == nil || value.parent == nil || value.parent.kind != KindDict {
		return ""
	}
	p := value.parent
	for i := 1; i < len(p.children); i += 2 {
		if p.children[i] == value {
			return p.children[i-1].strVal
		}
	}
	return ""
}

// DictSetItem binds key to item in Dict n. If key already exists, the old
// value is detached and replaced; otherwise a new Key/value pair is
// appended. item must be detached.
func DictSetItem(n *Node, key string, item *Node) error {
	if n == nil || n.kind != KindDict {
		return Wrap(KindInvalidArg, "dict set item", ErrWrongKind)
	}
	if item == nil {
		return Wrap(KindInvalidArg, "dict set item", ErrNilNode)
	}
	if item.parent != nil {
		return Wrap(KindInvalidArg, "dict set item", ErrHasParent)
	}
	for i := 0; i+1 < len(n.children); i += 2 {
		if n.children[i].strVal == key {
			old := n.children[i+1]
			old.parent = nil
			item.parent = n
			n.children[i+1] = item
			if n.dictIndex != nil {
				n.dictIndex[key] = item
			}
			n.iterGen++
			return nil
		}
	}
	keyNode := NewKey(key)
	keyNode.parent = n
	item.parent = n
	n.children = append(n.children, keyNode, item)
	if n.dictIndex != nil {
		n.dictIndex[key] = item
	}
	n.maybeBuildDictIndex()
	n.iterGen++
	return nil
}

// DictRemoveItem unbinds key from Dict n, returning the detached value
// node, or nil if key was absent.
func DictRemoveItem(n *Node, key string) (*Node, error) {
	if n == nil || n.kind != KindDict {
		return nil, Wrap(KindInvalidArg, "dict remove item", ErrWrongKind)
	}
	for i := 0; i+1 < len(n.children); i += 2 {
		if n.children[i].strVal == key {
			keyNode := n.children[i]
			valNode := n.children[i+1]
			keyNode.parent = nil
			valNode.parent = nil
			n.children = append(n.children[:i], n.children[i+2:]...)
			if n.dictIndex != nil {
				delete(n.dictIndex, key)
			}
			n.iterGen++
			return valNode, nil
		}
	}
	return nil, nil
}

// dictDetach removes a known child (key or value node) of Dict n, used by
// the generic Detach entry point. Detaching either half of a pair removes
// the whole pair, preserving invariant 1 (Keys only ever appear paired).
func (n *Node) dictDetach(item *Node) error {
	for i := 0; i+1 < len(n.children); i += 2 {
		if n.children[i] == item || n.children[i+1] == item {
			_, err := DictRemoveItem(n, n.children[i].strVal)
			return err
		}
	}
	return Wrap(KindInvalidArg, "detach", ErrNotInContainer)
}

// dictRenameKey updates an already-attached Key node's string in place and
// keeps the hash index coherent. Caller has already verified no collision.
func (n *Node) dictRenameKey(keyNode *Node, newKey string) {
	old := keyNode.strVal
	keyNode.strVal = newKey
	if n.dictIndex != nil {
		if v, ok := n.dictIndex[old]; ok {
			delete(n.dictIndex, old)
			n.dictIndex[newKey] = v
		}
	}
	n.iterGen++
}

// Merge deep-copies each entry of source into target, overwriting any
// colliding keys (spec.md §4.1 dict merge).
func Merge(target, source *Node) error {
	if target == nil || target.kind != KindDict {
		return Wrap(KindInvalidArg, "merge", ErrWrongKind)
	}
	if source == nil || source.kind != KindDict {
		return Wrap(KindInvalidArg, "merge", ErrWrongKind)
	}
	for i := 0; i+1 < len(source.children); i += 2 {
		key := source.children[i].strVal
		cp, err := Copy(source.children[i+1])
		if err != nil {
			return err
		}
		if existing, ok := target.dictLookup(key); ok {
			existing.parent = nil
		}
		if err := DictSetItem(target, key, cp); err != nil {
			return err
		}
	}
	return nil
}

// ---- coercion helpers ----

// CoerceBool interprets n as a boolean the way Dict's get_bool does:
// native Bool, the literal strings "true"/"false", or a nonzero/zero
// Integer.
func CoerceBool(n *Node) (bool, bool) {
	if n == nil {
		return false, false
	}
	switch n.kind {
	case KindBool:
		return n.boolVal, true
	case KindString, KindKey:
		switch n.strVal {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	case KindInt:
		return n.intBits != 0, true
	case KindData:
		v, ok := coerceDataUint(n.dataVal)
		return v != 0, ok
	default:
		return false, false
	}
}

// CoerceInt interprets n as a signed integer: native Integer, a numeric
// String, or 1/2/4/8-byte little-endian Data.
func CoerceInt(n *Node) (int64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.kind {
	case KindInt:
		return int64(n.intBits), true
	case KindString, KindKey:
		v, err := strconv.ParseInt(n.strVal, 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case KindData:
		v, ok := coerceDataUint(n.dataVal)
		return int64(v), ok
	default:
		return 0, false
	}
}

// CoerceUint interprets n as an unsigned integer, mirroring CoerceInt.
func CoerceUint(n *Node) (uint64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.kind {
	case KindInt:
		return n.intBits, true
	case KindString, KindKey:
		v, err := strconv.ParseUint(n.strVal, 10, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	case KindData:
		return coerceDataUint(n.dataVal)
	default:
		return 0, false
	}
}

func coerceDataUint(b []byte) (uint64, bool) {
	switch len(b) {
	case 1:
		return uint64(b[0]), true
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), true
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), true
	case 8:
		return binary.LittleEndian.Uint64(b), true
	default:
		return 0, false
	}
}

// DictGetBool looks up key in Dict n and coerces it to bool.
func DictGetBool(n *Node, key string) (bool, bool) { return CoerceBool(DictGetItem(n, key)) }

// DictGetInt looks up key in Dict n and coerces it to int64.
func DictGetInt(n *Node, key string) (int64, bool) { return CoerceInt(DictGetItem(n, key)) }

// DictGetUint looks up key in Dict n and coerces it to uint64.
func DictGetUint(n *Node, key string) (uint64, bool) { return CoerceUint(DictGetItem(n, key)) }

func sourceKey(key, altKey string) string {
	if altKey != "" {
		return altKey
	}
	return key
}

// DictCopyItem deep-copies source[altKey or key] into target[key].
func DictCopyItem(target, source *Node, key, altKey string) error {
	v := DictGetItem(source, sourceKey(key, altKey))
	if v == nil {
		return nil
	}
	cp, err := Copy(v)
	if err != nil {
		return err
	}
	return DictSetItem(target, key, cp)
}

// DictCopyBool copies source[altKey or key], coerced to Bool, into target[key].
func DictCopyBool(target, source *Node, key, altKey string) error {
	v, ok := DictGetBool(source, sourceKey(key, altKey))
	if !ok {
		return nil
	}
	return DictSetItem(target, key, NewBool(v))
}

// DictCopyInt copies source[altKey or key], coerced to Integer, into target[key].
func DictCopyInt(target, source *Node, key, altKey string) error {
	v, ok := DictGetInt(source, sourceKey(key, altKey))
	if !ok {
		return nil
	}
	return DictSetItem(target, key, NewInt(v))
}

// DictCopyUint copies source[altKey or key], coerced to unsigned Integer, into target[key].
func DictCopyUint(target, source *Node, key, altKey string) error {
	v, ok := DictGetUint(source, sourceKey(key, altKey))
	if !ok {
		return nil
	}
	return DictSetItem(target, key, NewUint(v))
}

// DictCopyString copies source[altKey or key] into target[key] as a String,
// using the String/Key payload directly if present.
func DictCopyString(target, source *Node, key, altKey string) error {
	v := DictGetItem(source, sourceKey(key, altKey))
	if v == nil || (v.kind != KindString && v.kind != KindKey) {
		return nil
	}
	return DictSetItem(target, key, NewString(v.strVal))
}

// DictCopyData copies source[altKey or key] into target[key] as Data.
func DictCopyData(target, source *Node, key, altKey string) error {
	v := DictGetItem(source, sourceKey(key, altKey))
	if v == nil || v.kind != KindData {
		return nil
	}
	return DictSetItem(target, key, NewData(v.dataVal))
}
