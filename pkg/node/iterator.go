// pkg/node/iterator.go
package node

// ArrayIterator is a forward iterator over an Array's items. It is
// invalidated by any structural change to the owning Array (spec.md §4.1).
type ArrayIterator struct {
	arr *Node
	idx int
	gen uint64
}

// NewArrayIterator returns an iterator over n, or nil if n is not an Array.
func NewArrayIterator(n *Node) *ArrayIterator {
	if n == nil || n.kind != KindArray {
		return nil
	}
	return &ArrayIterator{arr: n, gen: n.iterGen}
}

// Next returns the next item and true, or nil and false once exhausted. It
// returns ErrIterInvalid if the owning Array has mutated since creation.
func (it *ArrayIterator) Next() (*Node, bool, error) {
	if it.arr.iterGen != it.gen {
		return nil, false, Wrap(KindInvalidArg, "array iterator", ErrIterInvalid)
	}
	if it.idx >= len(it.arr.children) {
		return nil, false, nil
	}
	v := it.arr.children[it.idx]
	it.idx++
	return v, true, nil
}

// DictIterator is a forward iterator over a Dict's Key/value pairs. It is
// invalidated by any structural change to the owning Dict.
type DictIterator struct {
	dict *Node
	idx  int
	gen  uint64
}

// NewDictIterator returns an iterator over n, or nil if n is not a Dict.
func NewDictIterator(n *Node) *DictIterator {
	if n == nil || n.kind != KindDict {
		return nil
	}
	return &DictIterator{dict: n, gen: n.iterGen}
}

// Next returns the next (key, value) pair and true, or ("", nil, false)
// once exhausted. It returns ErrIterInvalid if the owning Dict has mutated
// since creation.
func (it *DictIterator) Next() (string, *Node, bool, error) {
	if it.dict.iterGen != it.gen {
		return "", nil, false, Wrap(KindInvalidArg, "dict iterator", ErrIterInvalid)
	}
	if it.idx+1 >= len(it.dict.children) {
		return "", nil, false, nil
	}
	key := it.dict.children[it.idx].strVal
	val := it.dict.children[it.idx+1]
	it.idx += 2
	return key, val, true, nil
}
