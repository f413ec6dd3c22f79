// pkg/codec/bplist/writer.go
package bplist

import (
	"encoding/binary"
	"math"

	"plist/pkg/node"
)

// Write serializes a Node tree to a bplist00 stream.
//
// Every distinct Bool/Integer/Real/Date/Data/Uid/Null/String(or Key) value
// is assigned a single object index and shared by every reference to it
// (spec.md §9 DESIGN NOTES resolves the writer's dedup scope as "full"
// rather than strings-only: the wire format has no separate record kind
// for Key versus String, so a Key and a String with identical text are the
// same object on the wire). Containers are never deduplicated.
func Write(root *node.Node) ([]byte, error) {
	w := &writer{
		boolIdx: make(map[bool]uint64),
		intIdx:  make(map[intKey]uint64),
		realIdx: make(map[uint64]uint64),
		dateIdx: make(map[uint64]uint64),
		dataIdx: make(map[string]uint64),
		uidIdx:  make(map[uint64]uint64),
		strIdx:  make(map[string]uint64),
	}
	top, err := w.collect(root, 0)
	if err != nil {
		return nil, err
	}

	numObjects := uint64(len(w.descriptors))
	if numObjects == 0 {
		return nil, formatErr("empty object graph")
	}
	refSize := bytesNeeded(numObjects - 1)

	objBytes := make([][]byte, numObjects)
	for i, d := range w.descriptors {
		objBytes[i] = encodeDescriptor(d, refSize)
	}

	out := make([]byte, 0, 64)
	out = append(out, Magic...)
	offsets := make([]uint64, numObjects)
	for i, b := range objBytes {
		offsets[i] = uint64(len(out))
		out = append(out, b...)
	}
	offsetTableStart := uint64(len(out))
	offsetSize := bytesNeeded(offsetTableStart)
	for _, off := range offsets {
		out = append(out, encodeOffset(off, offsetSize)...)
	}

	trailer := make([]byte, TrailerSize)
	trailer[6] = byte(offsetSize)
	trailer[7] = byte(refSize)
	binary.BigEndian.PutUint64(trailer[8:16], numObjects)
	binary.BigEndian.PutUint64(trailer[16:24], top)
	binary.BigEndian.PutUint64(trailer[24:32], offsetTableStart)
	out = append(out, trailer...)

	return out, nil
}

type intKey struct {
	bits  uint64
	width node.IntWidth
}

type descriptor struct {
	kind    node.Kind
	boolVal bool
	intBits uint64
	width   node.IntWidth
	realVal float64
	strVal  string
	dataVal []byte
	dateVal float64
	uidVal  uint64
	refs    []uint64 // Array: item refs. Dict: key refs then value refs.
	count   int      // Array: item count. Dict: pair count.
}

type writer struct {
	descriptors []descriptor
	boolIdx     map[bool]uint64
	intIdx      map[intKey]uint64
	realIdx     map[uint64]uint64
	dateIdx     map[uint64]uint64
	dataIdx     map[string]uint64
	uidIdx      map[uint64]uint64
	strIdx      map[string]uint64
	hasNull     bool
	nullIdx     uint64
}

func (w *writer) push(d descriptor) uint64 {
	idx := uint64(len(w.descriptors))
	w.descriptors = append(w.descriptors, d)
	return idx
}

func (w *writer) collectString(s string) uint64 {
	if idx, ok := w.strIdx[s]; ok {
		return idx
	}
	idx := w.push(descriptor{kind: node.KindString, strVal: s})
	w.strIdx[s] = idx
	return idx
}

func (w *writer) collect(n *node.Node, depth int) (uint64, error) {
	if n == nil {
		return 0, node.Wrap(node.KindInvalidArg, "write", node.ErrNilNode)
	}
	if depth > node.MaxDepth {
		return 0, node.ErrMaxNesting()
	}
	switch node.GetType(n) {
	case node.KindBool:
		v := node.GetBoolVal(n)
		if idx, ok := w.boolIdx[v]; ok {
			return idx, nil
		}
		idx := w.push(descriptor{kind: node.KindBool, boolVal: v})
		w.boolIdx[v] = idx
		return idx, nil
	case node.KindNull:
		if w.hasNull {
			return w.nullIdx, nil
		}
		idx := w.push(descriptor{kind: node.KindNull})
		w.hasNull = true
		w.nullIdx = idx
		return idx, nil
	case node.KindInt:
		key := intKey{node.GetUintVal(n), node.GetWidth(n)}
		if idx, ok := w.intIdx[key]; ok {
			return idx, nil
		}
		idx := w.push(descriptor{kind: node.KindInt, intBits: key.bits, width: key.width})
		w.intIdx[key] = idx
		return idx, nil
	case node.KindReal:
		bits := math.Float64bits(node.GetRealVal(n))
		if idx, ok := w.realIdx[bits]; ok {
			return idx, nil
		}
		idx := w.push(descriptor{kind: node.KindReal, realVal: node.GetRealVal(n)})
		w.realIdx[bits] = idx
		return idx, nil
	case node.KindDate:
		bits := math.Float64bits(node.GetDateVal(n))
		if idx, ok := w.dateIdx[bits]; ok {
			return idx, nil
		}
		idx := w.push(descriptor{kind: node.KindDate, dateVal: node.GetDateVal(n)})
		w.dateIdx[bits] = idx
		return idx, nil
	case node.KindUid:
		v := node.GetUidVal(n)
		if idx, ok := w.uidIdx[v]; ok {
			return idx, nil
		}
		idx := w.push(descriptor{kind: node.KindUid, uidVal: v})
		w.uidIdx[v] = idx
		return idx, nil
	case node.KindData:
		raw := node.GetDataPtr(n)
		k := string(raw)
		if idx, ok := w.dataIdx[k]; ok {
			return idx, nil
		}
		idx := w.push(descriptor{kind: node.KindData, dataVal: append([]byte(nil), raw...)})
		w.dataIdx[k] = idx
		return idx, nil
	case node.KindString, node.KindKey:
		return w.collectString(node.GetStringVal(n)), nil
	case node.KindArray:
		size := node.GetSize(n)
		refs := make([]uint64, 0, size)
		for i := 0; i < size; i++ {
			idx, err := w.collect(node.GetItem(n, i), depth+1)
			if err != nil {
				return 0, err
			}
			refs = append(refs, idx)
		}
		return w.push(descriptor{kind: node.KindArray, refs: refs, count: size}), nil
	case node.KindDict:
		it := node.NewDictIterator(n)
		var keyRefs, valRefs []uint64
		for {
			key, val, more, err := it.Next()
			if err != nil {
				return 0, err
			}
			if !more {
				break
			}
			kIdx := w.collectString(key)
			vIdx, err := w.collect(val, depth+1)
			if err != nil {
				return 0, err
			}
			keyRefs = append(keyRefs, kIdx)
			valRefs = append(valRefs, vIdx)
		}
		refs := make([]uint64, 0, len(keyRefs)+len(valRefs))
		refs = append(refs, keyRefs...)
		refs = append(refs, valRefs...)
		return w.push(descriptor{kind: node.KindDict, refs: refs, count: len(keyRefs)}), nil
	default:
		return 0, formatErr("node kind cannot be written to a binary plist")
	}
}

func encodeDescriptor(d descriptor, refSize int) []byte {
	switch d.kind {
	case node.KindBool:
		if d.boolVal {
			return []byte{tagSimple<<4 | simpleTrue}
		}
		return []byte{tagSimple<<4 | simpleFalse}
	case node.KindNull:
		return []byte{tagSimple<<4 | simpleNull}
	case node.KindInt:
		return encodeIntPayload(d.intBits, d.width)
	case node.KindReal:
		out := make([]byte, 9)
		out[0] = byte(tagReal<<4 | 0x3)
		binary.BigEndian.PutUint64(out[1:], math.Float64bits(d.realVal))
		return out
	case node.KindDate:
		out := make([]byte, 9)
		out[0] = byte(tagDate<<4 | 0x3)
		binary.BigEndian.PutUint64(out[1:], math.Float64bits(d.dateVal))
		return out
	case node.KindUid:
		return encodeUID(d.uidVal)
	case node.KindData:
		out := encodeTagLength(tagData, uint64(len(d.dataVal)))
		return append(out, d.dataVal...)
	case node.KindString:
		return encodeStringBytes(d.strVal)
	case node.KindArray:
		out := encodeTagLength(tagArray, uint64(d.count))
		for _, ref := range d.refs {
			out = append(out, encodeRef(ref, refSize)...)
		}
		return out
	case node.KindDict:
		out := encodeTagLength(tagDict, uint64(d.count))
		for _, ref := range d.refs {
			out = append(out, encodeRef(ref, refSize)...)
		}
		return out
	default:
		return nil
	}
}
