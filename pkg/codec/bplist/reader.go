// pkg/codec/bplist/reader.go
package bplist

import (
	"encoding/binary"
	"math"

	"plist/pkg/node"
	"plist/pkg/plistutil"
)

// Read decodes a complete bplist00 stream into a Node tree.
func Read(data []byte) (*node.Node, error) {
	if len(data) < len(Magic)+TrailerSize {
		return nil, parseErr("stream too short for a bplist00 magic and trailer")
	}
	if string(data[:len(Magic)]) != Magic {
		return nil, parseErr("missing bplist00 magic")
	}

	trailer := data[len(data)-TrailerSize:]
	offsetSize := int(trailer[6])
	objectRefSize := int(trailer[7])
	numObjects := binary.BigEndian.Uint64(trailer[8:16])
	topObject := binary.BigEndian.Uint64(trailer[16:24])
	offsetTableStart := binary.BigEndian.Uint64(trailer[24:32])

	if !validWidth(offsetSize) || !validWidth(objectRefSize) {
		return nil, parseErr("invalid offset_size or object_ref_size in trailer")
	}
	if numObjects == 0 {
		return nil, parseErr("trailer declares zero objects")
	}
	tableEnd := offsetTableStart + numObjects*uint64(offsetSize)
	if tableEnd > uint64(len(data)-TrailerSize) {
		return nil, parseErr("offset table runs past the trailer")
	}

	r := &reader{
		data:       data,
		offsets:    make([]uint64, numObjects),
		refSize:    objectRefSize,
		numObjects: numObjects,
		inProgress: make(map[uint64]bool),
	}
	table := data[offsetTableStart:tableEnd]
	for i := uint64(0); i < numObjects; i++ {
		r.offsets[i] = decodeOffset(table[i*uint64(offsetSize):], offsetSize)
	}

	if topObject >= numObjects {
		return nil, parseErr("top object index out of range")
	}
	return r.materialize(topObject, 0)
}

func validWidth(n int) bool {
	return n == 1 || n == 2 || n == 4 || n == 8
}

type reader struct {
	data       []byte
	offsets    []uint64
	refSize    int
	numObjects uint64
	inProgress map[uint64]bool
}

func (r *reader) objectBytes(idx uint64) ([]byte, error) {
	off := r.offsets[idx]
	if off >= uint64(len(r.data)) {
		return nil, parseErr("object offset out of range")
	}
	return r.data[off:], nil
}

func (r *reader) materialize(idx uint64, depth int) (*node.Node, error) {
	if depth > node.MaxDepth {
		return nil, node.ErrMaxNesting()
	}
	if idx >= r.numObjects {
		return nil, parseErr("object index out of range")
	}
	if r.inProgress[idx] {
		return nil, circularErr()
	}
	r.inProgress[idx] = true
	defer delete(r.inProgress, idx)

	buf, err := r.objectBytes(idx)
	if err != nil {
		return nil, err
	}
	if len(buf) < 1 {
		return nil, parseErr("truncated object record")
	}
	high := buf[0] >> 4
	low := buf[0] & 0x0F

	switch high {
	case tagSimple:
		switch low {
		case simpleNull:
			return node.NewNull(), nil
		case simpleFalse:
			return node.NewBool(false), nil
		case simpleTrue:
			return node.NewBool(true), nil
		default:
			return nil, parseErr("unrecognized fill/simple object")
		}
	case tagInt:
		bits, width, _, err := decodeIntPayload(buf)
		if err != nil {
			return nil, err
		}
		return node.NewUintWidth(bits, width), nil
	case tagReal:
		size := 1 << low
		if len(buf) < 1+size {
			return nil, parseErr("truncated real payload")
		}
		var v float64
		switch size {
		case 4:
			v = float64(math.Float32frombits(binary.BigEndian.Uint32(buf[1:5])))
		case 8:
			v = math.Float64frombits(binary.BigEndian.Uint64(buf[1:9]))
		default:
			return nil, parseErr("unsupported real width")
		}
		return node.NewReal(v), nil
	case tagDate:
		if low != 0x3 || len(buf) < 9 {
			return nil, parseErr("malformed date object")
		}
		v := math.Float64frombits(binary.BigEndian.Uint64(buf[1:9]))
		return node.NewDate(v), nil
	case tagData:
		length, consumed, err := decodeLength(buf, tagData)
		if err != nil {
			return nil, err
		}
		if uint64(len(buf)) < uint64(consumed)+length {
			return nil, parseErr("truncated data payload")
		}
		return node.NewData(buf[consumed : uint64(consumed)+length]), nil
	case tagASCII:
		length, consumed, err := decodeLength(buf, tagASCII)
		if err != nil {
			return nil, err
		}
		if uint64(len(buf)) < uint64(consumed)+length {
			return nil, parseErr("truncated ascii string payload")
		}
		raw := buf[consumed : uint64(consumed)+length]
		return node.NewString(plistutil.Latin1ToUTF8(raw)), nil
	case tagUTF16:
		units, consumed, err := decodeLength(buf, tagUTF16)
		if err != nil {
			return nil, err
		}
		byteLen := units * 2
		if uint64(len(buf)) < uint64(consumed)+byteLen {
			return nil, parseErr("truncated utf16 string payload")
		}
		s, err := plistutil.DecodeUTF16BE(buf[consumed : uint64(consumed)+byteLen])
		if err != nil {
			return nil, parseErrWrap("utf16 string payload", err)
		}
		return node.NewString(s), nil
	case tagUID:
		v, _, err := decodeUID(buf)
		if err != nil {
			return nil, err
		}
		return node.NewUid(v), nil
	case tagArray:
		count, consumed, err := decodeLength(buf, tagArray)
		if err != nil {
			return nil, err
		}
		need := uint64(consumed) + count*uint64(r.refSize)
		if uint64(len(buf)) < need {
			return nil, parseErr("truncated array ref table")
		}
		arr := node.NewArray()
		pos := consumed
		for i := uint64(0); i < count; i++ {
			childIdx := decodeRef(buf[pos:], r.refSize)
			pos += r.refSize
			child, err := r.materialize(childIdx, depth+1)
			if err != nil {
				return nil, err
			}
			if err := node.AppendItem(arr, child); err != nil {
				return nil, err
			}
		}
		return arr, nil
	case tagDict:
		count, consumed, err := decodeLength(buf, tagDict)
		if err != nil {
			return nil, err
		}
		need := uint64(consumed) + 2*count*uint64(r.refSize)
		if uint64(len(buf)) < need {
			return nil, parseErr("truncated dict ref table")
		}
		dict := node.NewDict()
		pos := consumed
		keyRefs := make([]uint64, count)
		for i := uint64(0); i < count; i++ {
			keyRefs[i] = decodeRef(buf[pos:], r.refSize)
			pos += r.refSize
		}
		for i := uint64(0); i < count; i++ {
			valIdx := decodeRef(buf[pos:], r.refSize)
			pos += r.refSize
			keyNode, err := r.materialize(keyRefs[i], depth+1)
			if err != nil {
				return nil, err
			}
			if node.GetType(keyNode) != node.KindString {
				return nil, parseErr("dict key object is not a string")
			}
			valNode, err := r.materialize(valIdx, depth+1)
			if err != nil {
				return nil, err
			}
			if err := node.DictSetItem(dict, node.GetStringVal(keyNode), valNode); err != nil {
				return nil, err
			}
		}
		return dict, nil
	default:
		return nil, parseErr("unrecognized object tag")
	}
}
