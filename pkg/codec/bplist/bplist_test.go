// pkg/codec/bplist/bplist_test.go
package bplist

import (
	"testing"

	"plist/pkg/node"
)

func TestRoundTripScalarDict(t *testing.T) {
	dict := node.NewDict()
	if err := node.DictSetItem(dict, "a", node.NewInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := node.DictSetItem(dict, "b", node.NewBool(true)); err != nil {
		t.Fatal(err)
	}

	out, err := Write(dict)
	if err != nil {
		t.Fatal(err)
	}
	if string(out[:8]) != Magic {
		t.Fatalf("missing magic: %x", out[:8])
	}
	if len(out) < 8+TrailerSize {
		t.Fatalf("stream too short: %d bytes", len(out))
	}

	got, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if node.GetType(got) != node.KindDict {
		t.Fatalf("expected dict, got %v", node.GetType(got))
	}
	if v := node.DictGetItem(got, "a"); node.GetIntVal(v) != 1 {
		t.Fatalf("a = %v", node.GetIntVal(v))
	}
	if v := node.DictGetItem(got, "b"); !node.GetBoolVal(v) {
		t.Fatal("b should be true")
	}
}

func TestRoundTripNestedArray(t *testing.T) {
	root := node.NewArray()
	inner := node.NewArray()
	node.AppendItem(inner, node.NewString("hello"))
	node.AppendItem(inner, node.NewReal(3.5))
	node.AppendItem(root, inner)
	node.AppendItem(root, node.NewData([]byte{1, 2, 3}))
	node.AppendItem(root, node.NewDate(12345.5))
	node.AppendItem(root, node.NewUid(7))

	out, err := Write(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if node.GetSize(got) != 4 {
		t.Fatalf("expected 4 items, got %d", node.GetSize(got))
	}
	innerGot := node.GetItem(got, 0)
	if node.GetStringVal(node.GetItem(innerGot, 0)) != "hello" {
		t.Fatal("nested string mismatch")
	}
	if node.GetRealVal(node.GetItem(innerGot, 1)) != 3.5 {
		t.Fatal("nested real mismatch")
	}
	if string(node.GetDataVal(node.GetItem(got, 1))) != "\x01\x02\x03" {
		t.Fatal("data mismatch")
	}
	if node.GetDateVal(node.GetItem(got, 2)) != 12345.5 {
		t.Fatal("date mismatch")
	}
	if node.GetUidVal(node.GetItem(got, 3)) != 7 {
		t.Fatal("uid mismatch")
	}
}

func TestIntegerWidthPreserved(t *testing.T) {
	root := node.NewArray()
	node.AppendItem(root, node.NewInt(-1))
	node.AppendItem(root, node.NewUint(18446744073709551615)) // MaxUint64, needs Width128

	out, err := Write(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if node.GetIntVal(node.GetItem(got, 0)) != -1 {
		t.Fatalf("negative int mismatch: %v", node.GetIntVal(node.GetItem(got, 0)))
	}
	big := node.GetItem(got, 1)
	if node.GetWidth(big) != node.Width128 {
		t.Fatalf("expected Width128, got %v", node.GetWidth(big))
	}
	if node.GetUintVal(big) != 18446744073709551615 {
		t.Fatalf("uint64 max mismatch: %v", node.GetUintVal(big))
	}
}

func TestScalarDeduplication(t *testing.T) {
	root := node.NewArray()
	node.AppendItem(root, node.NewString("shared"))
	node.AppendItem(root, node.NewString("shared"))
	node.AppendItem(root, node.NewInt(42))
	node.AppendItem(root, node.NewInt(42))

	out, err := Write(root)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if node.GetStringVal(node.GetItem(got, 0)) != "shared" || node.GetStringVal(node.GetItem(got, 1)) != "shared" {
		t.Fatal("string round-trip mismatch")
	}
	if node.GetIntVal(node.GetItem(got, 2)) != 42 || node.GetIntVal(node.GetItem(got, 3)) != 42 {
		t.Fatal("int round-trip mismatch")
	}
}

func TestNonASCIIStringUsesUTF16(t *testing.T) {
	root := node.NewString("héllo")
	out, err := Write(root)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if node.GetStringVal(got) != "héllo" {
		t.Fatalf("got %q", node.GetStringVal(got))
	}
}

func TestTruncatedStreamRejected(t *testing.T) {
	if _, err := Read([]byte("short")); err == nil {
		t.Fatal("expected error for too-short stream")
	}
}

func TestBadMagicRejected(t *testing.T) {
	buf := make([]byte, 8+TrailerSize)
	copy(buf, "notaplst")
	if _, err := Read(buf); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestMaxNestingEnforcedOnWrite(t *testing.T) {
	var build func(depth int) *node.Node
	build = func(depth int) *node.Node {
		if depth == 0 {
			return node.NewInt(0)
		}
		arr := node.NewArray()
		node.AppendItem(arr, build(depth-1))
		return arr
	}
	deep := build(node.MaxDepth + 10)
	if _, err := Write(deep); err == nil {
		t.Fatal("expected max nesting error")
	}
}
