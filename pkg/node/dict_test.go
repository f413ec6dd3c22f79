// pkg/node/dict_test.go
package node

import "testing"

func TestDictSetGetRemove(t *testing.T) {
	d := NewDict()
	if err := DictSetItem(d, "a", NewInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := DictSetItem(d, "b", NewBool(true)); err != nil {
		t.Fatal(err)
	}
	if GetSize(d) != 2 {
		t.Fatalf("got size %d, want 2", GetSize(d))
	}
	if GetIntVal(DictGetItem(d, "a")) != 1 {
		t.Fatal("lookup a")
	}
	if DictItemGetKey(DictGetItem(d, "b")) != "b" {
		t.Fatal("item_get_key")
	}

	// Overwrite.
	if err := DictSetItem(d, "a", NewInt(2)); err != nil {
		t.Fatal(err)
	}
	if GetIntVal(DictGetItem(d, "a")) != 2 {
		t.Fatal("overwrite should replace value")
	}
	if GetSize(d) != 2 {
		t.Fatal("overwrite should not grow the dict")
	}

	removed, err := DictRemoveItem(d, "b")
	if err != nil {
		t.Fatal(err)
	}
	if removed == nil || removed.Parent() != nil {
		t.Fatal("removed value must be detached and returned")
	}
	if GetSize(d) != 1 {
		t.Fatal("expected size 1 after remove")
	}
}

func TestDictHashIndexThreshold(t *testing.T) {
	d := NewDict()
	for i := 0; i < dictIndexThreshold; i++ {
		if err := DictSetItem(d, string(rune('a'+i%26))+string(rune(i)), NewInt(int64(i))); err != nil {
			t.Fatal(err)
		}
	}
	if IsHashIndexed(d) {
		t.Fatal("should not index at exactly threshold")
	}
	if err := DictSetItem(d, "overflow", NewInt(0)); err != nil {
		t.Fatal(err)
	}
	if !IsHashIndexed(d) {
		t.Fatal("should index once past threshold")
	}
	if GetIntVal(DictGetItem(d, "overflow")) != 0 {
		t.Fatal("lookup via index must still work")
	}
}

func TestDictRejectsDuplicateKeyNode(t *testing.T) {
	// Structural invariant: calling DictSetItem twice for the same key
	// never produces two Key children for it.
	d := NewDict()
	_ = DictSetItem(d, "x", NewInt(1))
	_ = DictSetItem(d, "x", NewInt(2))
	count := 0
	for i := 0; i < len(d.children); i += 2 {
		if d.children[i].strVal == "x" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one Key child for %q, got %d", "x", count)
	}
}

func TestCoercionHelpers(t *testing.T) {
	d := NewDict()
	_ = DictSetItem(d, "boolstr", NewString("true"))
	_ = DictSetItem(d, "intstr", NewString("42"))
	_ = DictSetItem(d, "databool", NewData([]byte{0x01}))
	_ = DictSetItem(d, "dataint", NewData([]byte{0x2a, 0x00, 0x00, 0x00}))

	if v, ok := DictGetBool(d, "boolstr"); !ok || !v {
		t.Fatal("bool from string")
	}
	if v, ok := DictGetInt(d, "intstr"); !ok || v != 42 {
		t.Fatal("int from string")
	}
	if v, ok := DictGetBool(d, "databool"); !ok || !v {
		t.Fatal("bool from 1-byte data")
	}
	if v, ok := DictGetInt(d, "dataint"); !ok || v != 42 {
		t.Fatal("int from 4-byte LE data")
	}
}

func TestDictCopyHelpers(t *testing.T) {
	src := NewDict()
	_ = DictSetItem(src, "name", NewString("alice"))
	_ = DictSetItem(src, "legacy_age", NewString("30"))
	_ = DictSetItem(src, "blob", NewData([]byte{1, 2}))

	dst := NewDict()
	if err := DictCopyString(dst, src, "name", ""); err != nil {
		t.Fatal(err)
	}
	if err := DictCopyInt(dst, src, "age", "legacy_age"); err != nil {
		t.Fatal(err)
	}
	if err := DictCopyData(dst, src, "blob", ""); err != nil {
		t.Fatal(err)
	}

	if GetStringVal(DictGetItem(dst, "name")) != "alice" {
		t.Fatal("copy string")
	}
	if GetIntVal(DictGetItem(dst, "age")) != 30 {
		t.Fatal("copy int with alt key")
	}
	if string(GetDataVal(DictGetItem(dst, "blob"))) != "\x01\x02" {
		t.Fatal("copy data")
	}

	// Mutating the source must not affect the copy.
	SetStringVal(DictGetItem(src, "name"), "bob")
	if GetStringVal(DictGetItem(dst, "name")) != "alice" {
		t.Fatal("copy must not share state with source")
	}
}

func TestMerge(t *testing.T) {
	target := NewDict()
	_ = DictSetItem(target, "a", NewInt(1))
	_ = DictSetItem(target, "b", NewInt(2))

	source := NewDict()
	_ = DictSetItem(source, "b", NewInt(20))
	_ = DictSetItem(source, "c", NewInt(3))

	if err := Merge(target, source); err != nil {
		t.Fatal(err)
	}
	if GetSize(target) != 3 {
		t.Fatalf("got size %d, want 3", GetSize(target))
	}
	if GetIntVal(DictGetItem(target, "b")) != 20 {
		t.Fatal("merge should overwrite colliding keys")
	}
	if GetIntVal(DictGetItem(target, "c")) != 3 {
		t.Fatal("merge should add new keys")
	}
}
