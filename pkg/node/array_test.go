// pkg/node/array_test.go
package node

import "testing"

func TestArrayInsertSetRemove(t *testing.T) {
	arr := NewArray()
	for i := 0; i < 3; i++ {
		if err := AppendItem(arr, NewInt(int64(i))); err != nil {
			t.Fatal(err)
		}
	}
	if err := InsertItem(arr, 1, NewInt(100)); err != nil {
		t.Fatal(err)
	}
	want := []int64{0, 100, 1, 2}
	if GetSize(arr) != len(want) {
		t.Fatalf("got size %d, want %d", GetSize(arr), len(want))
	}
	for i, w := range want {
		if GetIntVal(GetItem(arr, i)) != w {
			t.Fatalf("index %d: got %d want %d", i, GetIntVal(GetItem(arr, i)), w)
		}
	}

	replacement := NewInt(999)
	if err := SetItem(arr, 0, replacement); err != nil {
		t.Fatal(err)
	}
	if GetIntVal(GetItem(arr, 0)) != 999 {
		t.Fatal("set item did not replace")
	}

	removed, err := RemoveItem(arr, 0)
	if err != nil {
		t.Fatal(err)
	}
	if removed.Parent() != nil {
		t.Fatal("removed item must be detached")
	}
	if GetSize(arr) != 3 {
		t.Fatal("expected size 3 after remove")
	}
}

func TestArraySetItemRejectsParentedNode(t *testing.T) {
	arr := NewArray()
	if err := AppendItem(arr, NewInt(1)); err != nil {
		t.Fatal(err)
	}
	other := NewArray()
	parented := NewInt(2)
	if err := AppendItem(other, parented); err != nil {
		t.Fatal(err)
	}
	if err := SetItem(arr, 0, parented); err == nil {
		t.Fatal("expected error setting an already-parented node")
	}
	if GetIntVal(GetItem(arr, 0)) != 1 {
		t.Fatal("failed set must leave the array unchanged")
	}
}

func TestArrayIndexThreshold(t *testing.T) {
	arr := NewArray()
	for i := 0; i < arrIndexThreshold; i++ {
		if err := AppendItem(arr, NewInt(int64(i))); err != nil {
			t.Fatal(err)
		}
	}
	if IsIndexed(arr) {
		t.Fatal("should not be indexed at exactly the threshold")
	}
	if err := AppendItem(arr, NewInt(0)); err != nil {
		t.Fatal(err)
	}
	if !IsIndexed(arr) {
		t.Fatal("should be indexed once past the threshold")
	}
}

func TestArrayIteratorInvalidation(t *testing.T) {
	arr := NewArray()
	for i := 0; i < 3; i++ {
		_ = AppendItem(arr, NewInt(int64(i)))
	}
	it := NewArrayIterator(arr)
	if _, _, err := it.Next(); err != nil {
		t.Fatal(err)
	}
	_ = AppendItem(arr, NewInt(9))
	if _, _, err := it.Next(); err == nil {
		t.Fatal("expected iterator invalidation after structural change")
	}
}
