// pkg/node/path_test.go
package node

import "testing"

func TestAccessPath(t *testing.T) {
	root := NewDict()
	arr := NewArray()
	inner := NewDict()
	_ = DictSetItem(inner, "name", NewString("value"))
	_ = AppendItem(arr, NewInt(1))
	_ = AppendItem(arr, inner)
	_ = DictSetItem(root, "items", arr)

	got := AccessPath(root, "items", 1, "name")
	if GetStringVal(got) != "value" {
		t.Fatalf("got %v", got)
	}
}

func TestAccessPathMiss(t *testing.T) {
	root := NewDict()
	_ = DictSetItem(root, "a", NewInt(1))

	if AccessPath(root, "missing") != nil {
		t.Fatal("expected nil for missing key")
	}
	if AccessPath(root, 0) != nil {
		t.Fatal("expected nil: int step against a Dict")
	}
	if AccessPath(root, "a", "b") != nil {
		t.Fatal("expected nil: stepping past a scalar")
	}
}
