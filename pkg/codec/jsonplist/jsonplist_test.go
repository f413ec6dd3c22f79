// pkg/codec/jsonplist/jsonplist_test.go
package jsonplist

import (
	"strings"
	"testing"

	"plist/pkg/node"
)

func TestReadObjectAndArray(t *testing.T) {
	root, err := Read([]byte(`{"a": 1, "b": true, "c": [1, 2.5, "x", null]}`))
	if err != nil {
		t.Fatal(err)
	}
	if node.GetIntVal(node.DictGetItem(root, "a")) != 1 {
		t.Fatal("a mismatch")
	}
	if !node.GetBoolVal(node.DictGetItem(root, "b")) {
		t.Fatal("b mismatch")
	}
	arr := node.DictGetItem(root, "c")
	if node.GetSize(arr) != 4 {
		t.Fatalf("expected 4 items, got %d", node.GetSize(arr))
	}
	if node.GetType(node.GetItem(arr, 3)) != node.KindNull {
		t.Fatal("expected null item")
	}
}

func TestTopLevelScalarRejected(t *testing.T) {
	if _, err := Read([]byte(`"just a string"`)); err == nil {
		t.Fatal("expected error for scalar top-level JSON value")
	}
	if _, err := Read([]byte(`42`)); err == nil {
		t.Fatal("expected error for scalar top-level JSON value")
	}
}

func TestStringEscapesAndSurrogatePairs(t *testing.T) {
	root, err := Read([]byte(`["a\n\t\"\\\/b", "😀"]`))
	if err != nil {
		t.Fatal(err)
	}
	if node.GetStringVal(node.GetItem(root, 0)) != "a\n\t\"\\/b" {
		t.Fatalf("got %q", node.GetStringVal(node.GetItem(root, 0)))
	}
	if node.GetStringVal(node.GetItem(root, 1)) != "\U0001F600" {
		t.Fatalf("got %q", node.GetStringVal(node.GetItem(root, 1)))
	}
}

func TestWithoutCoerceRejectsData(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "d", node.NewData([]byte{1, 2, 3}))
	if _, err := Write(dict, WriteOptions{}); err == nil {
		t.Fatal("expected Format error without coerce")
	}
}

func TestCoerceMapsDataDateUid(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "d", node.NewData([]byte("Hello, World!")))
	node.DictSetItem(dict, "t", node.NewDate(0))
	node.DictSetItem(dict, "u", node.NewUid(7))

	out, err := Write(dict, WriteOptions{Coerce: true})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, `"SGVsbG8sIFdvcmxkIQ=="`) {
		t.Fatalf("expected base64 data, got %s", s)
	}
	if !strings.Contains(s, `"2001-01-01T00:00:00Z"`) {
		t.Fatalf("expected ISO8601 date, got %s", s)
	}
	if !strings.Contains(s, `"CF$UID"`) {
		t.Fatalf("expected CF$UID object, got %s", s)
	}
}

func TestCompactHasNoWhitespace(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "a", node.NewInt(1))
	out, err := Write(dict, WriteOptions{Compact: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":1}` {
		t.Fatalf("got %q", out)
	}
}

func TestPrettyIndentsTwoSpaces(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "a", node.NewInt(1))
	out, err := Write(dict, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "\n  \"a\": 1\n") {
		t.Fatalf("got %q", out)
	}
}

func TestLargeIntegerRoundTrip(t *testing.T) {
	root, err := Read([]byte(`[18446744073709551615]`))
	if err != nil {
		t.Fatal(err)
	}
	v := node.GetItem(root, 0)
	if node.GetWidth(v) != node.Width128 {
		t.Fatalf("expected Width128, got %v", node.GetWidth(v))
	}
	if node.GetUintVal(v) != 18446744073709551615 {
		t.Fatalf("got %v", node.GetUintVal(v))
	}
	out, err := Write(root, WriteOptions{Compact: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[18446744073709551615]" {
		t.Fatalf("got %q", out)
	}
}
