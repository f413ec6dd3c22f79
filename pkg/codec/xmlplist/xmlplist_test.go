// pkg/codec/xmlplist/xmlplist_test.go
package xmlplist

import (
	"strings"
	"testing"

	"plist/pkg/node"
)

func TestReadSimpleDict(t *testing.T) {
	in := `<plist><dict><key>a</key><integer>1</integer><key>b</key><true/></dict></plist>`
	root, err := Read([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if node.GetType(root) != node.KindDict || node.GetSize(root) != 2 {
		t.Fatalf("expected dict of size 2, got %v size %d", node.GetType(root), node.GetSize(root))
	}
	if node.GetIntVal(node.DictGetItem(root, "a")) != 1 {
		t.Fatal("a mismatch")
	}
	if !node.GetBoolVal(node.DictGetItem(root, "b")) {
		t.Fatal("b mismatch")
	}
}

func TestCFUIDPromotion(t *testing.T) {
	in := `<plist><dict><key>obj</key><dict><key>CF$UID</key><integer>7</integer></dict></dict></plist>`
	root, err := Read([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	obj := node.DictGetItem(root, "obj")
	if node.GetType(obj) != node.KindUid || node.GetUidVal(obj) != 7 {
		t.Fatalf("expected Uid(7), got %v", node.GetType(obj))
	}

	out, err := Write(root, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<key>CF$UID</key>") {
		t.Fatalf("expected CF$UID dict shape in output, got %s", out)
	}
}

func TestExtraRootRejected(t *testing.T) {
	in := `<plist><string>one</string><string>two</string></plist>`
	if _, err := Read([]byte(in)); err == nil {
		t.Fatal("expected Parse error for two root values")
	}
}

func TestBase64RoundTrip(t *testing.T) {
	in := "<plist><data>\n  SGVsbG8sIFdvcmxkIQ==\n</data></plist>"
	root, err := Read([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if string(node.GetDataVal(root)) != "Hello, World!" {
		t.Fatalf("got %q", node.GetDataVal(root))
	}
	out, err := Write(root, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	root2, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(node.GetDataVal(root2)) != "Hello, World!" {
		t.Fatal("round trip data mismatch")
	}
}

func TestDateEpochConversion(t *testing.T) {
	in := `<plist><date>2001-01-01T00:00:00Z</date></plist>`
	root, err := Read([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if node.GetDateVal(root) != 0 {
		t.Fatalf("expected 0.0, got %v", node.GetDateVal(root))
	}
	if node.GetUnixDateVal(root).Unix() != 978307200 {
		t.Fatalf("expected unix 978307200, got %v", node.GetUnixDateVal(root).Unix())
	}
}

func TestIntegerWidthRoundTrip(t *testing.T) {
	in := `<plist><dict><key>big</key><integer>18446744073709551615</integer></dict></plist>`
	root, err := Read([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	big := node.DictGetItem(root, "big")
	if node.GetWidth(big) != node.Width128 {
		t.Fatalf("expected Width128, got %v", node.GetWidth(big))
	}
	if node.GetUintVal(big) != 18446744073709551615 {
		t.Fatalf("value mismatch: %v", node.GetUintVal(big))
	}
	out, err := Write(root, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "<integer>18446744073709551615</integer>") {
		t.Fatalf("expected full-precision integer text, got %s", out)
	}
}

func TestEntitiesAndCDATA(t *testing.T) {
	in := `<plist><string>a &amp; b &lt;<![CDATA[<raw>]]>&#65;&#x42;</string></plist>`
	root, err := Read([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := "a & b <<raw>AB"
	if node.GetStringVal(root) != want {
		t.Fatalf("got %q want %q", node.GetStringVal(root), want)
	}
}

func TestMalformedEntityRejected(t *testing.T) {
	in := `<plist><string>&bogus;</string></plist>`
	if _, err := Read([]byte(in)); err == nil {
		t.Fatal("expected parse error for unknown entity")
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	in := `<plist><dict><key>a</key><integer>1</integer><key>a</key><integer>2</integer></dict></plist>`
	if _, err := Read([]byte(in)); err == nil {
		t.Fatal("expected parse error for duplicate dict key")
	}
}

func TestDoctypeAndCommentsSkipped(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd" [
  <!ENTITY nbsp "&#160;">
]>
<!-- a comment -->
<plist version="1.0"><!-- inner comment --><integer>42</integer></plist>`
	root, err := Read([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if node.GetIntVal(root) != 42 {
		t.Fatalf("got %v", node.GetIntVal(root))
	}
}

func TestWriteEscapesReservedCharsOnly(t *testing.T) {
	out, err := Write(node.NewString(`<a & b> "quote" 'apos'`), WriteOptions{Compact: true})
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.Contains(s, "&lt;a &amp; b&gt; \"quote\" 'apos'") {
		t.Fatalf("unexpected escaping: %s", s)
	}
}

func TestArrayRoundTrip(t *testing.T) {
	arr := node.NewArray()
	node.AppendItem(arr, node.NewInt(1))
	node.AppendItem(arr, node.NewString("two"))
	node.AppendItem(arr, node.NewReal(3.5))

	out, err := Write(arr, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Read(out)
	if err != nil {
		t.Fatal(err)
	}
	if node.GetSize(got) != 3 {
		t.Fatalf("expected 3 items, got %d", node.GetSize(got))
	}
	if node.GetIntVal(node.GetItem(got, 0)) != 1 {
		t.Fatal("item 0 mismatch")
	}
	if node.GetStringVal(node.GetItem(got, 1)) != "two" {
		t.Fatal("item 1 mismatch")
	}
	if node.GetRealVal(node.GetItem(got, 2)) != 3.5 {
		t.Fatal("item 2 mismatch")
	}
}

func TestCompactOutputHasNoNewlines(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "a", node.NewInt(1))
	out, err := Write(dict, WriteOptions{Compact: true})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "\n") {
		t.Fatalf("expected no newlines in compact output, got %s", out)
	}
}
