// pkg/plist/plist_test.go
package plist

import (
	"strings"
	"testing"

	"plist/pkg/node"
)

func TestSniffBinary(t *testing.T) {
	f, err := Sniff([]byte("bplist00\x00\x00"))
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatBinary {
		t.Fatalf("got %v", f)
	}
}

func TestSniffXML(t *testing.T) {
	f, err := Sniff([]byte("  <?xml version=\"1.0\"?><plist></plist>"))
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatXML {
		t.Fatalf("got %v", f)
	}
}

func TestSniffJSONArray(t *testing.T) {
	f, err := Sniff([]byte(`[1, 2, 3]`))
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatJSON {
		t.Fatalf("got %v", f)
	}
}

func TestSniffJSONObjectVsOpenStepDict(t *testing.T) {
	f, err := Sniff([]byte(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatJSON {
		t.Fatalf("expected JSON, got %v", f)
	}

	f2, err := Sniff([]byte(`{a = 1;}`))
	if err != nil {
		t.Fatal(err)
	}
	if f2 != FormatOpenStep {
		t.Fatalf("expected OpenStep, got %v", f2)
	}
}

func TestSniffOpenStepArrayAndHexData(t *testing.T) {
	f, err := Sniff([]byte(`(1, 2, 3)`))
	if err != nil {
		t.Fatal(err)
	}
	if f != FormatOpenStep {
		t.Fatalf("got %v", f)
	}

	f2, err := Sniff([]byte(`<48656c6c6f>`))
	if err != nil {
		t.Fatal(err)
	}
	if f2 != FormatOpenStep {
		t.Fatalf("expected OpenStep for hex data, got %v", f2)
	}
}

func TestReadFromMemoryRoundTrip(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "a", node.NewInt(1))
	out, err := Write(dict, FormatXML, WriteOptions{})
	if err != nil {
		t.Fatal(err)
	}
	root, format, err := ReadFromMemory(out)
	if err != nil {
		t.Fatal(err)
	}
	if format != FormatXML {
		t.Fatalf("expected FormatXML, got %v", format)
	}
	if node.GetIntVal(node.DictGetItem(root, "a")) != 1 {
		t.Fatal("value mismatch")
	}
}

func TestWriteSortDoesNotMutateInput(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "b", node.NewInt(2))
	node.DictSetItem(dict, "a", node.NewInt(1))

	_, err := Write(dict, FormatJSON, WriteOptions{Compact: true, Sort: true})
	if err != nil {
		t.Fatal(err)
	}

	it := node.NewDictIterator(dict)
	key, _, _, err := it.Next()
	if err != nil {
		t.Fatal(err)
	}
	if key != "b" {
		t.Fatalf("expected original insertion order preserved (first key %q), got mutated tree", key)
	}
}

func TestWriteSortOrdersOutput(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "b", node.NewInt(2))
	node.DictSetItem(dict, "a", node.NewInt(1))

	out, err := Write(dict, FormatJSON, WriteOptions{Compact: true, Sort: true})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":1,"b":2}` {
		t.Fatalf("got %q", out)
	}
}

func TestFormatString(t *testing.T) {
	cases := map[Format]string{
		FormatBinary:   "binary",
		FormatXML:      "xml",
		FormatJSON:     "json",
		FormatOpenStep: "openstep",
	}
	for f, want := range cases {
		if f.String() != want {
			t.Fatalf("Format(%d).String() = %q, want %q", f, f.String(), want)
		}
	}
}

func TestPrintPlutilStyle(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "name", node.NewString("x"))
	out := Print(dict, PrintPlutil)
	if !strings.Contains(out, `"name" => "x"`) {
		t.Fatalf("got %q", out)
	}
}

func TestPrintLimdStyle(t *testing.T) {
	dict := node.NewDict()
	node.DictSetItem(dict, "name", node.NewString("x"))
	out := Print(dict, PrintLimd)
	if !strings.Contains(out, "name: String, \"x\"") {
		t.Fatalf("got %q", out)
	}
}

func TestPrintFormatFromEnv(t *testing.T) {
	t.Setenv("PLIST_OUTPUT_FORMAT", "limd")
	if PrintFormatFromEnv() != PrintLimd {
		t.Fatal("expected PrintLimd")
	}
	t.Setenv("PLIST_OUTPUT_FORMAT", "plutil")
	if PrintFormatFromEnv() != PrintPlutil {
		t.Fatal("expected PrintPlutil")
	}
}
