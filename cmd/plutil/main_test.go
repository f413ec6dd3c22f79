// cmd/plutil/main_test.go
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertXMLToJSON(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.plist", []byte(`<?xml version="1.0"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0"><dict><key>a</key><integer>1</integer></dict></plist>`))
	out := filepath.Join(dir, "out.json")

	code := run([]string{"-i", in, "-o", out, "-f", "json", "-c"}, os.Stdout, os.Stderr)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":1}` {
		t.Fatalf("got %q", got)
	}
}

func TestConvertJSONToOpenStep(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.json", []byte(`{"name":"Ann","age":5}`))
	out := filepath.Join(dir, "out.txt")

	code := run([]string{"-i", in, "-o", out, "-f", "openstep", "-s"}, os.Stdout, os.Stderr)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), "age = <*I5>;") || !strings.Contains(string(got), `name = Ann;`) {
		t.Fatalf("got %q", got)
	}
}

func TestRoundTripDefaultsToSourceFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.json", []byte(`{"x":1}`))
	out := filepath.Join(dir, "out")

	code := run([]string{"-i", in, "-o", out, "-c"}, os.Stdout, os.Stderr)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"x":1}` {
		t.Fatalf("got %q, wanted JSON round-trip since no -f override", got)
	}
}

func TestPrintDumpMode(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.json", []byte(`{"a":1}`))
	out := filepath.Join(dir, "dump.txt")

	code := run([]string{"-i", in, "-o", out, "-p"}, os.Stdout, os.Stderr)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `"a" => 1`) {
		t.Fatalf("got %q", got)
	}
}

func TestVersionFlag(t *testing.T) {
	code := run([]string{"-v"}, os.Stdout, os.Stderr)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
}

func TestMalformedInputReturnsParseExitCode(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "bad.json", []byte(`{not valid`))
	out := filepath.Join(dir, "out")

	code := run([]string{"-i", in, "-o", out}, os.Stdout, os.Stderr)
	if code != 3 {
		t.Fatalf("exit code %d, want 3 (parse failure)", code)
	}
}

func TestMissingInputFileReturnsIOExitCode(t *testing.T) {
	dir := t.TempDir()
	code := run([]string{"-i", filepath.Join(dir, "nope.plist")}, os.Stdout, os.Stderr)
	if code != 1 {
		t.Fatalf("exit code %d, want 1 (I/O error)", code)
	}
}

func TestUnknownFormatFlagRejected(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.json", []byte(`{"a":1}`))
	code := run([]string{"-i", in, "-f", "bogus"}, os.Stdout, os.Stderr)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
}
