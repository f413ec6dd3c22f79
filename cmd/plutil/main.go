// cmd/plutil/main.go
//
// plutil - convert and inspect property lists.
//
// Usage:
//
//	plutil -i infile [-o outfile] [-f bin|xml|json|openstep] [-c] [-s] [-p] [-d] [-v]
//
// infile/outfile of "-" mean stdin/stdout. With no -f, the output format
// defaults to whatever format was sniffed on input. -p prints a
// human-readable debug dump instead of writing a plist; its style is
// chosen by PLIST_OUTPUT_FORMAT ("limd" or the default plutil-like
// style). -d (or PLIST_XML_DEBUG=1) turns on the codecs' verbose
// diagnostic logging.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"plist/pkg/codec/jsonplist"
	"plist/pkg/codec/openstep"
	"plist/pkg/codec/xmlplist"
	"plist/pkg/node"
	"plist/pkg/plist"
	"plist/pkg/plistfile"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("plutil", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var infile, outfile, format string
	var compact, sortKeys, printDump, debug, showVersion bool

	fs.StringVar(&infile, "i", "-", "input file (- for stdin)")
	fs.StringVar(&infile, "infile", "-", "input file (- for stdin)")
	fs.StringVar(&outfile, "o", "-", "output file (- for stdout)")
	fs.StringVar(&outfile, "outfile", "-", "output file (- for stdout)")
	fs.StringVar(&format, "f", "", "output format: bin|xml|json|openstep")
	fs.StringVar(&format, "format", "", "output format: bin|xml|json|openstep")
	fs.BoolVar(&compact, "c", false, "write compact output")
	fs.BoolVar(&compact, "compact", false, "write compact output")
	fs.BoolVar(&sortKeys, "s", false, "sort dictionary keys before writing")
	fs.BoolVar(&sortKeys, "sort", false, "sort dictionary keys before writing")
	fs.BoolVar(&printDump, "p", false, "print a human-readable dump instead of writing a plist")
	fs.BoolVar(&printDump, "print", false, "print a human-readable dump instead of writing a plist")
	fs.BoolVar(&debug, "d", false, "enable verbose codec diagnostics")
	fs.BoolVar(&debug, "debug", false, "enable verbose codec diagnostics")
	fs.BoolVar(&showVersion, "v", false, "print version and exit")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if showVersion {
		fmt.Fprintln(stdout, "plutil version "+version)
		return 0
	}

	if debug || os.Getenv("PLIST_XML_DEBUG") == "1" {
		dbg := log.New(stderr, "plutil: ", 0)
		xmlplist.SetLogger(dbg)
		jsonplist.SetLogger(dbg)
		openstep.SetLogger(dbg)
	}

	data, closer, err := plistfile.ReadAll(infile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}
	defer closer.Close()

	root, sourceFormat, err := plist.ReadFromMemory(data)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}

	if printDump {
		dump := plist.Print(root, plist.PrintFormatFromEnv())
		if err := plistfile.WriteAll(outfile, []byte(dump)); err != nil {
			fmt.Fprintln(stderr, err)
			return exitCodeFor(err)
		}
		return 0
	}

	targetFormat := sourceFormat
	if format != "" {
		f, err := parseFormatFlag(format)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		targetFormat = f
	}

	out, err := plist.Write(root, targetFormat, plist.WriteOptions{
		Compact: compact,
		Sort:    sortKeys,
		Coerce:  true,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}

	if err := plistfile.WriteAll(outfile, out); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCodeFor(err)
	}
	return 0
}

func parseFormatFlag(s string) (plist.Format, error) {
	switch strings.ToLower(s) {
	case "bin", "binary":
		return plist.FormatBinary, nil
	case "xml":
		return plist.FormatXML, nil
	case "json":
		return plist.FormatJSON, nil
	case "openstep", "ostep":
		return plist.FormatOpenStep, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want bin, xml, json, or openstep)", s)
	}
}

// exitCodeFor maps the library's error-kind taxonomy to spec.md §6's
// process exit codes: 0 success, 2 format incompatibility, 3 parse
// failure, 4 nesting depth exceeded, 5 circular reference, 1 anything
// else (including plain I/O errors).
func exitCodeFor(err error) int {
	var nerr *node.Error
	if errors.As(err, &nerr) {
		switch nerr.Kind {
		case node.KindFormat:
			return 2
		case node.KindParse:
			return 3
		case node.KindMaxNesting:
			return 4
		case node.KindCircularRef:
			return 5
		}
	}
	return 1
}
