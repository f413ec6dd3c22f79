// pkg/plist/print.go
package plist

import (
	"os"
	"strconv"
	"strings"

	"plist/pkg/node"
)

// PrintFormat selects one of the two human-readable debug dump styles
// spec.md §4.6 names as writer-only: neither is a round-trippable
// serialization format.
type PrintFormat int

const (
	// PrintPlutil mimics Apple's `plutil -p` dump: a JSON-like brace/
	// bracket tree with "=>" key/value separators and array members
	// labeled by numeric index.
	PrintPlutil PrintFormat = iota
	// PrintLimd mimics libimobiledevice's lockdownd debug dump: an
	// indented "Type, value" tree with no surrounding punctuation.
	PrintLimd
)

// PrintFormatFromEnv reads PLIST_OUTPUT_FORMAT (spec.md §6); any value
// other than "limd" (case-insensitive) defaults to PrintPlutil.
func PrintFormatFromEnv() PrintFormat {
	if strings.EqualFold(os.Getenv("PLIST_OUTPUT_FORMAT"), "limd") {
		return PrintLimd
	}
	return PrintPlutil
}

// Print renders tree as a human-readable debug dump in the given format.
func Print(tree *node.Node, format PrintFormat) string {
	var b strings.Builder
	switch format {
	case PrintLimd:
		printLimd(&b, tree, 0)
	default:
		printPlutil(&b, tree, 0)
	}
	return b.String()
}

func printPlutil(b *strings.Builder, n *node.Node, depth int) {
	switch node.GetType(n) {
	case node.KindDict:
		b.WriteString("{\n")
		it := node.NewDictIterator(n)
		for {
			key, val, more, err := it.Next()
			if err != nil || !more {
				break
			}
			indent(b, depth+1)
			b.WriteString(strconv.Quote(key))
			b.WriteString(" => ")
			printPlutil(b, val, depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte('}')
	case node.KindArray:
		b.WriteString("[\n")
		for i := 0; i < node.GetSize(n); i++ {
			indent(b, depth+1)
			b.WriteString(strconv.Itoa(i))
			b.WriteString(" => ")
			printPlutil(b, node.GetItem(n, i), depth+1)
			b.WriteByte('\n')
		}
		indent(b, depth)
		b.WriteByte(']')
	default:
		b.WriteString(scalarText(n))
	}
}

func printLimd(b *strings.Builder, n *node.Node, depth int) {
	switch node.GetType(n) {
	case node.KindDict:
		b.WriteString("Dictionary\n")
		it := node.NewDictIterator(n)
		for {
			key, val, more, err := it.Next()
			if err != nil || !more {
				break
			}
			indent(b, depth+1)
			b.WriteString(key)
			b.WriteString(": ")
			printLimd(b, val, depth+1)
		}
	case node.KindArray:
		b.WriteString("Array\n")
		for i := 0; i < node.GetSize(n); i++ {
			indent(b, depth+1)
			b.WriteString(strconv.Itoa(i))
			b.WriteString(": ")
			printLimd(b, node.GetItem(n, i), depth+1)
		}
	default:
		b.WriteString(node.GetType(n).String())
		b.WriteString(", ")
		b.WriteString(scalarText(n))
		b.WriteByte('\n')
	}
}

func scalarText(n *node.Node) string {
	switch node.GetType(n) {
	case node.KindNull:
		return "null"
	case node.KindBool:
		return strconv.FormatBool(node.GetBoolVal(n))
	case node.KindInt:
		if node.GetWidth(n) == node.Width128 {
			return strconv.FormatUint(node.GetUintVal(n), 10)
		}
		return strconv.FormatInt(node.GetIntVal(n), 10)
	case node.KindReal:
		return strconv.FormatFloat(node.GetRealVal(n), 'g', -1, 64)
	case node.KindString, node.KindKey:
		return strconv.Quote(node.GetStringVal(n))
	case node.KindData:
		return "<" + strconv.Itoa(len(node.GetDataPtr(n))) + " bytes>"
	case node.KindDate:
		return node.GetUnixDateVal(n).UTC().Format("2006-01-02 15:04:05 +0000")
	case node.KindUid:
		return strconv.FormatUint(node.GetUidVal(n), 10)
	default:
		return ""
	}
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
