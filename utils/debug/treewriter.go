// Package debug produces indented text dumps of layout and navigation state
// for console output and debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, two spaces per level.
type TreeWriter struct {
	sb strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.sb.String()
}

// Bytes returns copy of accumulated text suitable for storing in report.
func (tw *TreeWriter) Bytes() []byte {
	return []byte(tw.sb.String())
}

func (tw *TreeWriter) indent(depth int) {
	for range depth {
		tw.sb.WriteString("  ")
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(&tw.sb, format, args...)
	tw.sb.WriteByte('\n')
}

// TextBlock writes label with quoted value, so that hrefs and locations with
// spaces or control characters stay on one line.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.indent(depth)
	tw.sb.WriteString(label)
	tw.sb.WriteString(": ")
	tw.sb.WriteString(encodeText(value))
	tw.sb.WriteByte('\n')
}

// Fields writes name/value pairs on a single line: "a: 1, b: 2". Strings are
// quoted, Stringers use their String method. Trailing name without value is
// written as is.
func (tw *TreeWriter) Fields(depth int, kv ...any) {
	tw.indent(depth)
	for i := 0; i < len(kv); i += 2 {
		if i > 0 {
			tw.sb.WriteString(", ")
		}
		fmt.Fprint(&tw.sb, kv[i])
		if i+1 == len(kv) {
			break
		}
		tw.sb.WriteString(": ")
		tw.sb.WriteString(formatValue(kv[i+1]))
	}
	tw.sb.WriteByte('\n')
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return encodeText(v)
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
