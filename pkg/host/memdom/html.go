package memdom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/fern/pkg/vdom"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// HTML serializes the element and its subtree. Event handler props are
// skipped; className renders as class; style mappings render as a sorted
// inline style attribute; all text and attribute values are escaped.
func (e *Element) HTML() string {
	var buf strings.Builder
	e.writeHTML(&buf)
	return buf.String()
}

// InnerHTML serializes only the element's children.
func (e *Element) InnerHTML() string {
	var buf strings.Builder
	for _, c := range e.Children {
		writeNode(&buf, c)
	}
	return buf.String()
}

func writeNode(buf *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Text:
		buf.WriteString(escapeHTML(v.Data))
	case *Element:
		v.writeHTML(buf)
	}
}

func (e *Element) writeHTML(buf *strings.Builder) {
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	writeAttrs(buf, e.Props)

	if voidElements[e.Tag] {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	for _, c := range e.Children {
		writeNode(buf, c)
	}
	buf.WriteString("</")
	buf.WriteString(e.Tag)
	buf.WriteByte('>')
}

func writeAttrs(buf *strings.Builder, props vdom.Props) {
	keys := make([]string, 0, len(props))
	for key := range props {
		if vdom.IsEventProp(key) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		name := key
		if key == "className" {
			name = "class"
		}
		switch val := props[key].(type) {
		case bool:
			if val {
				buf.WriteByte(' ')
				buf.WriteString(name)
			}
		case map[string]string:
			if key == "style" {
				buf.WriteString(` style="`)
				buf.WriteString(escapeAttr(styleString(val)))
				buf.WriteByte('"')
				continue
			}
			fmt.Fprintf(buf, ` %s="%s"`, name, escapeAttr(fmt.Sprintf("%v", val)))
		default:
			fmt.Fprintf(buf, ` %s="%s"`, name, escapeAttr(fmt.Sprintf("%v", val)))
		}
	}
}

// styleString flattens a style mapping into "a: 1; b: 2" with sorted keys so
// output is deterministic.
func styleString(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+style[k])
	}
	return strings.Join(parts, "; ")
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
