package markup

import "strings"

// Attr is one name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

type node interface {
	writeTo(b *strings.Builder)
}

// Element is one element in the output tree. Attributes and children are
// emitted in insertion order.
type Element struct {
	name     string
	attrs    []Attr
	children []node
}

// NewElement creates an element with the given (possibly prefixed) name.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// SetAttr appends an attribute. The value is escaped on output.
func (e *Element) SetAttr(name, value string) {
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

// AddText appends a text node. The text is escaped on output.
func (e *Element) AddText(text string) {
	e.children = append(e.children, textNode(text))
}

// AddRaw appends markup emitted verbatim, without escaping. The caller owns
// well-formedness of the fragment.
func (e *Element) AddRaw(raw string) {
	e.children = append(e.children, rawNode(raw))
}

// AddChild appends a child element.
func (e *Element) AddChild(child *Element) {
	e.children = append(e.children, child)
}

func (e *Element) writeTo(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(e.name)
	for _, a := range e.attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(a.Value))
		b.WriteByte('"')
	}
	if len(e.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range e.children {
		c.writeTo(b)
	}
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteByte('>')
}

// String serializes the element subtree without a document preamble.
func (e *Element) String() string {
	var b strings.Builder
	e.writeTo(&b)
	return b.String()
}

type textNode string

func (t textNode) writeTo(b *strings.Builder) {
	b.WriteString(EscapeText(string(t)))
}

type rawNode string

func (r rawNode) writeTo(b *strings.Builder) {
	b.WriteString(string(r))
}

// ProcInst is a processing instruction emitted before the root element.
type ProcInst struct {
	Target string
	Attrs  []Attr
}

// Document is a complete XML document: declaration, processing
// instructions, root element.
type Document struct {
	PIs  []ProcInst
	Root *Element
}

// String serializes the whole document.
func (d Document) String() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	b.WriteByte('\n')
	for _, pi := range d.PIs {
		b.WriteString("<?")
		b.WriteString(pi.Target)
		for _, a := range pi.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(EscapeAttr(a.Value))
			b.WriteByte('"')
		}
		b.WriteString("?>\n")
	}
	if d.Root != nil {
		d.Root.writeTo(&b)
		b.WriteByte('\n')
	}
	return b.String()
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeText escapes character data for element content.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes character data for attribute values, including both
// quote characters.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// uriSafe holds the bytes left intact by EncodeURI: RFC 3986 unreserved and
// reserved characters plus %.
const uriSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	"-_.~!*'();:@&=+$,/?#[]%"

const upperhex = "0123456789ABCDEF"

// EncodeURI percent-encodes the bytes of s that are unsafe inside a URI
// reference (spaces, control characters, non-ASCII as UTF-8 triplets).
// Already-encoded sequences are left intact.
func EncodeURI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(uriSafe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}
