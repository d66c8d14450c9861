package atom

import "time"

// TextType identifies the format of a TextConstruct. The set is closed:
// anything else is rejected by validation.
type TextType string

const (
	TextPlain TextType = "text"
	TextHTML  TextType = "html"
	TextXHTML TextType = "xhtml"
)

// Content type values with dedicated handling. Any other non-empty value is
// passed through as a MIME type.
const (
	ContentTypeText   = "text"
	ContentTypeHTML   = "html"
	ContentTypeXHTML  = "xhtml"
	ContentTypeBase64 = "base64"
)

// TextConstruct is a human-readable field: content plus format type and
// optional language/base. An empty Type renders and validates as plain text.
type TextConstruct struct {
	Content string
	Type    TextType
	Lang    string
	Base    string
}

// Person identifies an author or contributor. Name is required.
type Person struct {
	Name  string
	Email string
	URI   string
}

// Category labels a feed or entry. Term is required.
type Category struct {
	Term   string
	Scheme string
	Label  string
}

// Link is a related resource reference. Href is required and must be an
// absolute IRI.
type Link struct {
	Href     string
	Rel      string
	Type     string
	HrefLang string
	Title    string
	Length   string
}

// Content is an entry body: either inline Value or a remote Src reference,
// never both, never neither.
type Content struct {
	Value string
	Type  string
	Src   string
	Lang  string
	Base  string
}

// Generator identifies the software that produced the feed.
type Generator struct {
	Name    string
	Version string
	URI     string
}

// Stylesheet is emitted as an xml-stylesheet processing instruction before
// the root element. Href is not validated as an IRI: a literal relative path
// is legal. An empty Type defaults to text/xsl on output.
type Stylesheet struct {
	Href string
	Type string
}

// Entry is one feed item. ID, Title and Updated are required. The zero
// value of an optional field means absent; absent fields are omitted from
// output entirely.
type Entry struct {
	ID           string
	Title        TextConstruct
	Updated      time.Time
	Authors      []Person
	Contributors []Person
	Categories   []Category
	Content      *Content
	Links        []Link
	Published    time.Time
	Rights       *TextConstruct
	Source       string
	Summary      *TextConstruct
}

// FeedOptions is the feed-level configuration. ID, Title and Updated are
// required.
type FeedOptions struct {
	ID           string
	Title        TextConstruct
	Updated      time.Time
	Authors      []Person
	Contributors []Person
	Categories   []Category
	Generator    *Generator
	Icon         string
	Links        []Link
	Logo         string
	Rights       *TextConstruct
	Subtitle     *TextConstruct
	Lang         string
	Base         string
}
