package atom

import (
	"sort"
	"strings"
	"time"

	"github.com/danmuck/atomctl/internal/markup"
)

// Atom and XHTML namespace IRIs.
const (
	NamespaceAtom  = "http://www.w3.org/2005/Atom"
	NamespaceXHTML = "http://www.w3.org/1999/xhtml"
)

const defaultStylesheetType = "text/xsl"

// Render builds the complete document string: XML declaration, optional
// stylesheet processing instruction, then the feed tree in fixed element
// order. When prefix is set every element name carries the atom: prefix and
// the namespace is declared as xmlns:atom; otherwise the default xmlns is
// declared. When sortEntries is set entries render in descending updated
// order (stable); storage order is never touched.
//
// Rendering performs no validation of its own beyond what formatting
// enforces: a zero timestamp fails here the same way it fails at add time.
func Render(opts FeedOptions, entries []Entry, prefix bool, sortEntries bool, stylesheet *Stylesheet) (string, error) {
	r := renderer{prefix: prefix}

	root := markup.NewElement(r.name("feed"))
	if prefix {
		root.SetAttr("xmlns:atom", NamespaceAtom)
	} else {
		root.SetAttr("xmlns", NamespaceAtom)
	}
	if opts.Lang != "" {
		root.SetAttr("xml:lang", opts.Lang)
	}
	if opts.Base != "" {
		root.SetAttr("xml:base", opts.Base)
	}

	root.AddChild(r.textElement("id", opts.ID))
	root.AddChild(r.textConstructElement("title", opts.Title))
	updated, err := formatTime("feed.updated", opts.Updated)
	if err != nil {
		return "", err
	}
	root.AddChild(r.textElement("updated", updated))
	for _, p := range opts.Authors {
		root.AddChild(r.personElement("author", p))
	}
	for _, p := range opts.Contributors {
		root.AddChild(r.personElement("contributor", p))
	}
	for _, c := range opts.Categories {
		root.AddChild(r.categoryElement(c))
	}
	if opts.Generator != nil {
		root.AddChild(r.generatorElement(*opts.Generator))
	}
	if opts.Icon != "" {
		root.AddChild(r.textElement("icon", opts.Icon))
	}
	for _, l := range opts.Links {
		root.AddChild(r.linkElement(l))
	}
	if opts.Logo != "" {
		root.AddChild(r.textElement("logo", opts.Logo))
	}
	if opts.Rights != nil {
		root.AddChild(r.textConstructElement("rights", *opts.Rights))
	}
	if opts.Subtitle != nil {
		root.AddChild(r.textConstructElement("subtitle", *opts.Subtitle))
	}

	ordered := entries
	if sortEntries {
		ordered = make([]Entry, len(entries))
		copy(ordered, entries)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Updated.After(ordered[j].Updated)
		})
	}
	for i := range ordered {
		el, err := r.entryElement(ordered[i])
		if err != nil {
			return "", err
		}
		root.AddChild(el)
	}

	doc := markup.Document{Root: root}
	if stylesheet != nil {
		typ := stylesheet.Type
		if typ == "" {
			typ = defaultStylesheetType
		}
		doc.PIs = append(doc.PIs, markup.ProcInst{
			Target: "xml-stylesheet",
			Attrs: []markup.Attr{
				{Name: "type", Value: typ},
				{Name: "href", Value: markup.EncodeURI(stylesheet.Href)},
			},
		})
	}
	return doc.String(), nil
}

type renderer struct {
	prefix bool
}

func (r renderer) name(local string) string {
	if r.prefix {
		return "atom:" + local
	}
	return local
}

func (r renderer) textElement(local, text string) *markup.Element {
	e := markup.NewElement(r.name(local))
	e.AddText(text)
	return e
}

func (r renderer) textConstructElement(local string, t TextConstruct) *markup.Element {
	e := markup.NewElement(r.name(local))
	if t.Type != "" {
		e.SetAttr("type", string(t.Type))
	}
	if t.Lang != "" {
		e.SetAttr("xml:lang", t.Lang)
	}
	if t.Base != "" {
		e.SetAttr("xml:base", t.Base)
	}
	if t.Type == TextXHTML {
		// Already validated as a single XHTML div; inserted literally.
		e.AddRaw(strings.TrimSpace(t.Content))
	} else {
		e.AddText(t.Content)
	}
	return e
}

func (r renderer) personElement(local string, p Person) *markup.Element {
	e := markup.NewElement(r.name(local))
	e.AddChild(r.textElement("name", p.Name))
	if p.Email != "" {
		e.AddChild(r.textElement("email", p.Email))
	}
	if p.URI != "" {
		e.AddChild(r.textElement("uri", p.URI))
	}
	return e
}

func (r renderer) categoryElement(c Category) *markup.Element {
	e := markup.NewElement(r.name("category"))
	e.SetAttr("term", c.Term)
	if c.Scheme != "" {
		e.SetAttr("scheme", c.Scheme)
	}
	if c.Label != "" {
		e.SetAttr("label", c.Label)
	}
	return e
}

func (r renderer) generatorElement(g Generator) *markup.Element {
	e := markup.NewElement(r.name("generator"))
	if g.Version != "" {
		e.SetAttr("version", g.Version)
	}
	if g.URI != "" {
		e.SetAttr("uri", g.URI)
	}
	e.AddText(g.Name)
	return e
}

func (r renderer) linkElement(l Link) *markup.Element {
	e := markup.NewElement(r.name("link"))
	e.SetAttr("href", markup.EncodeURI(l.Href))
	if l.Rel != "" {
		e.SetAttr("rel", l.Rel)
	}
	if l.Type != "" {
		e.SetAttr("type", l.Type)
	}
	if l.HrefLang != "" {
		e.SetAttr("hreflang", l.HrefLang)
	}
	if l.Title != "" {
		e.SetAttr("title", l.Title)
	}
	if l.Length != "" {
		e.SetAttr("length", l.Length)
	}
	return e
}

func (r renderer) contentElement(c Content) *markup.Element {
	e := markup.NewElement(r.name("content"))
	if c.Type != "" {
		e.SetAttr("type", c.Type)
	}
	if c.Src != "" {
		e.SetAttr("src", c.Src)
	}
	if c.Lang != "" {
		e.SetAttr("xml:lang", c.Lang)
	}
	if c.Base != "" {
		e.SetAttr("xml:base", c.Base)
	}
	if c.Src != "" {
		// Remote reference: self-describing, no child text.
		return e
	}
	if c.Type == ContentTypeXHTML {
		e.AddRaw(strings.TrimSpace(c.Value))
	} else {
		e.AddText(c.Value)
	}
	return e
}

func (r renderer) entryElement(e Entry) (*markup.Element, error) {
	el := markup.NewElement(r.name("entry"))
	el.AddChild(r.textElement("id", e.ID))
	el.AddChild(r.textConstructElement("title", e.Title))
	updated, err := formatTime("entry.updated", e.Updated)
	if err != nil {
		return nil, err
	}
	el.AddChild(r.textElement("updated", updated))
	for _, p := range e.Authors {
		el.AddChild(r.personElement("author", p))
	}
	for _, p := range e.Contributors {
		el.AddChild(r.personElement("contributor", p))
	}
	for _, c := range e.Categories {
		el.AddChild(r.categoryElement(c))
	}
	if e.Content != nil {
		el.AddChild(r.contentElement(*e.Content))
	}
	for _, l := range e.Links {
		el.AddChild(r.linkElement(l))
	}
	if !e.Published.IsZero() {
		published, err := formatTime("entry.published", e.Published)
		if err != nil {
			return nil, err
		}
		el.AddChild(r.textElement("published", published))
	}
	if e.Rights != nil {
		el.AddChild(r.textConstructElement("rights", *e.Rights))
	}
	if e.Source != "" {
		el.AddChild(r.textElement("source", e.Source))
	}
	if e.Summary != nil {
		el.AddChild(r.textConstructElement("summary", *e.Summary))
	}
	return el, nil
}

// formatTime renders the RFC 3339 UTC instant, with milliseconds only when
// the instant carries sub-second precision. A zero instant fails the same
// way it fails validation.
func formatTime(field string, ts time.Time) (string, error) {
	if ts.IsZero() {
		return "", FieldError{Field: field, Kind: ErrInvalidType, Reason: "not a date value"}
	}
	u := ts.UTC()
	if u.Nanosecond() != 0 {
		return u.Format("2006-01-02T15:04:05.000Z"), nil
	}
	return u.Format("2006-01-02T15:04:05Z"), nil
}
