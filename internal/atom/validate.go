package atom

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/atomctl/internal/langtag"
)

var (
	// Permissive fallback for inputs url.Parse rejects: a scheme-like
	// prefix followed by anything without whitespace. Deliberately loose;
	// it accepts colon-prefixed strings with no authority.
	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:\S+$`)

	// Single @, no whitespace in the local part, dot-containing domain.
	// Deliberately far short of full RFC 5322.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Structural check only: one div wrapper in the XHTML namespace. Not a
	// well-formedness check; nested markup is taken on faith.
	xhtmlDivPattern = regexp.MustCompile(
		`(?s)^<div\s+xmlns="http://www\.w3\.org/1999/xhtml"(\s[^>]*)?>.*</div>$`)
)

// isValidIRI tries a standard URL parse first and falls back to the
// permissive scheme pattern. Both stages and their order are part of the
// contract.
func isValidIRI(s string) bool {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" {
		return true
	}
	return schemePattern.MatchString(s)
}

func isValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func isXHTMLDiv(s string) bool {
	return xhtmlDivPattern.MatchString(strings.TrimSpace(s))
}

// ValidateFeedOptions checks the feed-level configuration: required fields
// first, then every nested construct. First failure aborts.
func ValidateFeedOptions(opts FeedOptions) error {
	log.Debug().Str("id", opts.ID).Msg("atom.ValidateFeedOptions")
	if opts.ID == "" {
		return fail(missingField("feed.id"))
	}
	if opts.Title.Content == "" {
		return fail(missingField("feed.title"))
	}
	if opts.Updated.IsZero() {
		return fail(FieldError{Field: "feed.updated", Kind: ErrInvalidType, Reason: "not a date value"})
	}
	if err := validateTextConstruct("feed.title", opts.Title); err != nil {
		return fail(err)
	}
	if opts.Subtitle != nil {
		if err := validateTextConstruct("feed.subtitle", *opts.Subtitle); err != nil {
			return fail(err)
		}
	}
	if opts.Rights != nil {
		if err := validateTextConstruct("feed.rights", *opts.Rights); err != nil {
			return fail(err)
		}
	}
	for i, p := range opts.Authors {
		if err := validatePerson(fmt.Sprintf("feed.authors[%d]", i), p); err != nil {
			return fail(err)
		}
	}
	for i, p := range opts.Contributors {
		if err := validatePerson(fmt.Sprintf("feed.contributors[%d]", i), p); err != nil {
			return fail(err)
		}
	}
	for i, c := range opts.Categories {
		if err := validateCategory(fmt.Sprintf("feed.categories[%d]", i), c); err != nil {
			return fail(err)
		}
	}
	if opts.Generator != nil {
		if err := validateGenerator("feed.generator", *opts.Generator); err != nil {
			return fail(err)
		}
	}
	if opts.Icon != "" && !isValidIRI(opts.Icon) {
		return fail(invalidFormat("feed.icon", "malformed IRI"))
	}
	for i, l := range opts.Links {
		if err := validateLink(fmt.Sprintf("feed.links[%d]", i), l); err != nil {
			return fail(err)
		}
	}
	if opts.Logo != "" && !isValidIRI(opts.Logo) {
		return fail(invalidFormat("feed.logo", "malformed IRI"))
	}
	if opts.Lang != "" && !langtag.IsValid(opts.Lang) {
		return fail(invalidFormat("feed.lang", "malformed language tag"))
	}
	if opts.Base != "" && !isValidIRI(opts.Base) {
		return fail(invalidFormat("feed.base", "malformed IRI"))
	}
	return nil
}

// ValidateEntry checks one entry: required fields first, then every nested
// construct. First failure aborts.
func ValidateEntry(e Entry) error {
	log.Debug().Str("id", e.ID).Msg("atom.ValidateEntry")
	if e.ID == "" {
		return fail(missingField("entry.id"))
	}
	if e.Title.Content == "" {
		return fail(missingField("entry.title"))
	}
	if e.Updated.IsZero() {
		return fail(FieldError{Field: "entry.updated", Kind: ErrInvalidType, Reason: "not a date value"})
	}
	if err := validateTextConstruct("entry.title", e.Title); err != nil {
		return fail(err)
	}
	for i, p := range e.Authors {
		if err := validatePerson(fmt.Sprintf("entry.authors[%d]", i), p); err != nil {
			return fail(err)
		}
	}
	for i, p := range e.Contributors {
		if err := validatePerson(fmt.Sprintf("entry.contributors[%d]", i), p); err != nil {
			return fail(err)
		}
	}
	for i, c := range e.Categories {
		if err := validateCategory(fmt.Sprintf("entry.categories[%d]", i), c); err != nil {
			return fail(err)
		}
	}
	if e.Content != nil {
		if err := validateContent("entry.content", *e.Content); err != nil {
			return fail(err)
		}
	}
	for i, l := range e.Links {
		if err := validateLink(fmt.Sprintf("entry.links[%d]", i), l); err != nil {
			return fail(err)
		}
	}
	if e.Rights != nil {
		if err := validateTextConstruct("entry.rights", *e.Rights); err != nil {
			return fail(err)
		}
	}
	if e.Summary != nil {
		if err := validateTextConstruct("entry.summary", *e.Summary); err != nil {
			return fail(err)
		}
	}
	return nil
}

func validateTextConstruct(field string, t TextConstruct) error {
	switch t.Type {
	case "", TextPlain, TextHTML:
	case TextXHTML:
		if !isXHTMLDiv(t.Content) {
			return constraint(field, "xhtml content must be a single <div> in the XHTML namespace")
		}
	default:
		return FieldError{Field: field + ".type", Kind: ErrUnsupportedValue, Reason: string(t.Type)}
	}
	if t.Lang != "" && !langtag.IsValid(t.Lang) {
		return invalidFormat(field+".lang", "malformed language tag")
	}
	if t.Base != "" && !isValidIRI(t.Base) {
		return invalidFormat(field+".base", "malformed IRI")
	}
	return nil
}

func validatePerson(field string, p Person) error {
	if p.Name == "" {
		return missingField(field + ".name")
	}
	if p.Email != "" && !isValidEmail(p.Email) {
		return invalidFormat(field+".email", "malformed email address")
	}
	if p.URI != "" && !isValidIRI(p.URI) {
		return invalidFormat(field+".uri", "malformed IRI")
	}
	return nil
}

func validateCategory(field string, c Category) error {
	if c.Term == "" {
		return missingField(field + ".term")
	}
	if c.Scheme != "" && !isValidIRI(c.Scheme) {
		return invalidFormat(field+".scheme", "malformed IRI")
	}
	return nil
}

func validateLink(field string, l Link) error {
	if l.Href == "" {
		return missingField(field + ".href")
	}
	if !isValidIRI(l.Href) {
		return invalidFormat(field+".href", "malformed IRI")
	}
	if l.HrefLang != "" && !langtag.IsValid(l.HrefLang) {
		return invalidFormat(field+".hreflang", "malformed language tag")
	}
	return nil
}

func validateContent(field string, c Content) error {
	if c.Value != "" && c.Src != "" {
		return constraint(field, "content and src are mutually exclusive")
	}
	if c.Value == "" && c.Src == "" {
		return constraint(field, "one of content or src is required")
	}
	if c.Src != "" && !isValidIRI(c.Src) {
		return invalidFormat(field+".src", "malformed IRI")
	}
	switch c.Type {
	case ContentTypeXHTML:
		if c.Value != "" && !isXHTMLDiv(c.Value) {
			return constraint(field, "xhtml content must be a single <div> in the XHTML namespace")
		}
	case ContentTypeBase64:
		if c.Value != "" {
			if _, err := base64.StdEncoding.DecodeString(c.Value); err != nil {
				return invalidFormat(field, "malformed base64 content")
			}
		}
	}
	if c.Lang != "" && !langtag.IsValid(c.Lang) {
		return invalidFormat(field+".lang", "malformed language tag")
	}
	if c.Base != "" && !isValidIRI(c.Base) {
		return invalidFormat(field+".base", "malformed IRI")
	}
	return nil
}

func validateGenerator(field string, g Generator) error {
	if g.Name == "" {
		return missingField(field + ".name")
	}
	if g.URI != "" && !isValidIRI(g.URI) {
		return invalidFormat(field+".uri", "malformed IRI")
	}
	return nil
}

func fail(err error) error {
	log.Error().Err(err).Msg("atom validation failed")
	return err
}
