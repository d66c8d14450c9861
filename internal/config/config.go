// Package config owns the TOML feed-document surface: one [feed] table plus
// any number of [[entry]] tables, mapped onto the atom entities. Loading
// shapes the data; validation stays with the atom package.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/danmuck/atomctl/internal/atom"
)

// Document is the on-disk feed document.
type Document struct {
	Feed    FeedConfig    `toml:"feed"`
	Entries []EntryConfig `toml:"entry"`
}

type FeedConfig struct {
	ID           string           `toml:"id"`
	Title        string           `toml:"title"`
	TitleType    string           `toml:"title_type"`
	Subtitle     string           `toml:"subtitle"`
	Updated      string           `toml:"updated"`
	Lang         string           `toml:"lang"`
	Base         string           `toml:"base"`
	Icon         string           `toml:"icon"`
	Logo         string           `toml:"logo"`
	Rights       string           `toml:"rights"`
	Authors      []PersonConfig   `toml:"authors"`
	Contributors []PersonConfig   `toml:"contributors"`
	Categories   []CategoryConfig `toml:"categories"`
	Links        []LinkConfig     `toml:"links"`
	Generator    *GeneratorConfig `toml:"generator"`
}

type EntryConfig struct {
	ID           string           `toml:"id"`
	Title        string           `toml:"title"`
	TitleType    string           `toml:"title_type"`
	Updated      string           `toml:"updated"`
	Published    string           `toml:"published"`
	Summary      string           `toml:"summary"`
	Rights       string           `toml:"rights"`
	Source       string           `toml:"source"`
	Authors      []PersonConfig   `toml:"authors"`
	Contributors []PersonConfig   `toml:"contributors"`
	Categories   []CategoryConfig `toml:"categories"`
	Links        []LinkConfig     `toml:"links"`
	Content      *ContentConfig   `toml:"content"`
}

type PersonConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
	URI   string `toml:"uri"`
}

type CategoryConfig struct {
	Term   string `toml:"term"`
	Scheme string `toml:"scheme"`
	Label  string `toml:"label"`
}

type LinkConfig struct {
	Href     string `toml:"href"`
	Rel      string `toml:"rel"`
	Type     string `toml:"type"`
	HrefLang string `toml:"hreflang"`
	Title    string `toml:"title"`
	Length   string `toml:"length"`
}

type ContentConfig struct {
	Value string `toml:"value"`
	Type  string `toml:"type"`
	Src   string `toml:"src"`
	Lang  string `toml:"lang"`
	Base  string `toml:"base"`
}

type GeneratorConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	URI     string `toml:"uri"`
}

// Load reads a feed document and maps it onto feed options plus entries.
// Feed and entry ids default to generated urn:uuid identifiers when omitted.
// The result is shaped but not yet validated.
func Load(path string) (atom.FeedOptions, []atom.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return atom.FeedOptions{}, nil, fmt.Errorf("feed document load failed (%s): %w", path, err)
	}
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return atom.FeedOptions{}, nil, fmt.Errorf("feed document parse failed (%s): %w", path, err)
	}

	opts, err := convertFeed(doc.Feed)
	if err != nil {
		return atom.FeedOptions{}, nil, fmt.Errorf("feed document invalid (%s): %w", path, err)
	}
	entries := make([]atom.Entry, 0, len(doc.Entries))
	for i, ec := range doc.Entries {
		entry, err := convertEntry(ec)
		if err != nil {
			return atom.FeedOptions{}, nil, fmt.Errorf("feed document invalid (%s): entry[%d]: %w", path, i, err)
		}
		entries = append(entries, entry)
	}
	return opts, entries, nil
}

func convertFeed(fc FeedConfig) (atom.FeedOptions, error) {
	updated, err := parseTime("feed.updated", fc.Updated)
	if err != nil {
		return atom.FeedOptions{}, err
	}
	opts := atom.FeedOptions{
		ID:           orGeneratedID(fc.ID),
		Title:        atom.TextConstruct{Content: fc.Title, Type: atom.TextType(fc.TitleType)},
		Updated:      updated,
		Lang:         fc.Lang,
		Base:         fc.Base,
		Icon:         fc.Icon,
		Logo:         fc.Logo,
		Authors:      convertPersons(fc.Authors),
		Contributors: convertPersons(fc.Contributors),
		Categories:   convertCategories(fc.Categories),
		Links:        convertLinks(fc.Links),
	}
	if fc.Subtitle != "" {
		opts.Subtitle = &atom.TextConstruct{Content: fc.Subtitle}
	}
	if fc.Rights != "" {
		opts.Rights = &atom.TextConstruct{Content: fc.Rights}
	}
	if fc.Generator != nil {
		opts.Generator = &atom.Generator{Name: fc.Generator.Name, Version: fc.Generator.Version, URI: fc.Generator.URI}
	}
	return opts, nil
}

func convertEntry(ec EntryConfig) (atom.Entry, error) {
	updated, err := parseTime("entry.updated", ec.Updated)
	if err != nil {
		return atom.Entry{}, err
	}
	e := atom.Entry{
		ID:           orGeneratedID(ec.ID),
		Title:        atom.TextConstruct{Content: ec.Title, Type: atom.TextType(ec.TitleType)},
		Updated:      updated,
		Source:       ec.Source,
		Authors:      convertPersons(ec.Authors),
		Contributors: convertPersons(ec.Contributors),
		Categories:   convertCategories(ec.Categories),
		Links:        convertLinks(ec.Links),
	}
	if ec.Published != "" {
		published, err := parseTime("entry.published", ec.Published)
		if err != nil {
			return atom.Entry{}, err
		}
		e.Published = published
	}
	if ec.Summary != "" {
		e.Summary = &atom.TextConstruct{Content: ec.Summary}
	}
	if ec.Rights != "" {
		e.Rights = &atom.TextConstruct{Content: ec.Rights}
	}
	if ec.Content != nil {
		e.Content = &atom.Content{
			Value: ec.Content.Value,
			Type:  ec.Content.Type,
			Src:   ec.Content.Src,
			Lang:  ec.Content.Lang,
			Base:  ec.Content.Base,
		}
	}
	return e, nil
}

func convertPersons(in []PersonConfig) []atom.Person {
	if len(in) == 0 {
		return nil
	}
	out := make([]atom.Person, len(in))
	for i, p := range in {
		out[i] = atom.Person{Name: p.Name, Email: p.Email, URI: p.URI}
	}
	return out
}

func convertCategories(in []CategoryConfig) []atom.Category {
	if len(in) == 0 {
		return nil
	}
	out := make([]atom.Category, len(in))
	for i, c := range in {
		out[i] = atom.Category{Term: c.Term, Scheme: c.Scheme, Label: c.Label}
	}
	return out
}

func convertLinks(in []LinkConfig) []atom.Link {
	if len(in) == 0 {
		return nil
	}
	out := make([]atom.Link, len(in))
	for i, l := range in {
		out[i] = atom.Link{
			Href:     l.Href,
			Rel:      l.Rel,
			Type:     l.Type,
			HrefLang: l.HrefLang,
			Title:    l.Title,
			Length:   l.Length,
		}
	}
	return out
}

func parseTime(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s: missing timestamp", field)
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return ts, nil
}

func orGeneratedID(id string) string {
	if id != "" {
		return id
	}
	return "urn:uuid:" + uuid.NewString()
}
