package atom

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Config carries a feed's validated options plus the constructor-level
// output flags. SortEntries defaults to false here; higher-level adapters
// choose their own default.
type Config struct {
	Options         FeedOptions
	NamespacePrefix bool
	SortEntries     bool
	Stylesheet      *Stylesheet
}

// Feed exclusively owns its options and entry collection. Entries are
// copied in on Add and copied out on Entries; the backing slice is never
// exposed. Not safe for concurrent mutation.
type Feed struct {
	cfg     Config
	entries []Entry
}

// New validates cfg.Options and constructs an empty feed. The options are
// copied; later mutation of cfg by the caller does not reach the feed.
func New(cfg Config) (*Feed, error) {
	if err := ValidateFeedOptions(cfg.Options); err != nil {
		return nil, err
	}
	f := &Feed{cfg: cfg}
	f.cfg.Options = cloneFeedOptions(cfg.Options)
	if cfg.Stylesheet != nil {
		ss := *cfg.Stylesheet
		f.cfg.Stylesheet = &ss
	}
	return f, nil
}

// Add validates the entry and appends a copy. A failed add leaves the
// collection untouched. Duplicate ids are permitted.
func (f *Feed) Add(e Entry) error {
	if err := ValidateEntry(e); err != nil {
		return err
	}
	f.entries = append(f.entries, cloneEntry(e))
	log.Debug().Str("entry_id", e.ID).Int("entries", len(f.entries)).Msg("atom.Feed.Add")
	return nil
}

// Remove deletes every entry whose id matches and reports whether the
// collection changed.
func (f *Feed) Remove(id string) bool {
	kept := make([]Entry, 0, len(f.entries))
	for _, e := range f.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(f.entries)
	f.entries = kept
	log.Debug().Str("entry_id", id).Bool("removed", removed).Msg("atom.Feed.Remove")
	return removed
}

// Clear empties the collection.
func (f *Feed) Clear() {
	f.entries = nil
}

// Entries returns a snapshot in insertion order. The returned entries are
// deep copies; mutating them never affects the feed.
func (f *Feed) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	for i := range f.entries {
		out[i] = cloneEntry(f.entries[i])
	}
	return out
}

// Options returns a copy of the feed-level configuration.
func (f *Feed) Options() FeedOptions {
	return cloneFeedOptions(f.cfg.Options)
}

// SetLinks replaces the feed-level links. Every replacement link is
// validated before any is applied; on failure the existing set is kept.
func (f *Feed) SetLinks(links []Link) error {
	for i, l := range links {
		if err := validateLink(fmt.Sprintf("feed.links[%d]", i), l); err != nil {
			return fail(err)
		}
	}
	f.cfg.Options.Links = cloneLinks(links)
	return nil
}

// SetStylesheet associates a stylesheet processing instruction with the
// rendered document.
func (f *Feed) SetStylesheet(s Stylesheet) {
	f.cfg.Stylesheet = &s
}

// Render produces the document with the constructor-level flags. Rendering
// never mutates the feed; repeated calls yield identical output.
func (f *Feed) Render() (string, error) {
	return Render(f.cfg.Options, f.entries, f.cfg.NamespacePrefix, f.cfg.SortEntries, f.cfg.Stylesheet)
}

func cloneFeedOptions(opts FeedOptions) FeedOptions {
	out := opts
	out.Authors = clonePersons(opts.Authors)
	out.Contributors = clonePersons(opts.Contributors)
	out.Categories = cloneCategories(opts.Categories)
	out.Links = cloneLinks(opts.Links)
	if opts.Generator != nil {
		g := *opts.Generator
		out.Generator = &g
	}
	out.Rights = cloneTextConstruct(opts.Rights)
	out.Subtitle = cloneTextConstruct(opts.Subtitle)
	return out
}

func cloneEntry(e Entry) Entry {
	out := e
	out.Authors = clonePersons(e.Authors)
	out.Contributors = clonePersons(e.Contributors)
	out.Categories = cloneCategories(e.Categories)
	out.Links = cloneLinks(e.Links)
	if e.Content != nil {
		c := *e.Content
		out.Content = &c
	}
	out.Rights = cloneTextConstruct(e.Rights)
	out.Summary = cloneTextConstruct(e.Summary)
	return out
}

func cloneTextConstruct(t *TextConstruct) *TextConstruct {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func clonePersons(in []Person) []Person {
	if in == nil {
		return nil
	}
	out := make([]Person, len(in))
	copy(out, in)
	return out
}

func cloneCategories(in []Category) []Category {
	if in == nil {
		return nil
	}
	out := make([]Category, len(in))
	copy(out, in)
	return out
}

func cloneLinks(in []Link) []Link {
	if in == nil {
		return nil
	}
	out := make([]Link, len(in))
	copy(out, in)
	return out
}
