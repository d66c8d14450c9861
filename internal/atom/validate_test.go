package atom

import (
	"errors"
	"testing"
	"time"

	"github.com/danmuck/atomctl/internal/testutil/testlog"
)

func validOptions() FeedOptions {
	return FeedOptions{
		ID:      "urn:uuid:60a76c80-d399-11d9-b93c-0003939e0af6",
		Title:   TextConstruct{Content: "Example Feed"},
		Updated: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func validEntry(id string, updated time.Time) Entry {
	return Entry{
		ID:      id,
		Title:   TextConstruct{Content: "Entry " + id},
		Updated: updated,
	}
}

func TestValidateFeedOptionsRequiredFields(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name   string
		mutate func(*FeedOptions)
		kind   error
		field  string
	}{
		{"missing id", func(o *FeedOptions) { o.ID = "" }, ErrMissingField, "feed.id"},
		{"missing title", func(o *FeedOptions) { o.Title = TextConstruct{} }, ErrMissingField, "feed.title"},
		{"zero updated", func(o *FeedOptions) { o.Updated = time.Time{} }, ErrInvalidType, "feed.updated"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := validOptions()
			tc.mutate(&opts)
			err := ValidateFeedOptions(opts)
			if !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
			var fe FieldError
			if !errors.As(err, &fe) || fe.Field != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, err)
			}
		})
	}
}

func TestValidateFeedOptionsNestedConstructs(t *testing.T) {
	testlog.Start(t)

	cases := []struct {
		name   string
		mutate func(*FeedOptions)
		kind   error
	}{
		{"bad lang", func(o *FeedOptions) { o.Lang = "abc1" }, ErrInvalidFormat},
		{"bad base", func(o *FeedOptions) { o.Base = "not a uri" }, ErrInvalidFormat},
		{"bad icon", func(o *FeedOptions) { o.Icon = "no-scheme" }, ErrInvalidFormat},
		{"bad logo", func(o *FeedOptions) { o.Logo = "no-scheme" }, ErrInvalidFormat},
		{"author missing name", func(o *FeedOptions) { o.Authors = []Person{{Email: "a@b.co"}} }, ErrMissingField},
		{"author bad email", func(o *FeedOptions) { o.Authors = []Person{{Name: "a", Email: "a@b"}} }, ErrInvalidFormat},
		{"contributor bad uri", func(o *FeedOptions) { o.Contributors = []Person{{Name: "a", URI: "nope"}} }, ErrInvalidFormat},
		{"category missing term", func(o *FeedOptions) { o.Categories = []Category{{Label: "x"}} }, ErrMissingField},
		{"category bad scheme", func(o *FeedOptions) { o.Categories = []Category{{Term: "x", Scheme: "nope"}} }, ErrInvalidFormat},
		{"generator missing name", func(o *FeedOptions) { o.Generator = &Generator{Version: "1"} }, ErrMissingField},
		{"link missing href", func(o *FeedOptions) { o.Links = []Link{{Rel: "self"}} }, ErrMissingField},
		{"link bad href", func(o *FeedOptions) { o.Links = []Link{{Href: "no scheme here"}} }, ErrInvalidFormat},
		{"link bad hreflang", func(o *FeedOptions) {
			o.Links = []Link{{Href: "http://example.com/", HrefLang: "x"}}
		}, ErrInvalidFormat},
		{"title unsupported type", func(o *FeedOptions) { o.Title.Type = "markdown" }, ErrUnsupportedValue},
		{"subtitle bad lang", func(o *FeedOptions) {
			o.Subtitle = &TextConstruct{Content: "s", Lang: "en-12A"}
		}, ErrInvalidFormat},
		{"rights xhtml without div", func(o *FeedOptions) {
			o.Rights = &TextConstruct{Content: "<p>no div</p>", Type: TextXHTML}
		}, ErrConstraint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := validOptions()
			tc.mutate(&opts)
			if err := ValidateFeedOptions(opts); !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
		})
	}
}

func TestValidateEntryContentExclusivity(t *testing.T) {
	testlog.Start(t)

	e := validEntry("urn:a", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	e.Content = &Content{Value: "body", Src: "http://example.com/body"}
	if err := ValidateEntry(e); !errors.Is(err, ErrConstraint) {
		t.Fatalf("expected constraint violation for both, got %v", err)
	}

	e.Content = &Content{}
	if err := ValidateEntry(e); !errors.Is(err, ErrConstraint) {
		t.Fatalf("expected constraint violation for neither, got %v", err)
	}

	e.Content = &Content{Value: "body"}
	if err := ValidateEntry(e); err != nil {
		t.Fatalf("expected inline content to validate: %v", err)
	}

	e.Content = &Content{Src: "http://example.com/body"}
	if err := ValidateEntry(e); err != nil {
		t.Fatalf("expected src content to validate: %v", err)
	}
}

func TestValidateContentKinds(t *testing.T) {
	testlog.Start(t)

	e := validEntry("urn:a", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	e.Content = &Content{Value: "aGVsbG8=", Type: ContentTypeBase64}
	if err := ValidateEntry(e); err != nil {
		t.Fatalf("expected valid base64 to pass: %v", err)
	}

	e.Content = &Content{Value: "not base64!!", Type: ContentTypeBase64}
	if err := ValidateEntry(e); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected base64 failure, got %v", err)
	}

	e.Content = &Content{
		Value: `<div xmlns="http://www.w3.org/1999/xhtml"><p>hi</p></div>`,
		Type:  ContentTypeXHTML,
	}
	if err := ValidateEntry(e); err != nil {
		t.Fatalf("expected xhtml div to pass: %v", err)
	}

	e.Content = &Content{Value: "<p>hi</p>", Type: ContentTypeXHTML}
	if err := ValidateEntry(e); !errors.Is(err, ErrConstraint) {
		t.Fatalf("expected xhtml failure, got %v", err)
	}

	// Arbitrary MIME types pass through.
	e.Content = &Content{Value: "GIF89a", Type: "image/gif"}
	if err := ValidateEntry(e); err != nil {
		t.Fatalf("expected MIME passthrough to pass: %v", err)
	}

	e.Content = &Content{Src: "no scheme"}
	if err := ValidateEntry(e); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected src IRI failure, got %v", err)
	}
}

func TestXHTMLDivBoundary(t *testing.T) {
	// The check is a structural heuristic, not XML well-formedness.
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"plain div", `<div xmlns="http://www.w3.org/1999/xhtml">x</div>`, true},
		{"extra attr", `<div xmlns="http://www.w3.org/1999/xhtml" class="c">x</div>`, true},
		{"leading whitespace", "\n  " + `<div xmlns="http://www.w3.org/1999/xhtml">x</div>` + "  \n", true},
		{"nested div", `<div xmlns="http://www.w3.org/1999/xhtml"><div>inner</div></div>`, true},
		{"multiline", `<div xmlns="http://www.w3.org/1999/xhtml">` + "\n<p>a</p>\n" + `</div>`, true},
		{"wrong namespace", `<div xmlns="http://example.com/">x</div>`, false},
		{"no namespace", `<div>x</div>`, false},
		{"not a div", `<span xmlns="http://www.w3.org/1999/xhtml">x</span>`, false},
		{"trailing junk", `<div xmlns="http://www.w3.org/1999/xhtml">x</div><p>y</p>`, false},
		// Known heuristic limit: unbalanced inner markup still matches as
		// long as the outer wrapper shape holds.
		{"unbalanced inner", `<div xmlns="http://www.w3.org/1999/xhtml"><p>x</div>`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isXHTMLDiv(tc.in); got != tc.ok {
				t.Fatalf("isXHTMLDiv(%q) = %v, want %v", tc.in, got, tc.ok)
			}
		})
	}
}

func TestIRIFallbackAcceptsSchemePrefixed(t *testing.T) {
	// The two-stage check deliberately accepts scheme-prefixed strings with
	// no authority.
	accepted := []string{
		"http://example.com/feed",
		"urn:uuid:60a76c80-d399-11d9-b93c-0003939e0af6",
		"tag:example.org,2003:3",
		"mailto:a@example.com",
		"custom-scheme:opaque/part",
		// url.Parse tolerates spaces in the path, so the first stage
		// accepts this before the fallback is ever consulted.
		"http://example.com/with space",
	}
	for _, s := range accepted {
		if !isValidIRI(s) {
			t.Fatalf("expected %q to be accepted", s)
		}
	}

	rejected := []string{
		"",
		"no-scheme-at-all",
		"relative/path",
		"has space:rest",
	}
	for _, s := range rejected {
		if isValidIRI(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestEmailPermissiveShape(t *testing.T) {
	accepted := []string{"a@b.co", "first.last@sub.example.com", "weird+tag@example.org"}
	for _, s := range accepted {
		if !isValidEmail(s) {
			t.Fatalf("expected %q to be accepted", s)
		}
	}
	rejected := []string{"", "a@b", "a b@c.co", "a@@b.co", "@b.co"}
	for _, s := range rejected {
		if isValidEmail(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestFieldErrorUnwrap(t *testing.T) {
	err := ValidateEntry(Entry{})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	var fe FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %T", err)
	}
	if fe.Field != "entry.id" {
		t.Fatalf("unexpected field: %q", fe.Field)
	}
}
