package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes a starter feed document. Refuses to overwrite unless
// told to.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("feed document already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(feedTemplate), 0o600)
}

const feedTemplate = `[feed]
# id defaults to a generated urn:uuid when omitted
title = "Example Feed"
subtitle = "All the example news"
updated = "2023-06-01T12:00:00Z"
lang = "en-US"

[[feed.authors]]
name = "Author One"
email = "author@example.com"

[[feed.links]]
href = "http://example.com/"
rel = "alternate"

[[entry]]
title = "First Post"
updated = "2023-06-01T12:00:00Z"
summary = "Hello from atomctl."

[entry.content]
value = "Full body of the first post."
type = "text"
`
