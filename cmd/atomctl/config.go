package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/atomctl/internal/atom"
)

type fileSettings struct {
	NamespacePrefix bool   `toml:"namespace_prefix"`
	SortEntries     bool   `toml:"sort_entries"`
	StylesheetHref  string `toml:"stylesheet_href"`
	StylesheetType  string `toml:"stylesheet_type"`
}

type toolSettings struct {
	namespacePrefix bool
	sortEntries     bool
	stylesheet      *atom.Stylesheet
}

func defaultToolSettings() toolSettings {
	// The tool sorts by default; the engine default stays off.
	return toolSettings{sortEntries: true}
}

func loadToolSettings(path string) (toolSettings, error) {
	cfg := defaultToolSettings()

	var raw fileSettings
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return toolSettings{}, fmt.Errorf("load settings: %w", err)
	}

	if meta.IsDefined("namespace_prefix") {
		cfg.namespacePrefix = raw.NamespacePrefix
	}
	if meta.IsDefined("sort_entries") {
		cfg.sortEntries = raw.SortEntries
	}
	if meta.IsDefined("stylesheet_href") {
		href := strings.TrimSpace(raw.StylesheetHref)
		if href != "" {
			cfg.stylesheet = &atom.Stylesheet{Href: href, Type: strings.TrimSpace(raw.StylesheetType)}
		}
	}
	return cfg, nil
}
