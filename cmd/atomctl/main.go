package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/atomctl/internal/atom"
	"github.com/danmuck/atomctl/internal/config"
	"github.com/danmuck/atomctl/internal/logging"
)

func main() {
	feedPath := flag.String("feed", "feed.toml", "path to the feed document")
	output := flag.String("out", "", "output path for the rendered document (defaults to stdout)")
	settingsPath := flag.String("settings", "", "optional tool settings file")
	validate := flag.Bool("validate", false, "validate the feed document without rendering")
	template := flag.Bool("template", false, "write a starter feed document to -feed")
	force := flag.Bool("force", false, "overwrite existing files")
	flag.Parse()

	logging.ConfigureRuntime()

	if *template {
		if err := config.WriteTemplate(*feedPath, *force); err != nil {
			log.Fatal().Err(err).Msg("write template")
		}
		log.Info().Str("path", *feedPath).Msg("wrote feed document template")
		return
	}

	settings := defaultToolSettings()
	if *settingsPath != "" {
		loaded, err := loadToolSettings(*settingsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load settings")
		}
		settings = loaded
	}

	opts, entries, err := config.Load(*feedPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load feed document")
	}

	feed, err := atom.New(atom.Config{
		Options:         opts,
		NamespacePrefix: settings.namespacePrefix,
		SortEntries:     settings.sortEntries,
		Stylesheet:      settings.stylesheet,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("feed options rejected")
	}
	for i, e := range entries {
		if err := feed.Add(e); err != nil {
			log.Fatal().Err(err).Int("entry", i).Msg("entry rejected")
		}
	}

	if *validate {
		log.Info().Str("path", *feedPath).Int("entries", len(entries)).Msg("feed document valid")
		return
	}

	doc, err := feed.Render()
	if err != nil {
		log.Fatal().Err(err).Msg("render")
	}

	if *output == "" {
		fmt.Print(doc)
		return
	}
	if !*force {
		if _, err := os.Stat(*output); err == nil {
			log.Fatal().Str("path", *output).Msg("output already exists")
		}
	}
	if err := os.WriteFile(*output, []byte(doc), 0o644); err != nil {
		log.Fatal().Err(err).Msg("write output")
	}
	log.Info().Str("path", *output).Int("entries", len(entries)).Msg("wrote feed")
}
