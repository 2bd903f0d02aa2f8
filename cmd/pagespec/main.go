// Command pagespec segments a directory of rendered HTML captures into page
// specs, clusters the recurring section shapes across them, and writes the
// results as JSON (and optionally into a SQLite store). Fetching and
// rendering the pages is someone else's job: the input is one <slug>.html
// file per captured page.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sitedistill/pagespec"
	"github.com/sitedistill/pagespec/specstore"
)

func main() {
	var (
		inDir   = flag.String("in", ".", "directory of rendered <slug>.html files")
		outDir  = flag.String("out", "specs", "directory for page spec JSON output")
		baseURL = flag.String("base", "", "base URL of the captured site (required)")
		rules   = flag.String("rules", "", "optional ruleset YAML override file")
		dbPath  = flag.String("db", "", "optional SQLite database for specs and patterns")
	)
	flag.Parse()

	if *baseURL == "" {
		log.Fatal("ERROR: -base is required")
	}

	ruleset := pagespec.DefaultRuleset()
	if *rules != "" {
		var err error
		ruleset, err = pagespec.LoadRuleset(*rules)
		if err != nil {
			log.Fatalf("ERROR: Failed to load ruleset: %v", err)
		}
	}

	entries, err := os.ReadDir(*inDir)
	if err != nil {
		log.Fatalf("ERROR: Failed to read input directory: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("ERROR: Failed to create output directory: %v", err)
	}

	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".html" {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(entry.Name(), ".html"))
	}
	sort.Strings(slugs)

	pages := map[string][]pagespec.Section{}
	specs := map[string]*pagespec.PageSpec{}
	for _, slug := range slugs {
		data, err := os.ReadFile(filepath.Join(*inDir, slug+".html"))
		if err != nil {
			log.Printf("ERROR: Failed to read %s: %v", slug, err)
			continue
		}

		doc, err := pagespec.ParseDocument(string(data), *baseURL)
		if err != nil {
			log.Printf("ERROR: Failed to parse %s: %v", slug, err)
			continue
		}

		sections := pagespec.Segment(doc, ruleset)
		if len(sections) == 0 {
			log.Printf("WARN: No sections could be extracted from %s", slug)
		}
		pages[slug] = sections

		spec := pagespec.BuildPageSpec(doc, slug, sections)
		specs[slug] = spec
		outPath := filepath.Join(*outDir, slug+".json")
		if err := spec.WriteFile(outPath); err != nil {
			log.Printf("ERROR: Failed to write spec for %s: %v", slug, err)
			continue
		}
		log.Printf("INFO: Wrote %s (%d sections)", outPath, len(sections))
	}

	patterns := pagespec.ClusterPatterns(pages)
	log.Printf("INFO: Clustered %d patterns across %d pages", len(patterns), len(pages))

	patternData, err := json.MarshalIndent(patterns, "", "  ")
	if err != nil {
		log.Fatalf("ERROR: Failed to marshal patterns: %v", err)
	}
	patternPath := filepath.Join(*outDir, "patterns.json")
	if err := os.WriteFile(patternPath, patternData, 0644); err != nil {
		log.Fatalf("ERROR: Failed to write patterns: %v", err)
	}
	log.Printf("INFO: Wrote %s", patternPath)

	if *dbPath == "" {
		return
	}

	store, err := specstore.Open(*dbPath)
	if err != nil {
		log.Fatalf("ERROR: Failed to open store: %v", err)
	}
	defer store.Close()

	for _, slug := range slugs {
		spec, ok := specs[slug]
		if !ok {
			continue
		}
		if err := store.SaveSpec(spec); err != nil {
			log.Printf("ERROR: Failed to store spec for %s: %v", slug, err)
		}
	}

	if err := store.ReplacePatterns(patterns); err != nil {
		log.Fatalf("ERROR: Failed to store patterns: %v", err)
	}
	log.Printf("INFO: Persisted %d specs and %d patterns to %s", len(pages), len(patterns), *dbPath)
}
