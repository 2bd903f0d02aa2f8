package pagespec

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
)

// SpecVersion is written into every persisted page spec.
const SpecVersion = "1.0"

// PageMeta carries the page-level metadata pulled from the document head.
type PageMeta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// PageSpec is the persisted analysis of one captured page: its ordered
// sections plus page-level metadata, aggregate link counts, and every form on
// the page. This is the document the theme generator consumes.
type PageSpec struct {
	Version      string     `json:"version"`
	BaseURL      string     `json:"baseUrl"`
	URL          string     `json:"url"`
	Slug         string     `json:"slug"`
	TemplateHint string     `json:"templateHint"`
	Meta         PageMeta   `json:"meta"`
	Sections     []Section  `json:"sections"`
	Links        LinkCounts `json:"links"`
	Forms        []Form     `json:"forms"`
	Notes        []string   `json:"notes"`
}

// BuildPageSpec assembles the persisted spec for one segmented page. Link
// counts and forms aggregate over the sections; an empty section list is
// recorded as a page note rather than an error so other pages can proceed.
func BuildPageSpec(doc *Document, slug string, sections []Section) *PageSpec {
	spec := &PageSpec{
		Version:      SpecVersion,
		BaseURL:      doc.rawURL,
		URL:          pageURL(doc.baseURL, slug),
		Slug:         slug,
		TemplateHint: templateHint(slug),
		Meta: PageMeta{
			Title:       doc.Title(),
			Description: doc.MetaDescription(),
		},
		Sections: sections,
		Forms:    []Form{},
		Notes:    []string{},
	}

	for _, sec := range sections {
		if sec.Links != nil {
			spec.Links.Internal += sec.Links.Internal
			spec.Links.External += sec.Links.External
		}
		spec.Forms = append(spec.Forms, sec.Forms...)
	}

	if len(sections) == 0 {
		spec.Notes = append(spec.Notes, "No sections could be extracted from the page")
	}

	return spec
}

// templateHint maps a slug onto the template the theme generator should use.
func templateHint(slug string) string {
	if slug == "home" || slug == "index" {
		return "front-page"
	}
	return "page"
}

// pageURL derives the page's URL from the base URL and slug. The front page
// keeps the base URL itself.
func pageURL(base *url.URL, slug string) string {
	if slug == "home" || slug == "index" {
		return base.String()
	}
	return base.ResolveReference(&url.URL{Path: "/" + slug}).String()
}

// WriteFile persists the spec as indented JSON.
func (ps *PageSpec) WriteFile(path string) error {
	data, err := json.MarshalIndent(ps, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal page spec: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write page spec: %w", err)
	}
	return nil
}
