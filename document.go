package pagespec

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is an immutable, fully-parsed snapshot of one rendered page plus
// its base URL. The engine only reads the tree; nothing mutates it after
// parsing, so a Document may be segmented concurrently with other documents.
//
// Style lookups (background-color, width, max-width, font-size) read inline
// style declarations: the rendering collaborator is expected to inline the
// computed styles it cares about before handing HTML to the engine.
type Document struct {
	doc     *goquery.Document
	baseURL *url.URL
	rawURL  string
}

// ParseDocument parses a rendered HTML string against its base URL. Malformed
// markup is tolerated by the underlying parser; the only error conditions are
// an unreadable document or an unparseable base URL.
func ParseDocument(htmlStr, baseURL string) (*Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &Document{doc: gq, baseURL: base, rawURL: baseURL}, nil
}

// BaseURL returns the page's base URL.
func (d *Document) BaseURL() *url.URL {
	return d.baseURL
}

// Find matches a CSS selector anywhere in the document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Title returns the whitespace-normalized <title> text, if any.
func (d *Document) Title() string {
	return nodeText(d.doc.Find("title").First())
}

// MetaDescription returns the content of the description meta tag, if any.
func (d *Document) MetaDescription() string {
	desc, _ := d.doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(desc)
}

// normalizeSpace collapses all runs of whitespace to single spaces and trims
// the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// nodeText returns the whitespace-normalized text content of a selection.
func nodeText(s *goquery.Selection) string {
	return normalizeSpace(s.Text())
}

// findWithSelf matches a selector against a selection's own nodes as well as
// their descendants. Structural block candidates are groups of sibling nodes,
// so extraction has to see a group member that is itself a heading or link,
// not only descendants.
func findWithSelf(s *goquery.Selection, selector string) *goquery.Selection {
	return s.Filter(selector).AddSelection(s.Find(selector))
}

// inlineStyle parses an element's inline style attribute into a property map.
// Property names are lowercased; values keep their original case.
func inlineStyle(s *goquery.Selection) map[string]string {
	raw, ok := s.Attr("style")
	if !ok || raw == "" {
		return nil
	}

	props := map[string]string{}
	for _, decl := range strings.Split(raw, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name != "" && value != "" {
			props[name] = value
		}
	}
	return props
}

// styleValue returns the inline value of one CSS property, or "" if unset.
func styleValue(s *goquery.Selection, property string) string {
	return inlineStyle(s)[property]
}

// backgroundColor returns the element's effective inline background color, or
// "" when it is unset or transparent. The background shorthand is consulted
// when background-color is absent and its first token looks like a color.
func backgroundColor(s *goquery.Selection) string {
	props := inlineStyle(s)

	value := props["background-color"]
	if value == "" {
		if shorthand := props["background"]; shorthand != "" {
			first := strings.Fields(shorthand)[0]
			lower := strings.ToLower(first)
			if strings.HasPrefix(lower, "#") || strings.HasPrefix(lower, "rgb") || strings.HasPrefix(lower, "hsl") {
				value = shorthand
			}
		}
	}

	if isTransparent(value) {
		return ""
	}
	return value
}

// isTransparent reports whether a CSS color value means "no background".
func isTransparent(value string) bool {
	v := strings.ToLower(strings.ReplaceAll(value, " ", ""))
	return v == "" || v == "transparent" || v == "rgba(0,0,0,0)"
}

// pixelValue parses a CSS length like "24px" into its numeric value. Only
// pixel units are understood; anything else reports false.
func pixelValue(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasSuffix(value, "px") {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(value, "px"), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
