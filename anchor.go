package pagespec

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// classNameRe accepts plain class names safe to embed in a selector.
var classNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// GenerateAnchor derives a stable, re-locatable reference to the candidate's
// anchor element (its first node). Volatile site-builder identifiers are
// rejected; the positional "section-<index>" path is the last resort, where
// index is the section's position in the final ordered list.
func GenerateAnchor(c BlockCandidate, landmark LandmarkKind, index int, rs *Ruleset) DOMAnchor {
	anchor := c.Selection.First()
	if anchor.Length() == 0 {
		return DOMAnchor{Strategy: "path", Value: fmt.Sprintf("section-%d", index)}
	}
	tag := goquery.NodeName(anchor)

	// 1-2. Landmarks anchor to their role or their own tag.
	if landmark != "" {
		if role := anchor.AttrOr("role", ""); role != "" {
			return DOMAnchor{Strategy: "selector", Value: fmt.Sprintf("[role=%q]", role)}
		}
		if tag == "header" || tag == "footer" || tag == "main" {
			return DOMAnchor{Strategy: "selector", Value: tag}
		}
	}

	// 3. A non-volatile id.
	if id := anchor.AttrOr("id", ""); id != "" && !rs.isVolatile(id) {
		return DOMAnchor{Strategy: "selector", Value: "#" + id}
	}

	// 4. A stable data-* attribute, in attribute order.
	for _, attr := range anchor.Nodes[0].Attr {
		if !strings.HasPrefix(attr.Key, "data-") {
			continue
		}
		if rs.volatileDataRe.MatchString(attr.Key) {
			continue
		}
		if rs.hexRe.MatchString(attr.Val) {
			continue
		}
		return DOMAnchor{Strategy: "selector", Value: fmt.Sprintf("[%s=%q]", attr.Key, attr.Val)}
	}

	// 5. Sectioning tags anchor positionally among same-tag siblings.
	switch tag {
	case "section", "article", "aside", "header", "footer", "main":
		return DOMAnchor{
			Strategy: "selector",
			Value:    fmt.Sprintf("%s:nth-of-type(%d)", tag, nthOfType(anchor.Nodes[0])),
		}
	}

	// 6. A stable class.
	for _, class := range strings.Fields(anchor.AttrOr("class", "")) {
		if classNameRe.MatchString(class) && !rs.isVolatile(class) {
			return DOMAnchor{Strategy: "selector", Value: "." + class}
		}
	}

	// 7. Positional fallback.
	return DOMAnchor{Strategy: "path", Value: fmt.Sprintf("section-%d", index)}
}

// nthOfType returns the node's 1-based position among preceding siblings of
// the same tag.
func nthOfType(n *html.Node) int {
	position := 1
	for prev := n.PrevSibling; prev != nil; prev = prev.PrevSibling {
		if prev.Type == html.ElementNode && prev.Data == n.Data {
			position++
		}
	}
	return position
}
