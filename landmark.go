package pagespec

import "github.com/PuerkitoBio/goquery"

// LandmarkKind names the at-most-one-per-document structural regions.
type LandmarkKind string

const (
	LandmarkHeader LandmarkKind = "header"
	LandmarkFooter LandmarkKind = "footer"
	LandmarkMain   LandmarkKind = "main"
)

// Landmarks holds the detected header, footer, and main-content regions.
// Absence of a landmark is a valid, common outcome; only Main is guaranteed
// (via the largest-text fallback) whenever the document has a body.
type Landmarks struct {
	Header *goquery.Selection
	Footer *goquery.Selection
	Main   *goquery.Selection
}

var (
	headerSelectors = []string{"header", "[role=banner]", "nav", "[role=navigation]"}
	footerSelectors = []string{"footer", "[role=contentinfo]"}
	mainSelectors   = []string{"main", "[role=main]"}
)

// DetectLandmarks locates the header, footer, and main regions of a document.
// Each landmark is the first match of its selector preference list; when no
// semantic main exists, the direct child of body with the most text (header
// and footer excluded) is used so a main region always exists.
func DetectLandmarks(doc *Document) Landmarks {
	lm := Landmarks{}

	for _, selector := range headerSelectors {
		if m := doc.Find(selector); m.Length() > 0 {
			lm.Header = m.First()
			break
		}
	}

	for _, selector := range footerSelectors {
		if m := doc.Find(selector); m.Length() > 0 {
			lm.Footer = m.First()
			break
		}
	}

	for _, selector := range mainSelectors {
		if m := doc.Find(selector); m.Length() > 0 {
			lm.Main = m.First()
			break
		}
	}
	if lm.Main == nil {
		lm.Main = fallbackMain(doc, lm)
	}

	return lm
}

// fallbackMain picks the direct child of body with the largest total text
// length, skipping the detected header and footer nodes. When body has no
// element children, body itself is the main region.
func fallbackMain(doc *Document, lm Landmarks) *goquery.Selection {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}

	var best *goquery.Selection
	bestLen := -1

	children := body.Children()
	for i := 0; i < children.Length(); i++ {
		child := children.Eq(i)
		if isSameNode(child, lm.Header) || isSameNode(child, lm.Footer) {
			continue
		}
		if child.Is("script, style, noscript") {
			continue
		}
		if l := len(nodeText(child)); l > bestLen {
			best = child
			bestLen = l
		}
	}

	if best == nil {
		return body
	}
	return best
}

// isSameNode reports whether two selections reference the same first node.
func isSameNode(a, b *goquery.Selection) bool {
	if a == nil || b == nil || len(a.Nodes) == 0 || len(b.Nodes) == 0 {
		return false
	}
	return a.Nodes[0] == b.Nodes[0]
}
