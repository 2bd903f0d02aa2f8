package pagespec

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BlockFeatures is the fixed feature vector the classifier consumes. It is
// derived solely from a candidate's subtree and immutable once computed.
type BlockFeatures struct {
	HeadingCount int
	WordCount    int
	// TextDensity is extracted characters per word: low values indicate
	// short, CTA-like text; high values indicate prose.
	TextDensity      float64
	MediaCount       int
	LinkCount        int
	CTALikeCount     int
	HasForm          bool
	RepeatedSiblings bool
	Tag              string
	Role             string
	Classes          string
}

const ctaElements = "a[href], button, [role=button]"

// ExtractFeatures computes the feature vector for one block candidate.
func ExtractFeatures(c BlockCandidate, rs *Ruleset) BlockFeatures {
	sel := c.Selection
	text := nodeText(sel)
	words := strings.Fields(text)

	f := BlockFeatures{
		HeadingCount: findWithSelf(sel, "h1, h2, h3, h4, h5, h6").Length(),
		WordCount:    len(words),
		MediaCount:   findWithSelf(sel, "img, video").Length(),
		LinkCount:    findWithSelf(sel, "a[href]").Length(),
		HasForm:      findWithSelf(sel, "form").Length() > 0,
	}
	if f.WordCount > 0 {
		f.TextDensity = float64(len(text)) / float64(f.WordCount)
	}

	findWithSelf(sel, ctaElements).Each(func(_ int, s *goquery.Selection) {
		if rs.ctaRe.MatchString(nodeText(s)) {
			f.CTALikeCount++
		}
	})

	anchor := sel.First()
	f.Tag = goquery.NodeName(anchor)
	f.Role = anchor.AttrOr("role", "")
	f.Classes = anchor.AttrOr("class", "")

	f.RepeatedSiblings = hasRepeatedSiblings(c, rs.MinGridSiblings)

	return f
}

// hasRepeatedSiblings runs grid detection over the candidate's direct
// children. A structural group candidate compares its own grouped members;
// a single-node candidate compares that node's element children.
func hasRepeatedSiblings(c BlockCandidate, minGroup int) bool {
	nodes := c.Selection.Nodes
	if len(nodes) == 0 {
		return false
	}

	if len(nodes) > 1 {
		return detectRepeatedSiblings(elementNodes(nodes), minGroup)
	}
	return detectRepeatedSiblings(elementChildren(nodes[0]), minGroup)
}
