package pagespec

import "github.com/PuerkitoBio/goquery"

// CandidateSource records how a block candidate was carved out of the main
// region.
type CandidateSource string

const (
	// SourceSemantic marks candidates taken directly from semantic container
	// elements (section, article, aside, div[class*=section]).
	SourceSemantic CandidateSource = "semantic"
	// SourceStructural marks candidates built by grouping sibling runs
	// between structural boundaries.
	SourceStructural CandidateSource = "structural"
)

// BlockCandidate is one DOM subtree proposed as a prospective section. For
// structural candidates the Selection may hold several sibling nodes; its
// first node is the candidate's anchor element, while extraction operates
// over the full group.
type BlockCandidate struct {
	Selection *goquery.Selection
	Index     int
	Source    CandidateSource
}

const semanticContainers = "section, article, aside, div[class*=section]"

// GenerateCandidates splits the main region into an ordered list of block
// candidates. Direct semantic children win when present; otherwise sibling
// runs are grouped between structural boundaries. Candidates with no content
// at all are dropped.
func GenerateCandidates(main *goquery.Selection) []BlockCandidate {
	if main == nil || main.Length() == 0 {
		return nil
	}

	semantic := main.ChildrenFiltered(semanticContainers)
	if semantic.Length() > 0 {
		var out []BlockCandidate
		for i := 0; i < semantic.Length(); i++ {
			out = append(out, BlockCandidate{
				Selection: semantic.Eq(i),
				Index:     i,
				Source:    SourceSemantic,
			})
		}
		return filterCandidates(out)
	}

	children := main.Children()
	if children.Length() == 0 {
		// A region with no element children is itself the only candidate.
		return filterCandidates([]BlockCandidate{{
			Selection: main,
			Index:     0,
			Source:    SourceStructural,
		}})
	}

	var out []BlockCandidate
	var group *goquery.Selection
	index := 0

	for i := 0; i < children.Length(); i++ {
		child := children.Eq(i)
		if group != nil && isBoundary(child) {
			out = append(out, BlockCandidate{Selection: group, Index: index, Source: SourceStructural})
			index++
			group = nil
		}
		if group == nil {
			group = child
		} else {
			group = group.AddSelection(child)
		}
	}
	if group != nil {
		out = append(out, BlockCandidate{Selection: group, Index: index, Source: SourceStructural})
	}

	return filterCandidates(out)
}

// isBoundary reports whether an upcoming sibling starts a new structural
// group: a heading, a block with its own background color, or a low-text
// media block.
func isBoundary(child *goquery.Selection) bool {
	if child.Is("h1, h2, h3, h4, h5, h6") {
		return true
	}
	if backgroundColor(child) != "" {
		return true
	}
	if findWithSelf(child, "img, video").Length() > 0 && len(nodeText(child)) < 100 {
		return true
	}
	return false
}

// filterCandidates drops candidates whose subtree carries no content at all:
// no text, heading, media, form, or link. Pure whitespace and decoration must
// not become sections.
func filterCandidates(candidates []BlockCandidate) []BlockCandidate {
	var kept []BlockCandidate
	for _, c := range candidates {
		if isEmptySubtree(c.Selection) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// isEmptySubtree reports whether a selection (own nodes included) contains
// nothing worth extracting.
func isEmptySubtree(s *goquery.Selection) bool {
	if nodeText(s) != "" {
		return false
	}
	if findWithSelf(s, "h1, h2, h3, h4, h5, h6").Length() > 0 {
		return false
	}
	if findWithSelf(s, "img, video").Length() > 0 {
		return false
	}
	if findWithSelf(s, "form").Length() > 0 {
		return false
	}
	if findWithSelf(s, "a[href]").Length() > 0 {
		return false
	}
	return true
}
