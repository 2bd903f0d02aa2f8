package pagespec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateCandidates_Semantic verifies semantic container children become
// one candidate each, in document order.
func TestGenerateCandidates_Semantic(t *testing.T) {
	doc := mustDoc(t, `<html><body><main>
		<section><p>First block of content text.</p></section>
		<article><p>Second block of content text.</p></article>
		<div class="page-section"><p>Third block of content text.</p></div>
	</main></body></html>`, "https://example.com")

	candidates := GenerateCandidates(doc.Find("main").First())

	require.Len(t, candidates, 3)
	for i, c := range candidates {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, SourceSemantic, c.Source)
	}
	assert.Equal(t, "First block of content text.", nodeText(candidates[0].Selection))
	assert.Equal(t, "Third block of content text.", nodeText(candidates[2].Selection))
}

// TestGenerateCandidates_StructuralHeadingBoundary verifies headings close
// the current group and start a new one.
func TestGenerateCandidates_StructuralHeadingBoundary(t *testing.T) {
	doc := mustDoc(t, `<html><body><main>
		<h2>Title A</h2>
		<p>Paragraph under title A.</p>
		<h2>Title B</h2>
		<p>Paragraph under title B.</p>
	</main></body></html>`, "https://example.com")

	candidates := GenerateCandidates(doc.Find("main").First())

	require.Len(t, candidates, 2)
	assert.Equal(t, SourceStructural, candidates[0].Source)
	assert.Len(t, candidates[0].Selection.Nodes, 2)
	assert.Equal(t, "Title A Paragraph under title A.", nodeText(candidates[0].Selection))
	assert.Equal(t, "Title B Paragraph under title B.", nodeText(candidates[1].Selection))
}

// TestGenerateCandidates_BackgroundBoundary verifies a non-transparent
// background color starts a new group.
func TestGenerateCandidates_BackgroundBoundary(t *testing.T) {
	doc := mustDoc(t, `<html><body><main>
		<p>Intro paragraph before the banded region.</p>
		<div style="background-color: #eee"><p>Banded region content.</p></div>
	</main></body></html>`, "https://example.com")

	candidates := GenerateCandidates(doc.Find("main").First())

	require.Len(t, candidates, 2)
	assert.Equal(t, "Intro paragraph before the banded region.", nodeText(candidates[0].Selection))
}

// TestGenerateCandidates_MediaBoundary verifies a low-text media block starts
// a new group while a text-heavy one does not.
func TestGenerateCandidates_MediaBoundary(t *testing.T) {
	doc := mustDoc(t, `<html><body><main>
		<p>Opening paragraph of the page body.</p>
		<div><img src="banner.jpg"></div>
		<p>Closing paragraph of the page body.</p>
	</main></body></html>`, "https://example.com")

	candidates := GenerateCandidates(doc.Find("main").First())

	// The image block opens group two; the trailing paragraph joins it.
	require.Len(t, candidates, 2)
	assert.Equal(t, "Opening paragraph of the page body.", nodeText(candidates[0].Selection))
	assert.Len(t, candidates[1].Selection.Nodes, 2)
}

// TestGenerateCandidates_EmptyRegionIsItsOwnCandidate verifies a childless
// region with text becomes one candidate equal to the region.
func TestGenerateCandidates_EmptyRegionIsItsOwnCandidate(t *testing.T) {
	doc := mustDoc(t, `<html><body><main>just a run of bare text</main></body></html>`, "https://example.com")

	candidates := GenerateCandidates(doc.Find("main").First())

	require.Len(t, candidates, 1)
	assert.Equal(t, "just a run of bare text", nodeText(candidates[0].Selection))
}

// TestGenerateCandidates_DropsContentless verifies whitespace-only candidates
// are filtered out.
func TestGenerateCandidates_DropsContentless(t *testing.T) {
	doc := mustDoc(t, `<html><body><main>
		<section>   </section>
		<section><h2>Kept</h2></section>
		<section><div><span></span></div></section>
	</main></body></html>`, "https://example.com")

	candidates := GenerateCandidates(doc.Find("main").First())

	require.Len(t, candidates, 1)
	assert.Equal(t, "Kept", nodeText(candidates[0].Selection))
}

// TestIsEmptySubtree_ContentKinds verifies each content kind keeps a block.
func TestIsEmptySubtree_ContentKinds(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<div id="img"><img src="x.jpg"></div>
		<div id="form"><form><input type="text"></form></div>
		<div id="link"><a href="/x"></a></div>
		<div id="empty"><span></span></div>
	</body></html>`, "https://example.com")

	assert.False(t, isEmptySubtree(doc.Find("#img")))
	assert.False(t, isEmptySubtree(doc.Find("#form")))
	assert.False(t, isEmptySubtree(doc.Find("#link")))
	assert.True(t, isEmptySubtree(doc.Find("#empty")))
}
