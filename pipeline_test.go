package pagespec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html, base string) *Document {
	t.Helper()
	doc, err := ParseDocument(html, base)
	require.NoError(t, err)
	return doc
}

const landmarkPage = `<html><body>
<header><nav><a href="/">Home</a><a href="/about">About</a></nav></header>
<main>
  <section><h2>One</h2><p>First section body text goes here.</p></section>
  <section><h2>Two</h2><p>Second section body text goes here.</p></section>
</main>
<footer><p>Copyright 2024 Example Co.</p></footer>
</body></html>`

// TestSegment_IDContract verifies IDs are contiguous and in document order:
// header, then body blocks, then footer.
func TestSegment_IDContract(t *testing.T) {
	doc := mustDoc(t, landmarkPage, "https://example.com")

	sections := Segment(doc, nil)

	require.Len(t, sections, 4)
	assert.Equal(t, "sec_001", sections[0].ID)
	assert.Equal(t, "sec_002", sections[1].ID)
	assert.Equal(t, "sec_003", sections[2].ID)
	assert.Equal(t, "sec_004", sections[3].ID)
	assert.Equal(t, SectionHeader, sections[0].Type)
	assert.Equal(t, SectionFooter, sections[3].Type)
}

// TestSegment_Deterministic verifies that segmenting the same HTML twice
// yields byte-identical output.
func TestSegment_Deterministic(t *testing.T) {
	first := Segment(mustDoc(t, landmarkPage, "https://example.com"), nil)
	second := Segment(mustDoc(t, landmarkPage, "https://example.com"), nil)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)

	assert.Equal(t, firstJSON, secondJSON)
}

// TestSegment_EmptySectionsDropped verifies that contentless sections never
// become output: 3 sections where only the middle has content yield 1.
func TestSegment_EmptySectionsDropped(t *testing.T) {
	doc := mustDoc(t, `<html><body><main>
		<section></section>
		<section><h2>Has content</h2></section>
		<section></section>
	</main></body></html>`, "https://example.com")

	sections := Segment(doc, nil)

	require.Len(t, sections, 1)
	assert.Equal(t, "sec_001", sections[0].ID)
	assert.Equal(t, "Has content", sections[0].Heading)
}

// TestSegment_EmptyPage verifies an empty body yields an empty, non-nil
// section list rather than an error.
func TestSegment_EmptyPage(t *testing.T) {
	doc := mustDoc(t, "<html><body></body></html>", "https://example.com")

	sections := Segment(doc, nil)

	assert.Empty(t, sections)
}

// TestSegment_HeaderExcludesNavCTAs verifies nav links inside a header
// section are not reported as CTAs.
func TestSegment_HeaderExcludesNavCTAs(t *testing.T) {
	doc := mustDoc(t, landmarkPage, "https://example.com")

	sections := Segment(doc, nil)

	require.NotEmpty(t, sections)
	assert.Equal(t, SectionHeader, sections[0].Type)
	assert.Empty(t, sections[0].CTAs)
}

// TestSegment_LandmarkAnchors verifies header and footer sections anchor to
// their bare tag names.
func TestSegment_LandmarkAnchors(t *testing.T) {
	doc := mustDoc(t, landmarkPage, "https://example.com")

	sections := Segment(doc, nil)

	require.Len(t, sections, 4)
	assert.Equal(t, DOMAnchor{Strategy: "selector", Value: "header"}, sections[0].DOMAnchor)
	assert.Equal(t, DOMAnchor{Strategy: "selector", Value: "footer"}, sections[3].DOMAnchor)
	assert.Equal(t, DOMAnchor{Strategy: "selector", Value: "section:nth-of-type(1)"}, sections[1].DOMAnchor)
	assert.Equal(t, DOMAnchor{Strategy: "selector", Value: "section:nth-of-type(2)"}, sections[2].DOMAnchor)
}

// TestSegment_StructuralHashStable verifies the structural hash is 16 hex
// chars and identical across runs.
func TestSegment_StructuralHashStable(t *testing.T) {
	first := Segment(mustDoc(t, landmarkPage, "https://example.com"), nil)
	second := Segment(mustDoc(t, landmarkPage, "https://example.com"), nil)

	require.NotEmpty(t, first)
	for i := range first {
		assert.Len(t, first[i].StructuralHash, 16)
		assert.Equal(t, first[i].StructuralHash, second[i].StructuralHash)
	}
}

// TestSegmentWithTrace verifies the trace exports one entry per section.
func TestSegmentWithTrace(t *testing.T) {
	doc := mustDoc(t, landmarkPage, "https://example.com")

	sections, trace := SegmentWithTrace(doc, nil)

	require.NotNil(t, trace)
	require.Len(t, trace.Candidates, len(sections))
	for i, c := range trace.Candidates {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, sections[i].Type, c.Type)
	}
	assert.Equal(t, LandmarkHeader, trace.Candidates[0].Landmark)
	assert.Positive(t, trace.Candidates[1].Features.WordCount)
}

// TestSegment_StructuralFallbackAnchors verifies blocks carved by structural
// boundaries fall back to positional path anchors.
func TestSegment_StructuralFallbackAnchors(t *testing.T) {
	doc := mustDoc(t, `<html><body><main>
		<h2>Title A</h2>
		<p>Paragraph under title A with enough text to keep.</p>
		<h2>Title B</h2>
		<p>Paragraph under title B with enough text to keep.</p>
	</main></body></html>`, "https://example.com")

	sections := Segment(doc, nil)

	require.Len(t, sections, 2)
	assert.Equal(t, "Title A", sections[0].Heading)
	assert.Equal(t, "Title B", sections[1].Heading)
	assert.Equal(t, DOMAnchor{Strategy: "path", Value: "section-0"}, sections[0].DOMAnchor)
	assert.Equal(t, DOMAnchor{Strategy: "path", Value: "section-1"}, sections[1].DOMAnchor)
}
