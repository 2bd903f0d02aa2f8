package pagespec

import (
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstID(s *goquery.Selection) string {
	if s == nil {
		return ""
	}
	return s.AttrOr("id", "")
}

// TestDetectLandmarks_Semantic verifies header/footer/main detection from
// semantic tags.
func TestDetectLandmarks_Semantic(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<header id="h"></header>
		<main id="m"><p>body</p></main>
		<footer id="f"></footer>
	</body></html>`, "https://example.com")

	lm := DetectLandmarks(doc)

	require.NotNil(t, lm.Header)
	require.NotNil(t, lm.Footer)
	require.NotNil(t, lm.Main)
	assert.Equal(t, "h", firstID(lm.Header))
	assert.Equal(t, "f", firstID(lm.Footer))
	assert.Equal(t, "m", firstID(lm.Main))
}

// TestDetectLandmarks_RolePreference verifies [role=banner] wins over a later
// nav when no header tag exists.
func TestDetectLandmarks_RolePreference(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<nav id="n"><a href="/">Home</a></nav>
		<div role="banner" id="b">Brand</div>
		<div id="m">main content</div>
	</body></html>`, "https://example.com")

	lm := DetectLandmarks(doc)

	require.NotNil(t, lm.Header)
	assert.Equal(t, "b", firstID(lm.Header))
}

// TestDetectLandmarks_NavFallback verifies nav serves as the header landmark
// when nothing better exists.
func TestDetectLandmarks_NavFallback(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<nav id="n"><a href="/">Home</a></nav>
		<div id="m">main content</div>
	</body></html>`, "https://example.com")

	lm := DetectLandmarks(doc)

	require.NotNil(t, lm.Header)
	assert.Equal(t, "n", firstID(lm.Header))
}

// TestDetectLandmarks_MainFallback verifies that without a semantic main, the
// body child with the most text is chosen, skipping header and footer.
func TestDetectLandmarks_MainFallback(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<header id="h">Site name plus a very long navigation description</header>
		<div id="short">hi</div>
		<div id="long">this block has by far the longest run of body text on the page</div>
		<footer id="f">short footer</footer>
	</body></html>`, "https://example.com")

	lm := DetectLandmarks(doc)

	require.NotNil(t, lm.Main)
	assert.Equal(t, "long", firstID(lm.Main))
}

// TestDetectLandmarks_AbsenceIsValid verifies missing landmarks stay nil
// while main falls back to the body.
func TestDetectLandmarks_AbsenceIsValid(t *testing.T) {
	doc := mustDoc(t, "<html><body></body></html>", "https://example.com")

	lm := DetectLandmarks(doc)

	assert.Nil(t, lm.Header)
	assert.Nil(t, lm.Footer)
	require.NotNil(t, lm.Main)
	assert.Equal(t, "body", goquery.NodeName(lm.Main))
}
