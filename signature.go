package pagespec

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

// TextBucket coarsely classifies the amount of text under a node.
type TextBucket string

const (
	BucketEmpty  TextBucket = "empty"  // 0 chars
	BucketShort  TextBucket = "short"  // 1-49 chars
	BucketMedium TextBucket = "medium" // 50-199 chars
	BucketLong   TextBucket = "long"   // >=200 chars
)

// NodeSignature is a structural fingerprint of a DOM subtree. It drives
// sibling-repetition (grid) detection within a page and, hashed, change
// detection across regenerations. The tag histogram counts the node's own
// tag plus every element descendant; script/style/noscript subtrees are
// ignored.
type NodeSignature struct {
	TagHistogram map[string]int `json:"tags"`
	HasMedia     bool           `json:"hasMedia"`
	LinkCount    int            `json:"linkCount"`
	TextBucket   TextBucket     `json:"textBucket"`
	HeadingCount int            `json:"headingCount"`
}

// signatureOf computes the NodeSignature for one element node.
func signatureOf(n *html.Node) NodeSignature {
	sig := NodeSignature{TagHistogram: map[string]int{}}
	textLen := 0

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.ElementNode:
			tag := node.Data
			switch tag {
			case "script", "style", "noscript":
				return
			}
			sig.TagHistogram[tag]++
			switch tag {
			case "img", "video":
				sig.HasMedia = true
			case "a":
				if hasAttr(node, "href") {
					sig.LinkCount++
				}
			case "h1", "h2", "h3", "h4", "h5", "h6":
				sig.HeadingCount++
			}
		case html.TextNode:
			textLen += len(strings.TrimSpace(node.Data))
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	sig.TextBucket = bucketTextLength(textLen)
	return sig
}

// bucketTextLength maps a character count onto its TextBucket.
func bucketTextLength(chars int) TextBucket {
	switch {
	case chars == 0:
		return BucketEmpty
	case chars < 50:
		return BucketShort
	case chars < 200:
		return BucketMedium
	default:
		return BucketLong
	}
}

// signaturesMatch reports whether two sibling fingerprints are structurally
// similar: same text bucket and media flag, link counts within 2, heading
// counts within 1, and at least 70% of the union of tag keys within +-1.
func signaturesMatch(a, b NodeSignature) bool {
	if a.TextBucket != b.TextBucket || a.HasMedia != b.HasMedia {
		return false
	}
	if absInt(a.LinkCount-b.LinkCount) > 2 {
		return false
	}
	if absInt(a.HeadingCount-b.HeadingCount) > 1 {
		return false
	}

	union := map[string]struct{}{}
	for tag := range a.TagHistogram {
		union[tag] = struct{}{}
	}
	for tag := range b.TagHistogram {
		union[tag] = struct{}{}
	}
	if len(union) == 0 {
		return true
	}

	within := 0
	for tag := range union {
		if absInt(a.TagHistogram[tag]-b.TagHistogram[tag]) <= 1 {
			within++
		}
	}
	return float64(within)/float64(len(union)) >= 0.7
}

// detectRepeatedSiblings groups sibling nodes by signature similarity
// (first-fit against each existing group's first member) and reports whether
// the largest group reaches minGroup members.
func detectRepeatedSiblings(siblings []*html.Node, minGroup int) bool {
	if len(siblings) < minGroup {
		return false
	}

	sigs := make([]NodeSignature, len(siblings))
	for i, n := range siblings {
		sigs[i] = signatureOf(n)
	}

	var groups [][]int
	for i := range sigs {
		placed := false
		for gi := range groups {
			if signaturesMatch(sigs[groups[gi][0]], sigs[i]) {
				groups[gi] = append(groups[gi], i)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []int{i})
		}
	}

	largest := 0
	for _, g := range groups {
		if len(g) > largest {
			largest = len(g)
		}
	}
	return largest >= minGroup
}

// structuralHash returns the first 16 hex characters of the MD5 of the node's
// signature JSON. Map keys serialize in sorted order, so the hash is stable
// across runs whenever the DOM shape is unchanged.
func structuralHash(n *html.Node) string {
	data, err := json.Marshal(signatureOf(n))
	if err != nil {
		return ""
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])[:16]
}

// hasAttr reports whether a node carries the named attribute.
func hasAttr(n *html.Node, name string) bool {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return true
		}
	}
	return false
}

// elementChildren returns the element children of a node.
func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// elementNodes filters a node list down to element nodes.
func elementNodes(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
	}
	return out
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
