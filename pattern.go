package pagespec

import (
	"fmt"
	"sort"
)

// SectionSignature returns the coarse bucketed signature used for cross-page
// matching. Two sections match iff their signature strings are byte-equal.
func SectionSignature(sec Section) string {
	hasHeading := 0
	if sec.Heading != "" {
		hasHeading = 1
	}
	return fmt.Sprintf("type:%s|h:%d|txt:%s|med:%s|cta:%s",
		sec.Type,
		hasHeading,
		countBucket(len(sec.TextBlocks), 5),
		countBucket(len(sec.Media), 5),
		countBucket(len(sec.CTAs), 3),
	)
}

// countBucket maps an item count onto 0/1/few/many, where manyAt is the
// threshold at which "few" becomes "many".
func countBucket(n, manyAt int) string {
	switch {
	case n == 0:
		return "0"
	case n == 1:
		return "1"
	case n >= manyAt:
		return "many"
	default:
		return "few"
	}
}

// PatternStats summarizes a pattern group. Count is the group size; the other
// fields are copied from the group's first member.
type PatternStats struct {
	Count        int  `json:"count"`
	HeadingCount int  `json:"headingCount"`
	TextCount    int  `json:"textCount"`
	MediaCount   int  `json:"mediaCount"`
	CTACount     int  `json:"ctaCount"`
	HasForm      bool `json:"hasForm"`
}

// Pattern is a cluster of two or more sections, possibly from different
// pages, sharing a section signature. Patterns are never mutated after
// creation; Examples is a prefix of the matching group, capped at five.
type Pattern struct {
	PatternID string       `json:"patternId"`
	Type      SectionType  `json:"type"`
	Signature string       `json:"signature"`
	Examples  []string     `json:"examples"`
	Stats     PatternStats `json:"stats"`
}

const maxPatternExamples = 5

// ClusterPatterns groups the sections of all pages by exact signature and
// returns a Pattern for every signature that recurs at least twice. Page
// slugs are visited in sorted order so discovery order, and with it pattern
// ids, is reproducible. The result is sorted by group size descending; ties
// keep discovery order.
func ClusterPatterns(pages map[string][]Section) []Pattern {
	slugs := make([]string, 0, len(pages))
	for slug := range pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	type group struct {
		typ     SectionType
		members []string
		first   Section
	}
	groups := map[string]*group{}
	var discovery []string

	for _, slug := range slugs {
		for _, sec := range pages[slug] {
			sig := SectionSignature(sec)
			g, ok := groups[sig]
			if !ok {
				g = &group{typ: sec.Type, first: sec}
				groups[sig] = g
				discovery = append(discovery, sig)
			}
			g.members = append(g.members, fmt.Sprintf("%s#%s", slug, sec.ID))
		}
	}

	patterns := []Pattern{}
	sequence := 0
	for _, sig := range discovery {
		g := groups[sig]
		if len(g.members) < 2 {
			continue
		}
		sequence++

		examples := g.members
		if len(examples) > maxPatternExamples {
			examples = examples[:maxPatternExamples]
		}

		headingCount := 0
		if g.first.Heading != "" {
			headingCount = 1
		}

		patterns = append(patterns, Pattern{
			PatternID: fmt.Sprintf("pat_%s_%03d", g.typ, sequence),
			Type:      g.typ,
			Signature: sig,
			Examples:  append([]string(nil), examples...),
			Stats: PatternStats{
				Count:        len(g.members),
				HeadingCount: headingCount,
				TextCount:    len(g.first.TextBlocks),
				MediaCount:   len(g.first.Media),
				CTACount:     len(g.first.CTAs),
				HasForm:      len(g.first.Forms) > 0,
			},
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Stats.Count > patterns[j].Stats.Count
	})

	return patterns
}
