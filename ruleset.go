package pagespec

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Ruleset bundles every tunable the classifier, content extractor, and anchor
// generator consult: keyword regexes, volatility patterns, and numeric
// thresholds. A Ruleset is immutable once compiled, so one value can be shared
// across concurrent page segmentations.
type Ruleset struct {
	// CTAKeywords matches the visible text of CTA-like elements.
	CTAKeywords string `yaml:"ctaKeywords"`

	// Class keyword patterns consulted by the classifier rule table.
	ContactClasses     string `yaml:"contactClasses"`
	FAQClasses         string `yaml:"faqClasses"`
	PricingClasses     string `yaml:"pricingClasses"`
	TestimonialClasses string `yaml:"testimonialClasses"`
	HeroClasses        string `yaml:"heroClasses"`

	// VolatileIdent matches site-builder-generated ids and classes that must
	// never be trusted as anchors. HexIdent marks long hex strings, which are
	// treated the same way. VolatileDataAttrs matches data-* attribute names
	// that carry framework state rather than stable hooks.
	VolatileIdent     string `yaml:"volatileIdent"`
	HexIdent          string `yaml:"hexIdent"`
	VolatileDataAttrs string `yaml:"volatileDataAttrs"`

	// Classifier thresholds.
	RichTextWordCount int     `yaml:"richTextWordCount"`
	MinGridSiblings   int     `yaml:"minGridSiblings"`
	HeroMaxDensity    float64 `yaml:"heroMaxDensity"`
	CTAMaxDensity     float64 `yaml:"ctaMaxDensity"`
	GalleryMinMedia   int     `yaml:"galleryMinMedia"`
	GalleryMaxWords   int     `yaml:"galleryMaxWords"`
	ListMinHeadings   int     `yaml:"listMinHeadings"`

	// Content extraction limits.
	MaxTextBlocks   int `yaml:"maxTextBlocks"`
	MinTextBlockLen int `yaml:"minTextBlockLen"`

	// Style hint bounds. A max-width below ContainedMaxWidth marks a
	// contained layout.
	ContainedMaxWidth float64 `yaml:"containedMaxWidth"`

	ctaRe          *regexp.Regexp
	contactRe      *regexp.Regexp
	faqRe          *regexp.Regexp
	pricingRe      *regexp.Regexp
	testimonialRe  *regexp.Regexp
	heroRe         *regexp.Regexp
	volatileRe     *regexp.Regexp
	hexRe          *regexp.Regexp
	volatileDataRe *regexp.Regexp
}

// DefaultRuleset returns the built-in rule table configuration.
func DefaultRuleset() *Ruleset {
	rs := &Ruleset{
		CTAKeywords:        `(?i)\b(buy|sign|get|start|join|subscribe|learn|contact|download|try|demo|request|book)\b`,
		ContactClasses:     `(?i)(contact|reach|touch)`,
		FAQClasses:         `(?i)(faq|question|accordion)`,
		PricingClasses:     `(?i)(pricing|plan|package)`,
		TestimonialClasses: `(?i)(testimonial|review|quote)`,
		HeroClasses:        `(?i)(hero|banner|jumbotron)`,
		VolatileIdent:      `^(comp|wixui|style__|uniqueId|_)[A-Za-z0-9_-]+$`,
		HexIdent:           `^[0-9a-fA-F]{8,}$`,
		VolatileDataAttrs:  `^data-(hook|aid|state|reactid|reactroot)`,
		RichTextWordCount:  100,
		MinGridSiblings:    3,
		HeroMaxDensity:     100,
		CTAMaxDensity:      50,
		GalleryMinMedia:    3,
		GalleryMaxWords:    100,
		ListMinHeadings:    3,
		MaxTextBlocks:      10,
		MinTextBlockLen:    10,
		ContainedMaxWidth:  1400,
	}

	// The built-in patterns are constants; compilation cannot fail.
	if err := rs.compile(); err != nil {
		panic(fmt.Sprintf("default ruleset failed to compile: %v", err))
	}
	return rs
}

// LoadRuleset loads YAML overrides on top of the default ruleset. A missing
// file is not an error: the defaults are returned as-is.
func LoadRuleset(path string) (*Ruleset, error) {
	rs := DefaultRuleset()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return rs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset file: %w", err)
	}

	if err := yaml.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("failed to parse ruleset file: %w", err)
	}

	if err := rs.compile(); err != nil {
		return nil, err
	}
	return rs, nil
}

// compile builds the regexp matchers from the pattern strings.
func (rs *Ruleset) compile() error {
	patterns := []struct {
		name   string
		source string
		target **regexp.Regexp
	}{
		{"ctaKeywords", rs.CTAKeywords, &rs.ctaRe},
		{"contactClasses", rs.ContactClasses, &rs.contactRe},
		{"faqClasses", rs.FAQClasses, &rs.faqRe},
		{"pricingClasses", rs.PricingClasses, &rs.pricingRe},
		{"testimonialClasses", rs.TestimonialClasses, &rs.testimonialRe},
		{"heroClasses", rs.HeroClasses, &rs.heroRe},
		{"volatileIdent", rs.VolatileIdent, &rs.volatileRe},
		{"hexIdent", rs.HexIdent, &rs.hexRe},
		{"volatileDataAttrs", rs.VolatileDataAttrs, &rs.volatileDataRe},
	}

	for _, p := range patterns {
		re, err := regexp.Compile(p.source)
		if err != nil {
			return fmt.Errorf("invalid %s pattern: %w", p.name, err)
		}
		*p.target = re
	}
	return nil
}

// isVolatile reports whether an id or class looks site-builder-generated and
// therefore unstable across regenerations.
func (rs *Ruleset) isVolatile(ident string) bool {
	return rs.volatileRe.MatchString(ident) || rs.hexRe.MatchString(ident)
}
