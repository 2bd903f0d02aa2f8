package pagespec

// SectionType identifies the kind of page region a section represents. The
// classifier emits thirteen of these; Features is part of the persisted
// vocabulary for downstream consumers that post-process grids but is never
// emitted by the rule table.
type SectionType string

const (
	SectionHeader      SectionType = "header"
	SectionFooter      SectionType = "footer"
	SectionHero        SectionType = "hero"
	SectionCTA         SectionType = "cta"
	SectionGallery     SectionType = "gallery"
	SectionPricing     SectionType = "pricing"
	SectionTestimonial SectionType = "testimonial"
	SectionFAQ         SectionType = "faq"
	SectionContactForm SectionType = "contactForm"
	SectionRichText    SectionType = "richText"
	SectionGrid        SectionType = "grid"
	SectionList        SectionType = "list"
	SectionFeatures    SectionType = "features"
	SectionUnknown     SectionType = "unknown"
)

// CTA is a call-to-action link or button extracted from a section.
type CTA struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Media is an image or video reference extracted from a section.
type Media struct {
	Type       string `json:"type"` // "image" or "video"
	Src        string `json:"src,omitempty"`
	Alt        string `json:"alt,omitempty"`
	LocalAsset string `json:"localAsset,omitempty"`
}

// FormField describes one input of an extracted form. Submit and button
// inputs are excluded from fields.
type FormField struct {
	Label    string `json:"label,omitempty"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Form describes a form found inside a section.
type Form struct {
	Name       string      `json:"name,omitempty"`
	SubmitText string      `json:"submitText,omitempty"`
	Fields     []FormField `json:"fields"`
}

// DOMAnchor is a serialized, re-locatable reference to the section's
// originating DOM node. Strategy is "selector" when the value is a CSS
// selector and "path" when it is a positional fallback.
type DOMAnchor struct {
	Strategy string `json:"strategy"`
	Value    string `json:"value"`
}

// LinkCounts splits a section's anchors into same-origin and external links.
type LinkCounts struct {
	Internal int `json:"internal"`
	External int `json:"external"`
}

// StyleHints carries the few computed-style signals the theme generator
// consumes. Layout is "fullWidth" or "contained" when determinable.
type StyleHints struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	Layout          string `json:"layout,omitempty"`
}

// Section is the unit of engine output: one typed, content-extracted region
// of a page. Sections are never mutated after creation; IDs are contiguous
// starting at sec_001 and strictly increasing in final document order
// (header, then body blocks, then footer).
type Section struct {
	ID             string      `json:"id"`
	Type           SectionType `json:"type"`
	Confidence     float64     `json:"confidence"`
	Heading        string      `json:"heading,omitempty"`
	TextBlocks     []string    `json:"textBlocks"`
	CTAs           []CTA       `json:"ctas"`
	Media          []Media     `json:"media"`
	Forms          []Form      `json:"forms"`
	DOMAnchor      DOMAnchor   `json:"domAnchor"`
	Links          *LinkCounts `json:"links,omitempty"`
	StyleHints     *StyleHints `json:"styleHints,omitempty"`
	StructuralHash string      `json:"structuralHash,omitempty"`
	Notes          []string    `json:"notes"`
}
