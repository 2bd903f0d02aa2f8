package pagespec

// Classification is the result of running the rule table over one block.
type Classification struct {
	Type       SectionType
	Confidence float64
	Note       string
}

// Classify maps a feature vector to a section type via the ordered rule
// table. First match wins and the table always terminates in unknown, so
// classification never fails. The ordering is load-bearing: a long-text block
// that also repeats siblings is richText, not grid, because the word-count
// rule comes first.
func Classify(f BlockFeatures, landmark LandmarkKind, rs *Ruleset) Classification {
	// 1. Explicit landmark kind.
	switch landmark {
	case LandmarkHeader:
		return Classification{Type: SectionHeader, Confidence: 1.0}
	case LandmarkFooter:
		return Classification{Type: SectionFooter, Confidence: 1.0}
	}

	// 2. Landmark-shaped tags and roles outside detected landmarks.
	if f.Tag == "header" || f.Role == "banner" {
		return Classification{Type: SectionHeader, Confidence: 0.9}
	}
	if f.Tag == "footer" || f.Role == "contentinfo" {
		return Classification{Type: SectionFooter, Confidence: 0.9}
	}

	// 3. Forms dominate everything below: a block with a form is a contact
	// form regardless of its other content.
	if f.HasForm {
		if rs.contactRe.MatchString(f.Classes) {
			return Classification{Type: SectionContactForm, Confidence: 0.9}
		}
		return Classification{Type: SectionContactForm, Confidence: 0.8}
	}

	// 4-6. Class keyword matches.
	if rs.faqRe.MatchString(f.Classes) {
		return Classification{Type: SectionFAQ, Confidence: 0.9}
	}
	if rs.pricingRe.MatchString(f.Classes) {
		return Classification{Type: SectionPricing, Confidence: 0.9}
	}
	if rs.testimonialRe.MatchString(f.Classes) {
		return Classification{Type: SectionTestimonial, Confidence: 0.9}
	}

	// 7. Long prose before structure: richText deliberately precedes grid.
	if f.WordCount > rs.RichTextWordCount {
		return Classification{Type: SectionRichText, Confidence: 0.8}
	}

	// 8. Repeated sibling structures.
	if f.RepeatedSiblings {
		return Classification{
			Type:       SectionGrid,
			Confidence: 0.75,
			Note:       "Detected repeated sibling structures",
		}
	}

	// 9. Hero: heading plus CTA with short text and a hero-ish class.
	if f.HeadingCount > 0 && f.CTALikeCount > 0 && f.TextDensity < rs.HeroMaxDensity &&
		rs.heroRe.MatchString(f.Classes) {
		return Classification{Type: SectionHero, Confidence: 0.85}
	}

	// 10. CTA cluster.
	if f.CTALikeCount >= 2 && f.TextDensity < rs.CTAMaxDensity {
		return Classification{Type: SectionCTA, Confidence: 0.8}
	}

	// 11. Gallery: media-heavy, text-light.
	if f.MediaCount >= rs.GalleryMinMedia && f.WordCount < rs.GalleryMaxWords {
		return Classification{Type: SectionGallery, Confidence: 0.8}
	}

	// 12. Heading-dense list.
	if f.HeadingCount >= rs.ListMinHeadings {
		return Classification{Type: SectionList, Confidence: 0.7}
	}

	// 13. Fallback.
	return Classification{
		Type:       SectionUnknown,
		Confidence: 0.5,
		Note:       "Could not confidently classify section type",
	}
}
