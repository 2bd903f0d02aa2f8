package pagespec

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	headingSelector = "h1, h2, h3, h4, h5, h6"
	ctaSelector     = `a[href], button, [role=button], [data-testid*=button]`
	navSelector     = "nav, [role=navigation]"
)

// extractHeading returns the first non-empty heading text in document order.
// When the block has no heading element, the first element styled with an
// inline font-size above 20px and under 100 chars of text stands in.
func extractHeading(sel *goquery.Selection) string {
	heading := ""
	findWithSelf(sel, headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if t := nodeText(h); t != "" {
			heading = t
			return false
		}
		return true
	})
	if heading != "" {
		return heading
	}

	findWithSelf(sel, "[style*=font-size]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		px, ok := pixelValue(styleValue(s, "font-size"))
		if !ok || px <= 20 {
			return true
		}
		if t := nodeText(s); t != "" && len(t) < 100 {
			heading = t
			return false
		}
		return true
	})
	return heading
}

// extractTextBlocks collects the normalized text of paragraph-like elements,
// skipping fragments at or below the minimum length and capping the result.
func extractTextBlocks(sel *goquery.Selection, rs *Ruleset) []string {
	blocks := []string{}
	findWithSelf(sel, "p, li, blockquote, div.text").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if len(blocks) >= rs.MaxTextBlocks {
			return false
		}
		if t := nodeText(s); len(t) > rs.MinTextBlockLen {
			blocks = append(blocks, t)
		}
		return true
	})
	return blocks
}

// extractCTAs collects call-to-action links and buttons with visible text
// under 100 chars. When excludeNav is set (header and footer sections),
// elements inside a nav ancestor are skipped.
func extractCTAs(sel *goquery.Selection, excludeNav bool) []CTA {
	ctas := []CTA{}
	findWithSelf(sel, ctaSelector).Each(func(_ int, s *goquery.Selection) {
		if excludeNav && s.Closest(navSelector).Length() > 0 {
			return
		}
		text := nodeText(s)
		if text == "" || len(text) >= 100 {
			return
		}
		cta := CTA{Text: text}
		if href, ok := s.Attr("href"); ok {
			cta.Href = href
		}
		ctas = append(ctas, cta)
	})
	return ctas
}

// extractMedia collects image and video references. A video's source is its
// own src attribute or the first source child that has one.
func extractMedia(sel *goquery.Selection) []Media {
	media := []Media{}

	findWithSelf(sel, "img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			return
		}
		media = append(media, Media{Type: "image", Src: src, Alt: s.AttrOr("alt", "")})
	})

	findWithSelf(sel, "video").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if src == "" {
			src = s.Find("source[src]").First().AttrOr("src", "")
		}
		if src == "" {
			return
		}
		media = append(media, Media{Type: "video", Src: src})
	})

	return media
}

// extractForms collects every form in the block with its fields. Submit and
// button inputs become the form's submit text rather than fields.
func extractForms(sel *goquery.Selection) []Form {
	forms := []Form{}
	findWithSelf(sel, "form").Each(func(_ int, formSel *goquery.Selection) {
		form := Form{Fields: []FormField{}}
		if name, ok := formSel.Attr("name"); ok && name != "" {
			form.Name = name
		}
		form.SubmitText = submitText(formSel)

		formSel.Find("input, textarea, select").Each(func(_ int, field *goquery.Selection) {
			fieldType := fieldTypeOf(field)
			if fieldType == "submit" || fieldType == "button" {
				return
			}
			form.Fields = append(form.Fields, FormField{
				Label:    fieldLabel(formSel, field),
				Type:     fieldType,
				Required: isRequired(field),
			})
		})

		forms = append(forms, form)
	})
	return forms
}

// submitText returns the visible text of the form's submit control.
func submitText(formSel *goquery.Selection) string {
	submit := formSel.Find(`button[type=submit], input[type=submit]`).First()
	if submit.Length() == 0 {
		submit = formSel.Find("button").First()
	}
	if submit.Length() == 0 {
		return ""
	}
	if t := nodeText(submit); t != "" {
		return t
	}
	return strings.TrimSpace(submit.AttrOr("value", ""))
}

// fieldTypeOf derives the field type: the input's type attribute (defaulting
// to text), or the element name for textarea and select.
func fieldTypeOf(field *goquery.Selection) string {
	switch goquery.NodeName(field) {
	case "textarea":
		return "textarea"
	case "select":
		return "select"
	default:
		if t, ok := field.Attr("type"); ok && t != "" {
			return strings.ToLower(t)
		}
		return "text"
	}
}

// fieldLabel resolves a field's label: label[for=id] text, then placeholder
// or aria-label, then the enclosing parent's text when it stays short.
func fieldLabel(formSel, field *goquery.Selection) string {
	if id, ok := field.Attr("id"); ok && id != "" {
		label := formSel.Find(fmt.Sprintf("label[for=%q]", id)).First()
		if t := nodeText(label); t != "" {
			return t
		}
	}
	if placeholder := strings.TrimSpace(field.AttrOr("placeholder", "")); placeholder != "" {
		return placeholder
	}
	if aria := strings.TrimSpace(field.AttrOr("aria-label", "")); aria != "" {
		return aria
	}
	if parent := nodeText(field.Parent()); parent != "" && len(parent) < 50 {
		return parent
	}
	return ""
}

// isRequired reports whether a field is marked required via the boolean
// attribute or aria-required.
func isRequired(field *goquery.Selection) bool {
	if _, ok := field.Attr("required"); ok {
		return true
	}
	return field.AttrOr("aria-required", "") == "true"
}

// countLinks classifies anchor hrefs as internal or external by same-origin
// comparison against the page's base URL. Fragment, javascript, mailto, and
// tel links are ignored. Returns nil when the block has no countable links.
func countLinks(sel *goquery.Selection, base *url.URL) *LinkCounts {
	counts := LinkCounts{}
	findWithSelf(sel, "a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		lower := strings.ToLower(href)
		if strings.HasPrefix(lower, "javascript:") ||
			strings.HasPrefix(lower, "mailto:") ||
			strings.HasPrefix(lower, "tel:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		if base.ResolveReference(ref).Host == base.Host {
			counts.Internal++
		} else {
			counts.External++
		}
	})

	if counts.Internal == 0 && counts.External == 0 {
		return nil
	}
	return &counts
}

// extractStyleHints reads the block's inline background color and layout
// signals. Returns nil when no hint applies.
func extractStyleHints(sel *goquery.Selection, rs *Ruleset) *StyleHints {
	anchor := sel.First()
	hints := StyleHints{}

	if bg := backgroundColor(anchor); bg != "" {
		hints.BackgroundColor = bg
	}

	if w := styleValue(anchor, "width"); w == "100%" || w == "100vw" {
		hints.Layout = "fullWidth"
	} else if mw, ok := pixelValue(styleValue(anchor, "max-width")); ok && mw > 0 && mw < rs.ContainedMaxWidth {
		hints.Layout = "contained"
	}

	if hints == (StyleHints{}) {
		return nil
	}
	return &hints
}
