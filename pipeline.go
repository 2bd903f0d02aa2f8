package pagespec

import "fmt"

// Trace exports the intermediate pipeline state (block candidates and their
// feature vectors) for debug artifact writers. It is a pure export: nothing
// in the pipeline reads it back.
type Trace struct {
	Candidates []CandidateTrace
}

// CandidateTrace captures one kept block candidate after feature extraction
// and classification.
type CandidateTrace struct {
	Index    int
	Source   CandidateSource
	Tag      string
	Landmark LandmarkKind
	Features BlockFeatures
	Type     SectionType
}

// Segment runs the full segmentation pipeline over one document and returns
// its ordered sections. A nil ruleset selects the defaults. The pipeline is a
// pure function of the document: the same HTML and base URL always produce
// byte-identical sections. An empty result is a valid outcome, not an error.
func Segment(doc *Document, rs *Ruleset) []Section {
	sections, _ := segment(doc, rs, false)
	return sections
}

// SegmentWithTrace runs Segment and additionally returns the intermediate
// pipeline state for diagnostics.
func SegmentWithTrace(doc *Document, rs *Ruleset) ([]Section, *Trace) {
	return segment(doc, rs, true)
}

// orderedBlock pairs a block candidate with the landmark kind it came from
// ("" for body candidates).
type orderedBlock struct {
	candidate BlockCandidate
	landmark  LandmarkKind
}

func segment(doc *Document, rs *Ruleset, withTrace bool) ([]Section, *Trace) {
	if rs == nil {
		rs = DefaultRuleset()
	}

	landmarks := DetectLandmarks(doc)
	blocks := orderBlocks(doc, landmarks)

	sections := make([]Section, 0, len(blocks))
	var trace *Trace
	if withTrace {
		trace = &Trace{Candidates: make([]CandidateTrace, 0, len(blocks))}
	}

	for i, b := range blocks {
		features := ExtractFeatures(b.candidate, rs)
		cls := Classify(features, b.landmark, rs)
		section := buildSection(doc, b, cls, i, rs)
		sections = append(sections, section)

		if trace != nil {
			trace.Candidates = append(trace.Candidates, CandidateTrace{
				Index:    i,
				Source:   b.candidate.Source,
				Tag:      features.Tag,
				Landmark: b.landmark,
				Features: features,
				Type:     cls.Type,
			})
		}
	}

	return sections, trace
}

// orderBlocks assembles the final document-order block list: header landmark,
// then the main region's candidates, then the footer landmark. Landmark
// blocks pass through the same empty-content filter as body candidates, and
// body candidates that turn out to be the detected header or footer node are
// skipped rather than emitted twice.
func orderBlocks(doc *Document, landmarks Landmarks) []orderedBlock {
	var blocks []orderedBlock

	if landmarks.Header != nil && !isEmptySubtree(landmarks.Header) {
		blocks = append(blocks, orderedBlock{
			candidate: BlockCandidate{Selection: landmarks.Header, Source: SourceSemantic},
			landmark:  LandmarkHeader,
		})
	}

	for _, c := range GenerateCandidates(landmarks.Main) {
		if isSameNode(c.Selection, landmarks.Header) || isSameNode(c.Selection, landmarks.Footer) {
			continue
		}
		blocks = append(blocks, orderedBlock{candidate: c})
	}

	if landmarks.Footer != nil && !isEmptySubtree(landmarks.Footer) {
		blocks = append(blocks, orderedBlock{
			candidate: BlockCandidate{Selection: landmarks.Footer, Source: SourceSemantic},
			landmark:  LandmarkFooter,
		})
	}

	return blocks
}

// buildSection assembles one immutable Section from a classified block.
func buildSection(doc *Document, b orderedBlock, cls Classification, index int, rs *Ruleset) Section {
	sel := b.candidate.Selection
	excludeNav := b.landmark == LandmarkHeader || b.landmark == LandmarkFooter

	section := Section{
		ID:         fmt.Sprintf("sec_%03d", index+1),
		Type:       cls.Type,
		Confidence: cls.Confidence,
		Heading:    extractHeading(sel),
		TextBlocks: extractTextBlocks(sel, rs),
		CTAs:       extractCTAs(sel, excludeNav),
		Media:      extractMedia(sel),
		Forms:      extractForms(sel),
		DOMAnchor:  GenerateAnchor(b.candidate, b.landmark, index, rs),
		Links:      countLinks(sel, doc.baseURL),
		StyleHints: extractStyleHints(sel, rs),
		Notes:      []string{},
	}

	if len(sel.Nodes) > 0 {
		section.StructuralHash = structuralHash(sel.Nodes[0])
	}
	if cls.Note != "" {
		section.Notes = append(section.Notes, cls.Note)
	}

	return section
}
