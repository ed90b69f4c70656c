package document

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/aohus/political-metrics/internal/platform/metrics"
)

var (
	proposalDatePattern   = regexp.MustCompile(`발의연월일\s*:\s*([0-9]{4}\.\s*[0-9]{1,2}\.\s*[0-9]{1,2}\.?)`)
	submissionDatePattern = regexp.MustCompile(`제안연월일\s*:\s*([0-9]{4}\.\s*[0-9]{1,2}\.\s*[0-9]{1,2}\.?)`)
	alternativeMarker     = regexp.MustCompile(`\(대안\)`)

	// The numbered history subsection of an alternative bill, which lists the
	// bills it folded in.
	historyHeader   = regexp.MustCompile(`1\.\s*대안의\s*제안경위`)
	historyBoundary = regexp.MustCompile(`2\.\s*대안의\s*제안이유`)

	// Bill numbers inside the history subsection: the explicit 제N호 form and
	// bare 4 to 8 digit runs.
	billNoMarked = regexp.MustCompile(`제([1-9][0-9]{3,7})호`)
	billNoBare   = regexp.MustCompile(`\b([1-9][0-9]{3,7})\b`)
)

// Section headers and the markers that terminate each section. A section's
// text runs from the end of its header to the earliest following boundary
// marker, or the end of the document.
var (
	reasonHeader     = regexp.MustCompile(`제안이유`)
	contentHeader    = regexp.MustCompile(`주요내용`)
	combinedHeader   = regexp.MustCompile(`제안이유\s*및\s*주요내용`)
	referenceHeader  = regexp.MustCompile(`참고사항`)
	statuteHeader    = regexp.MustCompile(`법률\s*제\s*[0-9]*\s*호`)
	addendumHeader   = regexp.MustCompile(`부\s*칙`)
	comparisonHeader = regexp.MustCompile(`신[·•․ㆍ]\s*구조문대비표`)

	statuteBoundary = regexp.MustCompile(`법률\s*제`)
)

type sectionRule struct {
	name          string
	header        *regexp.Regexp
	boundaries    []*regexp.Regexp
	includeHeader bool
	collapseWraps bool
}

// sectionRules is evaluated in order; iteration order is part of the output
// contract since later post-processing drops the separate reason and content
// sections when the combined one matched.
var sectionRules = []sectionRule{
	{
		name:          SectionReason,
		header:        reasonHeader,
		boundaries:    []*regexp.Regexp{contentHeader, statuteBoundary, referenceHeader},
		collapseWraps: true,
	},
	{
		name:          SectionContent,
		header:        contentHeader,
		boundaries:    []*regexp.Regexp{statuteBoundary, comparisonHeader, referenceHeader},
		collapseWraps: true,
	},
	{
		name:          SectionReasonAndContent,
		header:        combinedHeader,
		boundaries:    []*regexp.Regexp{statuteBoundary, referenceHeader},
		collapseWraps: true,
	},
	{
		name:       SectionReference,
		header:     referenceHeader,
		boundaries: []*regexp.Regexp{statuteBoundary},
	},
	{
		name:       SectionStatuteText,
		header:     statuteHeader,
		boundaries: []*regexp.Regexp{comparisonHeader, addendumHeader},
	},
	{
		name:       SectionAddendum,
		header:     addendumHeader,
		boundaries: []*regexp.Regexp{comparisonHeader},
	},
	{
		name:          SectionComparisonTable,
		header:        comparisonHeader,
		boundaries:    []*regexp.Regexp{addendumHeader},
		includeHeader: true,
	},
}

// Extractor parses bill-proposal documents. Stateless and safe for
// concurrent use; an external batch driver may run many documents at once.
type Extractor struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option customizes an extractor.
type Option func(*Extractor)

// WithMetrics counts parsed documents on the given metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Extractor) {
		e.metrics = m
	}
}

// NewExtractor builds a document extractor.
func NewExtractor(logger *slog.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Extractor{logger: logger}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Parse extracts the structured info for one document. The title is the
// document's file stem, which starts with the bill number; the text is the
// already-converted plain text.
func (e *Extractor) Parse(title, text string) Info {
	info := Info{
		Title:    title,
		BillNo:   billNoFromTitle(title),
		FullText: text,
		Sections: extractSections(text),
	}
	if m := proposalDatePattern.FindStringSubmatch(text); m != nil {
		info.ProposalDate = strings.TrimSpace(m[1])
	}
	if m := submissionDatePattern.FindStringSubmatch(text); m != nil {
		info.SubmissionDate = strings.TrimSpace(m[1])
	}
	if alternativeMarker.MatchString(title) {
		info.IsAlternative = true
		info.SupersededBillNos = supersededBillNos(text)
	}
	if e.metrics != nil {
		e.metrics.DocumentsParsed.Inc()
	}
	return info
}

// billNoFromTitle takes the bill number off the front of a document title
// shaped like "<bill_no>_<name>".
func billNoFromTitle(title string) string {
	if i := strings.Index(title, "_"); i >= 0 {
		return title[:i]
	}
	return title
}

// extractSections slices the document into its named sections. If the
// combined reason-and-content header is present, the separate reason and
// content entries are dropped in its favor.
func extractSections(text string) map[string]string {
	sections := make(map[string]string)
	for _, rule := range sectionRules {
		content, ok := sliceSection(text, rule)
		if !ok {
			continue
		}
		content = strings.TrimSpace(content)
		if rule.collapseWraps {
			content = collapseSoftWraps(content)
		}
		if content != "" {
			sections[rule.name] = content
		}
	}
	if _, ok := sections[SectionReasonAndContent]; ok {
		delete(sections, SectionReason)
		delete(sections, SectionContent)
	}
	return sections
}

// sliceSection finds the first occurrence of a rule's header and returns the
// text between it and the earliest following boundary marker.
func sliceSection(text string, rule sectionRule) (string, bool) {
	loc := rule.header.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	start := loc[1]
	if rule.includeHeader {
		start = loc[0]
	}
	rest := text[loc[1]:]
	end := len(rest)
	for _, boundary := range rule.boundaries {
		if b := boundary.FindStringIndex(rest); b != nil && b[0] < end {
			end = b[0]
		}
	}
	return text[start : loc[1]+end], true
}

// collapseSoftWraps removes line breaks that are PDF-conversion soft wraps,
// keeping only those after a sentence-ending period. Positions are judged on
// the original text, so a run of breaks collapses entirely.
func collapseSoftWraps(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && (i == 0 || s[i-1] != '.') {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// supersededBillNos collects the bill numbers cited in an alternative bill's
// history subsection. Numbers directly followed by a period are numbered-list
// ordinals, not bill numbers, and are excluded.
func supersededBillNos(text string) []string {
	loc := historyHeader.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	section := text[loc[1]:]
	if b := historyBoundary.FindStringIndex(section); b != nil {
		section = section[:b[0]]
	}
	section = strings.ReplaceAll(section, "\n", " ")

	seen := make(map[string]bool)
	for _, m := range billNoMarked.FindAllStringSubmatch(section, -1) {
		seen[m[1]] = true
	}
	for _, m := range billNoBare.FindAllStringSubmatch(section, -1) {
		seen[m[1]] = true
	}

	var numbers []string
	for n := range seen {
		if strings.Contains(section, n+".") {
			continue
		}
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	return numbers
}
