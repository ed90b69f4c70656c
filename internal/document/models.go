// Package document extracts structured metadata and named sections from
// bill-proposal text.
package document

// Info is the structured result of parsing one bill-proposal document.
// Sections maps section names to their extracted text; absent sections are
// simply missing keys.
type Info struct {
	Title             string            `json:"title"`
	BillNo            string            `json:"bill_number"`
	ProposalDate      string            `json:"proposal_date,omitempty"`
	SubmissionDate    string            `json:"submission_date,omitempty"`
	IsAlternative     bool              `json:"is_alternative"`
	SupersededBillNos []string          `json:"alternative_bill_numbers,omitempty"`
	Sections          map[string]string `json:"sections"`
	FullText          string            `json:"full_text"`
}

// Section names as they appear in document headers. The combined
// reason-and-content header supersedes the two separate ones when present.
const (
	SectionReason           = "제안이유"
	SectionContent          = "주요내용"
	SectionReasonAndContent = "제안이유_및_주요내용"
	SectionReference        = "참고사항"
	SectionStatuteText      = "법률_제_호"
	SectionAddendum         = "부칙"
	SectionComparisonTable  = "신구조문대비표"
)
