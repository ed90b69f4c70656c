// Package models holds the normalized assembly entities and the raw feed
// records they are derived from. Values for statuses and proposer types are
// the Korean literals used by the upstream open data portal; downstream
// storage and the API expose them verbatim.
package models

// BillStatus is the single derived legislative-process status of a bill.
// It is never hand-set: recomputing it from the same raw record and the same
// "today" value must yield the same status.
type BillStatus string

const (
	StatusAwaitingCommittee       BillStatus = "소관위원회지정대기"
	StatusCommitteePending        BillStatus = "소관위계류"
	StatusCommitteeInProgress     BillStatus = "소관위진행중"
	StatusLegislationPending      BillStatus = "법사위계류"
	StatusLegislationInProgress   BillStatus = "법사위진행중"
	StatusPassedOriginal          BillStatus = "원안가결"
	StatusPassedAmended           BillStatus = "수정가결"
	StatusRejected                BillStatus = "부결"
	StatusWithdrawn               BillStatus = "철회"
	StatusSupersededByAmendment   BillStatus = "수정안반영폐기"
	StatusSupersededByAlternative BillStatus = "대안반영폐기"
	StatusOther                   BillStatus = "기타"
)

// IsSuperseded reports whether the status marks a bill folded into a
// successor; only then does the bill carry alternative-bill links.
func (s BillStatus) IsSuperseded() bool {
	return s == StatusSupersededByAmendment || s == StatusSupersededByAlternative
}

// ProposerKind is the raw feed's proposer classification for a bill.
type ProposerKind string

const (
	KindMember         ProposerKind = "의원"
	KindGovernment     ProposerKind = "정부"
	KindCommitteeChair ProposerKind = "위원장"
)

// ProposerType is the typed role a proposer holds on a bill relation.
type ProposerType string

const (
	ProposerLead           ProposerType = "의원대표"
	ProposerCo             ProposerType = "의원공동"
	ProposerGovernment     ProposerType = "정부"
	ProposerCommitteeChair ProposerType = "위원장"
)

// GovernmentProposerID is the sentinel proposer id for government bills.
const GovernmentProposerID = "0000"

// Member is an immutable identity: one row per person, never mutated after
// the identity index is built.
type Member struct {
	ID   string `json:"MEMBER_ID"`
	Name string `json:"NAAS_NM"`
}

// MemberEraRecord is one term a member held office. Append-only; the party,
// district, and role are the values for that term, not the member's latest.
type MemberEraRecord struct {
	MemberID     string `json:"MEMBER_ID"`
	Term         string `json:"AGE"`
	Name         string `json:"NAAS_NM"`
	Party        string `json:"PLPT_NM,omitempty"`
	District     string `json:"ELECD_NM,omitempty"`
	DistrictType string `json:"ELECD_DIV_NM,omitempty"`
	Role         string `json:"DTY_NM,omitempty"`
}

// Bill is a normalized bill row. Status is always derived by the classifier.
type Bill struct {
	ID            string     `json:"BILL_ID"`
	No            string     `json:"BILL_NO"`
	Term          string     `json:"AGE,omitempty"`
	Name          string     `json:"BILL_NAME"`
	CommitteeName string     `json:"COMMITTEE_NAME,omitempty"`
	Status        BillStatus `json:"STATUS"`
	ProposeDate   string     `json:"PROPOSE_DT,omitempty"`
	DecisionDate  string     `json:"PROC_DT,omitempty"`
}

// BillProposerRelation joins a bill to one typed proposer. A member bill has
// one or more LEAD/CO relations; a government or committee-chair bill has
// exactly one relation of the matching type, never both kinds.
type BillProposerRelation struct {
	BillID     string       `json:"BILL_ID"`
	ProposerID string       `json:"PROPOSER_ID"`
	Type       ProposerType `json:"PROPOSER_TYPE"`
}

// AlternativeBillLink connects a superseded bill to its successors.
type AlternativeBillLink struct {
	SupersededBillNo string   `json:"BILL_NO"`
	SuccessorBillNos []string `json:"ALTER_BILL_NO"`
}
