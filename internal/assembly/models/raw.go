package models

// Raw feed records. JSON tags follow the open data portal's field names so
// the ETL can decode saved API responses directly.

// RawMemberRecord is one row of the comprehensive member feed (ALLNAMEMBER).
// A person who served several terms carries slash-delimited parallel lists
// for party, district, and district type, and a comma-separated term list.
type RawMemberRecord struct {
	Code          string `json:"NAAS_CD"`
	Name          string `json:"NAAS_NM"`
	Role          string `json:"DTY_NM"`
	Parties       string `json:"PLPT_NM"`
	Districts     string `json:"ELECD_NM"`
	DistrictTypes string `json:"ELECD_DIV_NM"`
	Terms         string `json:"GTELT_ERACO"`
}

// RawActiveMemberRecord is one row of the current-members feed. All fields
// are single-valued; Terms lists every term for returning members.
type RawActiveMemberRecord struct {
	Code         string `json:"MONA_CD"`
	Name         string `json:"HG_NM"`
	Reelection   string `json:"REELE_GBN_NM"`
	Terms        string `json:"UNITS"`
	Role         string `json:"JOB_RES_NM"`
	Party        string `json:"POLY_NM"`
	District     string `json:"ORIG_NM"`
	DistrictType string `json:"ELECT_GBN_NM"`
}

// ReelectionFirstTerm marks a first-term member in the current-members feed.
const ReelectionFirstTerm = "초선"

// RawBillRecord is one row of the member-bill feed, and the shape the
// government/chair feed is renamed into. Empty strings are nulls.
type RawBillRecord struct {
	BillID        string       `json:"BILL_ID"`
	BillNo        string       `json:"BILL_NO"`
	Name          string       `json:"BILL_NAME"`
	Term          string       `json:"AGE"`
	Committee     string       `json:"COMMITTEE"`
	CommitteeID   string       `json:"COMMITTEE_ID"`
	ProposeDate   string       `json:"PROPOSE_DT"`
	DecisionDate  string       `json:"PROC_DT"`
	FinalResult   string       `json:"PROC_RESULT"`
	DetailLink    string       `json:"DETAIL_LINK"`
	ProposerKind  ProposerKind `json:"PROPOSER_KIND"`
	LeadProposers string       `json:"RST_PROPOSER"`
	CoProposers   string       `json:"PUBL_PROPOSER"`

	// The six process-stage dates, in pipeline order.
	CommitteeReferral    string `json:"COMMITTEE_DT"`
	CommitteePresented   string `json:"CMT_PRESENT_DT"`
	CommitteeProcessed   string `json:"CMT_PROC_DT"`
	LegislationReferral  string `json:"LAW_SUBMIT_DT"`
	LegislationPresented string `json:"LAW_PRESENT_DT"`
	LegislationProcessed string `json:"LAW_PROC_DT"`
}

// StageDates returns the six process-stage dates in their declared order.
// The classifier counts non-empty entries; the order is part of the contract.
func (b RawBillRecord) StageDates() [6]string {
	return [6]string{
		b.CommitteeReferral,
		b.CommitteePresented,
		b.CommitteeProcessed,
		b.LegislationReferral,
		b.LegislationPresented,
		b.LegislationProcessed,
	}
}

// RawAllBillRecord is one row of the all-bills feed, which carries government
// and committee-chair bills under differently named fields.
type RawAllBillRecord struct {
	BillID       string `json:"BILL_ID"`
	BillNo       string `json:"BILL_NO"`
	Name         string `json:"BILL_NAME"`
	Term         string `json:"AGE"`
	Committee    string `json:"CURR_COMMITTEE"`
	CommitteeID  string `json:"CURR_COMMITTEE_ID"`
	ProposeDate  string `json:"PROPOSE_DT"`
	DecisionDate string `json:"PROC_DT"`
	FinalResult  string `json:"PROC_RESULT_CD"`
	DetailLink   string `json:"LINK_URL"`
	ProposerKind string `json:"PROPOSER_KIND"`

	CommitteeReferral    string `json:"COMMITTEE_DT"`
	CommitteePresented   string `json:"CMT_PRESENT_DT"`
	CommitteeProcessed   string `json:"CMT_PROC_DT"`
	LegislationReferral  string `json:"LAW_SUBMIT_DT"`
	LegislationPresented string `json:"LAW_PRESENT_DT"`
	LegislationProcessed string `json:"LAW_PROC_DT"`
}

// Normalize renames an all-bills row into the member-bill shape. Member rows
// are reported with keep=false; they arrive through the member-bill feed with
// their proposer name lists, which this feed lacks.
func (b RawAllBillRecord) Normalize() (RawBillRecord, bool) {
	if ProposerKind(b.ProposerKind) == KindMember {
		return RawBillRecord{}, false
	}
	kind := KindCommitteeChair
	if ProposerKind(b.ProposerKind) == KindGovernment {
		kind = KindGovernment
	}
	return RawBillRecord{
		BillID:               b.BillID,
		BillNo:               b.BillNo,
		Name:                 b.Name,
		Term:                 b.Term,
		Committee:            b.Committee,
		CommitteeID:          b.CommitteeID,
		ProposeDate:          b.ProposeDate,
		DecisionDate:         b.DecisionDate,
		FinalResult:          b.FinalResult,
		DetailLink:           b.DetailLink,
		ProposerKind:         kind,
		CommitteeReferral:    b.CommitteeReferral,
		CommitteePresented:   b.CommitteePresented,
		CommitteeProcessed:   b.CommitteeProcessed,
		LegislationReferral:  b.LegislationReferral,
		LegislationPresented: b.LegislationPresented,
		LegislationProcessed: b.LegislationProcessed,
	}, true
}
