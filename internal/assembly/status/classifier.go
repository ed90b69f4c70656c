// Package status derives a bill's single legislative-process status from its
// raw process-stage dates and terminal result.
package status

import (
	"time"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/pkg/domainerrors"
)

// decision is one row of the stage-count table: either a fixed status, or a
// comparison of "today" against one of the six stage dates.
type decision struct {
	fixed      models.BillStatus
	compareIdx int // index into StageDates; -1 for fixed decisions
	before     models.BillStatus
	onOrAfter  models.BillStatus
	// missing applies when the compared date itself is one of the empty
	// slots, which the count rules cannot rule out.
	missing models.BillStatus
}

// stageRules keys the classifier on the count of non-empty stage dates.
// Counts outside the table classify as OTHER.
//
// The n==5 comparison polarity is intentionally the mirror of n==2; it
// reproduces the upstream portal's observed behavior and must not be
// "fixed" without upstream confirmation.
var stageRules = map[int]decision{
	1: {fixed: models.StatusCommitteeInProgress, compareIdx: -1},
	2: {compareIdx: 1, before: models.StatusCommitteePending, onOrAfter: models.StatusCommitteeInProgress, missing: models.StatusCommitteeInProgress},
	3: {fixed: models.StatusLegislationInProgress, compareIdx: -1},
	4: {fixed: models.StatusLegislationInProgress, compareIdx: -1},
	5: {compareIdx: 4, before: models.StatusLegislationInProgress, onOrAfter: models.StatusLegislationPending, missing: models.StatusLegislationInProgress},
}

// Classify maps a raw bill record to its status. today is an ISO-8601
// timestamp; comparisons against stage dates are plain string comparisons,
// which ISO-8601 makes chronological.
//
// Classify is pure: same record and same today always yield the same status.
// It never panics; a malformed stage date resolves the record to OTHER and
// returns the validation error for the caller to log.
func Classify(bill models.RawBillRecord, today string) (models.BillStatus, error) {
	if bill.Committee == "" {
		return models.StatusAwaitingCommittee, nil
	}
	if bill.FinalResult != "" {
		return models.BillStatus(bill.FinalResult), nil
	}

	dates := bill.StageDates()
	n := 0
	for _, d := range dates {
		if d != "" {
			n++
		}
	}

	rule, ok := stageRules[n]
	if !ok {
		return models.StatusOther, nil
	}
	if rule.compareIdx < 0 {
		return rule.fixed, nil
	}

	if dates[rule.compareIdx] == "" {
		// The count matched on other slots; with no date to compare the
		// record stays in progress.
		return rule.missing, nil
	}
	iso, err := toISODate(dates[rule.compareIdx])
	if err != nil {
		return models.StatusOther, err
	}
	if today < iso {
		return rule.before, nil
	}
	return rule.onOrAfter, nil
}

// toISODate validates a stage date and normalizes it to YYYY-MM-DD.
func toISODate(date string) (string, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeValidation, "invalid stage date "+date)
	}
	return parsed.Format("2006-01-02"), nil
}
