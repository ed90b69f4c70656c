package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/pkg/domainerrors"
)

const today = "2024-06-01T00:00:00"

func TestClassify_NoCommitteeAssigned(t *testing.T) {
	// Everything else set; an empty committee still wins.
	bill := models.RawBillRecord{
		FinalResult:        string(models.StatusPassedOriginal),
		CommitteeReferral:  "2024-01-10",
		CommitteePresented: "2024-02-01",
	}

	got, err := Classify(bill, today)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAwaitingCommittee, got)
}

func TestClassify_TerminalResult(t *testing.T) {
	tests := []struct {
		name   string
		result string
		want   models.BillStatus
	}{
		{"passed original", "원안가결", models.StatusPassedOriginal},
		{"passed amended", "수정가결", models.StatusPassedAmended},
		{"rejected", "부결", models.StatusRejected},
		{"withdrawn", "철회", models.StatusWithdrawn},
		{"superseded by amendment", "수정안반영폐기", models.StatusSupersededByAmendment},
		{"superseded by alternative", "대안반영폐기", models.StatusSupersededByAlternative},
		// Unlisted plenary results pass through verbatim, as upstream does.
		{"expired", "임기만료폐기", models.BillStatus("임기만료폐기")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := models.RawBillRecord{
				Committee:   "기획재정위원회",
				FinalResult: tt.result,
				// Stage dates must not matter once a result exists.
				CommitteeReferral: "2024-01-10",
			}
			got, err := Classify(bill, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_StageCounts(t *testing.T) {
	tests := []struct {
		name string
		bill models.RawBillRecord
		want models.BillStatus
	}{
		{
			name: "referral only",
			bill: models.RawBillRecord{
				Committee:         "기획재정위원회",
				CommitteeReferral: "2024-01-10",
			},
			want: models.StatusCommitteeInProgress,
		},
		{
			name: "presented in the future means committee pending",
			bill: models.RawBillRecord{
				Committee:          "기획재정위원회",
				CommitteeReferral:  "2024-01-10",
				CommitteePresented: "2099-01-01",
			},
			want: models.StatusCommitteePending,
		},
		{
			name: "presented in the past means committee in progress",
			bill: models.RawBillRecord{
				Committee:          "기획재정위원회",
				CommitteeReferral:  "2024-01-10",
				CommitteePresented: "2024-01-01",
			},
			want: models.StatusCommitteeInProgress,
		},
		{
			name: "three stages",
			bill: models.RawBillRecord{
				Committee:           "기획재정위원회",
				CommitteeReferral:   "2024-01-10",
				CommitteePresented:  "2024-02-01",
				CommitteeProcessed:  "2024-03-01",
			},
			want: models.StatusLegislationInProgress,
		},
		{
			name: "four stages",
			bill: models.RawBillRecord{
				Committee:           "기획재정위원회",
				CommitteeReferral:   "2024-01-10",
				CommitteePresented:  "2024-02-01",
				CommitteeProcessed:  "2024-03-01",
				LegislationReferral: "2024-03-05",
			},
			want: models.StatusLegislationInProgress,
		},
		{
			name: "five stages with future presentation keeps legislation in progress",
			bill: models.RawBillRecord{
				Committee:            "기획재정위원회",
				CommitteeReferral:    "2024-01-10",
				CommitteePresented:   "2024-02-01",
				CommitteeProcessed:   "2024-03-01",
				LegislationReferral:  "2024-03-05",
				LegislationPresented: "2099-01-01",
			},
			want: models.StatusLegislationInProgress,
		},
		{
			name: "five stages with past presentation means legislation pending",
			bill: models.RawBillRecord{
				Committee:            "기획재정위원회",
				CommitteeReferral:    "2024-01-10",
				CommitteePresented:   "2024-02-01",
				CommitteeProcessed:   "2024-03-01",
				LegislationReferral:  "2024-03-05",
				LegislationPresented: "2024-04-01",
			},
			want: models.StatusLegislationPending,
		},
		{
			name: "two stages without a presentation date stay in committee progress",
			bill: models.RawBillRecord{
				Committee:          "기획재정위원회",
				CommitteeReferral:  "2024-01-10",
				CommitteeProcessed: "2024-03-01",
			},
			want: models.StatusCommitteeInProgress,
		},
		{
			name: "five stages without a legislation presentation date stay in progress",
			bill: models.RawBillRecord{
				Committee:            "기획재정위원회",
				CommitteeReferral:    "2024-01-10",
				CommitteePresented:   "2024-02-01",
				CommitteeProcessed:   "2024-03-01",
				LegislationReferral:  "2024-03-05",
				LegislationProcessed: "2024-05-01",
			},
			want: models.StatusLegislationInProgress,
		},
		{
			name: "no stage dates at all",
			bill: models.RawBillRecord{Committee: "기획재정위원회"},
			want: models.StatusOther,
		},
		{
			name: "all six stages",
			bill: models.RawBillRecord{
				Committee:            "기획재정위원회",
				CommitteeReferral:    "2024-01-10",
				CommitteePresented:   "2024-02-01",
				CommitteeProcessed:   "2024-03-01",
				LegislationReferral:  "2024-03-05",
				LegislationPresented: "2024-04-01",
				LegislationProcessed: "2024-05-01",
			},
			want: models.StatusOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.bill, today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_MalformedDateFallsBackToOther(t *testing.T) {
	bill := models.RawBillRecord{
		Committee:          "기획재정위원회",
		CommitteeReferral:  "2024-01-10",
		CommitteePresented: "2024/01/01",
	}

	got, err := Classify(bill, today)
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeValidation))
	assert.Equal(t, models.StatusOther, got)
}

func TestClassify_Idempotent(t *testing.T) {
	bill := models.RawBillRecord{
		Committee:          "기획재정위원회",
		CommitteeReferral:  "2024-01-10",
		CommitteePresented: "2099-01-01",
	}

	first, err := Classify(bill, today)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Classify(bill, today)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
