package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/internal/assembly/store"
)

func seedStore(t *testing.T) *store.Memory {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()

	require.NoError(t, st.SaveMembers(ctx, []models.Member{
		{ID: "MEM001", Name: "김철수"},
		{ID: "MEM002", Name: "이영희"},
	}))
	require.NoError(t, st.SaveBills(ctx, []models.Bill{
		{ID: "B1", No: "2200001", Status: models.StatusPassedOriginal},
		{ID: "B2", No: "2200002", Status: models.StatusCommitteeInProgress},
		{ID: "B3", No: "2200003", Status: models.StatusPassedAmended},
		{ID: "G1", No: "2200004", Status: models.StatusCommitteeInProgress},
	}))
	require.NoError(t, st.SaveProposerRelations(ctx, []models.BillProposerRelation{
		{BillID: "B1", ProposerID: "MEM001", Type: models.ProposerLead},
		{BillID: "B2", ProposerID: "MEM001", Type: models.ProposerLead},
		{BillID: "B3", ProposerID: "MEM002", Type: models.ProposerLead},
		{BillID: "B1", ProposerID: "MEM002", Type: models.ProposerCo},
		{BillID: "G1", ProposerID: models.GovernmentProposerID, Type: models.ProposerGovernment},
	}))
	return st
}

func TestTopProposers(t *testing.T) {
	st := seedStore(t)
	svc := New(st, st, nil)

	counts, err := svc.TopProposers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, counts, 2, "government relations carry no member and are excluded")

	assert.Equal(t, MemberBillCount{MemberID: "MEM001", Name: "김철수", Lead: 2, Co: 0, Passed: 1}, counts[0])
	assert.Equal(t, MemberBillCount{MemberID: "MEM002", Name: "이영희", Lead: 1, Co: 1, Passed: 1}, counts[1])
}

func TestTopProposers_Limit(t *testing.T) {
	st := seedStore(t)
	svc := New(st, st, nil)

	counts, err := svc.TopProposers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, "MEM001", counts[0].MemberID)
}

func TestTopProposers_EmptyStore(t *testing.T) {
	st := store.NewMemory()
	svc := New(st, st, nil)

	counts, err := svc.TopProposers(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
