package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/internal/document"
	"github.com/aohus/political-metrics/internal/stats"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	ctx := context.Background()

	st := store.NewMemory()
	require.NoError(t, st.SaveMembers(ctx, []models.Member{{ID: "MEM001", Name: "김철수"}}))
	require.NoError(t, st.SaveEras(ctx, []models.MemberEraRecord{
		{MemberID: "MEM001", Term: "21", Name: "김철수", Party: "정당A"},
		{MemberID: "MEM001", Term: "22", Name: "김철수", Party: "정당B"},
	}))
	require.NoError(t, st.SaveBills(ctx, []models.Bill{
		{ID: "B1", No: "2200001", Name: "국회법 일부개정법률안", CommitteeName: "운영위원회", Status: models.StatusCommitteeInProgress},
		{ID: "B2", No: "2200002", Name: "소득세법 일부개정법률안", CommitteeName: "기획재정위원회", Status: models.StatusPassedOriginal},
	}))
	require.NoError(t, st.SaveProposerRelations(ctx, []models.BillProposerRelation{
		{BillID: "B1", ProposerID: "MEM001", Type: models.ProposerLead},
		{BillID: "B2", ProposerID: "MEM001", Type: models.ProposerLead},
	}))

	docs := document.NewMemoryStore()
	require.NoError(t, docs.Save(ctx, []document.Info{{
		BillNo:   "2200001",
		Title:    "2200001_국회법일부개정법률안",
		Sections: map[string]string{document.SectionReason: "정비가 필요하다."},
	}}))

	h := New(st, st, docs, stats.New(st, st, nil), nil)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func get(t *testing.T, r chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGetBill(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/bills/B1")
	require.Equal(t, http.StatusOK, rec.Code)

	var bill models.Bill
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bill))
	assert.Equal(t, "2200001", bill.No)
	assert.Equal(t, models.StatusCommitteeInProgress, bill.Status)
}

func TestGetBill_NotFound(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/bills/NOPE")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "not_found", body.Error.Code)
}

func TestListBills_Filtered(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/bills?status="+string(models.StatusPassedOriginal))
	require.Equal(t, http.StatusOK, rec.Code)

	var bills []models.Bill
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bills))
	require.Len(t, bills, 1)
	assert.Equal(t, "B2", bills[0].ID)
}

func TestBillProposers(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/bills/B1/proposers")
	require.Equal(t, http.StatusOK, rec.Code)

	var relations []models.BillProposerRelation
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&relations))
	require.Len(t, relations, 1)
	assert.Equal(t, models.ProposerLead, relations[0].Type)
}

func TestMemberAndEras(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/members/MEM001")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, r, "/members/MEM001/eras")
	require.Equal(t, http.StatusOK, rec.Code)

	var eras []models.MemberEraRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&eras))
	require.Len(t, eras, 2)
	assert.Equal(t, "정당A", eras[0].Party)
}

func TestGetDocument(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/documents/2200001")
	require.Equal(t, http.StatusOK, rec.Code)

	var info document.Info
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, "정비가 필요하다.", info.Sections[document.SectionReason])
}

func TestTopProposers(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/stats/members/top?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var counts []stats.MemberBillCount
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&counts))
	require.Len(t, counts, 1)
	assert.Equal(t, "MEM001", counts[0].MemberID)
	assert.Equal(t, 2, counts[0].Lead)
	assert.Equal(t, 1, counts[0].Passed)
}

func TestTopProposers_BadLimit(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/stats/members/top?limit=zero")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
