//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/pkg/platform/sentinel"
	"github.com/aohus/political-metrics/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(store.EnsureSchema(context.Background(), s.postgres.Pool))
	s.store = store.NewPostgres(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	err := s.postgres.TruncateTables(ctx,
		"bill_proposers", "alternative_bill_links", "bills", "member_eras", "members",
	)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestMemberRoundTrip() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveMembers(ctx, []models.Member{
		{ID: "MEM001", Name: "김철수"},
	}))
	s.Require().NoError(s.store.SaveEras(ctx, []models.MemberEraRecord{
		{MemberID: "MEM001", Term: "21", Name: "김철수", Party: "정당A", District: "서울 종로구", DistrictType: "지역구"},
		{MemberID: "MEM001", Term: "22", Name: "김철수", Party: "정당B", District: "서울 종로구", DistrictType: "지역구"},
	}))

	member, err := s.store.FindMember(ctx, "MEM001")
	s.Require().NoError(err)
	s.Equal("김철수", member.Name)

	eras, err := s.store.ErasByMember(ctx, "MEM001")
	s.Require().NoError(err)
	s.Require().Len(eras, 2)
	s.Equal("정당A", eras[0].Party)

	_, err = s.store.FindMember(ctx, "NOPE")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestEraUpsertConverges() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveMembers(ctx, []models.Member{{ID: "MEM001", Name: "김철수"}}))
	era := models.MemberEraRecord{MemberID: "MEM001", Term: "22", Name: "김철수", Party: "정당A"}
	s.Require().NoError(s.store.SaveEras(ctx, []models.MemberEraRecord{era}))

	era.Party = "정당B"
	s.Require().NoError(s.store.SaveEras(ctx, []models.MemberEraRecord{era}))

	eras, err := s.store.ErasByMember(ctx, "MEM001")
	s.Require().NoError(err)
	s.Require().Len(eras, 1)
	s.Equal("정당B", eras[0].Party)
}

func (s *PostgresStoreSuite) TestBillFilters() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveBills(ctx, []models.Bill{
		{ID: "B1", No: "2200001", Name: "국회법 일부개정법률안", CommitteeName: "운영위원회", Status: models.StatusCommitteeInProgress},
		{ID: "B2", No: "2200002", Name: "소득세법 일부개정법률안", CommitteeName: "기획재정위원회", Status: models.StatusCommitteePending},
		{ID: "B3", No: "2200003", Name: "조세특례제한법 일부개정법률안", CommitteeName: "기획재정위원회", Status: models.StatusCommitteeInProgress},
	}))

	all, err := s.store.ListBills(ctx, store.BillFilter{})
	s.Require().NoError(err)
	s.Len(all, 3)

	inProgress, err := s.store.ListBills(ctx, store.BillFilter{Status: models.StatusCommitteeInProgress})
	s.Require().NoError(err)
	s.Len(inProgress, 2)

	narrowed, err := s.store.ListBills(ctx, store.BillFilter{
		Status:    models.StatusCommitteeInProgress,
		Committee: "기획재정위원회",
	})
	s.Require().NoError(err)
	s.Require().Len(narrowed, 1)
	s.Equal("B3", narrowed[0].ID)
}

func (s *PostgresStoreSuite) TestProposerRelations() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveBills(ctx, []models.Bill{{ID: "B1", No: "2200001", Name: "국회법 일부개정법률안", Status: models.StatusOther}}))
	relations := []models.BillProposerRelation{
		{BillID: "B1", ProposerID: "MEM001", Type: models.ProposerLead},
		{BillID: "B1", ProposerID: "MEM002", Type: models.ProposerCo},
	}
	s.Require().NoError(s.store.SaveProposerRelations(ctx, relations))
	// Re-saving must not duplicate rows.
	s.Require().NoError(s.store.SaveProposerRelations(ctx, relations))

	got, err := s.store.ProposersByBill(ctx, "B1")
	s.Require().NoError(err)
	s.Len(got, 2)

	_, err = s.store.ProposersByBill(ctx, "NOPE")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestAlternativeLinks() {
	ctx := context.Background()

	s.Require().NoError(s.store.SaveAlternativeLinks(ctx, []models.AlternativeBillLink{
		{SupersededBillNo: "2200042", SuccessorBillNos: []string{"2205001", "2205002"}},
	}))

	got, err := s.store.AlternativeLinks(ctx, "2200042")
	s.Require().NoError(err)
	s.Equal([]string{"2205001", "2205002"}, got)

	_, err = s.store.AlternativeLinks(ctx, "9999999")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
