//go:build integration

package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aohus/political-metrics/internal/assembly/models"
	platformredis "github.com/aohus/political-metrics/internal/platform/redis"
	"github.com/aohus/political-metrics/pkg/testutil/containers"
)

func TestTopProposers_RedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.GetManager().GetRedis(t)
	require.NoError(t, rc.FlushAll(ctx))

	cache := &platformredis.Client{Client: rc.Client}
	st := seedStore(t)
	svc := New(st, st, nil, WithCache(cache, time.Minute))

	first, err := svc.TopProposers(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	// Mutate the store; a cached response must not see the change until the
	// TTL expires.
	require.NoError(t, st.SaveProposerRelations(ctx, []models.BillProposerRelation{
		{BillID: "B2", ProposerID: "MEM002", Type: models.ProposerCo},
	}))

	second, err := svc.TopProposers(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.NoError(t, rc.FlushAll(ctx))

	third, err := svc.TopProposers(ctx, 10)
	require.NoError(t, err)
	require.NotEqual(t, first, third)
}
