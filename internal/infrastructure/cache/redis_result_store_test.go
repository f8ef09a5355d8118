package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ppic-api/internal/application/dto"
	"github.com/jhoicas/ppic-api/internal/domain"
)

func newStore(t *testing.T, ttl time.Duration) (*RedisResultStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisResultStore(client, "ppic:", ttl), mr
}

func TestRedisResultStore_GuardaYLeePorHorizonte(t *testing.T) {
	store, mr := newStore(t, 15*time.Minute)
	ctx := context.Background()

	in := &dto.MRPResultResponse{
		RunID:           "run-1",
		PlanningHorizon: 90,
		GeneratedAt:     time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		MaterialRequirements: []dto.MaterialRequirementDTO{{
			MaterialCode: "M-001", SuggestedPOQuantity: decimal.NewFromInt(108), OrderDate: "2026-03-15",
		}},
		GrossRequirements: []dto.GrossRequirementDTO{},
		Summary:           dto.MRPSummaryDTO{TotalMaterials: 1, TotalPOValue: decimal.RequireFromString("10800.5")},
	}
	require.NoError(t, store.Save(ctx, in))
	assert.True(t, mr.Exists("ppic:mrp:latest:90"))
	assert.Equal(t, 15*time.Minute, mr.TTL("ppic:mrp:latest:90"))

	out, err := store.Latest(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, "run-1", out.RunID)
	require.Len(t, out.MaterialRequirements, 1)
	assert.True(t, out.MaterialRequirements[0].SuggestedPOQuantity.Equal(decimal.NewFromInt(108)))
	assert.True(t, out.Summary.TotalPOValue.Equal(decimal.RequireFromString("10800.5")))

	_, err = store.Latest(ctx, 30)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisResultStore_ExpiraConTTL(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &dto.MRPResultResponse{PlanningHorizon: 30}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Latest(ctx, 30)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedisResultStore_ServidorCaidoEsDataAccess(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	mr.Close()

	_, err := store.Latest(context.Background(), 90)
	assert.ErrorIs(t, err, domain.ErrDataAccess)
	assert.Error(t, store.Ping(context.Background()))
}
