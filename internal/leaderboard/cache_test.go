package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/octofitlabs/octofit-backend/pkg/db/models"
	"github.com/octofitlabs/octofit-backend/pkg/redis"
)

func newTestCache(t *testing.T) (*TopCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = client.Close() })
	return NewTopCache(client, time.Minute), mr
}

func TestTopCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	entries := []models.LeaderboardEntry{
		{ID: uuid.New(), UserID: uuid.New(), Username: "ironman", TotalCalories: 1500},
		{ID: uuid.New(), UserID: uuid.New(), Username: "thor", TotalCalories: 800},
	}
	if err := cache.Set(ctx, entries); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	got, ok := cache.Get(ctx)
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 2 || got[0].Username != "ironman" || got[1].TotalCalories != 800 {
		t.Fatalf("unexpected cached entries: %+v", got)
	}
}

func TestTopCache_MissOnEmpty(t *testing.T) {
	cache, _ := newTestCache(t)
	if _, ok := cache.Get(context.Background()); ok {
		t.Fatal("expected a miss on an empty cache")
	}
}

func TestTopCache_Invalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, []models.LeaderboardEntry{{Username: "hulk"}}); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("unexpected invalidate error: %v", err)
	}
	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expected a miss after invalidation")
	}
}

func TestTopCache_ExpiresWithTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = client.Close() })
	cache := NewTopCache(client, time.Second)
	ctx := context.Background()

	if err := cache.Set(ctx, []models.LeaderboardEntry{{Username: "flash"}}); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}
	mr.FastForward(2 * time.Second)
	if _, ok := cache.Get(ctx); ok {
		t.Fatal("expected a miss after the TTL elapsed")
	}
}

func TestTopCache_NilClientDisabled(t *testing.T) {
	cache := NewTopCache(nil, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, []models.LeaderboardEntry{{Username: "aquaman"}}); err != nil {
		t.Fatalf("nil client set should be a no-op: %v", err)
	}
	if _, ok := cache.Get(ctx); ok {
		t.Fatal("nil client should never hit")
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("nil client invalidate should be a no-op: %v", err)
	}
}
