package limiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	counts  map[string]int64
	ttls    map[string]time.Duration
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (f *fakeStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.failing {
		cmd.SetErr(errors.New("connection refused"))
		return cmd
	}
	f.counts[key]++
	cmd.SetVal(f.counts[key])
	return cmd
}

func (f *fakeStore) Expire(ctx context.Context, key string, d time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	f.ttls[key] = d
	cmd.SetVal(true)
	return cmd
}

func (f *fakeStore) TTL(ctx context.Context, key string) *redis.DurationCmd {
	cmd := redis.NewDurationCmd(ctx, time.Second)
	cmd.SetVal(f.ttls[key] / 2)
	return cmd
}

func TestAllow_FixedWindow(t *testing.T) {
	store := newFakeStore()
	l := New(store, 2, time.Minute)
	ctx := context.Background()

	r := l.Allow(ctx, "1.2.3.4")
	assert.True(t, r.Allowed)
	assert.Equal(t, 1, r.Remaining)
	assert.Equal(t, time.Minute, store.ttls["ratelimit:1.2.3.4"])

	r = l.Allow(ctx, "1.2.3.4")
	assert.True(t, r.Allowed)
	assert.Equal(t, 0, r.Remaining)

	r = l.Allow(ctx, "1.2.3.4")
	assert.False(t, r.Allowed)
	assert.Equal(t, 30*time.Second, r.RetryAfter)

	assert.True(t, l.Allow(ctx, "5.6.7.8").Allowed, "ключи независимы")
}

func TestAllow_FailsOpen(t *testing.T) {
	store := newFakeStore()
	store.failing = true
	l := New(store, 1, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(context.Background(), "k").Allowed)
	}
}
