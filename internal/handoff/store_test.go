package handoff

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/occupation-insights/internal/domain"
)

func sampleReport(code string) domain.JobInsightsReport {
	return domain.JobInsightsReport{
		SOCCode:               code,
		JobTitle:              "Electrician",
		Location:              "United States",
		TotalPostingsAnalyzed: 42,
		Skills: []domain.AnalyzedTerm{
			{Term: "Blueprint reading", Count: 12, ContextSentences: []string{"Reads blueprints daily."}},
		},
	}
}

// exerciseStore runs the contract every Store must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	first := sampleReport("47-2111.00")
	require.NoError(t, s.Save(ctx, "alice", first))

	got, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := sampleReport("29-1141.00")
	require.NoError(t, s.Save(ctx, "alice", second))
	got, err = s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "29-1141.00", got.SOCCode, "slot is overwritten on every save")

	_, err = s.Load(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound, "sessions do not share slots")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Minute))
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.clock = func() time.Time { return now }

	require.NoError(t, s.Save(context.Background(), "alice", sampleReport("47-2111.00")))

	now = now.Add(59 * time.Second)
	_, err := s.Load(context.Background(), "alice")
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = s.Load(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSweepsUnreadSessions(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.clock = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, s.Save(ctx, fmt.Sprintf("session-%d", i), sampleReport("47-2111.00")))
	}
	assert.Len(t, s.entries, 1000)

	now = now.Add(time.Hour)
	require.NoError(t, s.Save(ctx, "fresh", sampleReport("15-1252.00")))
	assert.Len(t, s.entries, 1)

	report, err := s.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "15-1252.00", report.SOCCode)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStoreWithClient(client, 10*time.Minute)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)

	assert.True(t, mr.Exists(Key("alice")))
	assert.Equal(t, 10*time.Minute, mr.TTL(Key("alice")))

	mr.FastForward(11 * time.Minute)
	_, err := s.Load(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisStorePing(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	mr.Close()
	_, err = NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()})
	assert.Error(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "jobAnalysisResults:abc", Key("abc"))
}
