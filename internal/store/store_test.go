package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReeceHarding/landing-page/internal/logger"
	"github.com/ReeceHarding/landing-page/internal/models"
)

func newTestStore(t *testing.T, opts Options) (*ContentStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	if opts.Retention == 0 {
		opts.Retention = 30 * 24 * time.Hour
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "landing:test:"
	}

	return New(client, opts, logger.NewNop()), mr
}

func testPage() models.LandingPage {
	return models.LandingPage{
		Hero: models.Hero{
			Titles:      []string{"Build", "Launch", "Scale"},
			Description: "A page for your idea.",
		},
		Features: []models.Feature{
			{Title: "Fast", Content: "It is fast.", Icon: "zap"},
		},
		PricingTiers: []models.PricingTier{
			{Name: "Free", Price: "$0", Benefits: []string{"One page"}},
		},
		Testimonials: []models.Testimonial{
			{Name: "Dana", Role: "CTO", Content: "Great."},
		},
		FAQs: []models.FAQ{
			{Question: "Why?", Answer: "Because."},
		},
		CTA: models.CTA{Title: "Start now", Description: "Free to try."},
	}
}

func TestCreateAndGet(t *testing.T) {
	s, mr := newTestStore(t, Options{})
	ctx := context.Background()

	created, err := s.Create(ctx, testPage())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Hero.Titles, got.Hero.Titles)
	assert.Equal(t, created.PricingTiers, got.PricingTiers)

	// The key carries the variant prefix and the retention TTL
	key := "landing:test:" + created.ID
	require.True(t, mr.Exists(key))
	assert.Equal(t, 30*24*time.Hour, mr.TTL(key))
}

func TestCreateAssignsDistinctIDs(t *testing.T) {
	s, _ := newTestStore(t, Options{})
	ctx := context.Background()

	first, err := s.Create(ctx, testPage())
	require.NoError(t, err)
	second, err := s.Create(ctx, testPage())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetNotFound(t *testing.T) {
	s, _ := newTestStore(t, Options{})

	_, err := s.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetExpiredRecord(t *testing.T) {
	s, mr := newTestStore(t, Options{Retention: time.Minute})
	ctx := context.Background()

	created, err := s.Create(ctx, testPage())
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSchemaDrift(t *testing.T) {
	s, mr := newTestStore(t, Options{})

	// A record written by an older writer without the pricing section
	require.NoError(t, mr.Set("landing:test:stale-id",
		`{"hero":{"titles":["A","B","C"]},"features":[{"title":"F"}],`+
			`"testimonials":[{"name":"N"}],"faqs":[{"question":"Q"}],`+
			`"cta":{"title":"T"}}`))

	_, err := s.Get(context.Background(), "stale-id")

	var drift *SchemaDriftError
	require.ErrorAs(t, err, &drift)
	assert.Equal(t, "stale-id", drift.ID)
	assert.Contains(t, drift.Missing, "pricingTiers")
}

func TestGetCorruptPayload(t *testing.T) {
	s, mr := newTestStore(t, Options{})

	require.NoError(t, mr.Set("landing:test:bad-id", "not json"))

	_, err := s.Get(context.Background(), "bad-id")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestVerifyWrites(t *testing.T) {
	t.Run("clean write passes verification", func(t *testing.T) {
		s, _ := newTestStore(t, Options{VerifyWrites: true})

		created, err := s.Create(context.Background(), testPage())
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
	})

	t.Run("disabled verification skips the read-back", func(t *testing.T) {
		s, _ := newTestStore(t, Options{VerifyWrites: false})

		_, err := s.Create(context.Background(), testPage())
		require.NoError(t, err)
	})

	t.Run("stale read-back raises verification error", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rc.Close() })

		s := New(&staleClient{Commands: rc}, Options{
			KeyPrefix:    "landing:test:",
			Retention:    time.Hour,
			VerifyWrites: true,
		}, logger.NewNop())

		_, err := s.Create(context.Background(), testPage())
		assert.ErrorIs(t, err, ErrVerification)
	})
}

// staleClient returns a fixed stale payload from every read, simulating a
// backend whose write did not take effect.
type staleClient struct {
	Commands
}

func (c *staleClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult(`{"stale":true}`, nil)
}

func TestVariantsShareBackendWithoutCollisions(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	preview := New(client, Options{KeyPrefix: "landing:preview:", Retention: time.Hour}, logger.NewNop())
	dynamic := New(client, Options{KeyPrefix: "landing:dynamic:", Retention: time.Hour, VerifyWrites: true}, logger.NewNop())

	ctx := context.Background()
	p, err := preview.Create(ctx, testPage())
	require.NoError(t, err)
	d, err := dynamic.Create(ctx, testPage())
	require.NoError(t, err)

	// Each identifier resolves only in its own namespace
	_, err = preview.Get(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = dynamic.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := dynamic.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
}
