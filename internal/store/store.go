// Package store persists landing-page content records in a Redis-compatible
// key-value service. Records are immutable: written once under a fresh key
// with a retention TTL, read any number of times, and removed only by expiry.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ReeceHarding/landing-page/internal/logger"
	"github.com/ReeceHarding/landing-page/internal/models"
)

// ErrNotFound is returned by Get for unknown or expired identifiers. It is a
// normal result, not a failure: callers render a not-found state.
var ErrNotFound = errors.New("content not found")

// ErrVerification is returned by Create when the post-write read-back does
// not match the written payload byte for byte.
var ErrVerification = errors.New("store verification failed: read-back mismatch")

// SchemaDriftError indicates a stored record is missing required fields,
// typically because it was written by an older, incompatible writer.
type SchemaDriftError struct {
	ID      string
	Missing []string
}

func (e *SchemaDriftError) Error() string {
	return fmt.Sprintf("record %s is missing required fields: %s", e.ID, strings.Join(e.Missing, ", "))
}

// Options configures a ContentStore variant.
type Options struct {
	// KeyPrefix namespaces this variant's keys.
	KeyPrefix string
	// Retention is the record TTL.
	Retention time.Duration
	// VerifyWrites enables the post-write read-back comparison.
	VerifyWrites bool
}

// Commands is the slice of the Redis client the store uses. Satisfied by
// *redis.Client.
type Commands interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// ContentStore reads and writes landing-page records. The preview and dynamic
// variants share this implementation and differ only in key prefix and write
// verification.
type ContentStore struct {
	client Commands
	opts   Options
	log    logger.Logger
}

// New creates a ContentStore.
func New(client Commands, opts Options, log logger.Logger) *ContentStore {
	return &ContentStore{client: client, opts: opts, log: log}
}

// Create assigns a fresh identifier, persists the record with the retention
// TTL, and returns the record with its identifier merged in. There is no
// update path: each record is written exactly once under its own key.
func (s *ContentStore) Create(ctx context.Context, page models.LandingPage) (models.LandingPage, error) {
	page.ID = uuid.NewString()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return models.LandingPage{}, fmt.Errorf("marshal record: %w", err)
	}

	key := s.key(page.ID)
	if err := s.client.Set(ctx, key, payload, s.opts.Retention).Err(); err != nil {
		return models.LandingPage{}, fmt.Errorf("write record %s: %w", key, err)
	}

	if s.opts.VerifyWrites {
		stored, readErr := s.client.Get(ctx, key).Bytes()
		if readErr != nil {
			return models.LandingPage{}, fmt.Errorf("verification read for %s: %w", key, readErr)
		}
		if string(stored) != string(payload) {
			s.log.Error("Write verification mismatch",
				logger.String("key", key),
				logger.Int("written_bytes", len(payload)),
				logger.Int("read_bytes", len(stored)),
			)
			return models.LandingPage{}, ErrVerification
		}
	}

	s.log.Info("Content record created",
		logger.String("id", page.ID),
		logger.String("prefix", s.opts.KeyPrefix),
		logger.Duration("retention", s.opts.Retention),
	)

	return page, nil
}

// Get fetches a record by identifier. Unknown or expired identifiers return
// ErrNotFound; a stored record missing required fields returns a
// SchemaDriftError.
func (s *ContentStore) Get(ctx context.Context, id string) (*models.LandingPage, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read record %s: %w", id, err)
	}

	var page models.LandingPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", id, err)
	}

	if missing := page.MissingFields(); len(missing) > 0 {
		return nil, &SchemaDriftError{ID: id, Missing: missing}
	}

	return &page, nil
}

func (s *ContentStore) key(id string) string {
	return s.opts.KeyPrefix + id
}
