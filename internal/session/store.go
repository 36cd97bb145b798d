package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session: not found")

const defaultTTL = 24 * time.Hour

// Store persists sessions in Redis as JSON blobs under a TTL. Sessions are
// the only server-side state this system keeps, and they are deliberately
// not durable.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewStore creates a session store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("carecompass.internal.session"),
	}
}

// Create allocates a fresh session and persists it.
func (s *Store) Create(ctx context.Context) (*State, error) {
	state := NewState(uuid.NewString())
	if err := s.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Get loads a session by ID.
func (s *Store) Get(ctx context.Context, id string) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "session.get")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to load %s: %w", id, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to decode %s: %w", id, err)
	}
	return &state, nil
}

// Save persists a session, refreshing its TTL.
func (s *Store) Save(ctx context.Context, state *State) error {
	ctx, span := s.tracer.Start(ctx, "session.save")
	defer span.End()

	data, err := json.Marshal(state)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal %s: %w", state.ID, err)
	}
	if err := s.redis.Set(ctx, sessionKey(state.ID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist %s: %w", state.ID, err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
