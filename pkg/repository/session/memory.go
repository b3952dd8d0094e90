package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mystica/pkg/metrics"
)

type memoryEntry struct {
	sess  Session
	timer *time.Timer
}

// MemoryRepository is an in-memory Repository implementation with TTL-based
// expiry. State does not survive a process restart.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]*memoryEntry
	ttl  time.Duration
	reg  *metrics.Registry
}

// NewMemoryRepository creates an empty in-memory repository. ttl <= 0 keeps
// sessions until deleted explicitly.
func NewMemoryRepository(ttl time.Duration, reg *metrics.Registry) *MemoryRepository {
	return &MemoryRepository{data: make(map[string]*memoryEntry), ttl: ttl, reg: reg}
}

func (r *MemoryRepository) Create(ctx context.Context) (Session, error) {
	s := Session{ID: uuid.NewString()}
	if err := r.Put(ctx, s); err != nil {
		return Session{}, err
	}

	log.Ctx(ctx).Info().Str("session_id", s.ID).Msg("session created")
	if r.reg != nil {
		r.reg.Inc(ctx, metrics.CounterSessions, map[string]string{"store": "memory"}, 1)
	}
	return s, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (Session, error) {
	r.mu.RLock()
	e, ok := r.data[id]
	r.mu.RUnlock()
	if !ok || e == nil {
		return Session{}, ErrNotFound
	}
	return e.sess, nil
}

// Put stores the session wholesale and restarts its expiry timer.
func (r *MemoryRepository) Put(ctx context.Context, s Session) error {
	r.mu.Lock()
	if prev, ok := r.data[s.ID]; ok && prev.timer != nil {
		prev.timer.Stop()
	}
	e := &memoryEntry{sess: s}
	if r.ttl > 0 {
		id := s.ID
		e.timer = time.AfterFunc(r.ttl, func() {
			// Background expiry; context not required.
			_ = r.Delete(context.Background(), id)
		})
	}
	r.data[s.ID] = e
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	e, ok := r.data[id]
	if ok {
		delete(r.data, id)
	}
	r.mu.Unlock()

	if ok && e != nil && e.timer != nil {
		e.timer.Stop()
	}
	if ok {
		log.Ctx(ctx).Info().Str("session_id", id).Msg("session removed")
	}
	return nil
}
