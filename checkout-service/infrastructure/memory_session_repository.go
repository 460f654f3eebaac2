package infrastructure

import (
	"context"
	"sync"

	"github.com/draftea/checkout-gateway/checkout-service/domain"
	"github.com/draftea/checkout-gateway/shared/models"
)

// MemorySessionRepository keeps checkout sessions in memory for the lifetime
// of a checkout attempt. Sessions are stored and returned by value so callers
// only observe state that was explicitly saved; an unsaved mutation is never
// visible to a concurrent reader.
type MemorySessionRepository struct {
	mux      sync.RWMutex
	sessions map[models.ID]domain.CheckoutSession
}

// NewMemorySessionRepository creates a new MemorySessionRepository
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[models.ID]domain.CheckoutSession),
	}
}

// Save stores a snapshot of the session. The incoming version must supersede
// the stored one: two callers racing from the same loaded copy cannot both
// win, the loser gets ErrSessionConflict.
func (r *MemorySessionRepository) Save(ctx context.Context, session *domain.CheckoutSession) error {
	r.mux.Lock()
	defer r.mux.Unlock()

	if stored, ok := r.sessions[session.ID]; ok && session.Version.Value <= stored.Version.Value {
		return domain.ErrSessionConflict
	}

	snapshot := *session
	snapshot.ClearEvents() // recorded events belong to the publisher, not the store
	r.sessions[session.ID] = snapshot
	return nil
}

// FindByID returns a copy of the stored session, or nil when absent
func (r *MemorySessionRepository) FindByID(ctx context.Context, id models.ID) (*domain.CheckoutSession, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	stored, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	session := stored
	return &session, nil
}

// Delete removes the session
func (r *MemorySessionRepository) Delete(ctx context.Context, id models.ID) error {
	r.mux.Lock()
	defer r.mux.Unlock()

	delete(r.sessions, id)
	return nil
}
