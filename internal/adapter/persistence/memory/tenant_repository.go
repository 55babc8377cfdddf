package memory

import (
	"context"
	"time"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

type TenantRepository struct{ db *DB }

var _ interfaces.ITenantRepository = (*TenantRepository)(nil)

func NewTenantRepository(db *DB) *TenantRepository { return &TenantRepository{db: db} }

// Put inserts or replaces a tenant.
func (r *TenantRepository) Put(t entities.Tenant) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.tenants[t.ID] = t
}

func (r *TenantRepository) GetByID(_ context.Context, id string) (entities.Tenant, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return r.db.tenants[id], nil
}

func (r *TenantRepository) ResetCredits(_ context.Context, id string, expectedResetAt, nextResetAt time.Time) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tenants[id]
	if !ok || !t.AICreditsResetAt.Equal(expectedResetAt) {
		return false, nil
	}
	t.AICreditsUsedThisMonth = 0
	t.AICreditsResetAt = nextResetAt
	r.db.tenants[id] = t
	return true, nil
}

func (r *TenantRepository) ConsumeCredit(_ context.Context, id string, limit int) (int, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tenants[id]
	if !ok {
		return 0, false, nil
	}
	if t.AICreditsUsedThisMonth >= limit {
		return t.AICreditsUsedThisMonth, false, nil
	}
	t.AICreditsUsedThisMonth++
	r.db.tenants[id] = t
	return t.AICreditsUsedThisMonth, true, nil
}
