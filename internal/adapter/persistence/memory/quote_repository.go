package memory

import (
	"context"
	"errors"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

// ErrForeignServiceItem is returned when an item references a catalog entry
// of another tenant.
var ErrForeignServiceItem = errors.New("service item does not belong to tenant")

type QuoteRepository struct{ db *DB }

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository(db *DB) *QuoteRepository { return &QuoteRepository{db: db} }

func (r *QuoteRepository) NextQuoteNumber(_ context.Context, tenantID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.quoteSeq[tenantID]; !ok {
		// seed from existing rows, like the counter table is seeded lazily
		for _, q := range r.db.quotes {
			if q.TenantID == tenantID {
				r.db.quoteSeq[tenantID]++
			}
		}
	}
	r.db.quoteSeq[tenantID]++
	return r.db.quoteSeq[tenantID], nil
}

func (r *QuoteRepository) CreateWithItems(_ context.Context, q entities.Quote, items []entities.QuoteItem) (entities.Quote, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, it := range items {
		if it.ServiceItemID == nil {
			continue
		}
		found := false
		for _, s := range r.db.serviceItems {
			if s.ID == *it.ServiceItemID && s.TenantID == q.TenantID {
				found = true
				break
			}
		}
		if !found {
			return entities.Quote{}, ErrForeignServiceItem
		}
	}
	r.db.quotes = append(r.db.quotes, q)
	r.db.quoteItems = append(r.db.quoteItems, items...)
	return q, nil
}

func (r *QuoteRepository) GetByID(_ context.Context, tenantID, id string) (entities.Quote, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, q := range r.db.quotes {
		if q.TenantID == tenantID && q.ID == id {
			return q, nil
		}
	}
	return entities.Quote{}, nil
}

func (r *QuoteRepository) List(_ context.Context, tenantID string, f interfaces.QuoteFilter) ([]entities.Quote, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rows := filter(r.db.quotes, func(q entities.Quote) bool {
		return q.TenantID == tenantID &&
			(f.CustomerID == "" || q.CustomerID == f.CustomerID) &&
			(f.VehicleID == "" || q.VehicleID == f.VehicleID) &&
			(f.Status == "" || q.Status == f.Status)
	})
	sortBy(rows, func(a, b entities.Quote) bool { return a.CreatedAt.After(b.CreatedAt) })
	return limit(rows, f.Limit), nil
}

func (r *QuoteRepository) ListByVehicle(_ context.Context, tenantID, vehicleID string, n int) ([]entities.Quote, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rows := filter(r.db.quotes, func(q entities.Quote) bool {
		return q.TenantID == tenantID && q.VehicleID == vehicleID
	})
	sortBy(rows, func(a, b entities.Quote) bool { return a.ServiceDate.After(b.ServiceDate) })
	return limit(rows, n), nil
}

func (r *QuoteRepository) ListItems(_ context.Context, tenantID, quoteID string) ([]entities.QuoteItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return filter(r.db.quoteItems, func(it entities.QuoteItem) bool {
		return it.TenantID == tenantID && it.QuoteID == quoteID
	}), nil
}

func (r *QuoteRepository) UpdatePayment(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, existing := range r.db.quotes {
		if existing.TenantID == q.TenantID && existing.ID == q.ID {
			existing.AmountPaid = q.AmountPaid
			existing.AmountPending = q.AmountPending
			existing.PaymentStatus = q.PaymentStatus
			existing.UpdatedAt = q.UpdatedAt
			r.db.quotes[i] = existing
			return existing, nil
		}
	}
	return entities.Quote{}, nil
}
