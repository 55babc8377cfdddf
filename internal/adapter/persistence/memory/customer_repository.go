package memory

import (
	"context"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

type CustomerRepository struct{ db *DB }

var _ interfaces.ICustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db *DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(_ context.Context, c entities.Customer) (entities.Customer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.customers = append(r.db.customers, c)
	return c, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, tenantID, id string) (entities.Customer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, c := range r.db.customers {
		if c.TenantID == tenantID && c.ID == id {
			return c, nil
		}
	}
	return entities.Customer{}, nil
}

func (r *CustomerRepository) List(_ context.Context, tenantID string, f interfaces.CustomerFilter) ([]entities.Customer, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rows := filter(r.db.customers, func(c entities.Customer) bool {
		return c.TenantID == tenantID && (f.NameContains == "" || containsFold(c.Name, f.NameContains))
	})
	sortBy(rows, func(a, b entities.Customer) bool { return a.CreatedAt.After(b.CreatedAt) })
	return limit(rows, f.Limit), nil
}
