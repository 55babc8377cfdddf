package memory

import (
	"context"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

type ServiceItemRepository struct{ db *DB }

var _ interfaces.IServiceItemRepository = (*ServiceItemRepository)(nil)

func NewServiceItemRepository(db *DB) *ServiceItemRepository {
	return &ServiceItemRepository{db: db}
}

func (r *ServiceItemRepository) Create(_ context.Context, s entities.ServiceItem) (entities.ServiceItem, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.serviceItems = append(r.db.serviceItems, s)
	return s, nil
}

func (r *ServiceItemRepository) List(_ context.Context, tenantID string, f interfaces.ServiceItemFilter) ([]entities.ServiceItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rows := filter(r.db.serviceItems, func(s entities.ServiceItem) bool {
		return s.TenantID == tenantID &&
			(!f.ActiveOnly || s.IsActive) &&
			(f.Type == "" || s.Type == f.Type) &&
			(f.NameContains == "" || containsFold(s.Name, f.NameContains))
	})
	sortBy(rows, func(a, b entities.ServiceItem) bool { return a.Name < b.Name })
	return limit(rows, f.Limit), nil
}

type SupplierRepository struct{ db *DB }

var _ interfaces.ISupplierRepository = (*SupplierRepository)(nil)

func NewSupplierRepository(db *DB) *SupplierRepository { return &SupplierRepository{db: db} }

func (r *SupplierRepository) Create(_ context.Context, s entities.Supplier) (entities.Supplier, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.suppliers = append(r.db.suppliers, s)
	return s, nil
}

func (r *SupplierRepository) List(_ context.Context, tenantID string, f interfaces.SupplierFilter) ([]entities.Supplier, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rows := filter(r.db.suppliers, func(s entities.Supplier) bool {
		return s.TenantID == tenantID && (f.NameContains == "" || containsFold(s.Name, f.NameContains))
	})
	sortBy(rows, func(a, b entities.Supplier) bool { return a.Name < b.Name })
	return limit(rows, f.Limit), nil
}

type MaintenanceReminderRepository struct{ db *DB }

var _ interfaces.IMaintenanceReminderRepository = (*MaintenanceReminderRepository)(nil)

func NewMaintenanceReminderRepository(db *DB) *MaintenanceReminderRepository {
	return &MaintenanceReminderRepository{db: db}
}

func (r *MaintenanceReminderRepository) Create(_ context.Context, m entities.MaintenanceReminder) (entities.MaintenanceReminder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.reminders = append(r.db.reminders, m)
	return m, nil
}

// ListByTenant returns every reminder of a tenant; used by tests.
func (r *MaintenanceReminderRepository) ListByTenant(tenantID string) []entities.MaintenanceReminder {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return filter(r.db.reminders, func(m entities.MaintenanceReminder) bool { return m.TenantID == tenantID })
}

type BillingPaymentRepository struct{ db *DB }

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentRepository)(nil)

func NewBillingPaymentRepository(db *DB) *BillingPaymentRepository {
	return &BillingPaymentRepository{db: db}
}

func (r *BillingPaymentRepository) Create(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.payments = append(r.db.payments, p)
	return p, nil
}

func (r *BillingPaymentRepository) ListByQuoteID(_ context.Context, tenantID, quoteID string) ([]entities.BillingPayment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return filter(r.db.payments, func(p entities.BillingPayment) bool {
		return p.TenantID == tenantID && p.QuoteID == quoteID
	}), nil
}
