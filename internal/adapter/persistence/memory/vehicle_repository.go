package memory

import (
	"context"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

type VehicleRepository struct{ db *DB }

var _ interfaces.IVehicleRepository = (*VehicleRepository)(nil)

func NewVehicleRepository(db *DB) *VehicleRepository { return &VehicleRepository{db: db} }

func (r *VehicleRepository) Create(_ context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.vehicles = append(r.db.vehicles, v)
	return v, nil
}

func (r *VehicleRepository) GetByID(_ context.Context, tenantID, id string) (entities.Vehicle, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	for _, v := range r.db.vehicles {
		if v.TenantID == tenantID && v.ID == id {
			return v, nil
		}
	}
	return entities.Vehicle{}, nil
}

func (r *VehicleRepository) List(_ context.Context, tenantID string, f interfaces.VehicleFilter) ([]entities.Vehicle, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	rows := filter(r.db.vehicles, func(v entities.Vehicle) bool {
		return v.TenantID == tenantID &&
			(f.CustomerID == "" || v.CustomerID == f.CustomerID) &&
			(f.PlateContains == "" || containsFold(v.Plate, f.PlateContains))
	})
	sortBy(rows, func(a, b entities.Vehicle) bool { return a.CreatedAt.After(b.CreatedAt) })
	return limit(rows, f.Limit), nil
}
