package interfaces

import (
	"context"
	"oficina_assistant/internal/domain/entities"
)

type VehicleFilter struct {
	CustomerID    string
	PlateContains string
	Limit         int
}

// IVehicleRepository persists vehicles, newest first.
type IVehicleRepository interface {
	Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error)
	GetByID(ctx context.Context, tenantID, id string) (entities.Vehicle, error)
	List(ctx context.Context, tenantID string, filter VehicleFilter) ([]entities.Vehicle, error)
}
