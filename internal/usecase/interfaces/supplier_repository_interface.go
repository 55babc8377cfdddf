package interfaces

import (
	"context"
	"oficina_assistant/internal/domain/entities"
)

type SupplierFilter struct {
	NameContains string
	Limit        int
}

// ISupplierRepository persists suppliers ordered by name.
type ISupplierRepository interface {
	Create(ctx context.Context, s entities.Supplier) (entities.Supplier, error)
	List(ctx context.Context, tenantID string, filter SupplierFilter) ([]entities.Supplier, error)
}
