package interfaces

import (
	"context"
	"oficina_assistant/internal/domain/entities"
)

type ServiceItemFilter struct {
	NameContains string
	Type         entities.ServiceItemType
	ActiveOnly   bool
	Limit        int
}

// IServiceItemRepository exposes the stock catalog ordered by name.
type IServiceItemRepository interface {
	Create(ctx context.Context, s entities.ServiceItem) (entities.ServiceItem, error)
	List(ctx context.Context, tenantID string, filter ServiceItemFilter) ([]entities.ServiceItem, error)
}
