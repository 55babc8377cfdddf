package interfaces

import (
	"context"
	"oficina_assistant/internal/domain/entities"
)

// CustomerFilter narrows a tenant's customers. NameContains is matched
// case-insensitively; Limit <= 0 means no limit.
type CustomerFilter struct {
	NameContains string
	Limit        int
}

// ICustomerRepository persists customers. Every read is scoped by tenant and
// results are ordered newest first.
type ICustomerRepository interface {
	Create(ctx context.Context, c entities.Customer) (entities.Customer, error)
	GetByID(ctx context.Context, tenantID, id string) (entities.Customer, error)
	List(ctx context.Context, tenantID string, filter CustomerFilter) ([]entities.Customer, error)
}
