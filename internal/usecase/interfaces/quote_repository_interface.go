package interfaces

import (
	"context"
	"oficina_assistant/internal/domain/entities"
)

type QuoteFilter struct {
	CustomerID string
	VehicleID  string
	Status     entities.QuoteStatus
	Limit      int
}

// IQuoteRepository persists quotes together with their items.
//
// A quote and its items are written as one unit (CreateWithItems) so a
// failure never leaves a quote with fewer items than intended.
//
//go:generate mockgen -source=quote_repository_interface.go -destination=mocks/quote_repository_mock.go -package=mock_interfaces

type IQuoteRepository interface {
	NextQuoteNumber(ctx context.Context, tenantID string) (int, error)
	CreateWithItems(ctx context.Context, q entities.Quote, items []entities.QuoteItem) (entities.Quote, error)
	GetByID(ctx context.Context, tenantID, id string) (entities.Quote, error)
	// List orders by created_at descending.
	List(ctx context.Context, tenantID string, filter QuoteFilter) ([]entities.Quote, error)
	// ListByVehicle orders by service_date descending.
	ListByVehicle(ctx context.Context, tenantID, vehicleID string, limit int) ([]entities.Quote, error)
	ListItems(ctx context.Context, tenantID, quoteID string) ([]entities.QuoteItem, error)
	UpdatePayment(ctx context.Context, q entities.Quote) (entities.Quote, error)
}
