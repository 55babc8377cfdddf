package interfaces

import (
	"context"
	"oficina_assistant/internal/domain/entities"
)

// IBillingPaymentRepository abstracts persistence for BillingPayment.
//
//go:generate mockgen -source=billing_payment_repository_interface.go -destination=mocks/billing_payment_repository_mock.go -package=mock_interfaces

type IBillingPaymentRepository interface {
	Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
	ListByQuoteID(ctx context.Context, tenantID, quoteID string) ([]entities.BillingPayment, error)
}
