package interfaces

import (
	"context"
	"oficina_assistant/internal/domain/entities"
	"time"
)

// ITenantRepository reads tenants and maintains their monthly AI credit
// counter. Credit mutations are conditional so that concurrent requests
// from the same tenant cannot under-count.
//
//go:generate mockgen -source=tenant_repository_interface.go -destination=mocks/tenant_repository_mock.go -package=mock_interfaces

type ITenantRepository interface {
	GetByID(ctx context.Context, id string) (entities.Tenant, error)
	// ResetCredits zeroes the counter and moves the reset date to nextResetAt,
	// only if the stored reset date still equals expectedResetAt. It reports
	// whether this call performed the reset.
	ResetCredits(ctx context.Context, id string, expectedResetAt, nextResetAt time.Time) (bool, error)
	// ConsumeCredit increments the counter only while it is below limit and
	// returns the counter after the attempt.
	ConsumeCredit(ctx context.Context, id string, limit int) (used int, ok bool, err error)
}
