package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"oficina_assistant/internal/usecase/interfaces"
)

var ErrTenantNotFound = errors.New("tenant not found")

// CreditCheck is the outcome of one metering attempt. Limit is nil for
// unmetered tenants.
type CreditCheck struct {
	Allowed    bool
	Used       int
	Limit      *int
	TenantName string
}

// UsageMeter enforces the monthly AI credit allowance, one credit per chat
// request.
type UsageMeter struct {
	tenants interfaces.ITenantRepository
	log     *logrus.Entry
	now     func() time.Time
}

func NewUsageMeter(tenants interfaces.ITenantRepository, logger *logrus.Logger) *UsageMeter {
	return &UsageMeter{
		tenants: tenants,
		log:     logger.WithField("component", "usage_meter"),
		now:     time.Now,
	}
}

// CheckAndConsume resets the counter when the reset date has passed and then
// takes one credit if any is left.
func (m *UsageMeter) CheckAndConsume(ctx context.Context, tenantID string) (CreditCheck, error) {
	t, err := m.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return CreditCheck{}, fmt.Errorf("get tenant: %w", err)
	}
	if t.ID == "" {
		return CreditCheck{}, ErrTenantNotFound
	}
	if !t.Metered() {
		creditDecisionsTotal.WithLabelValues("unmetered").Inc()
		return CreditCheck{Allowed: true, Used: t.AICreditsUsedThisMonth, TenantName: t.Name}, nil
	}
	limit := *t.AICreditsLimit

	now := m.now().UTC()
	if !now.Before(t.AICreditsResetAt) {
		next := firstOfNextMonth(now)
		reset, err := m.tenants.ResetCredits(ctx, t.ID, t.AICreditsResetAt, next)
		if err != nil {
			return CreditCheck{}, fmt.Errorf("reset credits: %w", err)
		}
		if reset {
			m.log.WithFields(logrus.Fields{"tenant_id": t.ID, "next_reset_at": next}).Info("[assistant][usage] monthly credits reset")
		}
	}

	used, ok, err := m.tenants.ConsumeCredit(ctx, t.ID, limit)
	if err != nil {
		return CreditCheck{}, fmt.Errorf("consume credit: %w", err)
	}
	if !ok {
		creditDecisionsTotal.WithLabelValues("denied").Inc()
		m.log.WithFields(logrus.Fields{"tenant_id": t.ID, "used": used, "limit": limit}).Info("[assistant][usage] credit limit reached")
		return CreditCheck{Allowed: false, Used: used, Limit: &limit, TenantName: t.Name}, nil
	}
	creditDecisionsTotal.WithLabelValues("allowed").Inc()
	return CreditCheck{Allowed: true, Used: used, Limit: &limit, TenantName: t.Name}, nil
}

func firstOfNextMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}
