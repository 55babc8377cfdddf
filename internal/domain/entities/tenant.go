package entities

import "time"

// Tenant is an auto shop; the isolation boundary for every record.
//
// AICreditsLimit nil means the assistant is unmetered for this tenant.
type Tenant struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	AICreditsLimit         *int      `json:"ai_credits_limit"`
	AICreditsUsedThisMonth int       `json:"ai_credits_used_this_month"`
	AICreditsResetAt       time.Time `json:"ai_credits_reset_at"`
	CreatedAt              time.Time `json:"created_at"`
}

// Metered reports whether assistant usage is limited for this tenant.
func (t Tenant) Metered() bool {
	return t.AICreditsLimit != nil
}
