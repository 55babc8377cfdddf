package entities

import "time"

type Supplier struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	Document    *string   `json:"document"`
	ContactName *string   `json:"contact_name"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
