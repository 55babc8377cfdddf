package entities

import "time"

// Vehicle belongs to a customer. Plate is stored upper-cased.
type Vehicle struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	CustomerID string    `json:"customer_id"`
	Plate      string    `json:"plate"`
	Brand      string    `json:"brand"`
	Model      string    `json:"model"`
	Year       *int      `json:"year"`
	Color      *string   `json:"color"`
	Mileage    *int      `json:"mileage"`
	CreatedAt  time.Time `json:"created_at"`
}
