package entities

import "time"

// ServiceItemType distinguishes labor from parts in the stock catalog.
type ServiceItemType string

const (
	ServiceItemTypeServico ServiceItemType = "servico"
	ServiceItemTypePeca    ServiceItemType = "peca"
)

// ServiceItem is a catalog entry (service or part) with sale and cost prices.
type ServiceItem struct {
	ID        string          `json:"id"`
	TenantID  string          `json:"tenant_id"`
	Name      string          `json:"name"`
	Type      ServiceItemType `json:"type"`
	SalePrice float64         `json:"sale_price"`
	CostPrice float64         `json:"cost_price"`
	Stock     *int            `json:"stock"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}
