package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"oficina_assistant/internal/domain/entities"
)

// Seed is the initial content of an in-memory store, read from the JSON file
// named by MEMORY_SEED_FILE.
type Seed struct {
	Tenants      []entities.Tenant      `json:"tenants"`
	Customers    []entities.Customer    `json:"customers"`
	Vehicles     []entities.Vehicle     `json:"vehicles"`
	ServiceItems []entities.ServiceItem `json:"service_items"`
	Suppliers    []entities.Supplier    `json:"suppliers"`
}

func LoadSeedFile(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}
	var s Seed
	if err := json.Unmarshal(raw, &s); err != nil {
		return Seed{}, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return s, nil
}

// Apply loads the seed into db. Every row must reference a seeded tenant.
func (s Seed) Apply(db *DB) error {
	known := map[string]bool{}
	for _, t := range s.Tenants {
		if t.ID == "" {
			return fmt.Errorf("seed tenant without id")
		}
		known[t.ID] = true
	}
	check := func(kind, id, tenantID string) error {
		if !known[tenantID] {
			return fmt.Errorf("seed %s %q references unknown tenant %q", kind, id, tenantID)
		}
		return nil
	}
	for _, c := range s.Customers {
		if err := check("customer", c.ID, c.TenantID); err != nil {
			return err
		}
	}
	for _, v := range s.Vehicles {
		if err := check("vehicle", v.ID, v.TenantID); err != nil {
			return err
		}
	}
	for _, it := range s.ServiceItems {
		if err := check("service item", it.ID, it.TenantID); err != nil {
			return err
		}
	}
	for _, sp := range s.Suppliers {
		if err := check("supplier", sp.ID, sp.TenantID); err != nil {
			return err
		}
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	for _, t := range s.Tenants {
		db.tenants[t.ID] = t
	}
	db.customers = append(db.customers, s.Customers...)
	db.vehicles = append(db.vehicles, s.Vehicles...)
	db.serviceItems = append(db.serviceItems, s.ServiceItems...)
	db.suppliers = append(db.suppliers, s.Suppliers...)
	return nil
}
