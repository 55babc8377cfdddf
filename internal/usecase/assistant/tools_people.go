package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

type searchNameArgs struct {
	SearchName string `json:"search_name"`
}

func (e *Executor) listCustomers(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[searchNameArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	rows, err := e.store.Customers.List(ctx, tenantID, interfaces.CustomerFilter{
		NameContains: strings.TrimSpace(args.SearchName),
		Limit:        customersPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return map[string]any{"customers": rows, "count": len(rows)}, nil
}

type createCustomerArgs struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email"`
	Document *string `json:"document"`
	Address  *string `json:"address"`
	Notes    *string `json:"notes"`
}

func (e *Executor) createCustomer(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[createCustomerArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	if bad := required(field{"name", args.Name}, field{"phone", args.Phone}); bad != nil {
		return *bad, nil
	}

	c, err := e.store.Customers.Create(ctx, entities.Customer{
		ID:        e.newID(),
		TenantID:  tenantID,
		Name:      strings.TrimSpace(args.Name),
		Phone:     strings.TrimSpace(args.Phone),
		Email:     optional(args.Email),
		Document:  optional(args.Document),
		Address:   optional(args.Address),
		Notes:     optional(args.Notes),
		CreatedAt: e.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return map[string]any{
		"created": map[string]any{"id": c.ID, "name": c.Name, "phone": c.Phone},
		"message": fmt.Sprintf("Cliente %s cadastrado com sucesso.", c.Name),
	}, nil
}

type listVehiclesArgs struct {
	CustomerID  string `json:"customer_id"`
	SearchPlate string `json:"search_plate"`
}

func (e *Executor) listVehicles(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[listVehiclesArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	rows, err := e.store.Vehicles.List(ctx, tenantID, interfaces.VehicleFilter{
		CustomerID:    strings.TrimSpace(args.CustomerID),
		PlateContains: strings.TrimSpace(args.SearchPlate),
		Limit:         vehiclesPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return map[string]any{"vehicles": rows, "count": len(rows)}, nil
}

type createVehicleArgs struct {
	CustomerID string  `json:"customer_id"`
	Plate      string  `json:"plate"`
	Brand      string  `json:"brand"`
	Model      string  `json:"model"`
	Year       *int    `json:"year"`
	Color      *string `json:"color"`
	Mileage    *int    `json:"mileage"`
}

func (e *Executor) createVehicle(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[createVehicleArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	if bad := required(
		field{"customer_id", args.CustomerID},
		field{"plate", args.Plate},
		field{"brand", args.Brand},
		field{"model", args.Model},
	); bad != nil {
		return *bad, nil
	}

	owner, err := e.store.Customers.GetByID(ctx, tenantID, args.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if owner.ID == "" {
		return errorResult("customer not found"), nil
	}

	v, err := e.store.Vehicles.Create(ctx, entities.Vehicle{
		ID:         e.newID(),
		TenantID:   tenantID,
		CustomerID: owner.ID,
		Plate:      strings.ToUpper(strings.TrimSpace(args.Plate)),
		Brand:      strings.TrimSpace(args.Brand),
		Model:      strings.TrimSpace(args.Model),
		Year:       args.Year,
		Color:      optional(args.Color),
		Mileage:    args.Mileage,
		CreatedAt:  e.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return map[string]any{
		"created": map[string]any{"id": v.ID, "plate": v.Plate, "brand": v.Brand, "model": v.Model},
		"message": fmt.Sprintf("Veículo %s %s (%s) cadastrado para %s.", v.Brand, v.Model, v.Plate, owner.Name),
	}, nil
}

func (e *Executor) listSuppliers(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[searchNameArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	rows, err := e.store.Suppliers.List(ctx, tenantID, interfaces.SupplierFilter{
		NameContains: strings.TrimSpace(args.SearchName),
		Limit:        suppliersPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return map[string]any{"suppliers": rows, "count": len(rows)}, nil
}

type createSupplierArgs struct {
	Name        string  `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Document    *string `json:"document"`
	ContactName *string `json:"contact_name"`
	Notes       *string `json:"notes"`
}

func (e *Executor) createSupplier(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[createSupplierArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	if bad := required(field{"name", args.Name}); bad != nil {
		return *bad, nil
	}
	s, err := e.store.Suppliers.Create(ctx, entities.Supplier{
		ID:          e.newID(),
		TenantID:    tenantID,
		Name:        strings.TrimSpace(args.Name),
		Phone:       optional(args.Phone),
		Email:       optional(args.Email),
		Document:    optional(args.Document),
		ContactName: optional(args.ContactName),
		Notes:       optional(args.Notes),
		CreatedAt:   e.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return map[string]any{
		"created": map[string]any{"id": s.ID, "name": s.Name},
		"message": fmt.Sprintf("Fornecedor %s cadastrado com sucesso.", s.Name),
	}, nil
}
