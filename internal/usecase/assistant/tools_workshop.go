package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"oficina_assistant/internal/domain/diagnostics"
	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

type listQuotesArgs struct {
	CustomerID string `json:"customer_id"`
	VehicleID  string `json:"vehicle_id"`
	Status     string `json:"status"`
}

func (e *Executor) listQuotes(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[listQuotesArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	rows, err := e.store.Quotes.List(ctx, tenantID, interfaces.QuoteFilter{
		CustomerID: strings.TrimSpace(args.CustomerID),
		VehicleID:  strings.TrimSpace(args.VehicleID),
		Status:     entities.QuoteStatus(strings.TrimSpace(args.Status)),
		Limit:      quotesPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return map[string]any{"quotes": rows, "count": len(rows)}, nil
}

type listServiceItemsArgs struct {
	SearchName string `json:"search_name"`
	Type       string `json:"type"`
}

func (e *Executor) listServiceItems(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[listServiceItemsArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	rows, err := e.store.ServiceItems.List(ctx, tenantID, interfaces.ServiceItemFilter{
		NameContains: strings.TrimSpace(args.SearchName),
		Type:         entities.ServiceItemType(strings.TrimSpace(args.Type)),
		Limit:        serviceItemsPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list service items: %w", err)
	}
	return map[string]any{"service_items": rows, "count": len(rows)}, nil
}

// DashboardStats summarizes the current calendar month.
type DashboardStats struct {
	Month          string         `json:"month"`
	Revenue        float64        `json:"revenue"`
	PendingPayment float64        `json:"pending_payment"`
	QuotesByStatus map[string]int `json:"quotes_by_status"`
	TotalQuotes    int            `json:"total_quotes"`
}

func (e *Executor) getDashboardStats(ctx context.Context, tenantID string, _ json.RawMessage) (any, error) {
	quotes, err := e.store.Quotes.List(ctx, tenantID, interfaces.QuoteFilter{})
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	now := e.now().In(e.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, e.loc)
	stats := DashboardStats{
		Month: monthStart.Format("2006-01"),
		QuotesByStatus: map[string]int{
			string(entities.QuoteStatusEmAnalise): 0,
			string(entities.QuoteStatusAprovada):  0,
			string(entities.QuoteStatusRecusada):  0,
			string(entities.QuoteStatusConcluida): 0,
		},
		TotalQuotes: len(quotes),
	}
	for _, q := range quotes {
		stats.QuotesByStatus[string(q.Status)]++
		if q.Status != entities.QuoteStatusConcluida || q.CreatedAt.Before(monthStart) {
			continue
		}
		stats.Revenue += q.AmountPaid
		stats.PendingPayment += q.AmountPending
	}
	stats.Revenue = entities.RoundMoney(stats.Revenue)
	stats.PendingPayment = entities.RoundMoney(stats.PendingPayment)
	return stats, nil
}

type vehicleIDArgs struct {
	VehicleID string `json:"vehicle_id"`
}

func (e *Executor) getVehicleHistory(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[vehicleIDArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	if bad := required(field{"vehicle_id", args.VehicleID}); bad != nil {
		return *bad, nil
	}
	v, err := e.store.Vehicles.GetByID(ctx, tenantID, args.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	if v.ID == "" {
		return errorResult("vehicle not found"), nil
	}
	quotes, err := e.store.Quotes.ListByVehicle(ctx, tenantID, v.ID, vehicleHistorySize)
	if err != nil {
		return nil, fmt.Errorf("list vehicle quotes: %w", err)
	}
	return map[string]any{"vehicle": v, "quotes": quotes}, nil
}

type symptomsArgs struct {
	Symptoms string `json:"symptoms"`
}

func (e *Executor) getDiagnosticSuggestions(_ context.Context, _ string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[symptomsArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	if bad := required(field{"symptoms", args.Symptoms}); bad != nil {
		return *bad, nil
	}
	return diagnostics.Lookup(args.Symptoms), nil
}

type createReminderArgs struct {
	CustomerID   string  `json:"customer_id"`
	VehicleID    string  `json:"vehicle_id"`
	ServiceName  string  `json:"service_name"`
	ReminderType string  `json:"reminder_type"`
	DueDate      *string `json:"due_date"`
	DueMileage   *int    `json:"due_mileage"`
	Notes        *string `json:"notes"`
}

func (e *Executor) createMaintenanceReminder(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[createReminderArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	if bad := required(
		field{"customer_id", args.CustomerID},
		field{"vehicle_id", args.VehicleID},
		field{"service_name", args.ServiceName},
		field{"reminder_type", args.ReminderType},
	); bad != nil {
		return *bad, nil
	}

	reminderType := strings.TrimSpace(args.ReminderType)
	if reminderType != entities.ReminderTypeData && reminderType != entities.ReminderTypeQuilometragem {
		return errorResult("invalid reminder_type %q, expected %s or %s", reminderType, entities.ReminderTypeData, entities.ReminderTypeQuilometragem), nil
	}

	var due *time.Time
	if d := optional(args.DueDate); d != nil {
		parsed, err := time.Parse("2006-01-02", *d)
		if err != nil {
			return errorResult("invalid due_date %q, expected YYYY-MM-DD", *d), nil
		}
		due = &parsed
	}

	customer, err := e.store.Customers.GetByID(ctx, tenantID, args.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer.ID == "" {
		return errorResult("customer not found"), nil
	}
	v, err := e.store.Vehicles.GetByID(ctx, tenantID, args.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	if v.ID == "" {
		return errorResult("vehicle not found"), nil
	}
	if v.CustomerID != customer.ID {
		return errorResult("vehicle does not belong to customer"), nil
	}

	r, err := e.store.Reminders.Create(ctx, entities.MaintenanceReminder{
		ID:           e.newID(),
		TenantID:     tenantID,
		CustomerID:   customer.ID,
		VehicleID:    v.ID,
		ServiceName:  strings.TrimSpace(args.ServiceName),
		ReminderType: reminderType,
		DueDate:      due,
		DueMileage:   args.DueMileage,
		Notes:        optional(args.Notes),
		Status:       entities.ReminderStatusPendente,
		CreatedAt:    e.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return map[string]any{
		"created": map[string]any{"id": r.ID, "service_name": r.ServiceName, "status": r.Status},
		"message": fmt.Sprintf("Lembrete de %s agendado para o veículo %s.", r.ServiceName, v.Plate),
	}, nil
}
