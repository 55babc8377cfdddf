package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

const placeholderDescriptionLen = 80

type createQuoteArgs struct {
	CustomerID      string   `json:"customer_id"`
	VehicleID       string   `json:"vehicle_id"`
	VehicleMileage  *int     `json:"vehicle_mileage"`
	DiagnosticNotes string   `json:"diagnostic_notes"`
	SuggestedItems  []string `json:"suggested_items"`
}

// draftItem is a quote line before ids are assigned.
type draftItem struct {
	ServiceItemID *string
	Description   string
	UnitPrice     float64
	CostPrice     float64
	Quantity      int
}

// matchCatalog turns free-text suggestions into quote lines. A suggestion
// matches the first active catalog entry whose name contains it or is
// contained by it, ignoring case. Each catalog entry is used at most once;
// unmatched suggestions become zero-priced freeform lines.
func matchCatalog(suggested []string, catalog []entities.ServiceItem, notes string) []draftItem {
	used := make(map[string]bool)
	var out []draftItem
	for _, raw := range suggested {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		needle := strings.ToLower(name)

		var match *entities.ServiceItem
		for i := range catalog {
			catName := strings.ToLower(strings.TrimSpace(catalog[i].Name))
			if catName == "" {
				continue
			}
			if strings.Contains(catName, needle) || strings.Contains(needle, catName) {
				match = &catalog[i]
				break
			}
		}

		switch {
		case match == nil:
			out = append(out, draftItem{Description: name, Quantity: 1})
		case used[match.ID]:
			// already on this quote
		default:
			used[match.ID] = true
			id := match.ID
			out = append(out, draftItem{
				ServiceItemID: &id,
				Description:   match.Name,
				UnitPrice:     match.SalePrice,
				CostPrice:     match.CostPrice,
				Quantity:      1,
			})
		}
	}

	if len(out) == 0 {
		desc := truncate(strings.TrimSpace(notes), placeholderDescriptionLen)
		if desc == "" {
			desc = "Serviço a definir"
		}
		out = append(out, draftItem{Description: desc, Quantity: 1})
	}
	return out
}

func (e *Executor) createQuoteFromDiagnostic(ctx context.Context, tenantID string, raw json.RawMessage) (any, error) {
	args, bad := decodeArgs[createQuoteArgs](raw)
	if bad != nil {
		return *bad, nil
	}
	if bad := required(
		field{"customer_id", args.CustomerID},
		field{"vehicle_id", args.VehicleID},
		field{"diagnostic_notes", args.DiagnosticNotes},
	); bad != nil {
		return *bad, nil
	}

	customer, err := e.store.Customers.GetByID(ctx, tenantID, args.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer.ID == "" {
		return errorResult("customer not found"), nil
	}
	vehicle, err := e.store.Vehicles.GetByID(ctx, tenantID, args.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	if vehicle.ID == "" {
		return errorResult("vehicle not found"), nil
	}
	if vehicle.CustomerID != customer.ID {
		return errorResult("vehicle does not belong to customer"), nil
	}

	catalog, err := e.store.ServiceItems.List(ctx, tenantID, interfaces.ServiceItemFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	drafts := matchCatalog(args.SuggestedItems, catalog, args.DiagnosticNotes)

	seq, err := e.store.Quotes.NextQuoteNumber(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("next quote number: %w", err)
	}

	now := e.now().UTC()
	quoteID := e.newID()
	items := make([]entities.QuoteItem, 0, len(drafts))
	var total float64
	for _, d := range drafts {
		lineTotal := entities.RoundMoney(d.UnitPrice * float64(d.Quantity))
		total += lineTotal
		items = append(items, entities.QuoteItem{
			ID:            e.newID(),
			TenantID:      tenantID,
			QuoteID:       quoteID,
			ServiceItemID: d.ServiceItemID,
			Description:   d.Description,
			UnitPrice:     d.UnitPrice,
			CostPrice:     d.CostPrice,
			Quantity:      d.Quantity,
			Total:         lineTotal,
			CreatedAt:     now,
		})
	}
	total = entities.RoundMoney(total)

	mileage := args.VehicleMileage
	if mileage == nil {
		mileage = vehicle.Mileage
	}
	q, err := e.store.Quotes.CreateWithItems(ctx, entities.Quote{
		ID:             quoteID,
		TenantID:       tenantID,
		QuoteNumber:    entities.FormatQuoteNumber(seq),
		CustomerID:     customer.ID,
		VehicleID:      vehicle.ID,
		VehicleMileage: mileage,
		Status:         entities.QuoteStatusEmAnalise,
		ServiceDate:    e.today(),
		Subtotal:       total,
		Total:          total,
		AmountPending:  total,
		PaymentStatus:  entities.QuotePaymentPendente,
		Notes:          strings.TrimSpace(args.DiagnosticNotes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, items)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	return map[string]any{
		"created": map[string]any{"id": q.ID, "quote_number": q.QuoteNumber, "total": q.Total},
		"message": fmt.Sprintf("Orçamento %s criado para %s com %d item(ns). Total: %s.",
			q.QuoteNumber, customer.Name, len(items), formatBRL(q.Total)),
	}, nil
}
