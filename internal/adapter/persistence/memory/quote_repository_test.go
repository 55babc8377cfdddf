package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

func TestQuoteRepository_CreateWithItemsIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	items := NewServiceItemRepository(db)
	quotes := NewQuoteRepository(db)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	if _, err := items.Create(ctx, entities.ServiceItem{ID: "own", TenantID: "T1", Name: "Troca de óleo", IsActive: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := items.Create(ctx, entities.ServiceItem{ID: "foreign", TenantID: "T2", Name: "Alinhamento", IsActive: true}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	own, foreign := "own", "foreign"
	q := entities.Quote{ID: "q1", TenantID: "T1", QuoteNumber: "COT-000001", Total: 150, AmountPending: 150, CreatedAt: now}
	lines := []entities.QuoteItem{
		{ID: "i1", TenantID: "T1", QuoteID: "q1", ServiceItemID: &own, Quantity: 1, UnitPrice: 150},
		{ID: "i2", TenantID: "T1", QuoteID: "q1", ServiceItemID: &foreign, Quantity: 1},
	}

	if _, err := quotes.CreateWithItems(ctx, q, lines); !errors.Is(err, ErrForeignServiceItem) {
		t.Fatalf("expected ErrForeignServiceItem, got %v", err)
	}
	if rows, _ := quotes.List(ctx, "T1", interfaces.QuoteFilter{}); len(rows) != 0 {
		t.Fatalf("quote must not be stored, got %+v", rows)
	}
	if rows, _ := quotes.ListItems(ctx, "T1", "q1"); len(rows) != 0 {
		t.Fatalf("items must not be stored, got %+v", rows)
	}

	if _, err := quotes.CreateWithItems(ctx, q, lines[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows, _ := quotes.ListItems(ctx, "T1", "q1"); len(rows) != 1 {
		t.Fatalf("expected one stored item, got %+v", rows)
	}
}
