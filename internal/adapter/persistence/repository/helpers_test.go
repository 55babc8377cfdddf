package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"oficina_assistant/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestSortAndLimit(t *testing.T) {
	rows := []int{3, 1, 2, 5, 4}
	got := sortAndLimit(rows, func(a, b int) bool { return a > b }, 3)
	if len(got) != 3 || got[0] != 5 || got[2] != 3 {
		t.Fatalf("unexpected rows %v", got)
	}
	if all := sortAndLimit([]int{2, 1}, func(a, b int) bool { return a < b }, 0); len(all) != 2 {
		t.Fatalf("limit 0 must keep everything, got %v", all)
	}
}

func TestContainsFold(t *testing.T) {
	if !containsFold("Maria Souza", " mar") {
		t.Fatalf("expected case-insensitive match")
	}
	if containsFold("João", "maria") {
		t.Fatalf("unexpected match")
	}
}

func TestIsConditionFailed(t *testing.T) {
	wrapped := fmt.Errorf("update: %w", &types.ConditionalCheckFailedException{})
	if !isConditionFailed(wrapped) {
		t.Fatalf("expected conditional check failure")
	}
	if isConditionFailed(errors.New("boom")) {
		t.Fatalf("plain error is not a conditional failure")
	}
}

func TestTenantItemConversion(t *testing.T) {
	limit := 100
	reset := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	it := tenantItem{ID: "t1", Name: "Oficina", CreditsLimit: &limit, CreditsUsed: 7, CreditsResetAt: formatTime(reset)}

	tenant := fromTenantItem(it)
	if tenant.ID != "t1" || *tenant.AICreditsLimit != 100 || tenant.AICreditsUsedThisMonth != 7 {
		t.Fatalf("unexpected tenant %+v", tenant)
	}
	if !tenant.AICreditsResetAt.Equal(reset) {
		t.Fatalf("expected reset %v, got %v", reset, tenant.AICreditsResetAt)
	}
	if formatTime(time.Time{}) != "" {
		t.Fatalf("zero time must format as empty")
	}
}

func TestParseTimeLayouts(t *testing.T) {
	want := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{
		"2026-11-01T00:00:00Z",
		"2026-11-01T00:00:00.000Z",
		"2026-11-01T00:00:00+00:00",
		"2026-10-31T21:00:00-03:00",
		"2026-11-01 00:00:00+00",
		"2026-11-01",
	} {
		if got := parseTime(raw); !got.Equal(want) {
			t.Fatalf("parseTime(%q) = %v, want %v", raw, got, want)
		}
	}
	if !parseTime("not a date").IsZero() {
		t.Fatalf("unparseable value must read as zero time")
	}
}

func TestResetGuard(t *testing.T) {
	reset := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	t.Run("stored layout is matched verbatim", func(t *testing.T) {
		for _, raw := range []string{"2026-10-01T00:00:00.000Z", "2026-10-01T00:00:00+00:00", "2026-10-01T00:00:00Z"} {
			stored := &types.AttributeValueMemberS{Value: raw}
			cond, expected, ok := resetGuard(stored, fromTenantItem(tenantItem{CreditsResetAt: raw}).AICreditsResetAt)
			if !ok || cond != "#reset_at = :expected" {
				t.Fatalf("%q: expected a guarded reset, got %q ok=%v", raw, cond, ok)
			}
			if s, _ := expected.(*types.AttributeValueMemberS); s == nil || s.Value != raw {
				t.Fatalf("%q: expected value must be the stored string, got %#v", raw, expected)
			}
		}
	})

	t.Run("unparseable value can still be reset", func(t *testing.T) {
		stored := &types.AttributeValueMemberS{Value: "garbage"}
		cond, expected, ok := resetGuard(stored, fromTenantItem(tenantItem{CreditsResetAt: "garbage"}).AICreditsResetAt)
		if !ok || cond != "#reset_at = :expected" || expected.(*types.AttributeValueMemberS).Value != "garbage" {
			t.Fatalf("unexpected guard %q %#v ok=%v", cond, expected, ok)
		}
	})

	t.Run("missing attribute", func(t *testing.T) {
		cond, expected, ok := resetGuard(nil, time.Time{})
		if !ok || cond != "attribute_not_exists(#reset_at)" || expected != nil {
			t.Fatalf("unexpected guard %q %#v ok=%v", cond, expected, ok)
		}
	})

	t.Run("already reset by another request", func(t *testing.T) {
		stored := &types.AttributeValueMemberS{Value: "2026-11-01T00:00:00Z"}
		if _, _, ok := resetGuard(stored, reset); ok {
			t.Fatalf("stale reset date must not match")
		}
		if _, _, ok := resetGuard(nil, reset); ok {
			t.Fatalf("missing attribute must not match a non-zero expectation")
		}
	})
}

func TestBillingPaymentItemConversion(t *testing.T) {
	now := time.Now().UTC()
	p := entities.BillingPayment{ID: "pay-1", TenantID: "t1", QuoteID: "q1", Amount: 150, Date: now, Status: entities.PaymentStatusAprovado, MPPayloadRaw: []byte(`{"id":1}`)}

	back := fromBillingPaymentItem(toBillingPaymentItem(p))
	if back.ID != p.ID || back.TenantID != "t1" || back.QuoteID != "q1" || back.Amount != 150 || back.Status != p.Status {
		t.Fatalf("unexpected payment %+v", back)
	}
	if !back.Date.Equal(now) || string(back.MPPayloadRaw) != `{"id":1}` {
		t.Fatalf("unexpected date/payload %+v", back)
	}
}
