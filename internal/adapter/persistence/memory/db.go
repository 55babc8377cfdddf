// Package memory keeps every repository in process memory. It backs the
// STORAGE_DRIVER=memory mode and the use-case test suites.
package memory

import (
	"sort"
	"strings"
	"sync"

	"oficina_assistant/internal/domain/entities"
)

// DB holds all tables behind a single lock, so multi-row writes are atomic.
type DB struct {
	mu sync.RWMutex

	tenants      map[string]entities.Tenant
	customers    []entities.Customer
	vehicles     []entities.Vehicle
	quotes       []entities.Quote
	quoteItems   []entities.QuoteItem
	quoteSeq     map[string]int
	serviceItems []entities.ServiceItem
	reminders    []entities.MaintenanceReminder
	suppliers    []entities.Supplier
	payments     []entities.BillingPayment
}

func NewDB() *DB {
	return &DB{
		tenants:  map[string]entities.Tenant{},
		quoteSeq: map[string]int{},
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func sortBy[T any](rows []T, less func(a, b T) bool) {
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
}
