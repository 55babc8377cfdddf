package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"oficina_assistant/internal/usecase/interfaces"
)

// Store groups the tenant-scoped repositories the tools read and write.
type Store struct {
	Customers    interfaces.ICustomerRepository
	Vehicles     interfaces.IVehicleRepository
	Quotes       interfaces.IQuoteRepository
	ServiceItems interfaces.IServiceItemRepository
	Reminders    interfaces.IMaintenanceReminderRepository
	Suppliers    interfaces.ISupplierRepository
}

// ToolRunner executes one tool call on behalf of a tenant. The returned value
// is always JSON-serializable; failures are reported as {"error": "..."}.
type ToolRunner interface {
	Execute(ctx context.Context, name string, args json.RawMessage, tenantID string) any
}

// Page caps keep tool results small enough for the model context.
const (
	customersPageSize    = 50
	vehiclesPageSize     = 50
	quotesPageSize       = 50
	serviceItemsPageSize = 200
	suppliersPageSize    = 100
	vehicleHistorySize   = 20
)

type toolHandler func(ctx context.Context, tenantID string, args json.RawMessage) (any, error)

// toolError is the result shape of every failed tool call.
type toolError struct {
	Error string `json:"error"`
}

func errorResult(format string, a ...any) toolError {
	return toolError{Error: fmt.Sprintf(format, a...)}
}

// IsErrorResult reports whether a tool result carries an error.
func IsErrorResult(result any) bool {
	_, ok := result.(toolError)
	return ok
}

// ExecutorConfig tunes tool execution. Location is the shop's time zone, used
// for calendar dates and month boundaries; nil means UTC.
type ExecutorConfig struct {
	ToolTimeout time.Duration
	Location    *time.Location
}

type Executor struct {
	store    Store
	log      *logrus.Entry
	timeout  time.Duration
	loc      *time.Location
	now      func() time.Time
	newID    func() string
	handlers map[string]toolHandler
}

var _ ToolRunner = (*Executor)(nil)

func NewExecutor(store Store, logger *logrus.Logger, cfg ExecutorConfig) *Executor {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	e := &Executor{
		store:   store,
		log:     logger.WithField("component", "tool_executor"),
		timeout: cfg.ToolTimeout,
		loc:     loc,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	e.handlers = map[string]toolHandler{
		ToolListCustomers:             e.listCustomers,
		ToolCreateCustomer:            e.createCustomer,
		ToolListVehicles:              e.listVehicles,
		ToolCreateVehicle:             e.createVehicle,
		ToolListQuotes:                e.listQuotes,
		ToolCreateQuoteFromDiagnostic: e.createQuoteFromDiagnostic,
		ToolListServiceItems:          e.listServiceItems,
		ToolGetDashboardStats:         e.getDashboardStats,
		ToolGetVehicleHistory:         e.getVehicleHistory,
		ToolGetDiagnosticSuggestions:  e.getDiagnosticSuggestions,
		ToolCreateMaintenanceReminder: e.createMaintenanceReminder,
		ToolListSuppliers:             e.listSuppliers,
		ToolCreateSupplier:            e.createSupplier,
	}
	return e
}

// today is the current calendar date in the shop's time zone, as UTC midnight.
func (e *Executor) today() time.Time {
	local := e.now().In(e.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Execute runs a single tool for tenantID. It never returns a Go error: the
// model receives validation and store failures as {"error": "..."}.
func (e *Executor) Execute(ctx context.Context, name string, args json.RawMessage, tenantID string) any {
	if strings.TrimSpace(tenantID) == "" {
		toolCallsTotal.WithLabelValues(metricToolName(name), "error").Inc()
		return errorResult("tenant_required")
	}
	handler, ok := e.handlers[name]
	if !ok {
		toolCallsTotal.WithLabelValues("unknown", "error").Inc()
		e.log.WithFields(logrus.Fields{"tenant_id": tenantID, "tool": name}).Warn("[assistant][executor] unknown tool")
		return errorResult("Unknown tool: %s", name)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := e.now()
	result, err := handler(ctx, tenantID, args)
	fields := logrus.Fields{"tenant_id": tenantID, "tool": name, "elapsed_ms": time.Since(start).Milliseconds()}
	if err != nil {
		toolCallsTotal.WithLabelValues(name, "error").Inc()
		e.log.WithFields(fields).WithError(err).Error("[assistant][executor] tool failed")
		return errorResult("Falha ao executar %s. Tente novamente.", name)
	}
	if IsErrorResult(result) {
		toolCallsTotal.WithLabelValues(name, "error").Inc()
		e.log.WithFields(fields).Infof("[assistant][executor] tool rejected: %s", result.(toolError).Error)
		return result
	}
	toolCallsTotal.WithLabelValues(name, "ok").Inc()
	e.log.WithFields(fields).Info("[assistant][executor] tool executed")
	return result
}

func metricToolName(name string) string {
	for _, d := range toolCatalog {
		if d.Name == name {
			return name
		}
	}
	return "unknown"
}

// decodeArgs unmarshals tool arguments. Empty input decodes to the zero value.
func decodeArgs[T any](raw json.RawMessage) (T, *toolError) {
	var out T
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		te := errorResult("invalid arguments: %v", err)
		return out, &te
	}
	return out, nil
}

type field struct{ name, value string }

// required reports the blank fields, in declaration order, as a tool error.
func required(fields ...field) *toolError {
	var absent []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			absent = append(absent, f.name)
		}
	}
	if len(absent) == 0 {
		return nil
	}
	te := errorResult("missing required fields: %s", strings.Join(absent, ", "))
	return &te
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
