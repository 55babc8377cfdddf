package entities

import "time"

type ReminderStatus string

const (
	ReminderStatusPendente  ReminderStatus = "pendente"
	ReminderStatusEnviado   ReminderStatus = "enviado"
	ReminderStatusConcluido ReminderStatus = "concluido"
)

const (
	ReminderTypeData          = "data"
	ReminderTypeQuilometragem = "quilometragem"
)

// MaintenanceReminder schedules a follow-up service for a customer's vehicle,
// either by date or by mileage depending on ReminderType.
type MaintenanceReminder struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenant_id"`
	CustomerID   string         `json:"customer_id"`
	VehicleID    string         `json:"vehicle_id"`
	ServiceName  string         `json:"service_name"`
	ReminderType string         `json:"reminder_type"`
	DueDate      *time.Time     `json:"due_date"`
	DueMileage   *int           `json:"due_mileage"`
	Notes        *string        `json:"notes"`
	Status       ReminderStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
}
