package interfaces

import (
	"context"
	"oficina_assistant/internal/domain/entities"
)

type IMaintenanceReminderRepository interface {
	Create(ctx context.Context, r entities.MaintenanceReminder) (entities.MaintenanceReminder, error)
}
