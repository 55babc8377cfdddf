package repository

import (
	"context"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	defaultServiceItemsTableName = "service_items"
	defaultSuppliersTableName    = "suppliers"
	defaultRemindersTableName    = "maintenance_reminders"
)

type ServiceItemDynamoRepository struct {
	table tenantTable
}

var _ interfaces.IServiceItemRepository = (*ServiceItemDynamoRepository)(nil)

func NewServiceItemDynamoRepository(ddb *dynamodb.Client) *ServiceItemDynamoRepository {
	return &ServiceItemDynamoRepository{table: tenantTable{ddb: ddb, name: getenvDefault("SERVICE_ITEMS_TABLE", defaultServiceItemsTableName)}}
}

func (r *ServiceItemDynamoRepository) Create(ctx context.Context, s entities.ServiceItem) (entities.ServiceItem, error) {
	if err := r.table.put(ctx, s); err != nil {
		return entities.ServiceItem{}, err
	}
	return s, nil
}

func (r *ServiceItemDynamoRepository) List(ctx context.Context, tenantID string, f interfaces.ServiceItemFilter) ([]entities.ServiceItem, error) {
	var rows []entities.ServiceItem
	if err := r.table.queryTenant(ctx, tenantID, "", nil, nil, &rows); err != nil {
		return nil, err
	}
	rows = keep(rows, func(s entities.ServiceItem) bool {
		return (!f.ActiveOnly || s.IsActive) &&
			(f.Type == "" || s.Type == f.Type) &&
			(f.NameContains == "" || containsFold(s.Name, f.NameContains))
	})
	return sortAndLimit(rows, func(a, b entities.ServiceItem) bool { return a.Name < b.Name }, f.Limit), nil
}

type SupplierDynamoRepository struct {
	table tenantTable
}

var _ interfaces.ISupplierRepository = (*SupplierDynamoRepository)(nil)

func NewSupplierDynamoRepository(ddb *dynamodb.Client) *SupplierDynamoRepository {
	return &SupplierDynamoRepository{table: tenantTable{ddb: ddb, name: getenvDefault("SUPPLIERS_TABLE", defaultSuppliersTableName)}}
}

func (r *SupplierDynamoRepository) Create(ctx context.Context, s entities.Supplier) (entities.Supplier, error) {
	if err := r.table.put(ctx, s); err != nil {
		return entities.Supplier{}, err
	}
	return s, nil
}

func (r *SupplierDynamoRepository) List(ctx context.Context, tenantID string, f interfaces.SupplierFilter) ([]entities.Supplier, error) {
	var rows []entities.Supplier
	if err := r.table.queryTenant(ctx, tenantID, "", nil, nil, &rows); err != nil {
		return nil, err
	}
	rows = keep(rows, func(s entities.Supplier) bool {
		return f.NameContains == "" || containsFold(s.Name, f.NameContains)
	})
	return sortAndLimit(rows, func(a, b entities.Supplier) bool { return a.Name < b.Name }, f.Limit), nil
}

type MaintenanceReminderDynamoRepository struct {
	table tenantTable
}

var _ interfaces.IMaintenanceReminderRepository = (*MaintenanceReminderDynamoRepository)(nil)

func NewMaintenanceReminderDynamoRepository(ddb *dynamodb.Client) *MaintenanceReminderDynamoRepository {
	return &MaintenanceReminderDynamoRepository{table: tenantTable{ddb: ddb, name: getenvDefault("MAINTENANCE_REMINDERS_TABLE", defaultRemindersTableName)}}
}

func (r *MaintenanceReminderDynamoRepository) Create(ctx context.Context, m entities.MaintenanceReminder) (entities.MaintenanceReminder, error) {
	if err := r.table.put(ctx, m); err != nil {
		return entities.MaintenanceReminder{}, err
	}
	return m, nil
}
