package repository

import (
	"context"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultCustomersTableName = "customers"

// CustomerDynamoRepository persists customers.
//
// Table requirements:
//   - PK: tenant_id (string), SK: id (string)
type CustomerDynamoRepository struct {
	table tenantTable
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb *dynamodb.Client) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{table: tenantTable{ddb: ddb, name: getenvDefault("CUSTOMERS_TABLE", defaultCustomersTableName)}}
}

func (r *CustomerDynamoRepository) Create(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	if err := r.table.put(ctx, c); err != nil {
		return entities.Customer{}, err
	}
	return c, nil
}

func (r *CustomerDynamoRepository) GetByID(ctx context.Context, tenantID, id string) (entities.Customer, error) {
	var c entities.Customer
	if _, err := r.table.get(ctx, tenantID, id, &c); err != nil {
		return entities.Customer{}, err
	}
	return c, nil
}

func (r *CustomerDynamoRepository) List(ctx context.Context, tenantID string, f interfaces.CustomerFilter) ([]entities.Customer, error) {
	var rows []entities.Customer
	if err := r.table.queryTenant(ctx, tenantID, "", nil, nil, &rows); err != nil {
		return nil, err
	}
	rows = keep(rows, func(c entities.Customer) bool {
		return f.NameContains == "" || containsFold(c.Name, f.NameContains)
	})
	return sortAndLimit(rows, func(a, b entities.Customer) bool { return a.CreatedAt.After(b.CreatedAt) }, f.Limit), nil
}
