package repository

import (
	"context"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultVehiclesTableName = "vehicles"

// VehicleDynamoRepository persists vehicles in a (tenant_id, id) table.
type VehicleDynamoRepository struct {
	table tenantTable
}

var _ interfaces.IVehicleRepository = (*VehicleDynamoRepository)(nil)

func NewVehicleDynamoRepository(ddb *dynamodb.Client) *VehicleDynamoRepository {
	return &VehicleDynamoRepository{table: tenantTable{ddb: ddb, name: getenvDefault("VEHICLES_TABLE", defaultVehiclesTableName)}}
}

func (r *VehicleDynamoRepository) Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	if err := r.table.put(ctx, v); err != nil {
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) GetByID(ctx context.Context, tenantID, id string) (entities.Vehicle, error) {
	var v entities.Vehicle
	if _, err := r.table.get(ctx, tenantID, id, &v); err != nil {
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) List(ctx context.Context, tenantID string, f interfaces.VehicleFilter) ([]entities.Vehicle, error) {
	var (
		rows   []entities.Vehicle
		expr   string
		names  map[string]string
		values map[string]types.AttributeValue
	)
	if f.CustomerID != "" {
		expr = "#customer_id = :customer_id"
		names = map[string]string{"#customer_id": "customer_id"}
		values = map[string]types.AttributeValue{":customer_id": &types.AttributeValueMemberS{Value: f.CustomerID}}
	}
	if err := r.table.queryTenant(ctx, tenantID, expr, names, values, &rows); err != nil {
		return nil, err
	}
	rows = keep(rows, func(v entities.Vehicle) bool {
		return f.PlateContains == "" || containsFold(v.Plate, f.PlateContains)
	})
	return sortAndLimit(rows, func(a, b entities.Vehicle) bool { return a.CreatedAt.After(b.CreatedAt) }, f.Limit), nil
}
