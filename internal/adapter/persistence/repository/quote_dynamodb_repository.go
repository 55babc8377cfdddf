package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultQuotesTableName        = "quotes"
	defaultQuoteItemsTableName    = "quote_items"
	defaultQuoteCountersTableName = "quote_counters"

	// DynamoDB accepts at most 100 actions per transaction.
	maxTransactActions = 100
)

var ErrTooManyQuoteItems = errors.New("too many quote items for a single transaction")

// QuoteDynamoRepository persists quotes and quote items.
//
// Table requirements:
//   - quotes: PK tenant_id, SK id
//   - quote_items: PK tenant_id, SK id (quote_id filtered in partition)
//   - quote_counters: PK tenant_id, numeric attribute seq
//
// A quote and its items are written in one TransactWriteItems call; every
// catalog reference is guarded by a ConditionCheck on the same tenant's
// service_items partition.
type QuoteDynamoRepository struct {
	ddb           *dynamodb.Client
	quotes        tenantTable
	items         tenantTable
	serviceItems  string
	countersTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:           ddb,
		quotes:        tenantTable{ddb: ddb, name: getenvDefault("QUOTES_TABLE", defaultQuotesTableName)},
		items:         tenantTable{ddb: ddb, name: getenvDefault("QUOTE_ITEMS_TABLE", defaultQuoteItemsTableName)},
		serviceItems:  getenvDefault("SERVICE_ITEMS_TABLE", defaultServiceItemsTableName),
		countersTable: getenvDefault("QUOTE_COUNTERS_TABLE", defaultQuoteCountersTableName),
	}
}

// NextQuoteNumber atomically increments the tenant counter. The counter is
// seeded from the number of existing quotes the first time it is used.
func (r *QuoteDynamoRepository) NextQuoteNumber(ctx context.Context, tenantID string) (int, error) {
	seq, err := r.incrementCounter(ctx, tenantID, "ADD #seq :one", "attribute_exists(#tenant_id)", nil)
	if err == nil {
		return seq, nil
	}
	if !isConditionFailed(err) {
		return 0, err
	}

	existing, err := r.List(ctx, tenantID, interfaces.QuoteFilter{})
	if err != nil {
		return 0, err
	}
	base := &types.AttributeValueMemberN{Value: strconv.Itoa(len(existing))}
	return r.incrementCounter(ctx, tenantID, "SET #seq = if_not_exists(#seq, :base) + :one", "", map[string]types.AttributeValue{":base": base})
}

func (r *QuoteDynamoRepository) incrementCounter(ctx context.Context, tenantID, updateExpr, condition string, extra map[string]types.AttributeValue) (int, error) {
	in := &dynamodb.UpdateItemInput{
		TableName: aws.String(r.countersTable),
		Key: map[string]types.AttributeValue{
			"tenant_id": &types.AttributeValueMemberS{Value: tenantID},
		},
		UpdateExpression: aws.String(updateExpr),
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ExpressionAttributeValues: mergeValues(extra, map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		}),
		ReturnValues: types.ReturnValueUpdatedNew,
	}
	if condition != "" {
		in.ConditionExpression = aws.String(condition)
		in.ExpressionAttributeNames["#tenant_id"] = "tenant_id"
	}

	out, err := r.ddb.UpdateItem(ctx, in)
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("quote counter for tenant %s has no numeric seq", tenantID)
	}
	return strconv.Atoi(n.Value)
}

func (r *QuoteDynamoRepository) CreateWithItems(ctx context.Context, q entities.Quote, items []entities.QuoteItem) (entities.Quote, error) {
	checked := map[string]bool{}
	for _, it := range items {
		if it.ServiceItemID != nil {
			checked[*it.ServiceItemID] = true
		}
	}
	if 1+len(items)+len(checked) > maxTransactActions {
		return entities.Quote{}, ErrTooManyQuoteItems
	}

	quoteAV, err := attributevalue.MarshalMapWithOptions(q, jsonTags)
	if err != nil {
		return entities.Quote{}, err
	}
	actions := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                aws.String(r.quotes.name),
			Item:                     quoteAV,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		},
	}}
	for _, it := range items {
		av, err := attributevalue.MarshalMapWithOptions(it, jsonTags)
		if err != nil {
			return entities.Quote{}, err
		}
		actions = append(actions, types.TransactWriteItem{
			Put: &types.Put{
				TableName:                aws.String(r.items.name),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			},
		})
	}
	for serviceItemID := range checked {
		actions = append(actions, types.TransactWriteItem{
			ConditionCheck: &types.ConditionCheck{
				TableName:                aws.String(r.serviceItems),
				Key:                      r.quotes.key(q.TenantID, serviceItemID),
				ConditionExpression:      aws.String("attribute_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			},
		})
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: actions}); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, tenantID, id string) (entities.Quote, error) {
	var q entities.Quote
	if _, err := r.quotes.get(ctx, tenantID, id, &q); err != nil {
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) List(ctx context.Context, tenantID string, f interfaces.QuoteFilter) ([]entities.Quote, error) {
	var rows []entities.Quote
	if err := r.quotes.queryTenant(ctx, tenantID, "", nil, nil, &rows); err != nil {
		return nil, err
	}
	rows = keep(rows, func(q entities.Quote) bool {
		return (f.CustomerID == "" || q.CustomerID == f.CustomerID) &&
			(f.VehicleID == "" || q.VehicleID == f.VehicleID) &&
			(f.Status == "" || q.Status == f.Status)
	})
	return sortAndLimit(rows, func(a, b entities.Quote) bool { return a.CreatedAt.After(b.CreatedAt) }, f.Limit), nil
}

func (r *QuoteDynamoRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID string, limit int) ([]entities.Quote, error) {
	var rows []entities.Quote
	err := r.quotes.queryTenant(ctx, tenantID, "#vehicle_id = :vehicle_id",
		map[string]string{"#vehicle_id": "vehicle_id"},
		map[string]types.AttributeValue{":vehicle_id": &types.AttributeValueMemberS{Value: vehicleID}},
		&rows)
	if err != nil {
		return nil, err
	}
	return sortAndLimit(rows, func(a, b entities.Quote) bool { return a.ServiceDate.After(b.ServiceDate) }, limit), nil
}

func (r *QuoteDynamoRepository) ListItems(ctx context.Context, tenantID, quoteID string) ([]entities.QuoteItem, error) {
	var rows []entities.QuoteItem
	err := r.items.queryTenant(ctx, tenantID, "#quote_id = :quote_id",
		map[string]string{"#quote_id": "quote_id"},
		map[string]types.AttributeValue{":quote_id": &types.AttributeValueMemberS{Value: quoteID}},
		&rows)
	if err != nil {
		return nil, err
	}
	return sortAndLimit(rows, func(a, b entities.QuoteItem) bool { return a.CreatedAt.Before(b.CreatedAt) }, 0), nil
}

func (r *QuoteDynamoRepository) UpdatePayment(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	updatedAt, err := attributevalue.Marshal(q.UpdatedAt.UTC())
	if err != nil {
		return entities.Quote{}, err
	}
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.quotes.name),
		Key:                 r.quotes.key(q.TenantID, q.ID),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #amount_paid = :amount_paid, #amount_pending = :amount_pending, #payment_status = :payment_status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#amount_paid":    "amount_paid",
			"#amount_pending": "amount_pending",
			"#payment_status": "payment_status",
			"#updated_at":     "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount_paid":    &types.AttributeValueMemberN{Value: floatToString(q.AmountPaid)},
			":amount_pending": &types.AttributeValueMemberN{Value: floatToString(q.AmountPending)},
			":payment_status": &types.AttributeValueMemberS{Value: string(q.PaymentStatus)},
			":updated_at":     updatedAt,
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	var updated entities.Quote
	if err := attributevalue.UnmarshalMapWithOptions(out.Attributes, &updated, jsonTagsDecode); err != nil {
		return entities.Quote{}, err
	}
	return updated, nil
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
