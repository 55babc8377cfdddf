package repository

import (
	"context"
	"time"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPaymentsTableName = "payments"

type billingPaymentItem struct {
	TenantID     string                 `dynamodbav:"tenant_id"`
	ID           string                 `dynamodbav:"id"`
	QuoteID      string                 `dynamodbav:"quote_id"`
	Amount       float64                `dynamodbav:"amount"`
	Date         string                 `dynamodbav:"date"`
	Status       string                 `dynamodbav:"status"`
	MPPayload    map[string]interface{} `dynamodbav:"mp_payload,omitempty"`
	MPPayloadRaw string                 `dynamodbav:"mp_payload_raw,omitempty"`
}

// BillingPaymentDynamoRepository persists quote payments.
//
// Table requirements:
//   - PK: tenant_id (string), SK: id (string)
type BillingPaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentDynamoRepository)(nil)

func NewBillingPaymentDynamoRepository(ddb *dynamodb.Client) *BillingPaymentDynamoRepository {
	return &BillingPaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *BillingPaymentDynamoRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	av, err := attributevalue.MarshalMap(toBillingPaymentItem(p))
	if err != nil {
		return entities.BillingPayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (r *BillingPaymentDynamoRepository) ListByQuoteID(ctx context.Context, tenantID, quoteID string) ([]entities.BillingPayment, error) {
	table := tenantTable{ddb: r.ddb, name: r.tableName}
	out, err := table.queryTenantItems(ctx, tenantID, "#quote_id = :quote_id",
		map[string]string{"#quote_id": "quote_id"},
		map[string]types.AttributeValue{":quote_id": &types.AttributeValueMemberS{Value: quoteID}})
	if err != nil {
		return nil, err
	}
	var raw []billingPaymentItem
	if err := attributevalue.UnmarshalListOfMaps(out, &raw); err != nil {
		return nil, err
	}

	items := make([]entities.BillingPayment, 0, len(raw))
	for _, it := range raw {
		items = append(items, fromBillingPaymentItem(it))
	}
	return items, nil
}

func toBillingPaymentItem(p entities.BillingPayment) billingPaymentItem {
	return billingPaymentItem{
		TenantID:     p.TenantID,
		ID:           p.ID,
		QuoteID:      p.QuoteID,
		Amount:       p.Amount,
		Date:         p.Date.UTC().Format(time.RFC3339Nano),
		Status:       string(p.Status),
		MPPayload:    p.MPPayload,
		MPPayloadRaw: string(p.MPPayloadRaw),
	}
}

func fromBillingPaymentItem(it billingPaymentItem) entities.BillingPayment {
	dt, _ := time.Parse(time.RFC3339Nano, it.Date)
	return entities.BillingPayment{
		ID:           it.ID,
		TenantID:     it.TenantID,
		QuoteID:      it.QuoteID,
		Amount:       it.Amount,
		Date:         dt,
		Status:       entities.PaymentStatus(it.Status),
		MPPayload:    it.MPPayload,
		MPPayloadRaw: []byte(it.MPPayloadRaw),
	}
}
