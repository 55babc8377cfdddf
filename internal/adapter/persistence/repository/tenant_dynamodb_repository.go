package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultTenantsTableName = "tenants"

type tenantItem struct {
	ID             string `dynamodbav:"id"`
	Name           string `dynamodbav:"name"`
	CreditsLimit   *int   `dynamodbav:"ai_credits_limit"`
	CreditsUsed    int    `dynamodbav:"ai_credits_used_this_month"`
	CreditsResetAt string `dynamodbav:"ai_credits_reset_at"`
	CreatedAt      string `dynamodbav:"created_at"`
}

// TenantDynamoRepository reads tenants and maintains their AI credit counter.
//
// Table requirements:
//   - PK: id (string)
//
// Timestamps are written as UTC RFC3339Nano strings. The stored reset date is
// the optimistic-concurrency token for the monthly reset.
type TenantDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITenantRepository = (*TenantDynamoRepository)(nil)

func NewTenantDynamoRepository(ddb *dynamodb.Client) *TenantDynamoRepository {
	return &TenantDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TENANTS_TABLE", defaultTenantsTableName),
	}
}

func (r *TenantDynamoRepository) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func (r *TenantDynamoRepository) GetByID(ctx context.Context, id string) (entities.Tenant, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            r.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Tenant{}, err
	}
	if len(out.Item) == 0 {
		return entities.Tenant{}, nil
	}

	var it tenantItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Tenant{}, err
	}
	return fromTenantItem(it), nil
}

// ResetCredits zeroes the counter only while the stored reset date is still
// the one the caller read. The stored value is matched verbatim, so dates
// written by other clients in any RFC 3339 layout keep working.
func (r *TenantDynamoRepository) ResetCredits(ctx context.Context, id string, expectedResetAt, nextResetAt time.Time) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(r.tableName),
		Key:                  r.key(id),
		ConsistentRead:       aws.Bool(true),
		ProjectionExpression: aws.String("#id, #reset_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":       "id",
			"#reset_at": "ai_credits_reset_at",
		},
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}

	condition, expected, ok := resetGuard(out.Item["ai_credits_reset_at"], expectedResetAt)
	if !ok {
		return false, nil
	}
	values := map[string]types.AttributeValue{
		":zero": &types.AttributeValueMemberN{Value: "0"},
		":next": &types.AttributeValueMemberS{Value: formatTime(nextResetAt)},
	}
	if expected != nil {
		values[":expected"] = expected
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 r.key(id),
		ConditionExpression: aws.String("attribute_exists(#id) AND " + condition),
		UpdateExpression:    aws.String("SET #used = :zero, #reset_at = :next"),
		ExpressionAttributeNames: map[string]string{
			"#id":       "id",
			"#used":     "ai_credits_used_this_month",
			"#reset_at": "ai_credits_reset_at",
		},
		ExpressionAttributeValues: values,
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// resetGuard returns the condition matching the stored reset date, or false
// when the stored date no longer corresponds to expected (already reset).
// Missing, empty or unparseable values read as the zero time.
func resetGuard(stored types.AttributeValue, expected time.Time) (string, types.AttributeValue, bool) {
	switch v := stored.(type) {
	case nil:
		return "attribute_not_exists(#reset_at)", nil, expected.IsZero()
	case *types.AttributeValueMemberS:
		if !parseTime(v.Value).Equal(expected) {
			return "", nil, false
		}
		return "#reset_at = :expected", v, true
	case *types.AttributeValueMemberNULL:
		return "attribute_type(#reset_at, :expected)", &types.AttributeValueMemberS{Value: "NULL"}, expected.IsZero()
	default:
		return "#reset_at = :expected", v, expected.IsZero()
	}
}

func (r *TenantDynamoRepository) ConsumeCredit(ctx context.Context, id string, limit int) (int, bool, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 r.key(id),
		ConditionExpression: aws.String("attribute_exists(#id) AND (attribute_not_exists(#used) OR #used < :limit)"),
		UpdateExpression:    aws.String("SET #used = if_not_exists(#used, :zero) + :one"),
		ExpressionAttributeNames: map[string]string{
			"#id":   "id",
			"#used": "ai_credits_used_this_month",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":limit": &types.AttributeValueMemberN{Value: strconv.Itoa(limit)},
			":zero":  &types.AttributeValueMemberN{Value: "0"},
			":one":   &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		if !isConditionFailed(err) {
			return 0, false, err
		}
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return 0, false, getErr
		}
		return current.AICreditsUsedThisMonth, false, nil
	}

	var used int
	if err := attributevalue.Unmarshal(out.Attributes["ai_credits_used_this_month"], &used); err != nil {
		return 0, false, err
	}
	return used, true, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// timeLayouts are accepted when reading timestamps written by other clients.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func fromTenantItem(it tenantItem) entities.Tenant {
	return entities.Tenant{
		ID:                     it.ID,
		Name:                   it.Name,
		AICreditsLimit:         it.CreditsLimit,
		AICreditsUsedThisMonth: it.CreditsUsed,
		AICreditsResetAt:       parseTime(it.CreditsResetAt),
		CreatedAt:              parseTime(it.CreatedAt),
	}
}
