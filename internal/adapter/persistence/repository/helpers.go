package repository

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Entity rows are encoded with their json tags so attribute names match the
// relational column names (tenant_id, created_at, ...).
func jsonTags(o *attributevalue.EncoderOptions) { o.TagKey = "json" }

func jsonTagsDecode(o *attributevalue.DecoderOptions) { o.TagKey = "json" }

// tenantTable is a table keyed by (tenant_id, id). Tenant isolation is
// enforced by the partition key: every read names the tenant.
type tenantTable struct {
	ddb  *dynamodb.Client
	name string
}

func (t tenantTable) key(tenantID, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"tenant_id": &types.AttributeValueMemberS{Value: tenantID},
		"id":        &types.AttributeValueMemberS{Value: id},
	}
}

func (t tenantTable) put(ctx context.Context, row any) error {
	av, err := attributevalue.MarshalMapWithOptions(row, jsonTags)
	if err != nil {
		return err
	}
	_, err = t.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(t.name),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	return err
}

// get loads one row into out and reports whether it exists.
func (t tenantTable) get(ctx context.Context, tenantID, id string, out any) (bool, error) {
	res, err := t.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(t.name),
		Key:            t.key(tenantID, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMapWithOptions(res.Item, out, jsonTagsDecode)
}

// queryTenant loads the whole tenant partition into out (a pointer to a
// slice of json-tagged rows), optionally narrowed by a filter expression.
func (t tenantTable) queryTenant(ctx context.Context, tenantID string, filterExpr string, names map[string]string, values map[string]types.AttributeValue, out any) error {
	items, err := t.queryTenantItems(ctx, tenantID, filterExpr, names, values)
	if err != nil {
		return err
	}
	return attributevalue.UnmarshalListOfMapsWithOptions(items, out, jsonTagsDecode)
}

func (t tenantTable) queryTenantItems(ctx context.Context, tenantID string, filterExpr string, names map[string]string, values map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(t.name),
		KeyConditionExpression: aws.String("#tenant_id = :tenant_id"),
		ExpressionAttributeNames: mergeNames(names, map[string]string{
			"#tenant_id": "tenant_id",
		}),
		ExpressionAttributeValues: mergeValues(values, map[string]types.AttributeValue{
			":tenant_id": &types.AttributeValueMemberS{Value: tenantID},
		}),
	}
	if filterExpr != "" {
		in.FilterExpression = aws.String(filterExpr)
	}

	var items []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(t.ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

func keep[T any](rows []T, ok func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if ok(r) {
			out = append(out, r)
		}
	}
	return out
}

func sortAndLimit[T any](rows []T, less func(a, b T) bool, limit int) []T {
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func mergeNames(a, b map[string]string) map[string]string {
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func mergeValues(a, b map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
