package repository

import (
	"context"
	"errors"
	"log"
	"sort"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
	"oficina_motos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultBudgetsTableName        = "budgets"
	defaultServiceOrdersTableName  = "service_orders"
	defaultMotorcyclesTableName    = "motorcycles"
	defaultPartsTableName          = "parts"
	defaultPartOrderLinksTableName = "part_order_links"
	defaultClientsTableName        = "clients"
)

// pendingCondition guards every write that requires the budget to still be
// open: it exists, is Pending (current value or legacy flag) and has no
// order attached. The placeholders come from pendingConditionValues.
var pendingCondition = "attribute_exists(#id) AND " +
	statusIn(":pending", entities.BudgetStatusPendente, map[string]types.AttributeValue{}) +
	" AND attribute_not_exists(#order_ref)"

type budgetItem struct {
	ID        string  `dynamodbav:"id"`
	Value     string  `dynamodbav:"value"`
	Expiry    string  `dynamodbav:"expiry"`
	ClientRef string  `dynamodbav:"client_ref"`
	Status    string  `dynamodbav:"status"`
	Items     string  `dynamodbav:"items"`
	OrderRef  *string `dynamodbav:"order_ref,omitempty"`
	CreatedAt string  `dynamodbav:"created_at"`
	UpdatedAt string  `dynamodbav:"updated_at"`
}

// BudgetDynamoRepository persists Budget entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// The items payload is stored as a single string attribute in the
// structured JSON form; rows written by older tools may still hold the
// legacy free-text form and are decoded on read.
type BudgetDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IBudgetRepository = (*BudgetDynamoRepository)(nil)

func NewBudgetDynamoRepository(ddb DynamoAPI) *BudgetDynamoRepository {
	return &BudgetDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("BUDGETS_TABLE", defaultBudgetsTableName),
	}
}

func (r *BudgetDynamoRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	it, err := toBudgetItem(b)
	if err != nil {
		return entities.Budget{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Budget{}, err
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
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetDynamoRepository) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            budgetKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Budget{}, err
	}
	if len(out.Item) == 0 {
		return entities.Budget{}, nil
	}

	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

// List scans the table. Budgets are few per workshop, so a filtered scan is
// enough; results are ordered by creation time.
func (r *BudgetDynamoRepository) List(ctx context.Context, filter interfaces.BudgetFilter) ([]entities.Budget, error) {
	input := &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	}

	var conds []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	if filter.ClientRef != "" {
		conds = append(conds, "#client_ref = :client_ref")
		names["#client_ref"] = "client_ref"
		values[":client_ref"] = &types.AttributeValueMemberS{Value: filter.ClientRef}
	}
	if filter.Status != "" {
		conds = append(conds, statusIn(":status", filter.Status, values))
		names["#status"] = "status"
	}
	if len(conds) > 0 {
		expr := conds[0]
		for _, c := range conds[1:] {
			expr += " AND " + c
		}
		input.FilterExpression = aws.String(expr)
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	budgets := []entities.Budget{}
	for {
		out, err := r.ddb.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []budgetItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		for _, it := range page {
			budgets = append(budgets, fromBudgetItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	sort.SliceStable(budgets, func(i, j int) bool {
		return budgets[i].CreatedAt.Before(budgets[j].CreatedAt)
	})
	return budgets, nil
}

func (r *BudgetDynamoRepository) UpdatePending(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	encoded, err := items.Encode(b.Items)
	if err != nil {
		return entities.Budget{}, err
	}
	return r.updatePending(ctx, b.ID,
		"SET #value = :value, #expiry = :expiry, #items = :items, #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":value":      &types.AttributeValueMemberS{Value: b.Value.StringFixed(2)},
			":expiry":     &types.AttributeValueMemberS{Value: formatDate(b.Expiry)},
			":items":      &types.AttributeValueMemberS{Value: encoded},
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(b.UpdatedAt)},
		},
		map[string]string{
			"#value":      "value",
			"#expiry":     "expiry",
			"#items":      "items",
			"#updated_at": "updated_at",
		},
	)
}

func (r *BudgetDynamoRepository) MarkRejected(ctx context.Context, id string, set items.ItemSet) (entities.Budget, error) {
	encoded, err := items.Encode(set)
	if err != nil {
		return entities.Budget{}, err
	}
	at := formatTime(timeOrNow(set.RejectedAt))
	return r.updatePending(ctx, id,
		"SET #status = :rejected, #items = :items, #updated_at = :updated_at",
		map[string]types.AttributeValue{
			":rejected":   &types.AttributeValueMemberS{Value: string(entities.BudgetStatusRejeitado)},
			":items":      &types.AttributeValueMemberS{Value: encoded},
			":updated_at": &types.AttributeValueMemberS{Value: at},
		},
		map[string]string{
			"#items":      "items",
			"#updated_at": "updated_at",
		},
	)
}

func (r *BudgetDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	out, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(r.tableName),
		Key:          budgetKey(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, err
	}
	return len(out.Attributes) > 0, nil
}

// updatePending applies updateExpr only while the budget is Pending.
// A missing budget yields a zero Budget; a budget that exists but is no
// longer Pending yields interfaces.ErrBudgetStale.
func (r *BudgetDynamoRepository) updatePending(
	ctx context.Context,
	id string,
	updateExpr string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (entities.Budget, error) {
	for k, v := range pendingConditionValues() {
		values[k] = v
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 budgetKey(id),
		ConditionExpression:                 aws.String(pendingCondition),
		UpdateExpression:                    aws.String(updateExpr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, pendingConditionNames()),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) == 0 {
				return entities.Budget{}, nil
			}
			log.Printf("[budget][dynamodb] conditional write lost budget_id=%s", id)
			return entities.Budget{}, interfaces.ErrBudgetStale
		}
		return entities.Budget{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Budget{}, nil
	}
	var it budgetItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetItem(it), nil
}

func pendingConditionNames() map[string]string {
	return map[string]string{
		"#id":        "id",
		"#status":    "status",
		"#order_ref": "order_ref",
	}
}

func pendingConditionValues() map[string]types.AttributeValue {
	values := map[string]types.AttributeValue{}
	statusIn(":pending", entities.BudgetStatusPendente, values)
	return values
}

func budgetKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func toBudgetItem(b entities.Budget) (budgetItem, error) {
	encoded, err := items.Encode(b.Items)
	if err != nil {
		return budgetItem{}, err
	}
	return budgetItem{
		ID:        b.ID,
		Value:     b.Value.StringFixed(2),
		Expiry:    formatDate(b.Expiry),
		ClientRef: b.ClientRef,
		Status:    string(b.Status),
		Items:     encoded,
		OrderRef:  b.OrderRef,
		CreatedAt: formatTime(b.CreatedAt),
		UpdatedAt: formatTime(b.UpdatedAt),
	}, nil
}

func fromBudgetItem(it budgetItem) entities.Budget {
	return entities.Budget{
		ID:        it.ID,
		Value:     parseDecimal(it.Value),
		Expiry:    parseDate(it.Expiry),
		ClientRef: it.ClientRef,
		Status:    parseStoredStatus(it.Status),
		Items:     items.Decode(it.Items),
		OrderRef:  it.OrderRef,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
}

// parseStoredStatus keeps unknown values as-is so callers can refuse to act
// on them instead of silently treating them as Pending.
func parseStoredStatus(raw string) entities.BudgetStatus {
	status, err := entities.ParseBudgetStatus(raw)
	if err != nil {
		return entities.BudgetStatus(raw)
	}
	return status
}
