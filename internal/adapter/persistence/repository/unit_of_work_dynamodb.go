package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// maxTransactItems is the DynamoDB limit for a single TransactWriteItems call.
const maxTransactItems = 100

type serviceOrderItem struct {
	Code         string `dynamodbav:"code"`
	Title        string `dynamodbav:"title"`
	Date         string `dynamodbav:"date"`
	Description  string `dynamodbav:"description"`
	Status       string `dynamodbav:"status"`
	LaborValue   string `dynamodbav:"labor_value"`
	PartsValue   string `dynamodbav:"parts_value"`
	ClientID     string `dynamodbav:"client_id"`
	MotorcycleID string `dynamodbav:"motorcycle_id"`
	BudgetID     string `dynamodbav:"budget_id"`
	CreatedBy    string `dynamodbav:"created_by,omitempty"`
	Validated    bool   `dynamodbav:"validated"`
	CreatedAt    string `dynamodbav:"created_at"`
}

type partOrderLinkItem struct {
	OrderCode string `dynamodbav:"order_code"`
	PartID    string `dynamodbav:"part_id"`
	Quantity  int    `dynamodbav:"quantity"`
}

// DynamoUnitOfWork buffers the writes issued inside Do and commits them in a
// single TransactWriteItems call, so either all of them land or none does.
//
// Table requirements:
//   - service_orders: PK code
//   - part_order_links: PK order_code, SK part_id
type DynamoUnitOfWork struct {
	ddb          DynamoAPI
	budgetsTable string
	ordersTable  string
	linksTable   string
}

var _ interfaces.IUnitOfWork = (*DynamoUnitOfWork)(nil)

func NewDynamoUnitOfWork(ddb DynamoAPI) *DynamoUnitOfWork {
	return &DynamoUnitOfWork{
		ddb:          ddb,
		budgetsTable: getenvDefault("BUDGETS_TABLE", defaultBudgetsTableName),
		ordersTable:  getenvDefault("SERVICE_ORDERS_TABLE", defaultServiceOrdersTableName),
		linksTable:   getenvDefault("PART_ORDER_LINKS_TABLE", defaultPartOrderLinksTableName),
	}
}

func (u *DynamoUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx interfaces.ITransaction) error) error {
	tx := &dynamoTx{uow: u, budgetWrite: -1}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if len(tx.writes) == 0 {
		return nil
	}
	if len(tx.writes) > maxTransactItems {
		return fmt.Errorf("transaction has %d writes, limit is %d", len(tx.writes), maxTransactItems)
	}

	_, err := u.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: tx.writes,
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && tx.budgetConditionFailed(tce.CancellationReasons) {
			return interfaces.ErrBudgetStale
		}
		log.Printf("[budget][dynamodb] transaction failed writes=%d err=%v", len(tx.writes), err)
		return err
	}
	return nil
}

type dynamoTx struct {
	uow         *DynamoUnitOfWork
	writes      []types.TransactWriteItem
	budgetWrite int
}

func (t *dynamoTx) ApproveBudget(_ context.Context, budgetID, orderRef string, at time.Time) error {
	values := pendingConditionValues()
	values[":approved"] = &types.AttributeValueMemberS{Value: string(entities.BudgetStatusAprovado)}
	values[":order_ref"] = &types.AttributeValueMemberS{Value: orderRef}
	values[":updated_at"] = &types.AttributeValueMemberS{Value: formatTime(at)}

	t.budgetWrite = len(t.writes)
	t.writes = append(t.writes, types.TransactWriteItem{
		Update: &types.Update{
			TableName:           aws.String(t.uow.budgetsTable),
			Key:                 budgetKey(budgetID),
			ConditionExpression: aws.String(pendingCondition),
			UpdateExpression:    aws.String("SET #status = :approved, #order_ref = :order_ref, #updated_at = :updated_at"),
			ExpressionAttributeNames: mergeNames(pendingConditionNames(), map[string]string{
				"#updated_at": "updated_at",
			}),
			ExpressionAttributeValues: values,
		},
	})
	return nil
}

func (t *dynamoTx) CreateOrder(_ context.Context, order entities.ServiceOrder) error {
	av, err := attributevalue.MarshalMap(toServiceOrderItem(order))
	if err != nil {
		return err
	}
	t.writes = append(t.writes, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(t.uow.ordersTable),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(#code)"),
			ExpressionAttributeNames: map[string]string{
				"#code": "code",
			},
		},
	})
	return nil
}

// UpsertPartLink overwrites any existing (order, part) pair.
func (t *dynamoTx) UpsertPartLink(_ context.Context, link entities.PartOrderLink) error {
	av, err := attributevalue.MarshalMap(partOrderLinkItem{
		OrderCode: link.OrderCode,
		PartID:    link.PartID,
		Quantity:  link.Quantity,
	})
	if err != nil {
		return err
	}
	t.writes = append(t.writes, types.TransactWriteItem{
		Put: &types.Put{
			TableName: aws.String(t.uow.linksTable),
			Item:      av,
		},
	})
	return nil
}

func (t *dynamoTx) budgetConditionFailed(reasons []types.CancellationReason) bool {
	if t.budgetWrite < 0 || t.budgetWrite >= len(reasons) {
		return false
	}
	return aws.ToString(reasons[t.budgetWrite].Code) == "ConditionalCheckFailed"
}

func toServiceOrderItem(o entities.ServiceOrder) serviceOrderItem {
	return serviceOrderItem{
		Code:         o.Code,
		Title:        o.Title,
		Date:         formatTime(o.Date),
		Description:  o.Description,
		Status:       string(o.Status),
		LaborValue:   o.LaborValue.StringFixed(2),
		PartsValue:   o.PartsValue.StringFixed(2),
		ClientID:     o.ClientRef,
		MotorcycleID: o.MotorcycleRef,
		BudgetID:     o.BudgetRef,
		CreatedBy:    o.CreatedBy,
		Validated:    o.Validated,
		CreatedAt:    formatTime(o.CreatedAt),
	}
}
