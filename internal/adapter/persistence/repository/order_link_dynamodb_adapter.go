package repository

import (
	"context"
	"errors"
	"strings"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
	"oficina_motos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	motorcycleClientIndex = "client_id-index"
	motorcyclePlateIndex  = "plate_key-index"
	partNameIndex         = "name_key-index"
)

type clientItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	CreatedAt string `dynamodbav:"created_at"`
}

type motorcycleItem struct {
	ID        string `dynamodbav:"id"`
	Plate     string `dynamodbav:"plate"`
	PlateKey  string `dynamodbav:"plate_key"`
	Model     string `dynamodbav:"model"`
	ClientID  string `dynamodbav:"client_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

type partItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	NameKey   string `dynamodbav:"name_key"`
	UnitPrice string `dynamodbav:"unit_price"`
}

// OrderLinkDynamoAdapter reads the client, motorcycle and part catalogs
// owned by the rest of the workshop system.
//
// Table requirements:
//   - clients: PK id
//   - motorcycles: PK id; GSI client_id-index (client_id, created_at) and
//     plate_key-index (plate_key, the trimmed upper-case plate)
//   - parts: PK id; GSI name_key-index (name_key)
type OrderLinkDynamoAdapter struct {
	ddb              DynamoAPI
	clientsTable     string
	motorcyclesTable string
	partsTable       string
}

var _ interfaces.IOrderLinkAdapter = (*OrderLinkDynamoAdapter)(nil)

func NewOrderLinkDynamoAdapter(ddb DynamoAPI) *OrderLinkDynamoAdapter {
	return &OrderLinkDynamoAdapter{
		ddb:              ddb,
		clientsTable:     getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
		motorcyclesTable: getenvDefault("MOTORCYCLES_TABLE", defaultMotorcyclesTableName),
		partsTable:       getenvDefault("PARTS_TABLE", defaultPartsTableName),
	}
}

func (a *OrderLinkDynamoAdapter) FindClientByID(ctx context.Context, id string) (entities.Client, error) {
	var it clientItem
	found, err := a.getByID(ctx, a.clientsTable, id, &it)
	if err != nil || !found {
		return entities.Client{}, err
	}
	return entities.Client{ID: it.ID, Name: it.Name, CreatedAt: parseTime(it.CreatedAt)}, nil
}

// FindFirstMotorcycleForClient returns the client's earliest registered
// motorcycle.
func (a *OrderLinkDynamoAdapter) FindFirstMotorcycleForClient(ctx context.Context, clientID string) (entities.Motorcycle, error) {
	return a.queryMotorcycle(ctx, motorcycleClientIndex, "client_id", clientID)
}

func (a *OrderLinkDynamoAdapter) FindMotorcycleByPlate(ctx context.Context, plate string) (entities.Motorcycle, error) {
	return a.queryMotorcycle(ctx, motorcyclePlateIndex, "plate_key", items.NormalizePlate(plate))
}

func (a *OrderLinkDynamoAdapter) FindPartByID(ctx context.Context, id string) (entities.Part, error) {
	var it partItem
	found, err := a.getByID(ctx, a.partsTable, id, &it)
	if err != nil || !found {
		return entities.Part{}, err
	}
	return fromPartItem(it), nil
}

// FindOrCreatePartByName looks the part up by its case-insensitive name and
// registers it when missing. The id of a created part is derived from the
// name, so concurrent conversions converge on the same catalog entry.
func (a *OrderLinkDynamoAdapter) FindOrCreatePartByName(ctx context.Context, name string, unitPrice decimal.Decimal) (entities.Part, error) {
	key := partNameKey(name)
	out, err := a.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(a.partsTable),
		IndexName:              aws.String(partNameIndex),
		KeyConditionExpression: aws.String("#name_key = :name_key"),
		ExpressionAttributeNames: map[string]string{
			"#name_key": "name_key",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name_key": &types.AttributeValueMemberS{Value: key},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Part{}, err
	}
	if len(out.Items) > 0 {
		var it partItem
		if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
			return entities.Part{}, err
		}
		return fromPartItem(it), nil
	}

	part := entities.Part{ID: derivedPartID(key), Name: strings.TrimSpace(name), UnitPrice: unitPrice}
	av, err := attributevalue.MarshalMap(partItem{
		ID:        part.ID,
		Name:      part.Name,
		NameKey:   key,
		UnitPrice: unitPrice.StringFixed(2),
	})
	if err != nil {
		return entities.Part{}, err
	}
	_, err = a.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(a.partsTable),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return a.FindPartByID(ctx, part.ID)
		}
		return entities.Part{}, err
	}
	return part, nil
}

func (a *OrderLinkDynamoAdapter) getByID(ctx context.Context, table, id string, out any) (bool, error) {
	res, err := a.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return false, err
	}
	if len(res.Item) == 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(res.Item, out)
}

func (a *OrderLinkDynamoAdapter) queryMotorcycle(ctx context.Context, index, attr, value string) (entities.Motorcycle, error) {
	out, err := a.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(a.motorcyclesTable),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		ScanIndexForward: aws.Bool(true),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return entities.Motorcycle{}, err
	}
	if len(out.Items) == 0 {
		return entities.Motorcycle{}, nil
	}
	var it motorcycleItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Motorcycle{}, err
	}
	return entities.Motorcycle{
		ID:        it.ID,
		Plate:     it.Plate,
		Model:     it.Model,
		ClientRef: it.ClientID,
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}

func fromPartItem(it partItem) entities.Part {
	return entities.Part{ID: it.ID, Name: it.Name, UnitPrice: parseDecimal(it.UnitPrice)}
}

func partNameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func derivedPartID(nameKey string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("part:"+nameKey)).String()
}

