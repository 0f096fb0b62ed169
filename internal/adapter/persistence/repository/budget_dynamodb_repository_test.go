package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
	"oficina_motos/internal/usecase/interfaces"

	mock_repository "oficina_motos/internal/adapter/persistence/repository/mocks"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/mock/gomock"
)

func marshalBudget(t *testing.T, b entities.Budget) map[string]types.AttributeValue {
	t.Helper()
	it, err := toBudgetItem(b)
	if err != nil {
		t.Fatalf("toBudgetItem: %v", err)
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestBudgetDynamoRepository_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ddb := mock_repository.NewMockDynamoAPI(ctrl)
	repo := NewBudgetDynamoRepository(ddb)

	b := newPendingBudget("b-1", "c-1", time.Now().UTC())
	ddb.EXPECT().PutItem(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			if aws.ToString(in.TableName) != "budgets" {
				t.Fatalf("unexpected table %q", aws.ToString(in.TableName))
			}
			if aws.ToString(in.ConditionExpression) != "attribute_not_exists(#id)" {
				t.Fatalf("missing create guard: %q", aws.ToString(in.ConditionExpression))
			}
			if _, ok := in.Item["order_ref"]; ok {
				t.Fatalf("order_ref must be absent on a new budget")
			}
			var it budgetItem
			if err := attributevalue.UnmarshalMap(in.Item, &it); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if it.Value != "80.00" || it.Status != "pendente" || it.Expiry != "2026-11-30" {
				t.Fatalf("unexpected item: %+v", it)
			}
			if got := items.Decode(it.Items); len(got.Parts) != 1 || got.Notes != "check chain" {
				t.Fatalf("items not encoded: %q", it.Items)
			}
			return &dynamodb.PutItemOutput{}, nil
		},
	)

	if _, err := repo.Create(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBudgetDynamoRepository_GetByID(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ddb := mock_repository.NewMockDynamoAPI(ctrl)
		repo := NewBudgetDynamoRepository(ddb)
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{}, nil)

		got, err := repo.GetByID(context.Background(), "b-1")
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero budget, got %+v err=%v", got, err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ddb := mock_repository.NewMockDynamoAPI(ctrl)
		repo := NewBudgetDynamoRepository(ddb)

		orderRef := "os-1"
		b := newPendingBudget("b-1", "c-1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
		b.Status = entities.BudgetStatusAprovado
		b.OrderRef = &orderRef
		ddb.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{Item: marshalBudget(t, b)}, nil)

		got, err := repo.GetByID(context.Background(), "b-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.BudgetStatusAprovado || got.OrderRef == nil || *got.OrderRef != "os-1" {
			t.Fatalf("unexpected budget: %+v", got)
		}
		if !got.CreatedAt.Equal(b.CreatedAt) || !got.Value.Equal(d("80")) {
			t.Fatalf("unexpected fields: %+v", got)
		}
	})
}

func TestBudgetDynamoRepository_ListPagesAndSorts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ddb := mock_repository.NewMockDynamoAPI(ctrl)
	repo := NewBudgetDynamoRepository(ddb)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	gomock.InOrder(
		ddb.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
				if aws.ToString(in.FilterExpression) != "#client_ref = :client_ref" {
					t.Fatalf("unexpected filter %q", aws.ToString(in.FilterExpression))
				}
				return &dynamodb.ScanOutput{
					Items:            []map[string]types.AttributeValue{marshalBudget(t, newPendingBudget("b-2", "c-1", base.Add(time.Hour)))},
					LastEvaluatedKey: budgetKey("b-2"),
				}, nil
			},
		),
		ddb.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
				if len(in.ExclusiveStartKey) == 0 {
					t.Fatalf("expected pagination key")
				}
				return &dynamodb.ScanOutput{
					Items: []map[string]types.AttributeValue{marshalBudget(t, newPendingBudget("b-1", "c-1", base))},
				}, nil
			},
		),
	)

	got, err := repo.List(context.Background(), interfaces.BudgetFilter{ClientRef: "c-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "b-1" || got[1].ID != "b-2" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestBudgetDynamoRepository_ListStatusMatchesLegacyFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ddb := mock_repository.NewMockDynamoAPI(ctrl)
	repo := NewBudgetDynamoRepository(ddb)

	legacy := marshalBudget(t, newPendingBudget("b-old", "c-1", time.Now().UTC()))
	legacy["status"] = &types.AttributeValueMemberS{Value: "P"}

	ddb.EXPECT().Scan(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			if got := aws.ToString(in.FilterExpression); got != "#status IN (:status0, :status1, :status2)" {
				t.Fatalf("unexpected filter %q", got)
			}
			if v := in.ExpressionAttributeValues[":status1"].(*types.AttributeValueMemberS).Value; v != "P" {
				t.Fatalf("legacy flag missing from filter values: %q", v)
			}
			return &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{legacy}}, nil
		},
	)

	got, err := repo.List(context.Background(), interfaces.BudgetFilter{Status: entities.BudgetStatusPendente})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Status != entities.BudgetStatusPendente {
		t.Fatalf("expected the legacy row as pendente, got %+v", got)
	}
}

func TestBudgetDynamoRepository_UpdatePending(t *testing.T) {
	b := newPendingBudget("b-1", "c-1", time.Now().UTC())

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ddb := mock_repository.NewMockDynamoAPI(ctrl)
		repo := NewBudgetDynamoRepository(ddb)

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
				if aws.ToString(in.ConditionExpression) != pendingCondition {
					t.Fatalf("unexpected condition %q", aws.ToString(in.ConditionExpression))
				}
				for key, want := range map[string]string{":pending0": "pendente", ":pending1": "P", ":pending2": "p"} {
					v, ok := in.ExpressionAttributeValues[key].(*types.AttributeValueMemberS)
					if !ok || v.Value != want {
						t.Fatalf("expected %s=%q in condition values", key, want)
					}
				}
				return &dynamodb.UpdateItemOutput{Attributes: marshalBudget(t, b)}, nil
			},
		)

		got, err := repo.UpdatePending(context.Background(), b)
		if err != nil || got.ID != "b-1" {
			t.Fatalf("unexpected result %+v err=%v", got, err)
		}
	})

	t.Run("no longer pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ddb := mock_repository.NewMockDynamoAPI(ctrl)
		repo := NewBudgetDynamoRepository(ddb)

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, &types.ConditionalCheckFailedException{
			Message: aws.String("conditional request failed"),
			Item:    marshalBudget(t, b),
		})

		_, err := repo.UpdatePending(context.Background(), b)
		if !errors.Is(err, interfaces.ErrBudgetStale) {
			t.Fatalf("expected ErrBudgetStale, got %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		ddb := mock_repository.NewMockDynamoAPI(ctrl)
		repo := NewBudgetDynamoRepository(ddb)

		ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil, &types.ConditionalCheckFailedException{})

		got, err := repo.UpdatePending(context.Background(), b)
		if err != nil || got.ID != "" {
			t.Fatalf("expected zero budget, got %+v err=%v", got, err)
		}
	})
}

func TestBudgetDynamoRepository_MarkRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ddb := mock_repository.NewMockDynamoAPI(ctrl)
	repo := NewBudgetDynamoRepository(ddb)

	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	set := newPendingBudget("b-1", "c-1", at).Items
	set.RejectionReason = "caro"
	set.RejectedAt = &at

	ddb.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
			raw := in.ExpressionAttributeValues[":items"].(*types.AttributeValueMemberS).Value
			decoded := items.Decode(raw)
			if decoded.RejectionReason != "caro" || len(decoded.Parts) != 1 {
				t.Fatalf("unexpected items payload %q", raw)
			}
			if in.ExpressionAttributeValues[":rejected"].(*types.AttributeValueMemberS).Value != "rejeitado" {
				t.Fatalf("unexpected status value")
			}
			rejected := newPendingBudget("b-1", "c-1", at)
			rejected.Status = entities.BudgetStatusRejeitado
			rejected.Items = decoded
			return &dynamodb.UpdateItemOutput{Attributes: marshalBudget(t, rejected)}, nil
		},
	)

	got, err := repo.MarkRejected(context.Background(), "b-1", set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != entities.BudgetStatusRejeitado || got.Items.RejectedAt == nil {
		t.Fatalf("unexpected budget: %+v", got)
	}
}

func TestBudgetDynamoRepository_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ddb := mock_repository.NewMockDynamoAPI(ctrl)
	repo := NewBudgetDynamoRepository(ddb)

	ddb.EXPECT().DeleteItem(gomock.Any(), gomock.Any()).Return(&dynamodb.DeleteItemOutput{Attributes: budgetKey("b-1")}, nil)
	ddb.EXPECT().DeleteItem(gomock.Any(), gomock.Any()).Return(&dynamodb.DeleteItemOutput{}, nil)

	deleted, err := repo.Delete(context.Background(), "b-1")
	if err != nil || !deleted {
		t.Fatalf("expected deleted, got %v err=%v", deleted, err)
	}
	deleted, err = repo.Delete(context.Background(), "b-1")
	if err != nil || deleted {
		t.Fatalf("expected not deleted, got %v err=%v", deleted, err)
	}
}
