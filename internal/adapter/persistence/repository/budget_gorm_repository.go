package repository

import (
	"context"
	"errors"
	"log"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
	"oficina_motos/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// pendingWhere matches an open budget; the status argument is the list of
// stored forms of Pendente, legacy flag included.
const pendingWhere = "id = ? AND status IN ? AND order_ref IS NULL"

// BudgetGormRepository persists Budget entities in a relational database
// (PostgreSQL in production, SQLite for local runs and tests).
type BudgetGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IBudgetRepository = (*BudgetGormRepository)(nil)

func NewBudgetGormRepository(db *gorm.DB) *BudgetGormRepository {
	return &BudgetGormRepository{db: db}
}

func (r *BudgetGormRepository) Create(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	m, err := toBudgetModel(b)
	if err != nil {
		return entities.Budget{}, err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.Budget{}, err
	}
	return b, nil
}

func (r *BudgetGormRepository) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	var m budgetModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Budget{}, nil
	}
	if err != nil {
		return entities.Budget{}, err
	}
	return fromBudgetModel(m), nil
}

func (r *BudgetGormRepository) List(ctx context.Context, filter interfaces.BudgetFilter) ([]entities.Budget, error) {
	q := r.db.WithContext(ctx).Model(&budgetModel{})
	if filter.ClientRef != "" {
		q = q.Where("client_ref = ?", filter.ClientRef)
	}
	if filter.Status != "" {
		q = q.Where("status IN ?", filter.Status.StoredForms())
	}

	var rows []budgetModel
	if err := q.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	budgets := make([]entities.Budget, 0, len(rows))
	for _, m := range rows {
		budgets = append(budgets, fromBudgetModel(m))
	}
	return budgets, nil
}

func (r *BudgetGormRepository) UpdatePending(ctx context.Context, b entities.Budget) (entities.Budget, error) {
	encoded, err := items.Encode(b.Items)
	if err != nil {
		return entities.Budget{}, err
	}
	return r.updatePending(ctx, b.ID, map[string]any{
		"value":      b.Value,
		"expiry":     b.Expiry,
		"items":      encoded,
		"updated_at": b.UpdatedAt,
	})
}

func (r *BudgetGormRepository) MarkRejected(ctx context.Context, id string, set items.ItemSet) (entities.Budget, error) {
	encoded, err := items.Encode(set)
	if err != nil {
		return entities.Budget{}, err
	}
	return r.updatePending(ctx, id, map[string]any{
		"status":     string(entities.BudgetStatusRejeitado),
		"items":      encoded,
		"updated_at": timeOrNow(set.RejectedAt),
	})
}

func (r *BudgetGormRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&budgetModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// updatePending writes fields only while the row is still Pending. Zero
// affected rows means either the budget is gone (zero Budget) or someone
// else moved it first (interfaces.ErrBudgetStale).
func (r *BudgetGormRepository) updatePending(ctx context.Context, id string, fields map[string]any) (entities.Budget, error) {
	res := r.db.WithContext(ctx).
		Model(&budgetModel{}).
		Where(pendingWhere, id, entities.BudgetStatusPendente.StoredForms()).
		Updates(fields)
	if res.Error != nil {
		return entities.Budget{}, res.Error
	}
	if res.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil || current.ID == "" {
			return entities.Budget{}, err
		}
		log.Printf("[budget][gorm] conditional write lost budget_id=%s status=%s", id, current.Status)
		return entities.Budget{}, interfaces.ErrBudgetStale
	}
	return r.GetByID(ctx, id)
}
