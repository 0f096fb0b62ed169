package repository

import (
	"context"
	"time"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUnitOfWork runs the callback inside a database transaction; any error
// returned by the callback rolls every write back.
type GormUnitOfWork struct {
	db *gorm.DB
}

var _ interfaces.IUnitOfWork = (*GormUnitOfWork)(nil)

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx interfaces.ITransaction) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) ApproveBudget(ctx context.Context, budgetID, orderRef string, at time.Time) error {
	res := t.db.WithContext(ctx).
		Model(&budgetModel{}).
		Where(pendingWhere, budgetID, entities.BudgetStatusPendente.StoredForms()).
		Updates(map[string]any{
			"status":     string(entities.BudgetStatusAprovado),
			"order_ref":  orderRef,
			"updated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return interfaces.ErrBudgetStale
	}
	return nil
}

func (t *gormTx) CreateOrder(ctx context.Context, order entities.ServiceOrder) error {
	m := toServiceOrderModel(order)
	return t.db.WithContext(ctx).Create(&m).Error
}

func (t *gormTx) UpsertPartLink(ctx context.Context, link entities.PartOrderLink) error {
	m := partOrderLinkModel{OrderCode: link.OrderCode, PartID: link.PartID, Quantity: link.Quantity}
	return t.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "order_code"}, {Name: "part_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(&m).Error
}
