package repository

import (
	"time"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type budgetModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Value     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Expiry    time.Time       `gorm:"type:date;not null"`
	ClientRef string          `gorm:"column:client_ref;size:36;index;not null"`
	Status    string          `gorm:"size:16;index;not null"`
	Items     string          `gorm:"type:text;not null"`
	OrderRef  *string         `gorm:"column:order_ref;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (budgetModel) TableName() string { return "budgets" }

type serviceOrderModel struct {
	Code         string          `gorm:"primaryKey;size:36"`
	Title        string          `gorm:"size:255;not null"`
	Date         time.Time       `gorm:"not null"`
	Description  string          `gorm:"type:text"`
	Status       string          `gorm:"size:16;not null"`
	LaborValue   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PartsValue   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ClientID     string          `gorm:"size:36;index;not null"`
	MotorcycleID string          `gorm:"size:36;not null"`
	BudgetID     string          `gorm:"size:36;index"`
	CreatedBy    string          `gorm:"size:36"`
	Validated    bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (serviceOrderModel) TableName() string { return "service_orders" }

type clientModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:255"`
	CreatedAt time.Time
}

func (clientModel) TableName() string { return "clients" }

type motorcycleModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Plate     string `gorm:"size:16;index"`
	Model     string `gorm:"size:120"`
	ClientID  string `gorm:"size:36;index;not null"`
	CreatedAt time.Time
}

func (motorcycleModel) TableName() string { return "motorcycles" }

type partModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:255;not null"`
	NameKey   string          `gorm:"size:255;index"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (partModel) TableName() string { return "parts" }

type partOrderLinkModel struct {
	OrderCode string `gorm:"primaryKey;size:36"`
	PartID    string `gorm:"primaryKey;size:36"`
	Quantity  int    `gorm:"not null"`
}

func (partOrderLinkModel) TableName() string { return "part_order_links" }

// AutoMigrate creates or updates every table the budget service reads or
// writes. The catalog tables are normally owned by other services; creating
// them here keeps local and test databases self-contained.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&budgetModel{},
		&serviceOrderModel{},
		&clientModel{},
		&motorcycleModel{},
		&partModel{},
		&partOrderLinkModel{},
	)
}

func toBudgetModel(b entities.Budget) (budgetModel, error) {
	encoded, err := items.Encode(b.Items)
	if err != nil {
		return budgetModel{}, err
	}
	return budgetModel{
		ID:        b.ID,
		Value:     b.Value,
		Expiry:    b.Expiry,
		ClientRef: b.ClientRef,
		Status:    string(b.Status),
		Items:     encoded,
		OrderRef:  b.OrderRef,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}, nil
}

func fromBudgetModel(m budgetModel) entities.Budget {
	return entities.Budget{
		ID:        m.ID,
		Value:     m.Value.Round(2),
		Expiry:    m.Expiry.UTC(),
		ClientRef: m.ClientRef,
		Status:    parseStoredStatus(m.Status),
		Items:     items.Decode(m.Items),
		OrderRef:  m.OrderRef,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

func toServiceOrderModel(o entities.ServiceOrder) serviceOrderModel {
	return serviceOrderModel{
		Code:         o.Code,
		Title:        o.Title,
		Date:         o.Date,
		Description:  o.Description,
		Status:       string(o.Status),
		LaborValue:   o.LaborValue,
		PartsValue:   o.PartsValue,
		ClientID:     o.ClientRef,
		MotorcycleID: o.MotorcycleRef,
		BudgetID:     o.BudgetRef,
		CreatedBy:    o.CreatedBy,
		Validated:    o.Validated,
		CreatedAt:    o.CreatedAt,
	}
}
