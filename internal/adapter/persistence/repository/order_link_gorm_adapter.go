package repository

import (
	"context"
	"errors"
	"strings"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
	"oficina_motos/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderLinkGormAdapter reads the client, motorcycle and part catalogs from
// the shared relational database.
type OrderLinkGormAdapter struct {
	db *gorm.DB
}

var _ interfaces.IOrderLinkAdapter = (*OrderLinkGormAdapter)(nil)

func NewOrderLinkGormAdapter(db *gorm.DB) *OrderLinkGormAdapter {
	return &OrderLinkGormAdapter{db: db}
}

func (a *OrderLinkGormAdapter) FindClientByID(ctx context.Context, id string) (entities.Client, error) {
	var m clientModel
	if found, err := first(a.db.WithContext(ctx).Where("id = ?", id), &m); err != nil || !found {
		return entities.Client{}, err
	}
	return entities.Client{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt.UTC()}, nil
}

func (a *OrderLinkGormAdapter) FindFirstMotorcycleForClient(ctx context.Context, clientID string) (entities.Motorcycle, error) {
	q := a.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at ASC").Order("id ASC")
	return a.firstMotorcycle(q)
}

func (a *OrderLinkGormAdapter) FindMotorcycleByPlate(ctx context.Context, plate string) (entities.Motorcycle, error) {
	q := a.db.WithContext(ctx).Where("UPPER(TRIM(plate)) = ?", items.NormalizePlate(plate)).Order("created_at ASC")
	return a.firstMotorcycle(q)
}

func (a *OrderLinkGormAdapter) FindPartByID(ctx context.Context, id string) (entities.Part, error) {
	var m partModel
	if found, err := first(a.db.WithContext(ctx).Where("id = ?", id), &m); err != nil || !found {
		return entities.Part{}, err
	}
	return fromPartModel(m), nil
}

// FindOrCreatePartByName matches on the case-insensitive name. Missing parts
// are inserted under a name-derived id; a concurrent insert of the same name
// is absorbed by the conflict clause.
func (a *OrderLinkGormAdapter) FindOrCreatePartByName(ctx context.Context, name string, unitPrice decimal.Decimal) (entities.Part, error) {
	key := partNameKey(name)
	db := a.db.WithContext(ctx)

	var m partModel
	found, err := first(db.Where("name_key = ?", key), &m)
	if err != nil {
		return entities.Part{}, err
	}
	if found {
		return fromPartModel(m), nil
	}

	m = partModel{ID: derivedPartID(key), Name: strings.TrimSpace(name), NameKey: key, UnitPrice: unitPrice}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error; err != nil {
		return entities.Part{}, err
	}
	return a.FindPartByID(ctx, m.ID)
}

func (a *OrderLinkGormAdapter) firstMotorcycle(q *gorm.DB) (entities.Motorcycle, error) {
	var m motorcycleModel
	if found, err := first(q, &m); err != nil || !found {
		return entities.Motorcycle{}, err
	}
	return entities.Motorcycle{
		ID:        m.ID,
		Plate:     m.Plate,
		Model:     m.Model,
		ClientRef: m.ClientID,
		CreatedAt: m.CreatedAt.UTC(),
	}, nil
}

func first(q *gorm.DB, dest any) (bool, error) {
	err := q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

func fromPartModel(m partModel) entities.Part {
	return entities.Part{ID: m.ID, Name: m.Name, UnitPrice: m.UnitPrice}
}
