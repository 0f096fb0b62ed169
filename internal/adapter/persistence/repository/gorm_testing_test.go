package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func seedClient(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, db.Create(&clientModel{ID: id, Name: "Cliente " + id, CreatedAt: time.Now().UTC()}).Error)
}

func seedMotorcycle(t *testing.T, db *gorm.DB, id, clientID, plate string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&motorcycleModel{ID: id, ClientID: clientID, Plate: plate, Model: "CG 160", CreatedAt: createdAt}).Error)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newPendingBudget(id, clientRef string, createdAt time.Time) entities.Budget {
	return entities.Budget{
		ID:        id,
		Value:     d("80.00"),
		Expiry:    time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		ClientRef: clientRef,
		Status:    entities.BudgetStatusPendente,
		Items: items.ItemSet{
			Parts:    []items.PartLine{{PartID: "part-1", Name: "Oil Filter", Quantity: 2, UnitPrice: d("15.00")}},
			Services: []items.ServiceLine{{Description: "Labor", Value: d("50.00")}},
			Notes:    "check chain",
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}
