package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client, Motorcycle and Part are owned by the CRUD side of the system.
// Budgets only reference them.

type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Motorcycle is registered to a client; the first one registered is the
// default target of an approved budget.
//
// Storage model:
//   - PK: id
//   - GSI (client_id-index): client_id, created_at
//   - GSI (plate-index): plate
type Motorcycle struct {
	ID        string    `json:"id"`
	Plate     string    `json:"plate"`
	Model     string    `json:"model"`
	ClientRef string    `json:"client_ref"`
	CreatedAt time.Time `json:"created_at"`
}

// Part is a catalog entry.
//
// Storage model:
//   - PK: id
//   - GSI (name-index): name
type Part struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
