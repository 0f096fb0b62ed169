package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is owned by the service order subsystem; budgets only ever
// create orders in OrderStatusEmAndamento.
type OrderStatus string

const (
	OrderStatusAberta      OrderStatus = "aberta"
	OrderStatusEmAndamento OrderStatus = "em_andamento"
	OrderStatusConcluida   OrderStatus = "concluida"
	OrderStatusCancelada   OrderStatus = "cancelada"
)

// ServiceOrder (ordem de serviço) is the work order materialized from an
// approved budget.
//
// Storage model:
//   - PK: code
type ServiceOrder struct {
	Code          string          `json:"code"`
	Title         string          `json:"title"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Status        OrderStatus     `json:"status"`
	LaborValue    decimal.Decimal `json:"labor_value"`
	PartsValue    decimal.Decimal `json:"parts_value"`
	ClientRef     string          `json:"client_ref"`
	MotorcycleRef string          `json:"motorcycle_ref"`
	BudgetRef     string          `json:"budget_ref"`
	CreatedBy     string          `json:"created_by,omitempty"`
	Validated     bool            `json:"validated"`
	CreatedAt     time.Time       `json:"created_at"`
}

// PartOrderLink ties a catalog part to a service order.
//
// Storage model:
//   - PK: order_code, SK: part_id (one link per part per order)
type PartOrderLink struct {
	OrderCode string `json:"order_code"`
	PartID    string `json:"part_id"`
	Quantity  int    `json:"quantity"`
}
