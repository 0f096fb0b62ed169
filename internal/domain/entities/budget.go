package entities

import (
	"fmt"
	"strings"
	"time"

	"oficina_motos/internal/domain/items"

	"github.com/shopspring/decimal"
)

// BudgetStatus represents the lifecycle of a budget (orçamento).
//
// Pendente is the only non-terminal state. Aprovado and Rejeitado are
// terminal: no transition leaves them.
type BudgetStatus string

const (
	BudgetStatusPendente  BudgetStatus = "pendente"
	BudgetStatusAprovado  BudgetStatus = "aprovado"
	BudgetStatusRejeitado BudgetStatus = "rejeitado"
)

// ParseBudgetStatus accepts the stored values, their English names and the
// single-letter flags (P/A/R) found in older rows.
func ParseBudgetStatus(raw string) (BudgetStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pendente", "pending", "p":
		return BudgetStatusPendente, nil
	case "aprovado", "approved", "a":
		return BudgetStatusAprovado, nil
	case "rejeitado", "rejected", "r":
		return BudgetStatusRejeitado, nil
	}
	return "", fmt.Errorf("unknown budget status %q", raw)
}

// StoredForms lists the raw values a row in this status may hold: the
// current value and the single-letter flags written by older versions.
func (s BudgetStatus) StoredForms() []string {
	switch s {
	case BudgetStatusPendente:
		return []string{string(s), "P", "p"}
	case BudgetStatusAprovado:
		return []string{string(s), "A", "a"}
	case BudgetStatusRejeitado:
		return []string{string(s), "R", "r"}
	}
	return []string{string(s)}
}

// Label is the human-readable status shown by the admin frontend.
func (s BudgetStatus) Label() string {
	switch s {
	case BudgetStatusPendente:
		return "Pendente"
	case BudgetStatusAprovado:
		return "Aprovado"
	case BudgetStatusRejeitado:
		return "Rejeitado"
	}
	return "Desconhecido"
}

// Budget is the quote document listing proposed parts and services.
//
// Storage model:
//   - PK: id
//   - items are persisted as one serialized field (see package items); the
//     entity always carries the decoded view.
//
// Invariants:
//   - OrderRef != nil implies Status == Aprovado.
//   - Status == Rejeitado implies Items carries RejectionReason and RejectedAt.
type Budget struct {
	ID        string          `json:"id"`
	Value     decimal.Decimal `json:"value"`
	Expiry    time.Time       `json:"expiry"`
	ClientRef string          `json:"client_ref"`
	Status    BudgetStatus    `json:"status"`
	Items     items.ItemSet   `json:"items"`
	OrderRef  *string         `json:"order_ref,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (b Budget) IsOrderLinked() bool {
	return b.OrderRef != nil && *b.OrderRef != ""
}

// CanEdit reports whether the budget still accepts updates.
func (b Budget) CanEdit() bool {
	return b.Status == BudgetStatusPendente && !b.IsOrderLinked()
}
