package interfaces

import (
	"context"
	"errors"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
)

//go:generate mockgen -source=budget_repository_interface.go -destination=mocks/budget_repository_interface_mock.go -package=mock_interfaces

// ErrBudgetStale is returned by conditional writes when the budget is no
// longer Pending (or is already linked to an order) at write time. It is the
// authoritative precondition failure: an earlier read saying Pending does
// not count.
var ErrBudgetStale = errors.New("budget is no longer pending")

type BudgetFilter struct {
	ClientRef string
	Status    entities.BudgetStatus
}

// IBudgetRepository abstracts persistence of Budget.
//
// Read methods return a zero-value Budget (empty ID) when nothing matches.
// Items are encoded on write and decoded on read; callers never see the
// serialized field.
type IBudgetRepository interface {
	Create(ctx context.Context, b entities.Budget) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	List(ctx context.Context, filter BudgetFilter) ([]entities.Budget, error)
	// UpdatePending overwrites value, expiry and items, only if the stored
	// budget is still Pending and has no order.
	UpdatePending(ctx context.Context, b entities.Budget) (entities.Budget, error)
	// MarkRejected sets status Rejeitado and stores the given items, only if
	// the stored budget is still Pending.
	MarkRejected(ctx context.Context, id string, set items.ItemSet) (entities.Budget, error)
	Delete(ctx context.Context, id string) (bool, error)
}
