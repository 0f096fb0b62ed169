package interfaces

import (
	"context"
	"time"

	"oficina_motos/internal/domain/entities"
)

//go:generate mockgen -source=unit_of_work_interface.go -destination=mocks/unit_of_work_interface_mock.go -package=mock_interfaces

// IUnitOfWork runs fn atomically: either every write issued through tx is
// applied or none is. An error returned by fn (or by the commit) aborts the
// whole unit.
type IUnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx ITransaction) error) error
}

// ITransaction is the write side available inside a unit of work. It covers
// the budget compare-and-swap plus the order-side inserts of the order link
// adapter.
type ITransaction interface {
	// ApproveBudget moves the budget from Pending to Aprovado and sets its
	// order reference. The unit fails with ErrBudgetStale when the budget is
	// not Pending at write time.
	ApproveBudget(ctx context.Context, budgetID, orderRef string, at time.Time) error
	CreateOrder(ctx context.Context, order entities.ServiceOrder) error
	// UpsertPartLink inserts the link or overwrites the quantity of an
	// existing one.
	UpsertPartLink(ctx context.Context, link entities.PartOrderLink) error
}
