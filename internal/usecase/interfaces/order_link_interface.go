package interfaces

import (
	"context"

	"oficina_motos/internal/domain/entities"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=order_link_interface.go -destination=mocks/order_link_interface_mock.go -package=mock_interfaces

// IOrderLinkAdapter is the read gateway over clients, motorcycles and parts
// used by the budget workflow. It applies no business rules.
//
// Lookups return a zero value (empty ID) when nothing matches. Order
// creation and part links are written through ITransaction so they share
// the budget's unit of work.
type IOrderLinkAdapter interface {
	FindClientByID(ctx context.Context, id string) (entities.Client, error)
	// FindFirstMotorcycleForClient returns the client's earliest registered
	// motorcycle.
	FindFirstMotorcycleForClient(ctx context.Context, clientRef string) (entities.Motorcycle, error)
	FindMotorcycleByPlate(ctx context.Context, plate string) (entities.Motorcycle, error)
	FindPartByID(ctx context.Context, id string) (entities.Part, error)
	// FindOrCreatePartByName is idempotent: an existing part with the same
	// name is returned unchanged.
	FindOrCreatePartByName(ctx context.Context, name string, unitPrice decimal.Decimal) (entities.Part, error)
}
