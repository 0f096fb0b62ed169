package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
	"oficina_motos/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=budget_workflow_usecase.go -destination=../adapter/http/handlers/mocks/budget_workflow_usecase_mock.go -package=mocks

var (
	ErrBudgetNotPending        = errors.New("budget is not pending")
	ErrNoMotorcycle            = errors.New("no motorcycle registered")
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	ErrInvalidActingUser       = errors.New("invalid acting user")
	ErrPartNotFound            = errors.New("part not found")
)

// ConvertInput carries the optional order fields of the conversion path.
type ConvertInput struct {
	ActingUserRef string
	Title         string
	ExtraNotes    string
}

// IBudgetWorkflowUseCase drives the Pending -> Aprovado | Rejeitado state
// machine. Both approval paths create exactly one service order in the same
// unit of work that flips the budget status.
type IBudgetWorkflowUseCase interface {
	Approve(ctx context.Context, id string) (entities.ServiceOrder, error)
	Reject(ctx context.Context, id, reason string) (entities.Budget, error)
	ConvertToOrder(ctx context.Context, id string, in ConvertInput) (entities.ServiceOrder, error)
}

type BudgetWorkflowUseCase struct {
	repo  interfaces.IBudgetRepository
	links interfaces.IOrderLinkAdapter
	uow   interfaces.IUnitOfWork
}

var _ IBudgetWorkflowUseCase = (*BudgetWorkflowUseCase)(nil)

func NewBudgetWorkflowUseCase(repo interfaces.IBudgetRepository, links interfaces.IOrderLinkAdapter, uow interfaces.IUnitOfWork) *BudgetWorkflowUseCase {
	return &BudgetWorkflowUseCase{repo: repo, links: links, uow: uow}
}

// Approve turns a Pending budget into a service order attached to the
// client's first registered motorcycle.
func (u *BudgetWorkflowUseCase) Approve(ctx context.Context, id string) (entities.ServiceOrder, error) {
	log.Printf("[budget][workflow] approve start budget_id=%q", id)
	budget, err := u.loadPending(ctx, id)
	if err != nil {
		log.Printf("[budget][workflow] approve rejected budget_id=%q err=%v", id, err)
		return entities.ServiceOrder{}, err
	}

	moto, err := u.links.FindFirstMotorcycleForClient(ctx, budget.ClientRef)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if moto.ID == "" {
		log.Printf("[budget][workflow] approve no motorcycle budget_id=%s client_ref=%s", budget.ID, budget.ClientRef)
		return entities.ServiceOrder{}, ErrNoMotorcycle
	}

	order := newOrderFromBudget(budget, moto, defaultOrderTitle(budget.ID), budget.Items.Notes)
	if err := u.promote(ctx, budget, order, nil); err != nil {
		return entities.ServiceOrder{}, err
	}
	log.Printf("[budget][workflow] approve success budget_id=%s order_ref=%s motorcycle_ref=%s", budget.ID, order.Code, moto.ID)
	return order, nil
}

// Reject closes a Pending budget. The lines are kept as they were; the
// reason and timestamp are added to the items payload.
func (u *BudgetWorkflowUseCase) Reject(ctx context.Context, id, reason string) (entities.Budget, error) {
	budget, err := u.loadPending(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.Budget{}, ErrRejectionReasonRequired
	}

	at := time.Now().UTC()
	set := budget.Items
	set.RejectionReason = reason
	set.RejectedAt = &at

	rejected, err := u.repo.MarkRejected(ctx, budget.ID, set)
	if err != nil {
		if errors.Is(err, interfaces.ErrBudgetStale) {
			return entities.Budget{}, ErrBudgetNotPending
		}
		return entities.Budget{}, fmt.Errorf("reject budget %s: %w", budget.ID, err)
	}
	if rejected.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	log.Printf("[budget][workflow] reject success budget_id=%s", budget.ID)
	return rejected, nil
}

// ConvertToOrder is the approval path used from the budget screen: the
// target motorcycle comes from the plate in the payload when it resolves,
// the order description lists every line, and each part is linked to the
// new order.
func (u *BudgetWorkflowUseCase) ConvertToOrder(ctx context.Context, id string, in ConvertInput) (entities.ServiceOrder, error) {
	log.Printf("[budget][workflow] convert start budget_id=%q acting_user=%q", id, in.ActingUserRef)
	actingUser := strings.TrimSpace(in.ActingUserRef)
	if strings.TrimSpace(id) == "" {
		return entities.ServiceOrder{}, ErrInvalidBudgetID
	}
	if actingUser == "" {
		return entities.ServiceOrder{}, ErrInvalidActingUser
	}

	budget, err := u.loadPending(ctx, id)
	if err != nil {
		log.Printf("[budget][workflow] convert rejected budget_id=%q err=%v", id, err)
		return entities.ServiceOrder{}, err
	}

	if err := items.Validate(budget.Items); err != nil {
		return entities.ServiceOrder{}, fmt.Errorf("%w: %w", ErrInvalidBudgetItems, err)
	}

	moto, err := u.resolveMotorcycle(ctx, budget)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	links, err := u.resolvePartLinks(ctx, budget.Items.Parts)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = defaultOrderTitle(budget.ID)
	}
	order := newOrderFromBudget(budget, moto, title, renderOrderDescription(budget.Items, in.ExtraNotes))
	order.CreatedBy = actingUser

	if err := u.promote(ctx, budget, order, links); err != nil {
		return entities.ServiceOrder{}, err
	}
	log.Printf("[budget][workflow] convert success budget_id=%s order_ref=%s links=%d", budget.ID, order.Code, len(links))
	return order, nil
}

func (u *BudgetWorkflowUseCase) loadPending(ctx context.Context, id string) (entities.Budget, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Budget{}, ErrInvalidBudgetID
	}
	budget, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if budget.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	switch budget.Status {
	case entities.BudgetStatusPendente:
		return budget, nil
	case entities.BudgetStatusAprovado, entities.BudgetStatusRejeitado:
		return entities.Budget{}, ErrBudgetNotPending
	default:
		return entities.Budget{}, fmt.Errorf("%w: unknown status %q", ErrBudgetNotPending, budget.Status)
	}
}

func (u *BudgetWorkflowUseCase) resolveMotorcycle(ctx context.Context, budget entities.Budget) (entities.Motorcycle, error) {
	if plate := items.NormalizePlate(budget.Items.MotorcyclePlate); plate != "" {
		moto, err := u.links.FindMotorcycleByPlate(ctx, plate)
		if err != nil {
			return entities.Motorcycle{}, err
		}
		if moto.ID != "" {
			if moto.ClientRef != budget.ClientRef {
				log.Printf("[budget][workflow] plate belongs to another client budget_id=%s plate=%s motorcycle_client=%s", budget.ID, plate, moto.ClientRef)
			}
			return moto, nil
		}
		log.Printf("[budget][workflow] plate not registered, falling back to client motorcycle budget_id=%s plate=%s", budget.ID, plate)
	}

	moto, err := u.links.FindFirstMotorcycleForClient(ctx, budget.ClientRef)
	if err != nil {
		return entities.Motorcycle{}, err
	}
	if moto.ID == "" {
		return entities.Motorcycle{}, ErrNoMotorcycle
	}
	return moto, nil
}

// resolvePartLinks maps part lines to catalog parts. A part id repeated on
// several lines ends up with the quantity of the last one.
func (u *BudgetWorkflowUseCase) resolvePartLinks(ctx context.Context, parts []items.PartLine) ([]entities.PartOrderLink, error) {
	links := make([]entities.PartOrderLink, 0, len(parts))
	index := make(map[string]int, len(parts))
	for _, line := range parts {
		var part entities.Part
		var err error
		if line.PartID != "" {
			part, err = u.links.FindPartByID(ctx, line.PartID)
			if err == nil && part.ID == "" {
				err = fmt.Errorf("%w: %s", ErrPartNotFound, line.PartID)
			}
		} else {
			part, err = u.links.FindOrCreatePartByName(ctx, line.Name, line.UnitPrice)
		}
		if err != nil {
			return nil, err
		}

		if i, ok := index[part.ID]; ok {
			links[i].Quantity = line.Quantity
			continue
		}
		index[part.ID] = len(links)
		links = append(links, entities.PartOrderLink{PartID: part.ID, Quantity: line.Quantity})
	}
	return links, nil
}

// promote applies the approval in one unit of work: budget compare-and-swap,
// order insert and part links.
func (u *BudgetWorkflowUseCase) promote(ctx context.Context, budget entities.Budget, order entities.ServiceOrder, links []entities.PartOrderLink) error {
	err := u.uow.Do(ctx, func(ctx context.Context, tx interfaces.ITransaction) error {
		if err := tx.ApproveBudget(ctx, budget.ID, order.Code, order.CreatedAt); err != nil {
			return err
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		for _, link := range links {
			link.OrderCode = order.Code
			if err := tx.UpsertPartLink(ctx, link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrBudgetStale) {
			log.Printf("[budget][workflow] lost approval race budget_id=%s", budget.ID)
			return ErrBudgetNotPending
		}
		log.Printf("[budget][workflow] unit of work failed budget_id=%s err=%v", budget.ID, err)
		return fmt.Errorf("approve budget %s: %w", budget.ID, err)
	}
	return nil
}

func newOrderFromBudget(budget entities.Budget, moto entities.Motorcycle, title, description string) entities.ServiceOrder {
	now := time.Now().UTC()
	return entities.ServiceOrder{
		Code:          uuid.NewString(),
		Title:         title,
		Date:          now,
		Description:   description,
		Status:        entities.OrderStatusEmAndamento,
		LaborValue:    decimal.Zero,
		PartsValue:    budget.Value,
		ClientRef:     budget.ClientRef,
		MotorcycleRef: moto.ID,
		BudgetRef:     budget.ID,
		CreatedAt:     now,
	}
}

func defaultOrderTitle(budgetID string) string {
	return "Orçamento " + budgetID
}
