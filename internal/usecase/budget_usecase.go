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

//go:generate mockgen -source=budget_usecase.go -destination=../adapter/http/handlers/mocks/budget_usecase_mock.go -package=mocks

var (
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrInvalidBudgetID     = errors.New("invalid budget id")
	ErrInvalidClientRef    = errors.New("invalid client_ref")
	ErrClientNotFound      = errors.New("client not found")
	ErrClientRefImmutable  = errors.New("client_ref cannot be changed")
	ErrInvalidExpiry       = errors.New("invalid expiry")
	ErrInvalidBudgetValue  = errors.New("invalid budget value")
	ErrInvalidBudgetItems  = errors.New("invalid budget items")
	ErrInvalidBudgetStatus = errors.New("status can only be changed by approving or rejecting")
	ErrBudgetOrderLinked   = errors.New("budget is linked to a service order")
	ErrBudgetNotEditable   = errors.New("budget is no longer pending")
)

// CreateBudgetInput carries the fields accepted when opening a budget.
// Value, when set, takes precedence over the total computed from Items.
type CreateBudgetInput struct {
	ClientRef string
	Expiry    time.Time
	Value     *decimal.Decimal
	Status    *entities.BudgetStatus
	Items     *items.ItemSet
}

// UpdateBudgetInput is a partial update; nil fields are left untouched.
type UpdateBudgetInput struct {
	Value     *decimal.Decimal
	Expiry    *time.Time
	ClientRef *string
	Status    *entities.BudgetStatus
	Items     items.Patch
}

// IBudgetUseCase exposes budget (orçamento) persistence operations:
// create, read, partial update and delete.
type IBudgetUseCase interface {
	Create(ctx context.Context, in CreateBudgetInput) (entities.Budget, error)
	GetByID(ctx context.Context, id string) (entities.Budget, error)
	List(ctx context.Context, filter interfaces.BudgetFilter) ([]entities.Budget, error)
	Update(ctx context.Context, id string, in UpdateBudgetInput) (entities.Budget, error)
	Delete(ctx context.Context, id string) error
}

type BudgetUseCase struct {
	repo  interfaces.IBudgetRepository
	links interfaces.IOrderLinkAdapter
}

var _ IBudgetUseCase = (*BudgetUseCase)(nil)

func NewBudgetUseCase(repo interfaces.IBudgetRepository, links interfaces.IOrderLinkAdapter) *BudgetUseCase {
	return &BudgetUseCase{repo: repo, links: links}
}

func (u *BudgetUseCase) Create(ctx context.Context, in CreateBudgetInput) (entities.Budget, error) {
	clientRef := strings.TrimSpace(in.ClientRef)
	if clientRef == "" {
		return entities.Budget{}, ErrInvalidClientRef
	}
	if in.Expiry.IsZero() {
		return entities.Budget{}, ErrInvalidExpiry
	}
	if in.Status != nil && *in.Status != entities.BudgetStatusPendente {
		return entities.Budget{}, ErrInvalidBudgetStatus
	}

	set := items.Empty()
	if in.Items != nil {
		set = *in.Items
	}
	set = items.Normalize(set)
	if err := items.Validate(set); err != nil {
		return entities.Budget{}, fmt.Errorf("%w: %w", ErrInvalidBudgetItems, err)
	}

	value := items.Total(set)
	if in.Value != nil {
		if in.Value.IsNegative() {
			return entities.Budget{}, ErrInvalidBudgetValue
		}
		value = in.Value.Round(2)
	}

	client, err := u.links.FindClientByID(ctx, clientRef)
	if err != nil {
		return entities.Budget{}, err
	}
	if client.ID == "" {
		return entities.Budget{}, ErrClientNotFound
	}

	now := time.Now().UTC()
	b := entities.Budget{
		ID:        uuid.NewString(),
		Value:     value,
		Expiry:    dateOnly(in.Expiry),
		ClientRef: clientRef,
		Status:    entities.BudgetStatusPendente,
		Items:     set,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := u.repo.Create(ctx, b)
	if err != nil {
		return entities.Budget{}, err
	}
	log.Printf("[budget][usecase] created budget_id=%s client_ref=%s value=%s parts=%d services=%d",
		created.ID, created.ClientRef, created.Value.StringFixed(2), len(set.Parts), len(set.Services))
	return created, nil
}

func (u *BudgetUseCase) GetByID(ctx context.Context, id string) (entities.Budget, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Budget{}, ErrInvalidBudgetID
	}

	b, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	if b.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return b, nil
}

func (u *BudgetUseCase) List(ctx context.Context, filter interfaces.BudgetFilter) ([]entities.Budget, error) {
	filter.ClientRef = strings.TrimSpace(filter.ClientRef)
	return u.repo.List(ctx, filter)
}

// Update applies a partial edit to a Pending budget.
//
// When both an explicit value and new lines are given, the explicit value
// wins so manual price corrections survive. Edits that only touch notes or
// the plate keep the stored lines and value.
func (u *BudgetUseCase) Update(ctx context.Context, id string, in UpdateBudgetInput) (entities.Budget, error) {
	current, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Budget{}, err
	}
	switch {
	case current.IsOrderLinked():
		return entities.Budget{}, ErrBudgetOrderLinked
	case !current.CanEdit():
		return entities.Budget{}, ErrBudgetNotEditable
	}

	if in.ClientRef != nil && strings.TrimSpace(*in.ClientRef) != current.ClientRef {
		return entities.Budget{}, ErrClientRefImmutable
	}
	if in.Status != nil && *in.Status != entities.BudgetStatusPendente {
		return entities.Budget{}, ErrInvalidBudgetStatus
	}

	next := current
	next.Items = items.Merge(current.Items, in.Items)
	if in.Items.ReplacesLines() {
		if err := items.Validate(next.Items); err != nil {
			return entities.Budget{}, fmt.Errorf("%w: %w", ErrInvalidBudgetItems, err)
		}
		next.Value = items.Total(next.Items)
	}
	if in.Value != nil {
		if in.Value.IsNegative() {
			return entities.Budget{}, ErrInvalidBudgetValue
		}
		next.Value = in.Value.Round(2)
	}
	if in.Expiry != nil {
		if in.Expiry.IsZero() {
			return entities.Budget{}, ErrInvalidExpiry
		}
		next.Expiry = dateOnly(*in.Expiry)
	}
	next.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.UpdatePending(ctx, next)
	if err != nil {
		if errors.Is(err, interfaces.ErrBudgetStale) {
			return entities.Budget{}, ErrBudgetNotEditable
		}
		return entities.Budget{}, err
	}
	if updated.ID == "" {
		return entities.Budget{}, ErrBudgetNotFound
	}
	return updated, nil
}

// Delete removes the budget regardless of its status. Orders created from
// it are left in place.
func (u *BudgetUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidBudgetID
	}

	deleted, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	log.Printf("[budget][usecase] deleted budget_id=%s", id)
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
