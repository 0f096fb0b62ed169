package response

import (
	"time"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
)

type PartLineResponse struct {
	PartID    string  `json:"partId,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
}

type ServiceLineResponse struct {
	Description string  `json:"description"`
	Value       float64 `json:"value"`
}

// ItemsResponse is the decoded view of the stored items payload, whatever
// encoding it was persisted in.
type ItemsResponse struct {
	Parts           []PartLineResponse    `json:"parts"`
	Services        []ServiceLineResponse `json:"services"`
	Notes           string                `json:"notes,omitempty"`
	MotorcyclePlate string                `json:"motorcyclePlate,omitempty"`
	RejectionReason string                `json:"rejectionReason,omitempty"`
	RejectedAt      *time.Time            `json:"rejectedAt,omitempty"`
	Total           float64               `json:"total"`
}

type BudgetResponse struct {
	ID          string        `json:"id"`
	Value       float64       `json:"value"`
	Expiry      string        `json:"expiry"`
	ClientRef   string        `json:"clientRef"`
	Status      string        `json:"status"`
	StatusLabel string        `json:"statusLabel"`
	Items       ItemsResponse `json:"decodedItems"`
	OrderRef    *string       `json:"orderRef,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type ApproveBudgetResponse struct {
	BudgetID string `json:"budgetId"`
	OrderRef string `json:"orderRef"`
}

type RejectBudgetResponse struct {
	BudgetID string `json:"budgetId"`
}

type ServiceOrderResponse struct {
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	LaborValue    float64   `json:"laborValue"`
	PartsValue    float64   `json:"partsValue"`
	ClientRef     string    `json:"clientRef"`
	MotorcycleRef string    `json:"motorcycleRef"`
	BudgetRef     string    `json:"budgetRef"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	Validated     bool      `json:"validated"`
}

func FromBudget(b entities.Budget) BudgetResponse {
	return BudgetResponse{
		ID:          b.ID,
		Value:       b.Value.InexactFloat64(),
		Expiry:      b.Expiry.Format(time.DateOnly),
		ClientRef:   b.ClientRef,
		Status:      string(b.Status),
		StatusLabel: b.Status.Label(),
		Items:       FromItems(b.Items),
		OrderRef:    b.OrderRef,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FromBudgets(list []entities.Budget) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(list))
	for _, b := range list {
		out = append(out, FromBudget(b))
	}
	return out
}

func FromItems(set items.ItemSet) ItemsResponse {
	res := ItemsResponse{
		Parts:           make([]PartLineResponse, 0, len(set.Parts)),
		Services:        make([]ServiceLineResponse, 0, len(set.Services)),
		Notes:           set.Notes,
		MotorcyclePlate: set.MotorcyclePlate,
		RejectionReason: set.RejectionReason,
		RejectedAt:      set.RejectedAt,
		Total:           items.Total(set).InexactFloat64(),
	}
	for _, p := range set.Parts {
		res.Parts = append(res.Parts, PartLineResponse{
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice.InexactFloat64(),
			Subtotal:  p.Subtotal().Round(2).InexactFloat64(),
		})
	}
	for _, s := range set.Services {
		res.Services = append(res.Services, ServiceLineResponse{Description: s.Description, Value: s.Value.InexactFloat64()})
	}
	return res
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	return ServiceOrderResponse{
		Code:          o.Code,
		Title:         o.Title,
		Date:          o.Date,
		Description:   o.Description,
		Status:        string(o.Status),
		LaborValue:    o.LaborValue.InexactFloat64(),
		PartsValue:    o.PartsValue.InexactFloat64(),
		ClientRef:     o.ClientRef,
		MotorcycleRef: o.MotorcycleRef,
		BudgetRef:     o.BudgetRef,
		CreatedBy:     o.CreatedBy,
		Validated:     o.Validated,
	}
}
