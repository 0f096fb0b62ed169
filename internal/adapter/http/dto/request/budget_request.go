package request

import (
	"errors"
	"strings"
	"time"

	"oficina_motos/internal/domain/entities"
	"oficina_motos/internal/domain/items"
	"oficina_motos/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidExpiryFormat = errors.New("expiry must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
	ErrInvalidStatusValue  = errors.New("unknown budget status")
)

type PartLineRequest struct {
	PartID    string          `json:"partId"`
	Name      string          `json:"name"`
	Quantity  *int            `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type ServiceLineRequest struct {
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// ItemsRequest is the items payload. On update, omitted keys keep the
// stored value; parts and services are replaced as a whole when present.
type ItemsRequest struct {
	Parts           *[]PartLineRequest    `json:"parts"`
	Services        *[]ServiceLineRequest `json:"services"`
	Notes           *string               `json:"notes"`
	MotorcyclePlate *string               `json:"motorcyclePlate"`
}

type CreateBudgetRequest struct {
	ClientRef string           `json:"clientRef" binding:"required"`
	Expiry    string           `json:"expiry" binding:"required"`
	Value     *decimal.Decimal `json:"value"`
	Status    string           `json:"status"`
	Items     *ItemsRequest    `json:"items"`
}

type UpdateBudgetRequest struct {
	ClientRef *string          `json:"clientRef"`
	Expiry    *string          `json:"expiry"`
	Value     *decimal.Decimal `json:"value"`
	Status    *string          `json:"status"`
	Items     *ItemsRequest    `json:"items"`
}

type RejectBudgetRequest struct {
	Reason string `json:"reason"`
}

type ConvertBudgetRequest struct {
	ActingUserRef string `json:"actingUserRef" binding:"required"`
	Title         string `json:"title"`
	ExtraNotes    string `json:"extraNotes"`
}

func (r CreateBudgetRequest) ToInput() (usecase.CreateBudgetInput, error) {
	expiry, err := ParseExpiry(r.Expiry)
	if err != nil {
		return usecase.CreateBudgetInput{}, err
	}
	in := usecase.CreateBudgetInput{
		ClientRef: r.ClientRef,
		Expiry:    expiry,
		Value:     r.Value,
	}
	if strings.TrimSpace(r.Status) != "" {
		status, err := parseStatus(r.Status)
		if err != nil {
			return usecase.CreateBudgetInput{}, err
		}
		in.Status = &status
	}
	if r.Items != nil {
		set := items.Merge(items.Empty(), r.Items.toPatch())
		in.Items = &set
	}
	return in, nil
}

func (r UpdateBudgetRequest) ToInput() (usecase.UpdateBudgetInput, error) {
	in := usecase.UpdateBudgetInput{
		ClientRef: r.ClientRef,
		Value:     r.Value,
	}
	if r.Expiry != nil {
		expiry, err := ParseExpiry(*r.Expiry)
		if err != nil {
			return usecase.UpdateBudgetInput{}, err
		}
		in.Expiry = &expiry
	}
	if r.Status != nil {
		status, err := parseStatus(*r.Status)
		if err != nil {
			return usecase.UpdateBudgetInput{}, err
		}
		in.Status = &status
	}
	if r.Items != nil {
		in.Items = r.Items.toPatch()
	}
	return in, nil
}

// ParseExpiry accepts a calendar date or a full RFC3339 timestamp.
func ParseExpiry(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidExpiryFormat
}

func parseStatus(raw string) (entities.BudgetStatus, error) {
	status, err := entities.ParseBudgetStatus(raw)
	if err != nil {
		return "", ErrInvalidStatusValue
	}
	return status, nil
}

func (r ItemsRequest) toPatch() items.Patch {
	p := items.Patch{
		Notes:           r.Notes,
		MotorcyclePlate: r.MotorcyclePlate,
	}
	if r.Parts != nil {
		parts := make([]items.PartLine, 0, len(*r.Parts))
		for _, l := range *r.Parts {
			qty := 1
			if l.Quantity != nil {
				qty = *l.Quantity
			}
			parts = append(parts, items.PartLine{PartID: l.PartID, Name: l.Name, Quantity: qty, UnitPrice: l.UnitPrice})
		}
		p.Parts = &parts
	}
	if r.Services != nil {
		services := make([]items.ServiceLine, 0, len(*r.Services))
		for _, l := range *r.Services {
			services = append(services, items.ServiceLine{Description: l.Description, Value: l.Value})
		}
		p.Services = &services
	}
	return p
}
