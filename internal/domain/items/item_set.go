// Package items owns the line-item payload of a budget: the decoded ItemSet,
// its validation and totals, and the codec for the serialized field.
package items

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidItem = errors.New("invalid budget item")

// PartLine is one part entry. PartID is set when the line points at an
// existing catalog part; ad hoc lines carry only name and price.
type PartLine struct {
	PartID    string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

func (p PartLine) Subtotal() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

type ServiceLine struct {
	Description string
	Value       decimal.Decimal
}

// ItemSet is the decoded items payload of a budget.
type ItemSet struct {
	Parts           []PartLine
	Services        []ServiceLine
	Notes           string
	MotorcyclePlate string

	// Set only when the budget was rejected.
	RejectionReason string
	RejectedAt      *time.Time
}

// Empty returns an ItemSet with non-nil, empty line slices.
func Empty() ItemSet {
	return ItemSet{Parts: []PartLine{}, Services: []ServiceLine{}}
}

// Total sums every part (quantity * unit price) and service value, rounding
// once at the end to two places, half away from zero.
func Total(set ItemSet) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range set.Parts {
		sum = sum.Add(p.Subtotal())
	}
	for _, s := range set.Services {
		sum = sum.Add(s.Value)
	}
	return sum.Round(2)
}

// Normalize trims text fields, upper-cases the plate and replaces nil
// slices with empty ones. Quantities are left as given; Validate rejects
// anything below 1.
func Normalize(set ItemSet) ItemSet {
	out := set
	out.Parts = make([]PartLine, 0, len(set.Parts))
	for _, p := range set.Parts {
		p.PartID = strings.TrimSpace(p.PartID)
		p.Name = strings.TrimSpace(p.Name)
		out.Parts = append(out.Parts, p)
	}
	out.Services = make([]ServiceLine, 0, len(set.Services))
	for _, s := range set.Services {
		s.Description = strings.TrimSpace(s.Description)
		out.Services = append(out.Services, s)
	}
	out.MotorcyclePlate = NormalizePlate(set.MotorcyclePlate)
	return out
}

func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// Validate checks the line constraints: non-empty names, quantity >= 1 and
// non-negative amounts.
func Validate(set ItemSet) error {
	for i, p := range set.Parts {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: part %d: name is required", ErrInvalidItem, i)
		}
		if p.Quantity < 1 {
			return fmt.Errorf("%w: part %d: quantity must be at least 1", ErrInvalidItem, i)
		}
		if p.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: part %d: unit price must not be negative", ErrInvalidItem, i)
		}
	}
	for i, s := range set.Services {
		if strings.TrimSpace(s.Description) == "" {
			return fmt.Errorf("%w: service %d: description is required", ErrInvalidItem, i)
		}
		if s.Value.IsNegative() {
			return fmt.Errorf("%w: service %d: value must not be negative", ErrInvalidItem, i)
		}
	}
	return nil
}

// Patch is a partial edit of an ItemSet. Nil fields are left untouched.
type Patch struct {
	Parts           *[]PartLine
	Services        *[]ServiceLine
	Notes           *string
	MotorcyclePlate *string
}

// ReplacesLines reports whether the patch carries a new list of lines, in
// which case the budget total has to be recomputed.
func (p Patch) ReplacesLines() bool {
	return p.Parts != nil || p.Services != nil
}

// Merge applies a patch to the current items.
//
// When the patch carries lines, both lists are replaced (a missing list
// becomes empty). Otherwise the current parts and services are kept as they
// are and only notes and plate are overwritten.
func Merge(current ItemSet, p Patch) ItemSet {
	out := current
	if p.ReplacesLines() {
		out.Parts = []PartLine{}
		out.Services = []ServiceLine{}
		if p.Parts != nil {
			out.Parts = append(out.Parts, (*p.Parts)...)
		}
		if p.Services != nil {
			out.Services = append(out.Services, (*p.Services)...)
		}
	}
	if p.Notes != nil {
		out.Notes = *p.Notes
	}
	if p.MotorcyclePlate != nil {
		out.MotorcyclePlate = *p.MotorcyclePlate
	}
	return Normalize(out)
}
