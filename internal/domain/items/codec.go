package items

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The serialized items field is read in two encodings:
//   - structured: a JSON document with optional keys parts, services, notes,
//     motorcyclePlate (plus rejectionReason/rejectedAt once rejected);
//   - legacy: a ';'-separated string of SERVICE:/PART: fragments.
//
// Encode always writes the structured document, so a budget migrates to it
// the first time it is saved again.

type document struct {
	Parts           []partDoc    `json:"parts"`
	Services        []serviceDoc `json:"services"`
	Notes           string       `json:"notes,omitempty"`
	MotorcyclePlate string       `json:"motorcyclePlate,omitempty"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
	RejectedAt      *time.Time   `json:"rejectedAt,omitempty"`
}

type partDoc struct {
	PartID    string `json:"partId,omitempty"`
	Name      string `json:"name"`
	Quantity  *int   `json:"quantity,omitempty"`
	UnitPrice amount `json:"unitPrice"`
}

type serviceDoc struct {
	Description string `json:"description"`
	Value       amount `json:"value"`
}

// amount writes decimals as bare JSON numbers. Reading accepts numbers and
// numeric strings.
type amount struct {
	decimal.Decimal
}

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Decode reads a stored items field. It never fails: input that is neither
// a structured document nor contains legacy fragments yields empty lines
// with the whole input kept as notes.
func Decode(raw string) ItemSet {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return Empty()
	}
	if set, ok := decodeStructured(trimmed); ok {
		return set
	}
	return decodeLegacy(raw)
}

func decodeStructured(raw string) (ItemSet, bool) {
	if !strings.HasPrefix(raw, "{") {
		return ItemSet{}, false
	}
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ItemSet{}, false
	}

	set := Empty()
	for _, p := range doc.Parts {
		qty := 1
		if p.Quantity != nil {
			qty = *p.Quantity
		}
		set.Parts = append(set.Parts, PartLine{
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  qty,
			UnitPrice: p.UnitPrice.Decimal,
		})
	}
	for _, s := range doc.Services {
		set.Services = append(set.Services, ServiceLine{
			Description: s.Description,
			Value:       s.Value.Decimal,
		})
	}
	set.Notes = doc.Notes
	set.MotorcyclePlate = doc.MotorcyclePlate
	set.RejectionReason = doc.RejectionReason
	if doc.RejectedAt != nil {
		at := doc.RejectedAt.UTC()
		set.RejectedAt = &at
	}
	return set, true
}

// Encode writes the structured document.
func Encode(set ItemSet) (string, error) {
	doc := document{
		Parts:           make([]partDoc, 0, len(set.Parts)),
		Services:        make([]serviceDoc, 0, len(set.Services)),
		Notes:           set.Notes,
		MotorcyclePlate: set.MotorcyclePlate,
		RejectionReason: set.RejectionReason,
	}
	for _, p := range set.Parts {
		qty := p.Quantity
		doc.Parts = append(doc.Parts, partDoc{
			PartID:    p.PartID,
			Name:      p.Name,
			Quantity:  &qty,
			UnitPrice: amount{p.UnitPrice},
		})
	}
	for _, s := range set.Services {
		doc.Services = append(doc.Services, serviceDoc{
			Description: s.Description,
			Value:       amount{s.Value},
		})
	}
	if set.RejectedAt != nil {
		at := set.RejectedAt.UTC()
		doc.RejectedAt = &at
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
