package usecase

import (
	"fmt"
	"strings"

	"oficina_motos/internal/domain/items"
)

// renderOrderDescription lists the budget lines in the same wording the
// counter used for legacy budgets, followed by the notes.
func renderOrderDescription(set items.ItemSet, extraNotes string) string {
	var blocks []string

	if len(set.Services) > 0 {
		var sb strings.Builder
		sb.WriteString("Services:")
		for _, s := range set.Services {
			fmt.Fprintf(&sb, "\n- %s - %s", s.Description, items.FormatBRL(s.Value))
		}
		blocks = append(blocks, sb.String())
	}

	if len(set.Parts) > 0 {
		var sb strings.Builder
		sb.WriteString("Parts:")
		for _, p := range set.Parts {
			fmt.Fprintf(&sb, "\n- %s - Qty: %d - Unit value: %s", p.Name, p.Quantity, items.FormatBRL(p.UnitPrice))
		}
		blocks = append(blocks, sb.String())
	}

	if notes := strings.TrimSpace(set.Notes); notes != "" {
		blocks = append(blocks, notes)
	}
	if extra := strings.TrimSpace(extraNotes); extra != "" {
		blocks = append(blocks, extra)
	}
	return strings.Join(blocks, "\n\n")
}
