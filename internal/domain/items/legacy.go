package items

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Older budgets stored their lines as free text, e.g.
//
//	SERVICE: Brake check - R$ 30,00;PART: Spark plug - Qty: 4 - Unit value: R$ 8,50
//
// Fragments may be surrounded by other text. Portuguese tags written by the
// first version of the counter screen are accepted as well.
var (
	legacyServiceRe = regexp.MustCompile(`(?i)(?:SERVICE|SERVI[ÇC]O):\s*(.+?)\s+-\s+R\$\s*(\d[\d.]*(?:,\d+)?)`)
	legacyPartRe    = regexp.MustCompile(`(?i)(?:PART|PE[ÇC]A):\s*(.+?)\s+-\s+(?:Qty|Qtd|Quantidade):\s*(\d+)\s+-\s+(?:Unit value|Valor unit[áa]rio|Valor unit\.?):\s*R\$\s*(\d[\d.]*(?:,\d+)?)`)
)

func decodeLegacy(raw string) ItemSet {
	set := Empty()
	for _, token := range strings.Split(raw, ";") {
		if m := legacyPartRe.FindStringSubmatch(token); m != nil {
			qty, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			price, err := ParseBRL(m[3])
			if err != nil {
				continue
			}
			set.Parts = append(set.Parts, PartLine{
				Name:      strings.TrimSpace(m[1]),
				Quantity:  qty,
				UnitPrice: price,
			})
			continue
		}
		if m := legacyServiceRe.FindStringSubmatch(token); m != nil {
			value, err := ParseBRL(m[2])
			if err != nil {
				continue
			}
			set.Services = append(set.Services, ServiceLine{
				Description: strings.TrimSpace(m[1]),
				Value:       value,
			})
		}
	}
	if len(set.Parts) == 0 && len(set.Services) == 0 {
		set.Notes = raw
	}
	return set
}

// ParseBRL parses an amount written the Brazilian way ("1.234,56", "30,00").
// Without a comma the dot is taken as the decimal separator.
func ParseBRL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

// FormatBRL renders an amount as "R$ 1234,56".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}
