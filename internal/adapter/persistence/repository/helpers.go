package repository

import (
	"fmt"
	"os"
	"strings"
	"time"

	"oficina_motos/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/shopspring/decimal"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func parseDate(s string) time.Time {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return parseTime(s)
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func timeOrNow(t *time.Time) time.Time {
	if t == nil || t.IsZero() {
		return time.Now().UTC()
	}
	return *t
}

// statusIn renders "#status IN (...)" over every stored form of status and
// adds one placeholder per form to values.
func statusIn(prefix string, status entities.BudgetStatus, values map[string]types.AttributeValue) string {
	forms := status.StoredForms()
	placeholders := make([]string, 0, len(forms))
	for i, form := range forms {
		key := fmt.Sprintf("%s%d", prefix, i)
		values[key] = &types.AttributeValueMemberS{Value: form}
		placeholders = append(placeholders, key)
	}
	return "#status IN (" + strings.Join(placeholders, ", ") + ")"
}
