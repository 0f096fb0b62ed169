package items

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	set := ItemSet{
		Parts:    []PartLine{{Name: "Oil Filter", Quantity: 2, UnitPrice: dec("15.00")}},
		Services: []ServiceLine{{Description: "Labor", Value: dec("50.00")}},
	}
	assert.True(t, dec("80.00").Equal(Total(set)))
}

func TestTotalRoundsOnceHalfUp(t *testing.T) {
	half := ItemSet{Parts: []PartLine{{Name: "Washer", Quantity: 3, UnitPrice: dec("0.335")}}}
	assert.Equal(t, "1.01", Total(half).StringFixed(2))

	// Rounding each line first would give 0.02.
	summed := ItemSet{Services: []ServiceLine{{Description: "a", Value: dec("0.005")}, {Description: "b", Value: dec("0.005")}}}
	assert.Equal(t, "0.01", Total(summed).StringFixed(2))
}

func TestTotalOrderInvariant(t *testing.T) {
	parts := []PartLine{
		{Name: "a", Quantity: 3, UnitPrice: dec("1.11")},
		{Name: "b", Quantity: 1, UnitPrice: dec("99.99")},
		{Name: "c", Quantity: 7, UnitPrice: dec("0.07")},
	}
	services := []ServiceLine{
		{Description: "x", Value: dec("10.005")},
		{Description: "y", Value: dec("0.5")},
	}
	base := Total(ItemSet{Parts: parts, Services: services})

	reversedParts := []PartLine{parts[2], parts[1], parts[0]}
	reversedServices := []ServiceLine{services[1], services[0]}
	assert.True(t, base.Equal(Total(ItemSet{Parts: reversedParts, Services: reversedServices})))
	assert.True(t, base.Equal(Total(ItemSet{Parts: reversedParts, Services: services})))
}

func TestValidate(t *testing.T) {
	cases := map[string]ItemSet{
		"part without name":      {Parts: []PartLine{{Name: " ", Quantity: 1}}},
		"part zero quantity":     {Parts: []PartLine{{Name: "a", Quantity: 0}}},
		"part negative quantity": {Parts: []PartLine{{Name: "a", Quantity: -2}}},
		"part negative price":    {Parts: []PartLine{{Name: "a", Quantity: 1, UnitPrice: dec("-1")}}},
		"service without desc":   {Services: []ServiceLine{{Description: ""}}},
		"service negative value": {Services: []ServiceLine{{Description: "a", Value: dec("-0.01")}}},
	}
	for name, set := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(set)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidItem))
		})
	}

	require.NoError(t, Validate(ItemSet{
		Parts:    []PartLine{{Name: "a", Quantity: 1}},
		Services: []ServiceLine{{Description: "b"}},
	}))
}

func TestMerge(t *testing.T) {
	current := ItemSet{
		Parts:           []PartLine{{PartID: "p-1", Name: "Oil Filter", Quantity: 2, UnitPrice: dec("15")}},
		Services:        []ServiceLine{{Description: "Labor", Value: dec("50")}},
		Notes:           "old",
		MotorcyclePlate: "AAA1A11",
	}

	t.Run("notes only keeps lines", func(t *testing.T) {
		notes := "new notes"
		merged := Merge(current, Patch{Notes: &notes})

		requireSameItems(t, ItemSet{
			Parts:           current.Parts,
			Services:        current.Services,
			Notes:           "new notes",
			MotorcyclePlate: "AAA1A11",
		}, merged)
	})

	t.Run("plate only is normalized", func(t *testing.T) {
		plate := " bbb2b22 "
		merged := Merge(current, Patch{MotorcyclePlate: &plate})

		assert.Equal(t, "BBB2B22", merged.MotorcyclePlate)
		require.Len(t, merged.Parts, 1)
		require.Len(t, merged.Services, 1)
	})

	t.Run("new parts replace both lists", func(t *testing.T) {
		parts := []PartLine{{Name: "Chain", Quantity: 3, UnitPrice: dec("120")}}
		merged := Merge(current, Patch{Parts: &parts})

		require.Len(t, merged.Parts, 1)
		assert.Equal(t, "Chain", merged.Parts[0].Name)
		assert.Equal(t, 3, merged.Parts[0].Quantity)
		assert.Empty(t, merged.Services)
		assert.Equal(t, "old", merged.Notes)
	})

	t.Run("does not alias the current slices", func(t *testing.T) {
		notes := "x"
		merged := Merge(current, Patch{Notes: &notes})
		merged.Parts[0].Name = "changed"
		assert.Equal(t, "Oil Filter", current.Parts[0].Name)
	})
}

func TestMergeKeepsInvalidQuantityForValidation(t *testing.T) {
	parts := []PartLine{{Name: "Chain", Quantity: 0, UnitPrice: dec("120")}}
	merged := Merge(Empty(), Patch{Parts: &parts})

	require.Len(t, merged.Parts, 1)
	assert.Equal(t, 0, merged.Parts[0].Quantity)
	assert.True(t, errors.Is(Validate(merged), ErrInvalidItem))
}
