package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultTable(t *testing.T) *PromoTable {
	t.Helper()
	table, err := NewPromoTable(DefaultPromoCodes())
	require.NoError(t, err)
	return table
}

func TestLookupCaseInsensitive(t *testing.T) {
	table := newDefaultTable(t)

	lower := table.Lookup("nextgen20")
	upper := table.Lookup("NEXTGEN20")
	assert.Equal(t, lower, upper)
	assert.True(t, upper.Valid)
	assert.Equal(t, 20, upper.DiscountPercent)
}

func TestLookupUnknownCode(t *testing.T) {
	table := newDefaultTable(t)

	result := table.Lookup("not-a-code")
	assert.False(t, result.Valid)
	assert.Zero(t, result.DiscountPercent)
}

func TestLookupInactiveCode(t *testing.T) {
	table := newDefaultTable(t)

	result := table.Lookup("LAUNCH50")
	assert.False(t, result.Valid)
}

func TestLookupExpiry(t *testing.T) {
	until := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	table, err := NewPromoTable([]PromoCode{
		{Code: "SUMMER15", DiscountPercent: 15, Active: true, ValidUntil: &until},
	})
	require.NoError(t, err)

	table.now = func() time.Time { return until.Add(-time.Hour) }
	assert.True(t, table.Lookup("SUMMER15").Valid)

	table.now = func() time.Time { return until }
	assert.False(t, table.Lookup("SUMMER15").Valid)

	table.now = func() time.Time { return until.Add(time.Hour) }
	assert.False(t, table.Lookup("SUMMER15").Valid)
}

func TestLookupTrimsWhitespace(t *testing.T) {
	table := newDefaultTable(t)

	assert.True(t, table.Lookup("  nextgen20 ").Valid)
}

func TestNewPromoTableRejectsBadDiscount(t *testing.T) {
	_, err := NewPromoTable([]PromoCode{{Code: "BAD", DiscountPercent: 101, Active: true}})
	assert.Error(t, err)

	_, err = NewPromoTable([]PromoCode{{Code: "NEG", DiscountPercent: -1, Active: true}})
	assert.Error(t, err)
}

func TestParsePromoEntries(t *testing.T) {
	codes, err := ParsePromoEntries([]string{"SPRING5:5", "VIP30:30:2027-01-31"})
	require.NoError(t, err)
	require.Len(t, codes, 2)

	assert.Equal(t, "SPRING5", codes[0].Code)
	assert.Equal(t, 5, codes[0].DiscountPercent)
	assert.Nil(t, codes[0].ValidUntil)

	assert.Equal(t, "VIP30", codes[1].Code)
	require.NotNil(t, codes[1].ValidUntil)
	assert.Equal(t, 2027, codes[1].ValidUntil.Year())

	_, err = ParsePromoEntries([]string{"nope"})
	assert.Error(t, err)
	_, err = ParsePromoEntries([]string{"X:ten"})
	assert.Error(t, err)
}
