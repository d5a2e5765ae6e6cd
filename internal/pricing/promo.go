package pricing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PromoCode is one entry in the discount table.
type PromoCode struct {
	Code            string
	DiscountPercent int
	Active          bool
	ValidUntil      *time.Time
}

// PromoResult is the outcome of a lookup.
type PromoResult struct {
	Valid           bool
	DiscountPercent int
}

// PromoTable holds the promo codes keyed case-insensitively. The table
// is built once at startup and never mutated, so concurrent lookups
// need no locking.
type PromoTable struct {
	codes map[string]PromoCode
	now   func() time.Time
}

// NewPromoTable builds a table from the given codes. Codes with a
// discount outside [0,100] are rejected.
func NewPromoTable(codes []PromoCode) (*PromoTable, error) {
	table := &PromoTable{codes: make(map[string]PromoCode, len(codes)), now: time.Now}
	for _, pc := range codes {
		if pc.Code == "" {
			return nil, fmt.Errorf("promo code must not be empty")
		}
		if pc.DiscountPercent < 0 || pc.DiscountPercent > 100 {
			return nil, fmt.Errorf("promo %q: discount %d out of range", pc.Code, pc.DiscountPercent)
		}
		table.codes[strings.ToLower(pc.Code)] = pc
	}
	return table, nil
}

// DefaultPromoCodes returns the built-in promotion table.
func DefaultPromoCodes() []PromoCode {
	return []PromoCode{
		{Code: "NEXTGEN20", DiscountPercent: 20, Active: true},
		{Code: "WELCOME10", DiscountPercent: 10, Active: true},
		{Code: "RDP25", DiscountPercent: 25, Active: true},
		{Code: "LAUNCH50", DiscountPercent: 50, Active: false},
	}
}

// ParsePromoEntries parses "CODE:PERCENT[:YYYY-MM-DD]" entries, the
// format used by the PROMO_CODES environment variable.
func ParsePromoEntries(entries []string) ([]PromoCode, error) {
	out := make([]PromoCode, 0, len(entries))
	for _, entry := range entries {
		parts := strings.Split(entry, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("invalid promo entry %q", entry)
		}
		percent, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid promo percent in %q: %w", entry, err)
		}
		pc := PromoCode{Code: parts[0], DiscountPercent: percent, Active: true}
		if len(parts) == 3 {
			until, err := time.Parse("2006-01-02", parts[2])
			if err != nil {
				return nil, fmt.Errorf("invalid promo expiry in %q: %w", entry, err)
			}
			pc.ValidUntil = &until
		}
		out = append(out, pc)
	}
	return out, nil
}

// Lookup resolves a promo code. The match is exact but case-insensitive;
// a hit counts only while the code is active and unexpired.
func (t *PromoTable) Lookup(code string) PromoResult {
	pc, ok := t.codes[strings.ToLower(strings.TrimSpace(code))]
	if !ok || !pc.Active {
		return PromoResult{}
	}
	if pc.ValidUntil != nil && !t.now().Before(*pc.ValidUntil) {
		return PromoResult{}
	}
	return PromoResult{Valid: true, DiscountPercent: pc.DiscountPercent}
}
