package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"portfolio_checker/internal/domain/entity"
)

// Sanity thresholds for spotting spoofed valuations. No real liquid asset in
// this context prices above a million dollars per unit, and a tiny balance
// worth eight figures is always bad upstream data.
const (
	maxPlausibleHoldingUSD   = 10_000_000
	minPlausibleQuantity     = 100
	maxPlausibleUnitPriceUSD = 1_000_000
)

// Exclusion reasons, used as metric labels and in debug logs.
const (
	ReasonScamContract     = "scam_contract"
	ReasonVaultContract    = "vault_contract"
	ReasonScamName         = "scam_name"
	ReasonVaultSymbol      = "vault_symbol"
	ReasonVaultKeyword     = "vault_keyword"
	ReasonPromoKeyword     = "promo_keyword"
	ReasonImplausibleValue = "implausible_value"
	ReasonUnitPriceCap     = "unit_price_cap"
)

// HoldingFilter decides whether an aggregated holding should be excluded from
// display. The predicate order is fixed and the first match wins; the list
// data itself lives in entity.FilterLists so it can change without touching
// this logic.
type HoldingFilter struct {
	scamContracts     map[string]struct{}
	vaultContracts    map[string]struct{}
	scamNames         map[string]struct{}
	vaultSymbols      map[string]struct{}
	vaultNameKeywords []string
	promoKeywords     []string
}

// NewHoldingFilter compiles the filter lists into lookup sets.
func NewHoldingFilter(lists entity.FilterLists) *HoldingFilter {
	return &HoldingFilter{
		scamContracts:     toLowerSet(lists.ScamContracts),
		vaultContracts:    toLowerSet(lists.VaultContracts),
		scamNames:         toLowerSet(lists.ScamNames),
		vaultSymbols:      toLowerSet(lists.VaultSymbols),
		vaultNameKeywords: toLowerSlice(lists.VaultNameKeywords),
		promoKeywords:     toLowerSlice(lists.PromoKeywords),
	}
}

// Exclude reports whether the holding matches any denylist predicate, and the
// reason for the first match. contract must already be lowercased; quantity is
// the summed token amount of the merged holding.
func (f *HoldingFilter) Exclude(contract, name, symbol string, quantity decimal.Decimal, usdValue float64) (string, bool) {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	symbolLower := strings.ToLower(strings.TrimSpace(symbol))

	if _, ok := f.scamContracts[contract]; ok {
		return ReasonScamContract, true
	}

	if _, ok := f.vaultContracts[contract]; ok {
		return ReasonVaultContract, true
	}

	if _, ok := f.scamNames[nameLower]; ok {
		return ReasonScamName, true
	}
	if _, ok := f.scamNames[symbolLower]; ok {
		return ReasonScamName, true
	}

	if _, ok := f.vaultSymbols[symbolLower]; ok {
		return ReasonVaultSymbol, true
	}

	for _, kw := range f.vaultNameKeywords {
		if strings.Contains(nameLower, kw) {
			return ReasonVaultKeyword, true
		}
	}

	for _, kw := range f.promoKeywords {
		if strings.Contains(nameLower, kw) || strings.Contains(symbolLower, kw) {
			return ReasonPromoKeyword, true
		}
	}

	if usdValue > maxPlausibleHoldingUSD && quantity.LessThan(decimal.NewFromInt(minPlausibleQuantity)) {
		return ReasonImplausibleValue, true
	}

	if quantity.IsPositive() {
		unitPrice := decimal.NewFromFloat(usdValue).Div(quantity)
		if unitPrice.GreaterThan(decimal.NewFromInt(maxPlausibleUnitPriceUSD)) {
			return ReasonUnitPriceCap, true
		}
	}

	return "", false
}

func toLowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		set[item] = struct{}{}
	}
	return set
}

func toLowerSlice(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
