package service

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"portfolio_checker/internal/app/port"
	"portfolio_checker/internal/domain/entity"
	"portfolio_checker/internal/pkg/metrics"
	"portfolio_checker/internal/pkg/utils"
)

// maxAggregatedHoldings bounds the list the aggregator returns. Callers may
// truncate further at the presentation layer.
const maxAggregatedHoldings = 20

// Aggregator turns the raw multi-wallet holdings of one account into a clean,
// deduplicated, ranked and bounded portfolio summary. It is pure and
// synchronous: no I/O, no shared mutable state, and it never fails on
// malformed input values.
type Aggregator struct {
	filter             *HoldingFilter
	fallbackUnitPrices map[string]float64
	logger             port.Logger
}

// NewAggregator creates an Aggregator from the given filter lists.
func NewAggregator(lists entity.FilterLists, l port.Logger) *Aggregator {
	fallback := make(map[string]float64, len(lists.FallbackUnitPrices))
	for contract, price := range lists.FallbackUnitPrices {
		fallback[strings.ToLower(strings.TrimSpace(contract))] = price
	}
	return &Aggregator{
		filter:             NewHoldingFilter(lists),
		fallbackUnitPrices: fallback,
		logger:             l,
	}
}

// aggregatedRow is the mutable merge accumulator for one contract address.
type aggregatedRow struct {
	contract string
	name     string
	symbol   string
	logoURL  string
	quantity decimal.Decimal
	usd      float64
}

// Aggregate merges the per-wallet holdings by lowercase contract address,
// drops zero-value and denylisted positions, ranks the survivors by USD value
// and bounds the list. TotalUSDValue covers exactly the returned holdings, so
// the displayed total always matches what the caller can see.
func (a *Aggregator) Aggregate(accountID string, holdingsByWallet []entity.AddressBalances) entity.PortfolioResult {
	result := entity.PortfolioResult{
		AccountID: accountID,
		Holdings:  []entity.AggregatedHolding{},
	}

	// Flatten across wallets and merge by contract, keeping first-seen order
	// so the final sort has a deterministic tie order.
	rowByContract := make(map[string]*aggregatedRow)
	var rows []*aggregatedRow
	for _, wallet := range holdingsByWallet {
		for _, h := range wallet.Holdings {
			contract := strings.ToLower(strings.TrimSpace(h.ContractAddress))
			row, ok := rowByContract[contract]
			if !ok {
				row = &aggregatedRow{contract: contract}
				rowByContract[contract] = row
				rows = append(rows, row)
			}
			row.quantity = row.quantity.Add(utils.ParseAmount(h.RawBalance))
			if h.USDValue > 0 {
				row.usd += h.USDValue
			}
			if row.name == "" {
				row.name = h.Name
			}
			if row.symbol == "" {
				row.symbol = h.Symbol
			}
			if row.logoURL == "" {
				row.logoURL = h.LogoURL
			}
		}
	}

	// Drop positions the upstream priced at zero, unless the contract is on
	// the fallback-price allowlist, in which case the missing value is
	// recomputed from the fixed unit price. Allowlisted holdings still run
	// through the denylist below.
	kept := rows[:0]
	for _, row := range rows {
		if row.usd <= 0 {
			price, allowed := a.fallbackUnitPrices[row.contract]
			if !allowed {
				continue
			}
			qty, _ := row.quantity.Float64()
			row.usd = qty * price
			// A zero quantity recomputes to zero; the allowlist only rescues
			// holdings with an actual balance.
			if row.usd <= 0 {
				continue
			}
			a.logger.Debug("Applied fallback unit price for allowlisted token",
				"contract", row.contract, "symbol", row.symbol, "unit_price", price, "usd_value", row.usd)
		}
		kept = append(kept, row)
	}

	filtered := kept[:0]
	for _, row := range kept {
		if reason, drop := a.filter.Exclude(row.contract, row.name, row.symbol, row.quantity, row.usd); drop {
			metrics.HoldingsFilteredTotal.WithLabelValues(reason).Inc()
			a.logger.Debug("Dropping holding",
				"contract", row.contract, "symbol", row.symbol, "usd_value", row.usd, "reason", reason)
			continue
		}
		filtered = append(filtered, row)
	}

	// Stable sort keeps first-seen order for equal values.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].usd > filtered[j].usd
	})
	if len(filtered) > maxAggregatedHoldings {
		filtered = filtered[:maxAggregatedHoldings]
	}

	for _, row := range filtered {
		name := row.name
		if name == "" {
			name = row.symbol
		}
		result.Holdings = append(result.Holdings, entity.AggregatedHolding{
			ContractAddress: row.contract,
			Name:            name,
			Symbol:          row.symbol,
			RawBalance:      row.quantity.String(),
			USDValue:        row.usd,
			LogoURL:         row.logoURL,
		})
		result.TotalUSDValue += row.usd
	}

	return result
}
