package entity

// AggregatedHolding is a token holding merged across all wallets of one
// account, keyed by lowercase contract address. RawBalance and USDValue are
// sums over the merged inputs; Name, Symbol and LogoURL keep the first
// non-empty value seen in input order.
type AggregatedHolding struct {
	ContractAddress string  `json:"contractAddress"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	RawBalance      string  `json:"rawBalance"`
	USDValue        float64 `json:"usdValue"`
	LogoURL         string  `json:"logoUrl,omitempty"`
}

// PortfolioResult is the API-facing portfolio summary for one account.
// Error is advisory: a non-empty Error alongside non-empty Holdings means the
// result was computed from partial data and is still valid for display.
type PortfolioResult struct {
	AccountID     string              `json:"accountId"`
	Holdings      []AggregatedHolding `json:"holdings"`
	TotalUSDValue float64             `json:"totalUsdValue"`
	Error         string              `json:"error,omitempty"`
}

// PortfolioOptions carries the caller's per-request knobs for a portfolio fetch.
type PortfolioOptions struct {
	// Networks selects which chains to query balances on. Empty means the
	// service default.
	Networks []string
	// Limit truncates the returned holdings at the presentation layer.
	// Zero means the service default; the aggregator itself always bounds
	// the list to its own maximum first.
	Limit int
	// ExtraWallets are caller-supplied addresses merged into the account's
	// wallet set before balance lookup.
	ExtraWallets []string
}
