package entity

// FilterLists holds the denylist/allowlist data used by the holding filter.
// The lists are plain configuration data, kept separate from the filtering
// logic so they can be updated without touching code.
type FilterLists struct {
	// ScamContracts are contract addresses of known scam tokens (lowercase).
	ScamContracts []string `yaml:"scamContracts"`
	// VaultContracts are contract addresses of legitimate DeFi wrapped or
	// staking-vault positions that are not meaningful display holdings.
	VaultContracts []string `yaml:"vaultContracts"`
	// ScamNames are exact (lowercased, trimmed) token names or symbols of
	// known scams.
	ScamNames []string `yaml:"scamNames"`
	// VaultSymbols are exact lowercased symbols of staking/vault tokens.
	VaultSymbols []string `yaml:"vaultSymbols"`
	// VaultNameKeywords are substrings that mark a token name as a
	// staking/vault position.
	VaultNameKeywords []string `yaml:"vaultNameKeywords"`
	// PromoKeywords are substrings in names or symbols that mark a token as
	// promotional spam.
	PromoKeywords []string `yaml:"promoKeywords"`
	// FallbackUnitPrices maps a lowercase contract address to a fixed USD
	// unit price, for allow-listed tokens the upstream pricing source
	// under-covers. USD value is recomputed as quantity times unit price
	// when the upstream value is missing.
	FallbackUnitPrices map[string]float64 `yaml:"fallbackUnitPrices"`
}
