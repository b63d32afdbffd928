package entity

// PortfolioError represents a non-fatal error that occurred while resolving or
// fetching data for one account. Errors are collected and reported alongside
// whatever partial result could still be computed.
type PortfolioError struct {
	AccountID     string `json:"accountId,omitempty"`
	WalletAddress string `json:"walletAddress,omitempty"`
	Network       string `json:"network,omitempty"`
	Stage         string `json:"stage,omitempty"`
	Message       string `json:"message"`
}
