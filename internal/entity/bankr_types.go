package entity

// BankrWalletResponse is the wallet lookup response of the Bankr public API.
type BankrWalletResponse struct {
	AccountID     string `json:"accountId"`
	Platform      string `json:"platform"`
	EVMAddress    string `json:"evmAddress"`
	SolanaAddress string `json:"solanaAddress"`
	BankrClub     bool   `json:"bankrClub"`
}
