package entity

// WalletSource tags where a wallet address in an account's wallet set came from.
type WalletSource string

const (
	// WalletSourceVerified is an address verified on the Farcaster profile.
	WalletSourceVerified WalletSource = "verified"
	// WalletSourceCustody is the profile's custody address.
	WalletSourceCustody WalletSource = "custody"
	// WalletSourceBankr is an address returned by the wallet enrichment service.
	WalletSourceBankr WalletSource = "bankr"
	// WalletSourceQuery is a caller-supplied extra address.
	WalletSourceQuery WalletSource = "query"
)

// Wallet is one address in an account's wallet set.
type Wallet struct {
	Address string       `json:"address"`
	Source  WalletSource `json:"source"`
}

// BankrWallet is the optional secondary wallet record returned by the wallet
// enrichment service for a social username.
type BankrWallet struct {
	EVMAddress    string `json:"evmAddress"`
	SolanaAddress string `json:"solanaAddress,omitempty"`
	BankrClub     bool   `json:"bankrClub"`
}
