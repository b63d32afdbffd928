package entity

// NativeContractAddress is the sentinel contract address used by the balance
// lookup service to denote a chain's base currency.
const NativeContractAddress = "native"

// TokenHolding represents one raw token balance record for one wallet, as
// returned by the external balance lookup service. RawBalance is already in
// human-readable token units; unparseable or missing values are treated as zero.
type TokenHolding struct {
	ContractAddress string  `json:"contractAddress"`
	Name            string  `json:"name,omitempty"`
	Symbol          string  `json:"symbol"`
	RawBalance      string  `json:"rawBalance"`
	USDValue        float64 `json:"usdValue"`
	LogoURL         string  `json:"logoUrl,omitempty"`
}

// AddressBalances groups the raw holdings of a single wallet address.
type AddressBalances struct {
	Address  string         `json:"address"`
	Network  string         `json:"network,omitempty"`
	Holdings []TokenHolding `json:"holdings"`
}
