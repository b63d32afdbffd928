package entity

// NeynarUser represents a Farcaster user object as returned by the Neynar API.
type NeynarUser struct {
	FID            uint64            `json:"fid"`
	Username       string            `json:"username"`
	DisplayName    string            `json:"display_name"`
	PfpURL         string            `json:"pfp_url"`
	CustodyAddress string            `json:"custody_address"`
	Profile        NeynarUserProfile `json:"profile"`
	FollowerCount  int               `json:"follower_count"`
	FollowingCount int               `json:"following_count"`
	PowerBadge     bool              `json:"power_badge"`

	VerifiedAddresses NeynarVerifiedAddresses `json:"verified_addresses"`
	VerifiedAccounts  []NeynarVerifiedAccount `json:"verified_accounts"`
}

// NeynarUserProfile carries the nested profile metadata.
type NeynarUserProfile struct {
	Bio NeynarBio `json:"bio"`
}

// NeynarBio is the bio text wrapper.
type NeynarBio struct {
	Text string `json:"text"`
}

// NeynarVerifiedAddresses lists the addresses a user has verified.
type NeynarVerifiedAddresses struct {
	EthAddresses []string `json:"eth_addresses"`
	SolAddresses []string `json:"sol_addresses"`
}

// NeynarVerifiedAccount is a verified external social account.
type NeynarVerifiedAccount struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
}

// NeynarUsersResponse wraps endpoints that return a list of users
// (bulk by FID, search, by X username).
type NeynarUsersResponse struct {
	Users []NeynarUser `json:"users"`
}

// NeynarUserResponse wraps endpoints that return a single user.
type NeynarUserResponse struct {
	User NeynarUser `json:"user"`
}

// NeynarBulkByAddressResponse maps a queried address to the users that
// verified it.
type NeynarBulkByAddressResponse map[string][]NeynarUser

// NeynarBalanceResponse is the envelope of the user balance endpoint.
type NeynarBalanceResponse struct {
	UserBalance NeynarUserBalance `json:"user_balance"`
}

// NeynarUserBalance groups the per-address balances of one user.
type NeynarUserBalance struct {
	Object          string                 `json:"object"`
	User            NeynarUser             `json:"user"`
	AddressBalances []NeynarAddressBalance `json:"address_balances"`
}

// NeynarAddressBalance is the balance set of one verified address.
type NeynarAddressBalance struct {
	Object          string               `json:"object"`
	VerifiedAddress NeynarNetworkAddress `json:"verified_address"`
	TokenBalances   []NeynarTokenBalance `json:"token_balances"`
}

// NeynarNetworkAddress is an address scoped to a network.
type NeynarNetworkAddress struct {
	Address string `json:"address"`
	Network string `json:"network"`
}

// NeynarTokenBalance is one token position of one address.
type NeynarTokenBalance struct {
	Object  string             `json:"object"`
	Token   NeynarToken        `json:"token"`
	Balance NeynarBalanceValue `json:"balance"`
}

// NeynarToken describes the token of a balance entry. Address is empty for
// the chain's native asset.
type NeynarToken struct {
	Object   string `json:"object"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	Decimals int    `json:"decimals"`
	ImageURL string `json:"image_url"`
}

// NeynarBalanceValue carries the quantity in token units and its USDC value.
// Both arrive as decimal strings.
type NeynarBalanceValue struct {
	InToken string `json:"in_token"`
	InUSDC  string `json:"in_usdc"`
}
