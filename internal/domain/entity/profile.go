package entity

// SocialAccount is a verified external account linked to a Farcaster profile.
type SocialAccount struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
}

// Profile holds the resolved Farcaster profile for an account.
type Profile struct {
	FID               uint64          `json:"fid"`
	Username          string          `json:"username"`
	DisplayName       string          `json:"displayName"`
	Bio               string          `json:"bio,omitempty"`
	PfpURL            string          `json:"pfpUrl,omitempty"`
	FollowerCount     int             `json:"followerCount"`
	FollowingCount    int             `json:"followingCount"`
	PowerBadge        bool            `json:"powerBadge"`
	CustodyAddress    string          `json:"custodyAddress"`
	VerifiedAddresses []string        `json:"verifiedAddresses"`
	VerifiedAccounts  []SocialAccount `json:"verifiedAccounts,omitempty"`
}

// XUsername returns the username of the verified X account, if any.
func (p *Profile) XUsername() (string, bool) {
	for _, acc := range p.VerifiedAccounts {
		if acc.Platform == "x" || acc.Platform == "twitter" {
			return acc.Username, true
		}
	}
	return "", false
}
