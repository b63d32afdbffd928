package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	wire "portfolio_checker/internal/entity"

	"portfolio_checker/internal/domain/entity"
	"portfolio_checker/internal/pkg/metrics"
	"portfolio_checker/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound is returned when the upstream service reports that the queried
// identifier does not exist. Callers treat it as "zero matches", not a failure.
var ErrNotFound = errors.New("not found upstream")

// NeynarClient talks to the Neynar Farcaster API. It implements
// port.ProfileResolver and port.BalanceProvider.
type NeynarClient struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewNeynarClient creates a new NeynarClient. The rate limiter is shared by
// all operations so profile and balance lookups stay inside the API plan.
func NewNeynarClient(baseURL, apiKey string, timeout time.Duration, limitPerSecond float64, burst int, logger *zap.Logger) *NeynarClient {
	return &NeynarClient{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(limitPerSecond), burst),
		logger:  logger.Named("NeynarClient"),
	}
}

// GetProfilesByAddress returns the profiles that verified the given address.
func (c *NeynarClient) GetProfilesByAddress(ctx context.Context, address string) ([]entity.Profile, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/v2/farcaster/user/bulk-by-address?addresses=%s", c.baseURL, address)
	body, err := c.doRequest(ctx, "bulk_by_address", requestURL)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp wire.NeynarBulkByAddressResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bulk-by-address response: %w", err)
	}

	var profiles []entity.Profile
	for queried, users := range resp {
		if !strings.EqualFold(queried, address) {
			continue
		}
		for _, u := range users {
			profiles = append(profiles, toProfile(u))
		}
	}
	c.logger.Debug("Resolved profiles by address", zap.String("address", address), zap.Int("count", len(profiles)))
	return profiles, nil
}

// GetProfileByUsername returns the profile for a Farcaster username, or nil
// when no such user exists.
func (c *NeynarClient) GetProfileByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	username = strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/v2/farcaster/user/by_username?username=%s", c.baseURL, username)
	body, err := c.doRequest(ctx, "by_username", requestURL)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp wire.NeynarUserResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal by_username response: %w", err)
	}
	profile := toProfile(resp.User)
	return &profile, nil
}

// GetProfileByFID returns the profile for a numeric Farcaster ID, or nil when
// no such user exists.
func (c *NeynarClient) GetProfileByFID(ctx context.Context, fid uint64) (*entity.Profile, error) {
	requestURL := fmt.Sprintf("%s/v2/farcaster/user/bulk?fids=%d", c.baseURL, fid)
	body, err := c.doRequest(ctx, "bulk_by_fid", requestURL)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp wire.NeynarUsersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bulk users response: %w", err)
	}
	if len(resp.Users) == 0 {
		return nil, nil
	}
	profile := toProfile(resp.Users[0])
	return &profile, nil
}

// GetProfilesByXUsername returns the profiles that verified the given X
// username.
func (c *NeynarClient) GetProfilesByXUsername(ctx context.Context, xUsername string) ([]entity.Profile, error) {
	xUsername = strings.TrimSpace(strings.TrimPrefix(xUsername, "@"))
	if xUsername == "" {
		return nil, fmt.Errorf("x username cannot be empty")
	}

	requestURL := fmt.Sprintf("%s/v2/farcaster/user/by_x_username?x_username=%s", c.baseURL, xUsername)
	body, err := c.doRequest(ctx, "by_x_username", requestURL)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp wire.NeynarUsersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal by_x_username response: %w", err)
	}

	profiles := make([]entity.Profile, 0, len(resp.Users))
	for _, u := range resp.Users {
		profiles = append(profiles, toProfile(u))
	}
	return profiles, nil
}

// GetAccountBalances fetches the raw per-address token holdings of one account
// on one network.
func (c *NeynarClient) GetAccountBalances(ctx context.Context, fid uint64, network string) ([]entity.AddressBalances, error) {
	if network == "" {
		network = "base"
	}
	requestURL := fmt.Sprintf("%s/v2/farcaster/user/balance?fid=%d&networks=%s", c.baseURL, fid, network)
	body, err := c.doRequest(ctx, "user_balance", requestURL)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp wire.NeynarBalanceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user balance response: %w", err)
	}

	byWallet := make([]entity.AddressBalances, 0, len(resp.UserBalance.AddressBalances))
	for _, ab := range resp.UserBalance.AddressBalances {
		holdings := make([]entity.TokenHolding, 0, len(ab.TokenBalances))
		for _, tb := range ab.TokenBalances {
			holdings = append(holdings, toTokenHolding(tb))
		}
		byWallet = append(byWallet, entity.AddressBalances{
			Address:  strings.ToLower(ab.VerifiedAddress.Address),
			Network:  ab.VerifiedAddress.Network,
			Holdings: holdings,
		})
	}
	c.logger.Debug("Fetched account balances",
		zap.Uint64("fid", fid),
		zap.String("network", network),
		zap.Int("walletCount", len(byWallet)))
	return byWallet, nil
}

// doRequest executes a GET request against the Neynar API, honoring any
// context deadline and falling back to the client's default timeout.
func (c *NeynarClient) doRequest(ctx context.Context, operation, requestURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.UpstreamRequestDuration.WithLabelValues("neynar", operation).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("neynar", operation).Inc()
		c.logger.Error("Failed to execute request to Neynar", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() == fasthttp.StatusNotFound {
		c.logger.Debug("Neynar returned 404", zap.String("url", requestURL))
		return nil, ErrNotFound
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.UpstreamErrorsTotal.WithLabelValues("neynar", operation).Inc()
		c.logger.Error("Neynar API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()),
		)
		return nil, fmt.Errorf("neynar API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	// resp.Body() is only valid until release; copy it out.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

func toProfile(u wire.NeynarUser) entity.Profile {
	accounts := make([]entity.SocialAccount, 0, len(u.VerifiedAccounts))
	for _, acc := range u.VerifiedAccounts {
		accounts = append(accounts, entity.SocialAccount{Platform: acc.Platform, Username: acc.Username})
	}
	return entity.Profile{
		FID:               u.FID,
		Username:          u.Username,
		DisplayName:       u.DisplayName,
		Bio:               u.Profile.Bio.Text,
		PfpURL:            u.PfpURL,
		FollowerCount:     u.FollowerCount,
		FollowingCount:    u.FollowingCount,
		PowerBadge:        u.PowerBadge,
		CustodyAddress:    strings.ToLower(u.CustodyAddress),
		VerifiedAddresses: utils.DedupeAddresses(u.VerifiedAddresses.EthAddresses),
		VerifiedAccounts:  accounts,
	}
}

func toTokenHolding(tb wire.NeynarTokenBalance) entity.TokenHolding {
	contract := strings.ToLower(strings.TrimSpace(tb.Token.Address))
	if contract == "" {
		contract = entity.NativeContractAddress
	}

	usd, err := strconv.ParseFloat(strings.TrimSpace(tb.Balance.InUSDC), 64)
	if err != nil || usd < 0 {
		usd = 0
	}

	return entity.TokenHolding{
		ContractAddress: contract,
		Name:            tb.Token.Name,
		Symbol:          tb.Token.Symbol,
		RawBalance:      tb.Balance.InToken,
		USDValue:        usd,
		LogoURL:         tb.Token.ImageURL,
	}
}
