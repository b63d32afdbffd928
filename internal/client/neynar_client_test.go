package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"portfolio_checker/internal/domain/entity"
)

func newNeynarTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *NeynarClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewNeynarClient(srv.URL, "test-key", 2*time.Second, 1000, 1000, zap.NewNop())
	return srv, c
}

func TestGetProfileByUsername(t *testing.T) {
	var gotPath, gotAPIKey string
	_, c := newNeynarTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"user": {
				"fid": 3,
				"username": "dwr.eth",
				"display_name": "Dan",
				"custody_address": "0xCCCC000000000000000000000000000000000003",
				"profile": {"bio": {"text": "building"}},
				"follower_count": 100,
				"power_badge": true,
				"verified_addresses": {"eth_addresses": ["0xAAAA000000000000000000000000000000000001"]},
				"verified_accounts": [{"platform": "x", "username": "dwr"}]
			}
		}`))
	})

	profile, err := c.GetProfileByUsername(context.Background(), "@dwr.eth")

	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "/v2/farcaster/user/by_username", gotPath)
	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, uint64(3), profile.FID)
	assert.Equal(t, "building", profile.Bio)
	assert.Equal(t, "0xcccc000000000000000000000000000000000003", profile.CustodyAddress)
	assert.Equal(t, []string{"0xaaaa000000000000000000000000000000000001"}, profile.VerifiedAddresses)
	xName, ok := profile.XUsername()
	assert.True(t, ok)
	assert.Equal(t, "dwr", xName)
}

func TestGetProfileByUsername_NotFound(t *testing.T) {
	_, c := newNeynarTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	profile, err := c.GetProfileByUsername(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGetProfilesByAddress_MatchesQueriedKeyCaseInsensitively(t *testing.T) {
	_, c := newNeynarTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{
			"0xAAAA000000000000000000000000000000000001": [
				{"fid": 3, "username": "dwr.eth"},
				{"fid": 5, "username": "other"}
			]
		}`))
	})

	profiles, err := c.GetProfilesByAddress(context.Background(), "0xaaaa000000000000000000000000000000000001")

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, uint64(3), profiles[0].FID)
}

func TestGetProfileByFID_EmptyUsersYieldsNil(t *testing.T) {
	_, c := newNeynarTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"users": []}`))
	})

	profile, err := c.GetProfileByFID(context.Background(), 99999)

	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGetAccountBalances(t *testing.T) {
	var gotQuery string
	_, c := newNeynarTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"user_balance": {
				"address_balances": [
					{
						"verified_address": {"address": "0xAAAA000000000000000000000000000000000001", "network": "base"},
						"token_balances": [
							{
								"token": {"name": "Ethereum", "symbol": "ETH", "address": "", "image_url": "https://img.example/eth.png"},
								"balance": {"in_token": "0.5", "in_usdc": "1500.25"}
							},
							{
								"token": {"name": "Degen", "symbol": "DEGEN", "address": "0xDDDD000000000000000000000000000000000004"},
								"balance": {"in_token": "1000", "in_usdc": "garbage"}
							}
						]
					}
				]
			}
		}`))
	})

	balances, err := c.GetAccountBalances(context.Background(), 3, "base")

	require.NoError(t, err)
	assert.Equal(t, "fid=3&networks=base", gotQuery)
	require.Len(t, balances, 1)
	wallet := balances[0]
	assert.Equal(t, "0xaaaa000000000000000000000000000000000001", wallet.Address)
	assert.Equal(t, "base", wallet.Network)
	require.Len(t, wallet.Holdings, 2)

	native := wallet.Holdings[0]
	assert.Equal(t, entity.NativeContractAddress, native.ContractAddress)
	assert.Equal(t, "0.5", native.RawBalance)
	assert.InDelta(t, 1500.25, native.USDValue, 1e-9)
	assert.Equal(t, "https://img.example/eth.png", native.LogoURL)

	degen := wallet.Holdings[1]
	assert.Equal(t, "0xdddd000000000000000000000000000000000004", degen.ContractAddress)
	// Unparseable USD values collapse to zero instead of failing the fetch.
	assert.Zero(t, degen.USDValue)
}

func TestGetAccountBalances_NotFound(t *testing.T) {
	_, c := newNeynarTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	balances, err := c.GetAccountBalances(context.Background(), 3, "base")

	require.NoError(t, err)
	assert.Nil(t, balances)
}

func TestDoRequest_ServerErrorSurfaces(t *testing.T) {
	_, c := newNeynarTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.GetProfileByFID(context.Background(), 3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
