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
)

func newBankrTestServer(t *testing.T, handler http.HandlerFunc) *BankrClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBankrClient(srv.URL, 2*time.Second, zap.NewNop())
}

func TestGetWalletByUsername(t *testing.T) {
	var gotQuery string
	c := newBankrTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{
			"accountId": "abc",
			"platform": "twitter",
			"evmAddress": "0xDDDD000000000000000000000000000000000004",
			"bankrClub": true
		}`))
	})

	wallet, err := c.GetWalletByUsername(context.Background(), "@dwr", "")

	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.Equal(t, "username=dwr&platform=twitter", gotQuery)
	assert.Equal(t, "0xdddd000000000000000000000000000000000004", wallet.EVMAddress)
	assert.True(t, wallet.BankrClub)
}

func TestGetWalletByUsername_NotFoundIsNotAnError(t *testing.T) {
	c := newBankrTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	wallet, err := c.GetWalletByUsername(context.Background(), "nobody", "farcaster")

	require.NoError(t, err)
	assert.Nil(t, wallet)
}

func TestGetWalletByUsername_EmptyAddressesYieldNil(t *testing.T) {
	c := newBankrTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"accountId": "abc", "platform": "twitter"}`))
	})

	wallet, err := c.GetWalletByUsername(context.Background(), "dwr", "twitter")

	require.NoError(t, err)
	assert.Nil(t, wallet)
}

func TestGetWalletByUsername_EmptyUsername(t *testing.T) {
	c := newBankrTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.GetWalletByUsername(context.Background(), "  ", "twitter")

	require.Error(t, err)
}
