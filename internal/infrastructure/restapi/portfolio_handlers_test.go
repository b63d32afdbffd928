package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_checker/internal/domain/entity"
	"portfolio_checker/internal/pkg/logger"
)

type stubProfileService struct {
	profiles      []entity.Profile
	err           error
	gotIdentifier string
}

func (s *stubProfileService) ResolveProfiles(_ context.Context, identifier string) ([]entity.Profile, error) {
	s.gotIdentifier = identifier
	return s.profiles, s.err
}

type stubPortfolioService struct {
	result     entity.PortfolioResult
	resultErrs []entity.PortfolioError
	wallets    []entity.Wallet
	walletErrs []entity.PortfolioError
	gotOpts    entity.PortfolioOptions
}

func (s *stubPortfolioService) FetchPortfolio(_ context.Context, _ string, opts entity.PortfolioOptions) (entity.PortfolioResult, []entity.PortfolioError) {
	s.gotOpts = opts
	return s.result, s.resultErrs
}

func (s *stubPortfolioService) WalletSet(_ context.Context, _ *entity.Profile, _ []string) ([]entity.Wallet, []entity.PortfolioError) {
	return s.wallets, s.walletErrs
}

func newTestRouter(t *testing.T, ps *stubProfileService, pfs *stubPortfolioService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPortfolioHandler(ps, pfs, logger.NewSlogAdapter())
	RegisterRoutes(router, handler)
	return router
}

func doGet(router *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetProfileHandler_OK(t *testing.T) {
	ps := &stubProfileService{profiles: []entity.Profile{{FID: 3, Username: "dwr.eth"}}}
	pfs := &stubPortfolioService{wallets: []entity.Wallet{
		{Address: "0xaaaa000000000000000000000000000000000001", Source: entity.WalletSourceVerified},
	}}
	router := newTestRouter(t, ps, pfs)

	w := doGet(router, "/api/v1/profiles/dwr.eth")

	require.Equal(t, http.StatusOK, w.Code)
	var resp APIProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Profiles, 1)
	require.Len(t, resp.Data.Wallets, 1)
	assert.Equal(t, "Profile resolved successfully.", resp.StatusMessage)
}

func TestGetProfileHandler_TypeQueryMarksXHandle(t *testing.T) {
	ps := &stubProfileService{profiles: []entity.Profile{}}
	router := newTestRouter(t, ps, &stubPortfolioService{})

	doGet(router, "/api/v1/profiles/somehandle?type=x")

	assert.Equal(t, "x:somehandle", ps.gotIdentifier)
}

func TestGetProfileHandler_NotFound(t *testing.T) {
	router := newTestRouter(t, &stubProfileService{profiles: []entity.Profile{}}, &stubPortfolioService{})

	w := doGet(router, "/api/v1/profiles/nobody")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProfileHandler_UpstreamFailure(t *testing.T) {
	router := newTestRouter(t, &stubProfileService{err: errors.New("upstream down")}, &stubPortfolioService{})

	w := doGet(router, "/api/v1/profiles/dwr.eth")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetPortfolioHandler_OK(t *testing.T) {
	pfs := &stubPortfolioService{result: entity.PortfolioResult{
		AccountID:     "3",
		Holdings:      []entity.AggregatedHolding{{Symbol: "ETH", USDValue: 300}},
		TotalUSDValue: 300,
	}}
	router := newTestRouter(t, &stubProfileService{}, pfs)

	w := doGet(router, "/api/v1/profiles/3/portfolio?networks=base,ethereum&limit=5&wallets=0xaaaa000000000000000000000000000000000001")

	require.Equal(t, http.StatusOK, w.Code)
	var resp APIPortfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Portfolio retrieved successfully.", resp.StatusMessage)
	assert.InDelta(t, 300, resp.Data.Portfolio.TotalUSDValue, 1e-9)

	assert.Equal(t, []string{"base", "ethereum"}, pfs.gotOpts.Networks)
	assert.Equal(t, 5, pfs.gotOpts.Limit)
	assert.Equal(t, []string{"0xaaaa000000000000000000000000000000000001"}, pfs.gotOpts.ExtraWallets)
}

func TestGetPortfolioHandler_InvalidLimit(t *testing.T) {
	router := newTestRouter(t, &stubProfileService{}, &stubPortfolioService{})

	assert.Equal(t, http.StatusBadRequest, doGet(router, "/api/v1/profiles/3/portfolio?limit=zero").Code)
	assert.Equal(t, http.StatusBadRequest, doGet(router, "/api/v1/profiles/3/portfolio?limit=-1").Code)
}

func TestGetPortfolioHandler_PartialFailureStillOK(t *testing.T) {
	pfs := &stubPortfolioService{
		result: entity.PortfolioResult{
			AccountID:     "3",
			Holdings:      []entity.AggregatedHolding{{Symbol: "ETH", USDValue: 300}},
			TotalUSDValue: 300,
			Error:         "balance lookup failed for network(s): ethereum",
		},
		resultErrs: []entity.PortfolioError{{AccountID: "3", Network: "ethereum", Stage: "balances", Message: "timeout"}},
	}
	router := newTestRouter(t, &stubProfileService{}, pfs)

	w := doGet(router, "/api/v1/profiles/3/portfolio")

	require.Equal(t, http.StatusOK, w.Code)
	var resp APIPortfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.StatusMessage, "partial data")
	require.Len(t, resp.ServiceErrors, 1)
}

func TestGetPortfolioHandler_EmptyHoldings(t *testing.T) {
	pfs := &stubPortfolioService{result: entity.PortfolioResult{
		AccountID: "3",
		Holdings:  []entity.AggregatedHolding{},
	}}
	router := newTestRouter(t, &stubProfileService{}, pfs)

	w := doGet(router, "/api/v1/profiles/3/portfolio")

	require.Equal(t, http.StatusOK, w.Code)
	var resp APIPortfolioResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No holdings found for this account.", resp.StatusMessage)
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, &stubProfileService{}, &stubPortfolioService{})

	w := doGet(router, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
}
