package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	wire "portfolio_checker/internal/entity"

	"portfolio_checker/internal/domain/entity"
	"portfolio_checker/internal/pkg/metrics"
)

// BankrClient talks to the Bankr public wallet API. It implements
// port.WalletEnricher.
type BankrClient struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewBankrClient creates a new BankrClient.
func NewBankrClient(baseURL string, timeout time.Duration, logger *zap.Logger) *BankrClient {
	return &BankrClient{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("BankrClient"),
	}
}

// GetWalletByUsername looks up the Bankr wallet for a social username. A
// username without a Bankr wallet yields (nil, nil); enrichment is optional
// and its absence is not an error.
func (c *BankrClient) GetWalletByUsername(ctx context.Context, username, platform string) (*entity.BankrWallet, error) {
	username = strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if platform == "" {
		platform = "twitter"
	}

	requestURL := fmt.Sprintf("%s/public/wallet?username=%s&platform=%s",
		c.baseURL, url.QueryEscape(username), url.QueryEscape(platform))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	metrics.UpstreamRequestDuration.WithLabelValues("bankr", "wallet").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("bankr", "wallet").Inc()
		c.logger.Warn("Failed to execute request to Bankr", zap.String("url", requestURL), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	if resp.StatusCode() == fasthttp.StatusNotFound {
		c.logger.Debug("No Bankr wallet for username", zap.String("username", username), zap.String("platform", platform))
		return nil, nil
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		metrics.UpstreamErrorsTotal.WithLabelValues("bankr", "wallet").Inc()
		c.logger.Warn("Bankr API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", resp.Body()),
		)
		return nil, fmt.Errorf("bankr API request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var walletResp wire.BankrWalletResponse
	if err := json.Unmarshal(resp.Body(), &walletResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Bankr wallet response: %w", err)
	}

	if walletResp.EVMAddress == "" && walletResp.SolanaAddress == "" {
		return nil, nil
	}
	return &entity.BankrWallet{
		EVMAddress:    strings.ToLower(walletResp.EVMAddress),
		SolanaAddress: walletResp.SolanaAddress,
		BankrClub:     walletResp.BankrClub,
	}, nil
}
