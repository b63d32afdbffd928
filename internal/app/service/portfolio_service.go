package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"portfolio_checker/internal/app/port"
	"portfolio_checker/internal/domain/entity"
	"portfolio_checker/internal/infrastructure/configloader"
	"portfolio_checker/internal/pkg/metrics"
)

// PortfolioServiceImpl implements port.PortfolioService. It resolves the
// account, assembles its wallet set, fans out balance lookups per network and
// feeds the flattened result into the aggregator.
type PortfolioServiceImpl struct {
	profileSvc port.ProfileService
	balances   port.BalanceProvider
	enricher   port.WalletEnricher
	aggregator *Aggregator
	logger     port.Logger
	cfg        *configloader.Config
	cache      *gocache.Cache
}

// NewPortfolioService creates a new PortfolioServiceImpl.
func NewPortfolioService(
	ps port.ProfileService,
	bp port.BalanceProvider,
	we port.WalletEnricher,
	agg *Aggregator,
	l port.Logger,
	cfg *configloader.Config,
) port.PortfolioService {
	ttl := time.Duration(cfg.PortfolioSvc.CacheTTLSeconds) * time.Second
	return &PortfolioServiceImpl{
		profileSvc: ps,
		balances:   bp,
		enricher:   we,
		aggregator: agg,
		logger:     l,
		cfg:        cfg,
		cache:      gocache.New(ttl, 2*ttl),
	}
}

// FetchPortfolio implements port.PortfolioService. It never returns an invalid
// result: resolution or balance failures degrade into an advisory Error field
// and a (possibly empty) holdings list computed from whatever data arrived.
func (s *PortfolioServiceImpl) FetchPortfolio(ctx context.Context, identifier string, opts entity.PortfolioOptions) (entity.PortfolioResult, []entity.PortfolioError) {
	profiles, err := s.profileSvc.ResolveProfiles(ctx, identifier)
	if err != nil {
		s.logger.Error("Failed to resolve account identifier", "identifier", identifier, "error", err)
		return entity.PortfolioResult{
				AccountID: identifier,
				Holdings:  []entity.AggregatedHolding{},
				Error:     fmt.Sprintf("profile resolution failed: %v", err),
			}, []entity.PortfolioError{
				{AccountID: identifier, Stage: "resolve", Message: err.Error()},
			}
	}
	if len(profiles) == 0 {
		s.logger.Warn("No profile matched account identifier", "identifier", identifier)
		return entity.PortfolioResult{
			AccountID: identifier,
			Holdings:  []entity.AggregatedHolding{},
			Error:     "no matching profile",
		}, nil
	}

	profile := profiles[0]
	accountID := strconv.FormatUint(profile.FID, 10)

	networks := opts.Networks
	if len(networks) == 0 {
		networks = s.cfg.PortfolioSvc.Networks
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.PortfolioSvc.DefaultHoldingsLimit
	}
	if limit > maxAggregatedHoldings {
		limit = maxAggregatedHoldings
	}

	// Extra wallets cannot widen the balance lookup: the upstream balance API
	// is account-scoped. Validate them anyway so a caller learns when an extra
	// address is malformed or outside the account's covered wallet set.
	walletErrs := s.checkExtraWallets(&profile, opts.ExtraWallets)

	cacheKey := accountID + "|" + strings.Join(networks, ",")
	if cached, found := s.cache.Get(cacheKey); found {
		metrics.CacheEventsTotal.WithLabelValues("portfolios", "hit").Inc()
		s.logger.Debug("Portfolio cache hit", "key", cacheKey)
		return truncateResult(cached.(entity.PortfolioResult), limit), walletErrs
	}
	metrics.CacheEventsTotal.WithLabelValues("portfolios", "miss").Inc()

	byWallet, fetchErrs := s.fetchBalances(ctx, profile.FID, networks)

	result := s.aggregator.Aggregate(accountID, byWallet)
	if len(fetchErrs) > 0 {
		failed := make([]string, 0, len(fetchErrs))
		for _, fe := range fetchErrs {
			failed = append(failed, fe.Network)
		}
		result.Error = fmt.Sprintf("balance lookup failed for network(s): %s", strings.Join(failed, ", "))
	}

	// Only fully successful fetches are cached, so a transient upstream
	// failure does not stick for the TTL.
	if len(fetchErrs) == 0 {
		s.cache.Set(cacheKey, result, gocache.DefaultExpiration)
	}

	s.logger.Info("Portfolio aggregated",
		"account_id", accountID,
		"holdings", len(result.Holdings),
		"total_usd", result.TotalUSDValue,
		"fetch_errors", len(fetchErrs))
	return truncateResult(result, limit), append(walletErrs, fetchErrs...)
}

// checkExtraWallets validates caller-supplied extra addresses against the
// account's covered wallet set. The balance API only reports the account's own
// addresses, so an extra wallet is either redundant (already covered) or
// unqueryable; both malformed and uncovered extras are reported as service
// errors rather than silently dropped.
func (s *PortfolioServiceImpl) checkExtraWallets(profile *entity.Profile, extras []string) []entity.PortfolioError {
	if len(extras) == 0 {
		return nil
	}
	accountID := strconv.FormatUint(profile.FID, 10)

	covered := make(map[string]struct{}, len(profile.VerifiedAddresses)+1)
	for _, addr := range profile.VerifiedAddresses {
		covered[strings.ToLower(addr)] = struct{}{}
	}
	if profile.CustodyAddress != "" {
		covered[strings.ToLower(profile.CustodyAddress)] = struct{}{}
	}

	var errs []entity.PortfolioError
	for _, addr := range extras {
		trimmed := strings.TrimSpace(addr)
		if !common.IsHexAddress(trimmed) {
			errs = append(errs, entity.PortfolioError{
				AccountID: accountID,
				Stage:     "query_wallet",
				Message:   fmt.Sprintf("invalid wallet address %q", addr),
			})
			continue
		}
		lower := strings.ToLower(trimmed)
		if _, ok := covered[lower]; !ok {
			errs = append(errs, entity.PortfolioError{
				AccountID:     accountID,
				WalletAddress: lower,
				Stage:         "query_wallet",
				Message:       "balance lookups are account-scoped; this address is not in the account's covered wallet set",
			})
		}
	}
	return errs
}

// fetchBalances fans out one balance lookup per network with bounded
// concurrency. A failed network is skipped and reported; it never fails the
// batch.
func (s *PortfolioServiceImpl) fetchBalances(ctx context.Context, fid uint64, networks []string) ([]entity.AddressBalances, []entity.PortfolioError) {
	perNetwork := make([][]entity.AddressBalances, len(networks))

	var mu sync.Mutex
	var fetchErrs []entity.PortfolioError

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.PortfolioSvc.MaxConcurrentFetches)

	for i, network := range networks {
		g.Go(func() error {
			balances, err := s.balances.GetAccountBalances(gctx, fid, network)
			if err != nil {
				s.logger.Warn("Balance lookup failed for network", "fid", fid, "network", network, "error", err)
				mu.Lock()
				fetchErrs = append(fetchErrs, entity.PortfolioError{
					AccountID: strconv.FormatUint(fid, 10),
					Network:   network,
					Stage:     "balances",
					Message:   err.Error(),
				})
				mu.Unlock()
				return nil
			}
			perNetwork[i] = balances
			return nil
		})
	}
	_ = g.Wait() // workers report their own failures

	// Flatten in network order so aggregation input order is deterministic.
	var byWallet []entity.AddressBalances
	for _, balances := range perNetwork {
		byWallet = append(byWallet, balances...)
	}
	return byWallet, fetchErrs
}

// WalletSet assembles the deduplicated wallet set backing a portfolio fetch:
// verified addresses, the custody address, the optional Bankr wallet and any
// caller-supplied extras.
func (s *PortfolioServiceImpl) WalletSet(ctx context.Context, profile *entity.Profile, extraWallets []string) ([]entity.Wallet, []entity.PortfolioError) {
	var wallets []entity.Wallet
	var walletErrs []entity.PortfolioError
	seen := make(map[string]struct{})

	add := func(address string, source entity.WalletSource) {
		address = strings.ToLower(strings.TrimSpace(address))
		if address == "" {
			return
		}
		if _, ok := seen[address]; ok {
			return
		}
		seen[address] = struct{}{}
		wallets = append(wallets, entity.Wallet{Address: address, Source: source})
	}

	for _, addr := range profile.VerifiedAddresses {
		add(addr, entity.WalletSourceVerified)
	}
	add(profile.CustodyAddress, entity.WalletSourceCustody)

	// Bankr indexes wallets by X handle first, Farcaster username otherwise.
	username, platform := profile.Username, "farcaster"
	if xName, ok := profile.XUsername(); ok {
		username, platform = xName, "twitter"
	}
	if username != "" {
		bankrWallet, err := s.enricher.GetWalletByUsername(ctx, username, platform)
		if err != nil {
			s.logger.Warn("Wallet enrichment failed", "username", username, "platform", platform, "error", err)
			walletErrs = append(walletErrs, entity.PortfolioError{
				AccountID: strconv.FormatUint(profile.FID, 10),
				Stage:     "enrichment",
				Message:   err.Error(),
			})
		} else if bankrWallet != nil {
			add(bankrWallet.EVMAddress, entity.WalletSourceBankr)
		}
	}

	for _, addr := range extraWallets {
		if !common.IsHexAddress(strings.TrimSpace(addr)) {
			walletErrs = append(walletErrs, entity.PortfolioError{
				AccountID: strconv.FormatUint(profile.FID, 10),
				Stage:     "query_wallet",
				Message:   fmt.Sprintf("invalid wallet address %q", addr),
			})
			continue
		}
		add(addr, entity.WalletSourceQuery)
	}

	return wallets, walletErrs
}

// truncateResult applies the caller's display limit and recomputes the total
// so it always equals the sum over the holdings actually returned.
func truncateResult(result entity.PortfolioResult, limit int) entity.PortfolioResult {
	if limit <= 0 || len(result.Holdings) <= limit {
		return result
	}
	truncated := result
	truncated.Holdings = result.Holdings[:limit]
	truncated.TotalUSDValue = 0
	for _, h := range truncated.Holdings {
		truncated.TotalUSDValue += h.USDValue
	}
	return truncated
}
