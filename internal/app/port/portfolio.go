package port

import (
	"context"

	"portfolio_checker/internal/domain/entity"
)

// PortfolioService defines the interface for fetching the aggregated portfolio
// of one account.
type PortfolioService interface {
	// FetchPortfolio resolves the identifier, assembles the account's wallet
	// set, fetches raw balances and aggregates them. It always returns a
	// valid PortfolioResult; non-fatal problems are reported in the error
	// slice and, when the whole fetch failed, in the result's Error field.
	FetchPortfolio(ctx context.Context, identifier string, opts entity.PortfolioOptions) (entity.PortfolioResult, []entity.PortfolioError)

	// WalletSet returns the wallet set that would back a portfolio fetch for
	// the given profile, including enrichment and caller-supplied extras.
	WalletSet(ctx context.Context, profile *entity.Profile, extraWallets []string) ([]entity.Wallet, []entity.PortfolioError)
}
