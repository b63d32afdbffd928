package port

import (
	"context"

	"portfolio_checker/internal/domain/entity"
)

// BalanceProvider defines the interface for the external balance lookup
// service: given an account identifier and a network selector it returns the
// raw per-wallet token holdings that feed the aggregator.
type BalanceProvider interface {
	GetAccountBalances(ctx context.Context, fid uint64, network string) ([]entity.AddressBalances, error)
}

// WalletEnricher defines the interface for the external wallet enrichment
// service: given a social username and platform tag it returns an optional
// secondary wallet record to merge into the account's wallet set.
type WalletEnricher interface {
	GetWalletByUsername(ctx context.Context, username, platform string) (*entity.BankrWallet, error)
}
