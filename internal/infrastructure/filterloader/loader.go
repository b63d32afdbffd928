package filterloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"portfolio_checker/internal/domain/entity"
)

const defaultFilterFilePath = "data/filters.yml"

// FilterFileLoader loads the holdings filter lists from a YAML data file,
// falling back to the compiled-in defaults when the file is absent. Fields
// present in the file replace the corresponding default list wholesale, so the
// file is the single source of truth for list maintenance.
type FilterFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
	loggerWarn func(msg string, args ...any)
}

// NewFilterFileLoader creates a new FilterFileLoader for the given path. An
// empty path selects the default location.
func NewFilterFileLoader(filePath string, loggerInfo, loggerWarn func(msg string, args ...any)) *FilterFileLoader {
	if filePath == "" {
		filePath = defaultFilterFilePath
	}
	return &FilterFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
		loggerWarn: loggerWarn,
	}
}

// Load returns the filter lists, merging the data file over the defaults.
func (l *FilterFileLoader) Load() (entity.FilterLists, error) {
	lists := DefaultFilterLists()

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			if l.loggerWarn != nil {
				l.loggerWarn("Filter list file not found, using compiled-in defaults", "path", l.filePath)
			}
			return lists, nil
		}
		return lists, fmt.Errorf("failed to read filter list file %s: %w", l.filePath, err)
	}

	var fromFile entity.FilterLists
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return lists, fmt.Errorf("failed to unmarshal filter lists from %s: %w", l.filePath, err)
	}

	if len(fromFile.ScamContracts) > 0 {
		lists.ScamContracts = fromFile.ScamContracts
	}
	if len(fromFile.VaultContracts) > 0 {
		lists.VaultContracts = fromFile.VaultContracts
	}
	if len(fromFile.ScamNames) > 0 {
		lists.ScamNames = fromFile.ScamNames
	}
	if len(fromFile.VaultSymbols) > 0 {
		lists.VaultSymbols = fromFile.VaultSymbols
	}
	if len(fromFile.VaultNameKeywords) > 0 {
		lists.VaultNameKeywords = fromFile.VaultNameKeywords
	}
	if len(fromFile.PromoKeywords) > 0 {
		lists.PromoKeywords = fromFile.PromoKeywords
	}
	if len(fromFile.FallbackUnitPrices) > 0 {
		lists.FallbackUnitPrices = fromFile.FallbackUnitPrices
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Filter lists loaded",
			"path", l.filePath,
			"scam_contracts", len(lists.ScamContracts),
			"vault_contracts", len(lists.VaultContracts),
			"scam_names", len(lists.ScamNames),
			"vault_symbols", len(lists.VaultSymbols),
			"fallback_prices", len(lists.FallbackUnitPrices),
		)
	}
	return lists, nil
}

// DefaultFilterLists returns the compiled-in denylist/allowlist data. The
// YAML data file overrides these lists at startup; the defaults keep the
// service usable without any data directory.
func DefaultFilterLists() entity.FilterLists {
	return entity.FilterLists{
		ScamContracts: []string{
			"0x20f7c0ef4b6dd4bb8a1f2b42f07b0c0f75a1bcf1",
			"0x68f180fcce6836688e9084f035309e29bf0a2095",
			"0x8f9b4525681f3ea6e43b8e0a57bfff86c0a1dd2e",
			"0xc748673057861a797275cd8a068abb95a902e8de",
		},
		VaultContracts: []string{
			"0xc1256ae5ff1cf2719d4937adb3bbccab2e00a2ca", // Moonwell flagship USDC
			"0xbeef010f9cb27031ad51e3333f9af9c6b1228183", // Steakhouse USDC vault
			"0xa0e430870c4604ccfc7b38ca7845b1ff653d0ff1", // mwETH
		},
		ScamNames: []string{
			"zepe.io",
			"bnbdefi",
			"$ aiquickdrop.xyz",
			"eth bonus",
		},
		VaultSymbols: []string{
			"steakusdc",
			"mwusdc",
			"mweth",
			"wsuperoethb",
			"ysusdc",
		},
		VaultNameKeywords: []string{
			"staked",
			"vault",
			"wrapped",
			"yield",
			"moonwell flagship",
		},
		PromoKeywords: []string{
			"airdrop",
			"claim",
			"bonus",
			"reward at",
			"visit",
			".com",
			".xyz",
			".to",
			"t.me",
		},
		FallbackUnitPrices: map[string]float64{
			// BRACKY trades too thinly for the upstream pricing source to
			// cover it; value the balance at a fixed unit price instead of
			// dropping it as worthless.
			"0x06f71fb90f84b35302d132322a3c90e4477333b0": 0.000042,
		},
	}
}
