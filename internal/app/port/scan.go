package port

import (
	"context"

	"wallet_scanner/internal/domain/entity"
)

// ScanService runs every registered discovery branch for a wallet and
// joins the results into one unordered holdings collection.
type ScanService interface {
	// ScanWallet scans the given chains (all configured chains when the
	// list is empty). Branch failures are collected in the result's
	// Errors, never returned as an error.
	ScanWallet(ctx context.Context, wallet string, chains []string) entity.WalletHoldings
}
