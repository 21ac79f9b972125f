package walletview

import (
	"context"

	"github.com/VeloPay/VeloPay-Console/services/ledger"
)

// LedgerAPI is the slice of the ledger client the wallet views depend on.
// Tests substitute a scripted implementation.
type LedgerAPI interface {
	GetBalance(ctx context.Context, userID int64) ledger.BalanceResult
	CreateWallet(ctx context.Context, userID int64) ledger.WalletResult
	TopUp(ctx context.Context, userID int64, intent ledger.TopUpIntent) ledger.MutationResult
	Transfer(ctx context.Context, fromUserID int64, intent ledger.TransferIntent) ledger.MutationResult
	GetTransactions(ctx context.Context, userID int64, limit, offset int32) ledger.TransactionsResult
}
