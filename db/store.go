package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is a stored-value account. Balance carries exact decimal semantics,
// it is never represented as a binary float.
type Wallet struct {
	UserID    int64
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
}

// WalletTransaction is an immutable ledger entry. BalanceAfter is the
// authoritative post-transaction balance of the owning wallet.
type WalletTransaction struct {
	ID           uuid.UUID
	UserID       int64
	CreatedAt    time.Time
	Type         string
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	ReferenceID  string
	Remark       string
}

// TransferResult carries both legs of a completed transfer.
type TransferResult struct {
	Debit         WalletTransaction
	Credit        WalletTransaction
	SenderBalance decimal.Decimal
}

// Store persists wallets and their transactions. Implementations must reject
// operations that would drive a balance negative and must serve transaction
// listings newest-first.
type Store interface {
	CreateWallet(ctx context.Context, userID int64, currency string) (Wallet, error)
	GetWallet(ctx context.Context, userID int64) (Wallet, error)
	TopUp(ctx context.Context, userID int64, amount decimal.Decimal, remark string) (WalletTransaction, error)
	Transfer(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal, remark string) (TransferResult, error)
	ListTransactions(ctx context.Context, userID int64, limit, offset int32) ([]WalletTransaction, int64, error)
}
