package db

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWalletStartsAtZero(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	wallet, err := store.CreateWallet(ctx, 42, "INR")
	require.NoError(t, err)
	assert.Equal(t, int64(42), wallet.UserID)
	assert.True(t, wallet.Balance.IsZero())
	assert.Equal(t, "INR", wallet.Currency)

	_, err = store.CreateWallet(ctx, 42, "INR")
	assert.Equal(t, ErrDuplicateWallet, err)
}

func TestGetWalletNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.GetWallet(context.Background(), 7)
	assert.Equal(t, ErrWalletNotFound, err)
}

func TestTopUpRecordsCreditWithBalanceAfter(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateWallet(ctx, 1, "INR")
	require.NoError(t, err)

	tx, err := store.TopUp(ctx, 1, decimal.RequireFromString("100.00"), "seed")
	require.NoError(t, err)
	assert.Equal(t, "credit", tx.Type)
	assert.True(t, tx.BalanceAfter.Equal(decimal.RequireFromString("100.00")))
	assert.NotEmpty(t, tx.ReferenceID)
	assert.Equal(t, "seed", tx.Remark)

	tx, err = store.TopUp(ctx, 1, decimal.RequireFromString("50.00"), "")
	require.NoError(t, err)
	assert.True(t, tx.BalanceAfter.Equal(decimal.RequireFromString("150.00")))

	wallet, err := store.GetWallet(ctx, 1)
	require.NoError(t, err)
	assert.True(t, wallet.Balance.Equal(decimal.RequireFromString("150.00")))
}

func TestTopUpRejectsNonPositiveAmount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_, err := store.CreateWallet(ctx, 1, "INR")
	require.NoError(t, err)

	_, err = store.TopUp(ctx, 1, decimal.Zero, "")
	assert.Equal(t, ErrInvalidAmount, err)

	_, err = store.TopUp(ctx, 1, decimal.NewFromInt(-5), "")
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestTransferMovesFundsAndRecordsBothLegs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateWallet(ctx, 1, "INR")
	require.NoError(t, err)
	_, err = store.CreateWallet(ctx, 2, "INR")
	require.NoError(t, err)
	_, err = store.TopUp(ctx, 1, decimal.NewFromInt(100), "")
	require.NoError(t, err)

	result, err := store.Transfer(ctx, 1, 2, decimal.NewFromInt(30), "rent")
	require.NoError(t, err)

	assert.Equal(t, "debit", result.Debit.Type)
	assert.Equal(t, "credit", result.Credit.Type)
	assert.Equal(t, result.Debit.ReferenceID, result.Credit.ReferenceID, "both legs share one reference id")
	assert.True(t, result.Debit.BalanceAfter.Equal(decimal.NewFromInt(70)))
	assert.True(t, result.Credit.BalanceAfter.Equal(decimal.NewFromInt(30)))
	assert.True(t, result.SenderBalance.Equal(decimal.NewFromInt(70)))

	sender, _ := store.GetWallet(ctx, 1)
	recipient, _ := store.GetWallet(ctx, 2)
	assert.True(t, sender.Balance.Equal(decimal.NewFromInt(70)))
	assert.True(t, recipient.Balance.Equal(decimal.NewFromInt(30)))
}

func TestTransferPolicyViolations(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateWallet(ctx, 1, "INR")
	require.NoError(t, err)
	_, err = store.CreateWallet(ctx, 2, "INR")
	require.NoError(t, err)
	_, err = store.TopUp(ctx, 1, decimal.NewFromInt(10), "")
	require.NoError(t, err)

	_, err = store.Transfer(ctx, 1, 2, decimal.NewFromInt(20), "")
	assert.Equal(t, ErrInsufficientFunds, err)

	_, err = store.Transfer(ctx, 1, 1, decimal.NewFromInt(5), "")
	assert.Equal(t, ErrSelfTransfer, err)

	_, err = store.Transfer(ctx, 1, 9999, decimal.NewFromInt(5), "")
	assert.Equal(t, ErrWalletNotFound, err)

	// failed transfers leave the sender untouched
	wallet, _ := store.GetWallet(ctx, 1)
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(10)))
}

func TestListTransactionsNewestFirstWithPaging(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.CreateWallet(ctx, 1, "INR")
	require.NoError(t, err)

	for i := 1; i <= 25; i++ {
		_, err = store.TopUp(ctx, 1, decimal.NewFromInt(int64(i)), "")
		require.NoError(t, err)
	}

	page, total, err := store.ListTransactions(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, page, 10)
	assert.True(t, page[0].Amount.Equal(decimal.NewFromInt(25)), "newest first")

	page, _, err = store.ListTransactions(ctx, 1, 10, 20)
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.True(t, page[4].Amount.Equal(decimal.NewFromInt(1)), "oldest entry on the last page")

	page, _, err = store.ListTransactions(ctx, 1, 10, 40)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, _, err = store.ListTransactions(ctx, 99, 10, 0)
	assert.Equal(t, ErrWalletNotFound, err)
}
