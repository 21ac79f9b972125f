package walletview_test

import (
	"context"
	"strings"
	"testing"

	"github.com/VeloPay/VeloPay-Console/services/ledger"
	"github.com/VeloPay/VeloPay-Console/services/monitoring/logging"
	"github.com/VeloPay/VeloPay-Console/services/signal"
	"github.com/VeloPay/VeloPay-Console/services/walletview"
	"github.com/VeloPay/VeloPay-Console/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFormatter(t *testing.T) *utils.MoneyFormatter {
	t.Helper()
	formatter, err := utils.NewMoneyFormatter("en-IN", "INR")
	require.NoError(t, err)
	return formatter
}

func newBalanceView(t *testing.T, fake *fakeLedger, bus *signal.Bus) *walletview.BalanceView {
	t.Helper()
	v := walletview.NewBalanceView(fake, bus, testFormatter(t), logging.NewTestLogger(), 1)
	t.Cleanup(v.Close)
	return v
}

func TestBalanceStartsInLoading(t *testing.T) {
	fake := &fakeLedger{}
	v := newBalanceView(t, fake, signal.NewBus())

	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceLoading, snap.State)
	assert.Empty(t, snap.Display)
}

func TestMountLoadsBalance(t *testing.T) {
	fake := &fakeLedger{
		balanceFn: func() ledger.BalanceResult {
			return ledger.BalanceResult{
				Status:  ledger.Status{Success: true},
				Balance: decimal.RequireFromString("150.00"),
			}
		},
	}
	v := newBalanceView(t, fake, signal.NewBus())
	v.Mount(context.Background())

	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceLoaded, snap.State)
	assert.True(t, snap.Balance.Equal(decimal.RequireFromString("150.00")))
	assert.True(t, strings.HasSuffix(snap.Display, "150.00"), "got %q", snap.Display)
	assert.Empty(t, snap.Message)
}

func TestMissingWalletEntersNotFound(t *testing.T) {
	fake := &fakeLedger{
		balanceFn: func() ledger.BalanceResult {
			return ledger.BalanceResult{Status: ledger.Status{
				Error:   ledger.WalletNotFound,
				Message: "Wallet does not exist for this user. Please create a wallet first.",
			}}
		},
	}
	v := newBalanceView(t, fake, signal.NewBus())
	v.Mount(context.Background())

	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceNotFound, snap.State)
	assert.Contains(t, snap.Message, "create a wallet")
}

func TestFetchFailureEntersErrored(t *testing.T) {
	fake := &fakeLedger{
		balanceFn: func() ledger.BalanceResult {
			return ledger.BalanceResult{Status: ledger.Status{
				Error:   ledger.WalletFetchFailed,
				Message: "An error occurred while fetching wallet balance",
			}}
		},
	}
	v := newBalanceView(t, fake, signal.NewBus())
	v.Mount(context.Background())

	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceErrored, snap.State)
	assert.NotEmpty(t, snap.Message)
}

func TestCreateWalletRefetchesFreshBalance(t *testing.T) {
	fake := &fakeLedger{}
	created := false
	fake.balanceFn = func() ledger.BalanceResult {
		if !created {
			return ledger.BalanceResult{Status: ledger.Status{Error: ledger.WalletNotFound, Message: "missing"}}
		}
		return ledger.BalanceResult{Status: ledger.Status{Success: true}, Balance: decimal.Zero}
	}
	fake.createFn = func() ledger.WalletResult {
		created = true
		return ledger.WalletResult{Status: ledger.Status{Success: true}}
	}

	v := newBalanceView(t, fake, signal.NewBus())
	ctx := context.Background()
	v.Mount(ctx)
	require.Equal(t, walletview.BalanceNotFound, v.Snapshot().State)

	v.CreateWallet(ctx)

	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceLoaded, snap.State)
	assert.True(t, snap.Balance.IsZero())

	_, createCalls, _, _, _ := fake.counts()
	assert.Equal(t, 1, createCalls)
}

func TestCreateWalletFailureEntersErrored(t *testing.T) {
	fake := &fakeLedger{
		balanceFn: func() ledger.BalanceResult {
			return ledger.BalanceResult{Status: ledger.Status{Error: ledger.WalletNotFound, Message: "missing"}}
		},
		createFn: func() ledger.WalletResult {
			return ledger.WalletResult{Status: ledger.Status{
				Error:   ledger.CreateFailed,
				Message: "An error occurred while creating wallet",
			}}
		},
	}
	v := newBalanceView(t, fake, signal.NewBus())
	ctx := context.Background()
	v.Mount(ctx)

	v.CreateWallet(ctx)

	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceErrored, snap.State)
	assert.Equal(t, "An error occurred while creating wallet", snap.Message)
}

func TestRefreshSignalRefetches(t *testing.T) {
	balance := decimal.NewFromInt(100)
	fake := &fakeLedger{}
	fake.balanceFn = func() ledger.BalanceResult {
		return ledger.BalanceResult{Status: ledger.Status{Success: true}, Balance: balance}
	}

	bus := signal.NewBus()
	v := newBalanceView(t, fake, bus)
	v.Mount(context.Background())
	require.True(t, v.Snapshot().Balance.Equal(decimal.NewFromInt(100)))

	balance = decimal.NewFromInt(250)
	bus.Publish(signal.Signal{Amount: decimal.NewFromInt(150)})

	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceLoaded, snap.State)
	assert.True(t, snap.Balance.Equal(decimal.NewFromInt(250)))

	// refreshing again without a ledger change converges on the same state
	bus.Publish(signal.Signal{})
	assert.Equal(t, snap, v.Snapshot())

	balanceCalls, _, _, _, _ := fake.counts()
	assert.Equal(t, 3, balanceCalls)
}

func TestOverlappingReloadsLastWriteWins(t *testing.T) {
	fake := &fakeLedger{}
	bus := signal.NewBus()
	var v *walletview.BalanceView

	ctx := context.Background()
	nested := false
	fake.balanceFn = func() ledger.BalanceResult {
		if !nested {
			// a newer reload starts while this fetch is still outstanding
			nested = true
			v.Reload(ctx)
			return ledger.BalanceResult{Status: ledger.Status{Success: true}, Balance: decimal.NewFromInt(111)}
		}
		return ledger.BalanceResult{Status: ledger.Status{Success: true}, Balance: decimal.NewFromInt(999)}
	}

	v = newBalanceView(t, fake, bus)
	v.Mount(ctx)

	// the stale completion of the first fetch must not overwrite the newer one
	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceLoaded, snap.State)
	assert.True(t, snap.Balance.Equal(decimal.NewFromInt(999)), "stale fetch overwrote newer result: %s", snap.Balance)
}

func TestNoStateUpdateAfterClose(t *testing.T) {
	fake := &fakeLedger{}
	var v *walletview.BalanceView

	fake.balanceFn = func() ledger.BalanceResult {
		v.Close()
		return ledger.BalanceResult{Status: ledger.Status{Success: true}, Balance: decimal.NewFromInt(500)}
	}

	v = newBalanceView(t, fake, signal.NewBus())
	v.Mount(context.Background())

	snap := v.Snapshot()
	assert.Equal(t, walletview.BalanceLoading, snap.State)
	assert.True(t, snap.Balance.IsZero())
}

func TestCloseDetachesFromBus(t *testing.T) {
	fake := &fakeLedger{
		balanceFn: func() ledger.BalanceResult {
			return ledger.BalanceResult{Status: ledger.Status{Success: true}}
		},
	}
	bus := signal.NewBus()
	v := newBalanceView(t, fake, bus)
	v.Mount(context.Background())
	require.Equal(t, 1, bus.ListenerCount())

	v.Close()
	assert.Equal(t, 0, bus.ListenerCount())

	bus.Publish(signal.Signal{})
	balanceCalls, _, _, _, _ := fake.counts()
	assert.Equal(t, 1, balanceCalls)
}

func TestBalanceStateStrings(t *testing.T) {
	assert.Equal(t, "loading", walletview.BalanceLoading.String())
	assert.Equal(t, "loaded", walletview.BalanceLoaded.String())
	assert.Equal(t, "not_found", walletview.BalanceNotFound.String())
	assert.Equal(t, "errored", walletview.BalanceErrored.String())
}
