package walletview

import (
	"context"
	"sync"

	"github.com/VeloPay/VeloPay-Console/services/ledger"
	"github.com/VeloPay/VeloPay-Console/services/monitoring/logging"
	"github.com/VeloPay/VeloPay-Console/services/signal"
	"github.com/VeloPay/VeloPay-Console/utils"
	"github.com/shopspring/decimal"
)

type BalanceState int

const (
	BalanceLoading BalanceState = iota
	BalanceLoaded
	BalanceNotFound
	BalanceErrored
)

func (s BalanceState) String() string {
	switch s {
	case BalanceLoading:
		return "loading"
	case BalanceLoaded:
		return "loaded"
	case BalanceNotFound:
		return "not_found"
	case BalanceErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// BalanceSnapshot is what a renderer reads. Display is only meaningful in
// the Loaded state, Message only in NotFound and Errored.
type BalanceSnapshot struct {
	State   BalanceState
	Balance decimal.Decimal
	Display string
	Message string
}

// BalanceView keeps the displayed balance consistent with the remote
// ledger. It never computes a balance itself: every mutation elsewhere in
// the process reaches it as a refresh signal, and it answers with a fresh
// fetch.
type BalanceView struct {
	ledgerAPI LedgerAPI
	bus       *signal.Bus
	formatter *utils.MoneyFormatter
	logger    *logging.Logger
	userID    int64

	mu          sync.Mutex
	state       BalanceState
	balance     decimal.Decimal
	message     string
	fetchSeq    uint64
	creating    bool
	closed      bool
	unsubscribe func()
}

func NewBalanceView(ledgerAPI LedgerAPI, bus *signal.Bus, formatter *utils.MoneyFormatter, logger *logging.Logger, userID int64) *BalanceView {
	return &BalanceView{
		ledgerAPI: ledgerAPI,
		bus:       bus,
		formatter: formatter,
		logger:    logger,
		userID:    userID,
		state:     BalanceLoading,
	}
}

// Mount subscribes the view to refresh signals and performs the initial
// fetch. The subscription lasts until Close.
func (v *BalanceView) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.closed || v.unsubscribe != nil {
		v.mu.Unlock()
		return
	}
	v.unsubscribe = v.bus.Subscribe(func(signal.Signal) {
		v.Reload(ctx)
	})
	v.mu.Unlock()

	v.Reload(ctx)
}

// Reload re-enters Loading and fetches the authoritative balance. When
// reloads overlap, the most recently started fetch wins and stale
// completions are dropped.
func (v *BalanceView) Reload(ctx context.Context) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.state = BalanceLoading
	v.fetchSeq++
	seq := v.fetchSeq
	v.mu.Unlock()

	result := v.ledgerAPI.GetBalance(ctx, v.userID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || seq != v.fetchSeq {
		return
	}

	switch {
	case result.Success:
		v.state = BalanceLoaded
		v.balance = result.Balance
		v.message = ""
	case result.Error == ledger.WalletNotFound:
		v.state = BalanceNotFound
		v.message = result.Message
	default:
		v.state = BalanceErrored
		v.message = result.Message
	}
}

// CreateWallet invokes the creation affordance offered in the NotFound
// state, then unconditionally re-fetches: the creation response's echoed
// zero balance is not trusted over a fresh read.
func (v *BalanceView) CreateWallet(ctx context.Context) {
	v.mu.Lock()
	if v.closed || v.creating {
		v.mu.Unlock()
		return
	}
	v.creating = true
	v.mu.Unlock()

	result := v.ledgerAPI.CreateWallet(ctx, v.userID)

	v.mu.Lock()
	v.creating = false
	if v.closed {
		v.mu.Unlock()
		return
	}
	if !result.Success {
		v.state = BalanceErrored
		v.message = result.Message
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	v.Reload(ctx)
}

// Snapshot returns the current render state.
func (v *BalanceView) Snapshot() BalanceSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := BalanceSnapshot{
		State:   v.state,
		Balance: v.balance,
		Message: v.message,
	}
	if v.state == BalanceLoaded && v.formatter != nil {
		snap.Display = v.formatter.Format(v.balance)
	}
	return snap
}

// Close detaches the view from the bus. Fetches still in flight resolve as
// no-ops afterwards.
func (v *BalanceView) Close() {
	v.mu.Lock()
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.closed = true
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
