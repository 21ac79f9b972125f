package walletview_test

import (
	"context"
	"sync"

	"github.com/VeloPay/VeloPay-Console/services/ledger"
)

// fakeLedger is a scripted LedgerAPI. Each operation delegates to an
// optional function field and counts invocations; unset operations fail.
type fakeLedger struct {
	mu sync.Mutex

	balanceFn      func() ledger.BalanceResult
	createFn       func() ledger.WalletResult
	topUpFn        func(ledger.TopUpIntent) ledger.MutationResult
	transferFn     func(ledger.TransferIntent) ledger.MutationResult
	transactionsFn func(limit, offset int32) ledger.TransactionsResult

	balanceCalls      int
	createCalls       int
	topUpCalls        int
	transferCalls     int
	transactionsCalls int
	lastLimit         int32
	lastOffset        int32
}

func (f *fakeLedger) GetBalance(ctx context.Context, userID int64) ledger.BalanceResult {
	f.mu.Lock()
	f.balanceCalls++
	fn := f.balanceFn
	f.mu.Unlock()

	if fn == nil {
		return ledger.BalanceResult{}
	}
	return fn()
}

func (f *fakeLedger) CreateWallet(ctx context.Context, userID int64) ledger.WalletResult {
	f.mu.Lock()
	f.createCalls++
	fn := f.createFn
	f.mu.Unlock()

	if fn == nil {
		return ledger.WalletResult{}
	}
	return fn()
}

func (f *fakeLedger) TopUp(ctx context.Context, userID int64, intent ledger.TopUpIntent) ledger.MutationResult {
	f.mu.Lock()
	f.topUpCalls++
	fn := f.topUpFn
	f.mu.Unlock()

	if fn == nil {
		return ledger.MutationResult{}
	}
	return fn(intent)
}

func (f *fakeLedger) Transfer(ctx context.Context, fromUserID int64, intent ledger.TransferIntent) ledger.MutationResult {
	f.mu.Lock()
	f.transferCalls++
	fn := f.transferFn
	f.mu.Unlock()

	if fn == nil {
		return ledger.MutationResult{}
	}
	return fn(intent)
}

func (f *fakeLedger) GetTransactions(ctx context.Context, userID int64, limit, offset int32) ledger.TransactionsResult {
	f.mu.Lock()
	f.transactionsCalls++
	f.lastLimit = limit
	f.lastOffset = offset
	fn := f.transactionsFn
	f.mu.Unlock()

	if fn == nil {
		return ledger.TransactionsResult{}
	}
	return fn(limit, offset)
}

func (f *fakeLedger) counts() (balance, create, topUp, transfer, transactions int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balanceCalls, f.createCalls, f.topUpCalls, f.transferCalls, f.transactionsCalls
}

// eventLog records what happened in order across notifier, bus and close
// callbacks.
type eventLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *eventLog) add(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *eventLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

type recordingNotifier struct {
	log *eventLog
}

func (n recordingNotifier) Success(message string) { n.log.add("notify-success:" + message) }
func (n recordingNotifier) Error(message string)   { n.log.add("notify-error:" + message) }
