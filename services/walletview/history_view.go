package walletview

import (
	"context"
	"sync"

	"github.com/VeloPay/VeloPay-Console/models"
	"github.com/VeloPay/VeloPay-Console/services/monitoring/logging"
	"github.com/VeloPay/VeloPay-Console/services/signal"
	"github.com/VeloPay/VeloPay-Console/utils"
)

// placeholder rendered for absent per-transaction fields.
const fieldPlaceholder = "N/A"

const timestampLayout = "02 Jan 2006, 03:04 PM"

// HistoryRow is one display-ready transaction line.
type HistoryRow struct {
	When         string
	Type         string
	Amount       string
	BalanceAfter string
	Reference    string
	Remark       string
}

type PageInfo struct {
	Limit  int32
	Offset int32
	Total  int64
}

type HistorySnapshot struct {
	Loading bool
	Error   string
	Empty   bool
	Rows    []HistoryRow
	Page    PageInfo
}

// HistoryView renders one page of wallet transactions and keeps it fresh.
// It reloads on mount, on page change, and on every refresh signal; a
// signal-triggered reload keeps the user's current page position.
type HistoryView struct {
	ledgerAPI LedgerAPI
	bus       *signal.Bus
	formatter *utils.MoneyFormatter
	logger    *logging.Logger
	userID    int64

	mu           sync.Mutex
	transactions []models.TransactionResponse
	limit        int32
	offset       int32
	total        int64
	loading      bool
	errMessage   string
	fetchSeq     uint64
	closed       bool
	unsubscribe  func()
}

func NewHistoryView(ledgerAPI LedgerAPI, bus *signal.Bus, formatter *utils.MoneyFormatter, logger *logging.Logger, userID int64, pageSize int32) *HistoryView {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &HistoryView{
		ledgerAPI: ledgerAPI,
		bus:       bus,
		formatter: formatter,
		logger:    logger,
		userID:    userID,
		limit:     pageSize,
		loading:   true,
	}
}

func (v *HistoryView) Mount(ctx context.Context) {
	v.mu.Lock()
	if v.closed || v.unsubscribe != nil {
		v.mu.Unlock()
		return
	}
	v.unsubscribe = v.bus.Subscribe(func(signal.Signal) {
		// refresh preserves the pagination position
		v.Reload(ctx)
	})
	v.mu.Unlock()

	v.Reload(ctx)
}

// Reload fetches the page at the current offset. Overlapping reloads
// resolve last-write-wins.
func (v *HistoryView) Reload(ctx context.Context) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.loading = true
	v.errMessage = ""
	v.fetchSeq++
	seq := v.fetchSeq
	limit, offset := v.limit, v.offset
	v.mu.Unlock()

	result := v.ledgerAPI.GetTransactions(ctx, v.userID, limit, offset)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || seq != v.fetchSeq {
		return
	}

	v.loading = false
	if !result.Success {
		v.errMessage = result.Message
		v.transactions = nil
		return
	}

	v.transactions = result.Transactions
	v.total = result.TotalCount
}

// HasPrevious reports whether an earlier page exists.
func (v *HistoryView) HasPrevious() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset > 0
}

// HasNext reports whether a later page exists.
func (v *HistoryView) HasNext() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return int64(v.offset)+int64(v.limit) < v.total
}

// PreviousPage steps back exactly one page width and re-fetches. At the
// first page it does nothing.
func (v *HistoryView) PreviousPage(ctx context.Context) {
	v.mu.Lock()
	if v.offset <= 0 {
		v.mu.Unlock()
		return
	}
	v.offset -= v.limit
	if v.offset < 0 {
		v.offset = 0
	}
	v.mu.Unlock()

	v.Reload(ctx)
}

// NextPage advances exactly one page width and re-fetches. At the last page
// it does nothing.
func (v *HistoryView) NextPage(ctx context.Context) {
	v.mu.Lock()
	if int64(v.offset)+int64(v.limit) >= v.total {
		v.mu.Unlock()
		return
	}
	v.offset += v.limit
	v.mu.Unlock()

	v.Reload(ctx)
}

func (v *HistoryView) Snapshot() HistorySnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snap := HistorySnapshot{
		Loading: v.loading,
		Error:   v.errMessage,
		Page: PageInfo{
			Limit:  v.limit,
			Offset: v.offset,
			Total:  v.total,
		},
	}

	if v.loading || v.errMessage != "" {
		return snap
	}

	if len(v.transactions) == 0 {
		snap.Empty = true
		return snap
	}

	snap.Rows = make([]HistoryRow, len(v.transactions))
	for i, tx := range v.transactions {
		snap.Rows[i] = v.renderRow(tx)
	}
	return snap
}

// renderRow tolerates absent fields, they render as an explicit
// placeholder rather than crashing the table.
func (v *HistoryView) renderRow(tx models.TransactionResponse) HistoryRow {
	row := HistoryRow{
		Type:         tx.Type,
		When:         fieldPlaceholder,
		Amount:       fieldPlaceholder,
		BalanceAfter: fieldPlaceholder,
		Reference:    fieldPlaceholder,
		Remark:       fieldPlaceholder,
	}

	if tx.Type == "" {
		row.Type = fieldPlaceholder
	}
	if !tx.CreatedAt.IsZero() {
		row.When = tx.CreatedAt.Format(timestampLayout)
	}
	if v.formatter != nil {
		prefix := ""
		switch tx.Type {
		case models.TransactionTypeCredit:
			prefix = "+"
		case models.TransactionTypeDebit:
			prefix = "-"
		}
		row.Amount = prefix + v.formatter.Format(tx.Amount)
		row.BalanceAfter = v.formatter.Format(tx.BalanceAfter)
	}
	if tx.ReferenceID != "" {
		row.Reference = tx.ReferenceID
	}
	if tx.Remark != "" {
		row.Remark = tx.Remark
	}
	return row
}

func (v *HistoryView) Close() {
	v.mu.Lock()
	unsubscribe := v.unsubscribe
	v.unsubscribe = nil
	v.closed = true
	v.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
