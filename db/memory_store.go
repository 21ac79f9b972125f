package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryStore keeps the ledger in process memory. It backs the service in
// tests and local development; ordering and balance semantics match the
// Postgres store.
type MemoryStore struct {
	mu           sync.RWMutex
	wallets      map[int64]Wallet
	transactions map[int64][]WalletTransaction // newest-first per user
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		wallets:      make(map[int64]Wallet),
		transactions: make(map[int64][]WalletTransaction),
	}
}

func (s *MemoryStore) CreateWallet(_ context.Context, userID int64, currency string) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.wallets[userID]; exists {
		return Wallet{}, ErrDuplicateWallet
	}

	wallet := Wallet{
		UserID:    userID,
		Balance:   decimal.Zero,
		Currency:  currency,
		CreatedAt: time.Now().UTC(),
	}
	s.wallets[userID] = wallet
	return wallet, nil
}

func (s *MemoryStore) GetWallet(_ context.Context, userID int64) (Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallet, ok := s.wallets[userID]
	if !ok {
		return Wallet{}, ErrWalletNotFound
	}
	return wallet, nil
}

func (s *MemoryStore) TopUp(_ context.Context, userID int64, amount decimal.Decimal, remark string) (WalletTransaction, error) {
	if !amount.IsPositive() {
		return WalletTransaction{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[userID]
	if !ok {
		return WalletTransaction{}, ErrWalletNotFound
	}

	wallet.Balance = wallet.Balance.Add(amount)
	s.wallets[userID] = wallet

	tx := WalletTransaction{
		ID:           uuid.New(),
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
		Type:         "credit",
		Amount:       amount,
		BalanceAfter: wallet.Balance,
		ReferenceID:  uuid.NewString(),
		Remark:       remark,
	}
	s.prepend(userID, tx)
	return tx, nil
}

func (s *MemoryStore) Transfer(_ context.Context, fromUserID, toUserID int64, amount decimal.Decimal, remark string) (TransferResult, error) {
	if !amount.IsPositive() {
		return TransferResult{}, ErrInvalidAmount
	}
	if fromUserID == toUserID {
		return TransferResult{}, ErrSelfTransfer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.wallets[fromUserID]
	if !ok {
		return TransferResult{}, ErrWalletNotFound
	}
	to, ok := s.wallets[toUserID]
	if !ok {
		return TransferResult{}, ErrWalletNotFound
	}

	if from.Balance.LessThan(amount) {
		return TransferResult{}, ErrInsufficientFunds
	}

	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)
	s.wallets[fromUserID] = from
	s.wallets[toUserID] = to

	reference := uuid.NewString()
	now := time.Now().UTC()

	debit := WalletTransaction{
		ID:           uuid.New(),
		UserID:       fromUserID,
		CreatedAt:    now,
		Type:         "debit",
		Amount:       amount,
		BalanceAfter: from.Balance,
		ReferenceID:  reference,
		Remark:       remark,
	}
	credit := WalletTransaction{
		ID:           uuid.New(),
		UserID:       toUserID,
		CreatedAt:    now,
		Type:         "credit",
		Amount:       amount,
		BalanceAfter: to.Balance,
		ReferenceID:  reference,
		Remark:       remark,
	}
	s.prepend(fromUserID, debit)
	s.prepend(toUserID, credit)

	return TransferResult{
		Debit:         debit,
		Credit:        credit,
		SenderBalance: from.Balance,
	}, nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, userID int64, limit, offset int32) ([]WalletTransaction, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.wallets[userID]; !ok {
		return nil, 0, ErrWalletNotFound
	}

	all := s.transactions[userID]
	total := int64(len(all))

	start := int(offset)
	if start > len(all) {
		start = len(all)
	}
	end := start + int(limit)
	if end > len(all) {
		end = len(all)
	}

	page := make([]WalletTransaction, end-start)
	copy(page, all[start:end])
	return page, total, nil
}

func (s *MemoryStore) prepend(userID int64, tx WalletTransaction) {
	s.transactions[userID] = append([]WalletTransaction{tx}, s.transactions[userID]...)
}
