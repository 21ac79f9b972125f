package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// SQLStore persists the ledger in PostgreSQL. Balance mutations run inside
// serializable transactions so a wallet can never be driven negative by
// concurrent writers.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) CreateWallet(ctx context.Context, userID int64, currency string) (Wallet, error) {
	var wallet Wallet
	var balance string
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO wallets (user_id, balance, currency) VALUES ($1, 0, $2)
		 RETURNING user_id, balance, currency, created_at`,
		userID, currency,
	).Scan(&wallet.UserID, &balance, &wallet.Currency, &wallet.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == DuplicateEntry {
			return Wallet{}, ErrDuplicateWallet
		}
		return Wallet{}, err
	}

	wallet.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return Wallet{}, fmt.Errorf("parse balance: %w", err)
	}
	return wallet, nil
}

func (s *SQLStore) GetWallet(ctx context.Context, userID int64) (Wallet, error) {
	return s.getWallet(ctx, s.DB, userID, false)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *SQLStore) getWallet(ctx context.Context, q queryRower, userID int64, forUpdate bool) (Wallet, error) {
	query := `SELECT user_id, balance, currency, created_at FROM wallets WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var wallet Wallet
	var balance string
	err := q.QueryRowContext(ctx, query, userID).Scan(&wallet.UserID, &balance, &wallet.Currency, &wallet.CreatedAt)
	if err == sql.ErrNoRows {
		return Wallet{}, ErrWalletNotFound
	} else if err != nil {
		return Wallet{}, err
	}

	wallet.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return Wallet{}, fmt.Errorf("parse balance: %w", err)
	}
	return wallet, nil
}

func (s *SQLStore) TopUp(ctx context.Context, userID int64, amount decimal.Decimal, remark string) (WalletTransaction, error) {
	if !amount.IsPositive() {
		return WalletTransaction{}, ErrInvalidAmount
	}

	var out WalletTransaction
	err := s.execTx(ctx, func(tx *sql.Tx) error {
		wallet, err := s.getWallet(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		newBalance := wallet.Balance.Add(amount)
		if _, err := tx.ExecContext(ctx,
			`UPDATE wallets SET balance = $1 WHERE user_id = $2`,
			newBalance.String(), userID,
		); err != nil {
			return err
		}

		out, err = s.insertTransaction(ctx, tx, WalletTransaction{
			ID:           uuid.New(),
			UserID:       userID,
			Type:         "credit",
			Amount:       amount,
			BalanceAfter: newBalance,
			ReferenceID:  uuid.NewString(),
			Remark:       remark,
		})
		return err
	})
	return out, err
}

func (s *SQLStore) Transfer(ctx context.Context, fromUserID, toUserID int64, amount decimal.Decimal, remark string) (TransferResult, error) {
	if !amount.IsPositive() {
		return TransferResult{}, ErrInvalidAmount
	}
	if fromUserID == toUserID {
		return TransferResult{}, ErrSelfTransfer
	}

	var result TransferResult
	err := s.execTx(ctx, func(tx *sql.Tx) error {
		// Lock wallets in a stable order to avoid deadlocks between
		// opposing transfers.
		first, second := fromUserID, toUserID
		if second < first {
			first, second = second, first
		}

		wallets := make(map[int64]Wallet, 2)
		for _, id := range []int64{first, second} {
			wallet, err := s.getWallet(ctx, tx, id, true)
			if err != nil {
				return err
			}
			wallets[id] = wallet
		}

		from := wallets[fromUserID]
		to := wallets[toUserID]

		if from.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}

		fromBalance := from.Balance.Sub(amount)
		toBalance := to.Balance.Add(amount)

		for id, balance := range map[int64]decimal.Decimal{fromUserID: fromBalance, toUserID: toBalance} {
			if _, err := tx.ExecContext(ctx,
				`UPDATE wallets SET balance = $1 WHERE user_id = $2`,
				balance.String(), id,
			); err != nil {
				return err
			}
		}

		reference := uuid.NewString()
		debit, err := s.insertTransaction(ctx, tx, WalletTransaction{
			ID:           uuid.New(),
			UserID:       fromUserID,
			Type:         "debit",
			Amount:       amount,
			BalanceAfter: fromBalance,
			ReferenceID:  reference,
			Remark:       remark,
		})
		if err != nil {
			return err
		}

		credit, err := s.insertTransaction(ctx, tx, WalletTransaction{
			ID:           uuid.New(),
			UserID:       toUserID,
			Type:         "credit",
			Amount:       amount,
			BalanceAfter: toBalance,
			ReferenceID:  reference,
			Remark:       remark,
		})
		if err != nil {
			return err
		}

		result = TransferResult{
			Debit:         debit,
			Credit:        credit,
			SenderBalance: fromBalance,
		}
		return nil
	})
	return result, err
}

func (s *SQLStore) ListTransactions(ctx context.Context, userID int64, limit, offset int32) ([]WalletTransaction, int64, error) {
	if _, err := s.GetWallet(ctx, userID); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wallet_transactions WHERE user_id = $1`,
		userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, user_id, created_at, type, amount, balance_after, reference_id, remark
		 FROM wallet_transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transactions []WalletTransaction
	for rows.Next() {
		var tx WalletTransaction
		var amount, balanceAfter string
		var reference, remark sql.NullString
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.CreatedAt, &tx.Type, &amount, &balanceAfter, &reference, &remark); err != nil {
			return nil, 0, err
		}
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, 0, fmt.Errorf("parse amount: %w", err)
		}
		if tx.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
			return nil, 0, fmt.Errorf("parse balance_after: %w", err)
		}
		tx.ReferenceID = reference.String
		tx.Remark = remark.String
		transactions = append(transactions, tx)
	}
	return transactions, total, rows.Err()
}

func (s *SQLStore) insertTransaction(ctx context.Context, tx *sql.Tx, record WalletTransaction) (WalletTransaction, error) {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO wallet_transactions (id, user_id, type, amount, balance_after, reference_id, remark)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		record.ID, record.UserID, record.Type, record.Amount.String(),
		record.BalanceAfter.String(), record.ReferenceID, record.Remark,
	).Scan(&record.CreatedAt)
	return record, err
}

func (s *SQLStore) execTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if txErr := tx.Rollback(); txErr != nil {
			return fmt.Errorf("encountered rollback error: %v", txErr)
		}
		return err
	}

	return tx.Commit()
}
