package db

import (
	"fmt"

	"github.com/lib/pq"
)

const (
	DuplicateEntry pq.ErrorCode = "23505"
	EntryTooLong   pq.ErrorCode = "22001"
)

var (
	ErrWalletNotFound    = fmt.Errorf("wallet not found")
	ErrDuplicateWallet   = fmt.Errorf("wallet already exists for user")
	ErrInsufficientFunds = fmt.Errorf("insufficient funds")
	ErrInvalidAmount     = fmt.Errorf("amount must be greater than zero")
	ErrSelfTransfer      = fmt.Errorf("cannot transfer to the same wallet")
)
