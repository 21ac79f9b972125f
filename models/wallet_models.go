package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)

// Wire models for the wallet ledger API. Shared between the service handlers
// and the ledger client so the contract lives in one place.

type BalanceResponse struct {
	UserID  int64           `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

type WalletResponse struct {
	UserID    int64           `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreateWalletRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0"`
}

type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Remark string          `json:"remark" binding:"max=500"`
}

type TransferRequest struct {
	ToUserID int64           `json:"to_user_id" binding:"required,gt=0"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Remark   string          `json:"remark" binding:"max=500"`
}

type MutationResponse struct {
	Message string          `json:"message"`
	Balance decimal.Decimal `json:"balance"`
}

type TransactionResponse struct {
	ID           uuid.UUID       `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	ReferenceID  string          `json:"reference_id,omitempty"`
	Remark       string          `json:"remark,omitempty"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int64                 `json:"total_count"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
