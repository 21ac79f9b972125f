package ledger

import (
	"github.com/VeloPay/VeloPay-Console/models"
	"github.com/shopspring/decimal"
)

type BalanceResult struct {
	Status
	Balance decimal.Decimal
}

type WalletResult struct {
	Status
	Wallet models.WalletResponse
}

type MutationResult struct {
	Status
}

type TransactionsResult struct {
	Status
	Transactions []models.TransactionResponse
	TotalCount   int64
}

// TopUpIntent is the client-side shape of a top-up submission. It is
// transient, nothing retains it after the call resolves.
type TopUpIntent struct {
	Amount decimal.Decimal
	Remark string
}

// TransferIntent is the client-side shape of a transfer submission.
type TransferIntent struct {
	ToUserID int64
	Amount   decimal.Decimal
	Remark   string
}
