package ledger

// ErrorKind classifies a failed ledger operation. Callers branch on the
// kind, never on the human-readable message.
type ErrorKind string

const (
	ErrorNone          ErrorKind = ""
	WalletNotFound     ErrorKind = "WALLET_NOT_FOUND"
	WalletFetchFailed  ErrorKind = "WALLET_FETCH_FAILED"
	CreateFailed       ErrorKind = "CREATE_FAILED"
	TopUpFailed        ErrorKind = "TOPUP_FAILED"
	TransferFailed     ErrorKind = "TRANSFER_FAILED"
	HistoryFetchFailed ErrorKind = "HISTORY_FETCH_FAILED"
)

// Status is the normalized outcome embedded in every operation result.
type Status struct {
	Success bool
	Error   ErrorKind
	Message string
}

func ok(message string) Status {
	return Status{Success: true, Message: message}
}

func failed(kind ErrorKind, message string) Status {
	return Status{Error: kind, Message: message}
}
