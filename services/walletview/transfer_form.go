package walletview

import (
	"context"
	"sync"
	"time"

	"github.com/VeloPay/VeloPay-Console/services/ledger"
	"github.com/VeloPay/VeloPay-Console/services/monitoring/logging"
	"github.com/VeloPay/VeloPay-Console/services/notification"
	"github.com/VeloPay/VeloPay-Console/services/signal"
)

// TransferForm is the transfer-funds dialog. Same contract as TopUpForm
// plus a recipient identifier that must be a positive integer; the server
// resolves whether the recipient wallet actually exists.
type TransferForm struct {
	ledgerAPI  LedgerAPI
	bus        *signal.Bus
	notifier   notification.Notifier
	logger     *logging.Logger
	userID     int64
	closeDelay time.Duration
	onClose    func()

	mu       sync.Mutex
	toUserID string
	amount   string
	remark   string
	errors   FormErrors
	inFlight bool
	open     bool
}

func NewTransferForm(ledgerAPI LedgerAPI, bus *signal.Bus, notifier notification.Notifier, logger *logging.Logger, userID int64, closeDelay time.Duration, onClose func()) *TransferForm {
	return &TransferForm{
		ledgerAPI:  ledgerAPI,
		bus:        bus,
		notifier:   notifier,
		logger:     logger,
		userID:     userID,
		closeDelay: closeDelay,
		onClose:    onClose,
		open:       true,
	}
}

func (f *TransferForm) SetRecipient(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toUserID = value
	delete(f.errors, "to_user_id")
}

func (f *TransferForm) SetAmount(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.amount = value
	delete(f.errors, "amount")
}

func (f *TransferForm) SetRemark(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remark = value
	delete(f.errors, "remark")
}

func (f *TransferForm) Recipient() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.toUserID
}

func (f *TransferForm) Amount() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.amount
}

func (f *TransferForm) Remark() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remark
}

func (f *TransferForm) Errors() FormErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FormErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *TransferForm) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

func (f *TransferForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *TransferForm) Submit(ctx context.Context) {
	f.mu.Lock()
	if !f.open || f.inFlight {
		f.mu.Unlock()
		return
	}

	errs := FormErrors{}
	toUserID, msg := parseRecipient(f.toUserID)
	if msg != "" {
		errs["to_user_id"] = msg
	}
	amount, msg := parseAmount(f.amount)
	if msg != "" {
		errs["amount"] = msg
	}
	if msg := validateRemark(f.remark); msg != "" {
		errs["remark"] = msg
	}
	if len(errs) > 0 {
		f.errors = errs
		f.mu.Unlock()
		return
	}

	intent := ledger.TransferIntent{ToUserID: toUserID, Amount: amount, Remark: f.remark}
	f.errors = nil
	f.inFlight = true
	f.mu.Unlock()

	result := f.ledgerAPI.Transfer(ctx, f.userID, intent)

	f.mu.Lock()
	f.inFlight = false
	if !result.Success {
		// keep the entered values so the user can correct and resubmit
		f.mu.Unlock()
		message := result.Message
		if message == "" {
			message = "Transfer failed"
		}
		f.notifier.Error(message)
		return
	}
	f.mu.Unlock()

	f.notifier.Success(result.Message)
	f.bus.Publish(signal.Signal{Amount: intent.Amount})

	f.mu.Lock()
	f.toUserID = ""
	f.amount = ""
	f.remark = ""
	f.mu.Unlock()

	f.scheduleClose()
}

func (f *TransferForm) Close() {
	f.close()
}

func (f *TransferForm) scheduleClose() {
	if f.closeDelay > 0 {
		time.AfterFunc(f.closeDelay, f.close)
		return
	}
	f.close()
}

func (f *TransferForm) close() {
	f.mu.Lock()
	if !f.open {
		f.mu.Unlock()
		return
	}
	f.open = false
	cb := f.onClose
	f.mu.Unlock()

	if cb != nil {
		cb()
	}
}
