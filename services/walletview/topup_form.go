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

// TopUpForm is the load-wallet dialog. It validates locally, submits at
// most one mutation at a time, and on confirmed success notifies, publishes
// a refresh signal, clears itself and closes after a short delay. The
// publish happens synchronously before any close, never optimistically
// before the ledger responds.
type TopUpForm struct {
	ledgerAPI  LedgerAPI
	bus        *signal.Bus
	notifier   notification.Notifier
	logger     *logging.Logger
	userID     int64
	closeDelay time.Duration
	onClose    func()

	mu       sync.Mutex
	amount   string
	remark   string
	errors   FormErrors
	inFlight bool
	open     bool
}

func NewTopUpForm(ledgerAPI LedgerAPI, bus *signal.Bus, notifier notification.Notifier, logger *logging.Logger, userID int64, closeDelay time.Duration, onClose func()) *TopUpForm {
	return &TopUpForm{
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

func (f *TopUpForm) SetAmount(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.amount = value
	delete(f.errors, "amount")
}

func (f *TopUpForm) SetRemark(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.remark = value
	delete(f.errors, "remark")
}

func (f *TopUpForm) Amount() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.amount
}

func (f *TopUpForm) Remark() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.remark
}

func (f *TopUpForm) Errors() FormErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FormErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

func (f *TopUpForm) InFlight() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

func (f *TopUpForm) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Submit validates the current values and, if they pass, performs the
// top-up. Validation failures never reach the network.
func (f *TopUpForm) Submit(ctx context.Context) {
	f.mu.Lock()
	if !f.open || f.inFlight {
		f.mu.Unlock()
		return
	}

	errs := FormErrors{}
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

	intent := ledger.TopUpIntent{Amount: amount, Remark: f.remark}
	f.errors = nil
	f.inFlight = true
	f.mu.Unlock()

	result := f.ledgerAPI.TopUp(ctx, f.userID, intent)

	f.mu.Lock()
	f.inFlight = false
	if !result.Success {
		// keep the entered values so the user can correct and resubmit
		f.mu.Unlock()
		message := result.Message
		if message == "" {
			message = "Top up failed"
		}
		f.notifier.Error(message)
		return
	}
	f.mu.Unlock()

	f.notifier.Success(result.Message)
	f.bus.Publish(signal.Signal{Amount: intent.Amount})

	f.mu.Lock()
	f.amount = ""
	f.remark = ""
	f.mu.Unlock()

	f.scheduleClose()
}

// Close dismisses the dialog without submitting.
func (f *TopUpForm) Close() {
	f.close()
}

func (f *TopUpForm) scheduleClose() {
	if f.closeDelay > 0 {
		time.AfterFunc(f.closeDelay, f.close)
		return
	}
	f.close()
}

func (f *TopUpForm) close() {
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
