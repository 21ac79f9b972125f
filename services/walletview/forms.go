package walletview

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validation messages shown next to the offending field.
const (
	msgAmountRequired    = "Amount is required"
	msgAmountNotNumber   = "Amount must be a valid number"
	msgAmountNotPositive = "Amount must be greater than 0"
	msgRemarkTooLong     = "Remark cannot exceed 500 characters"
	msgRecipientRequired = "Recipient user ID is required"
	msgRecipientNotInt   = "Recipient user ID must be a number"
	msgRecipientNotPos   = "Recipient user ID must be greater than 0"
)

// FormErrors maps field name to validation message.
type FormErrors map[string]string

var validate = validator.New()

type remarkRule struct {
	Remark string `validate:"omitempty,max=500"`
}

type recipientRule struct {
	ToUserID int64 `validate:"required,gt=0"`
}

// parseAmount validates an amount input. The raw string is trimmed, must be
// a valid decimal and strictly greater than zero.
func parseAmount(input string) (decimal.Decimal, string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, msgAmountRequired
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, msgAmountNotNumber
	}
	if !amount.IsPositive() {
		return decimal.Zero, msgAmountNotPositive
	}
	return amount, ""
}

func validateRemark(remark string) string {
	if err := validate.Struct(remarkRule{Remark: remark}); err != nil {
		return msgRemarkTooLong
	}
	return ""
}

// parseRecipient validates a transfer recipient input, which must be a
// positive integer identifier.
func parseRecipient(input string) (int64, string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, msgRecipientRequired
	}

	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, msgRecipientNotInt
	}
	if err := validate.Struct(recipientRule{ToUserID: id}); err != nil {
		return 0, msgRecipientNotPos
	}
	return id, ""
}
