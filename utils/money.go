package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter renders monetary amounts with locale-aware digit grouping,
// e.g. "₹1,50,000.00" for en-IN.
type MoneyFormatter struct {
	printer *message.Printer
	symbol  string
}

func NewMoneyFormatter(localeTag string, currencyCode string) (*MoneyFormatter, error) {
	tag, err := language.Parse(localeTag)
	if err != nil {
		return nil, err
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, err
	}

	p := message.NewPrinter(tag)
	return &MoneyFormatter{
		printer: p,
		symbol:  p.Sprint(currency.Symbol(unit)),
	}, nil
}

func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	// Amounts are display-only here, the ledger remains the source of truth
	return f.symbol + f.printer.Sprint(number.Decimal(
		amount.InexactFloat64(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
