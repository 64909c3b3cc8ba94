package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// Donation is a single contribution record. Records are immutable once
// written: the only mutation the system exposes is deletion by id.
type Donation struct {
	ID           string
	DonorName    string
	ReceiverName string
	Amount       float64
	Date         time.Time
}

// AmountDisplay renders the amount with exactly two decimal places.
func (d Donation) AmountDisplay() string {
	return amountPrinter.Sprintf("%.2f", d.Amount)
}

// AmountSearchText is the plain decimal form of the amount used for
// free-text matching, without padding or grouping (50 stays "50").
func (d Donation) AmountSearchText() string {
	return strconv.FormatFloat(d.Amount, 'f', -1, 64)
}

// CoerceAmount converts raw form input into a numeric amount. The store
// boundary rejects anything that is not a number or is negative.
func CoerceAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Message: "Amount is required."}
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ValidationError{Message: fmt.Sprintf("Amount %q is not a number.", raw)}
	}
	if amount < 0 {
		return 0, &ValidationError{Message: "Amount must not be negative."}
	}
	return amount, nil
}
