package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseInt converts string to a positive int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}

// ParseFloat returns nil when value is empty or not a number.
func ParseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ==================== IDS ====================

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateBookingReference returns BK followed by the unix time in milliseconds.
func GenerateBookingReference(now time.Time) string {
	return fmt.Sprintf("BK%d", now.UnixMilli())
}

// GenerateTransactionID returns TXN + YYYYMMDDHHMMSS + a number in [1000, 9999].
func GenerateTransactionID(now time.Time) string {
	return fmt.Sprintf("TXN%s%d", now.Format("20060102150405"), 1000+rand.Intn(9000))
}

// ==================== FORMATTING ====================

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with two decimals and thousands separators,
// e.g. 12345.6 -> "12,345.60".
func FormatMoney(amount float64) string {
	return moneyPrinter.Sprintf("%.2f", amount)
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return p
}
