package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	SOLDecimals  = 9 // SOL has 9 decimals (lamports)
	FiatDecimals = 2
)

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return formatWithDecimals(lamports, SOLDecimals)
}

// FiatValue multiplies a SOL amount by a fiat rate and returns a display string with 2 decimals.
// Float is used for display only, never for amounts that move funds.
func FiatValue(sol, rate string) (string, error) {
	solFloat, err := strconv.ParseFloat(strings.TrimSpace(sol), 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse amount '%s': %w", sol, err)
	}
	rateFloat, err := strconv.ParseFloat(strings.TrimSpace(rate), 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse rate '%s': %w", rate, err)
	}
	return strconv.FormatFloat(solFloat*rateFloat, 'f', FiatDecimals, 64), nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}
