package util

import (
	"errors"
	"fmt"
	"strings"
)

const (
	decimalValue  = 100
	thousandValue = 1000
)

// FormatMoney renders an amount of cents with the given thousand and
// decimal separators, without ever going through a float.
func FormatMoney(value int64, thousand, decimal string) string {
	var result string
	var isNegative bool

	if value < 0 {
		value *= -1
		isNegative = true
	}

	result = fmt.Sprintf("%s%02d", decimal, value%decimalValue)
	value /= decimalValue

	for value >= thousandValue {
		result = fmt.Sprintf("%s%03d%s", thousand, value%thousandValue, result)
		value /= thousandValue
	}

	if isNegative {
		return fmt.Sprintf("-%d%s", value, result)
	}

	return fmt.Sprintf("%d%s", value, result)
}

// FormatHKD renders cents in the exported "HK$123.45" form.
func FormatHKD(cents int64) string {
	return "HK$" + FormatMoney(cents, "", ".")
}

var errInvalidAmount = errors.New("invalid amount")

// ParseMoney converts a decimal currency string such as "123.45" into
// cents. Amounts must be non-negative and carry at most two decimal
// places. Parsing is done digit by digit so values never round through
// a binary float.
func ParseMoney(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errInvalidAmount
	}

	whole := value
	fraction := ""
	if i := strings.IndexByte(value, '.'); i >= 0 {
		whole = value[:i]
		fraction = value[i+1:]
	}

	if whole == "" && fraction == "" {
		return 0, errInvalidAmount
	}
	if len(fraction) > 2 {
		return 0, errInvalidAmount
	}

	var cents int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, errInvalidAmount
		}
		cents = cents*10 + int64(r-'0')
		if cents > (1<<62)/decimalValue {
			return 0, errInvalidAmount
		}
	}
	cents *= decimalValue

	scale := int64(10)
	for _, r := range fraction {
		if r < '0' || r > '9' {
			return 0, errInvalidAmount
		}
		cents += int64(r-'0') * scale
		scale /= 10
	}

	return cents, nil
}
