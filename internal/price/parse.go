package price

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNoAmount = errors.New("no numeric amount found")

var amountRe = regexp.MustCompile(`\d(?:[\d.,]*\d)?`)

var isoCodeRe = regexp.MustCompile(`\b(USD|EUR|GBP|JPY|CNY|CAD|AUD|NZD|CHF|SEK|NOK|DKK|PLN|CZK|HUF|RON|BGN|` +
	`INR|BRL|MXN|ARS|CLP|COP|ZAR|TRY|RUB|UAH|KRW|SGD|HKD|TWD|THB|IDR|MYR|PHP|VND|ILS|AED|SAR)\b`)

// symbolCurrencies is ordered longest-prefix first; the bare dollar sign comes last.
var symbolCurrencies = []struct {
	symbol string
	code   string
}{
	{"US$", "USD"},
	{"CA$", "CAD"},
	{"AU$", "AUD"},
	{"NZ$", "NZD"},
	{"HK$", "HKD"},
	{"MX$", "MXN"},
	{"C$", "CAD"},
	{"A$", "AUD"},
	{"S$", "SGD"},
	{"R$", "BRL"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
	{"₩", "KRW"},
	{"₽", "RUB"},
	{"₴", "UAH"},
	{"₺", "TRY"},
	{"₪", "ILS"},
	{"zł", "PLN"},
	{"Kč", "CZK"},
}

// ParseAmount reads the first number in raw, accepting both 1,234.56 and 1.234,56.
// When both separators occur the right-most one is the decimal mark. A lone comma
// is decimal only when exactly two digits follow it; repeated dots are thousands,
// and so is a lone dot followed by exactly three digits after a non-zero integer
// part (1.234 is 1234, 0.125 stays 0.125).
func ParseAmount(raw string) (decimal.Decimal, error) {
	num := amountRe.FindString(raw)
	if num == "" {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, ErrNoAmount)
	}

	lastComma := strings.LastIndex(num, ",")
	lastDot := strings.LastIndex(num, ".")

	var intPart, fracPart string
	switch {
	case lastComma >= 0 && lastDot >= 0:
		sep := max(lastComma, lastDot)
		intPart, fracPart = num[:sep], num[sep+1:]
	case lastComma >= 0:
		if len(num)-lastComma-1 == 2 {
			intPart, fracPart = num[:lastComma], num[lastComma+1:]
		} else {
			intPart = num
		}
	case strings.Count(num, ".") > 1, isDotThousands(num, lastDot):
		intPart = num
	case lastDot >= 0:
		intPart, fracPart = num[:lastDot], num[lastDot+1:]
	default:
		intPart = num
	}

	intPart = strings.NewReplacer(",", "", ".", "").Replace(intPart)
	if fracPart != "" {
		intPart += "." + fracPart
	}

	value, err := decimal.NewFromString(intPart)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", raw, err)
	}

	return value, nil
}

func isDotThousands(num string, dot int) bool {
	return dot >= 1 && dot <= 3 && len(num)-dot-1 == 3 && num[0] != '0'
}

// ResolveCurrency returns the ISO code mentioned in s, checking ISO codes before
// currency symbols. It returns "" when nothing is recognised.
func ResolveCurrency(s string) string {
	if code := isoCodeRe.FindString(s); code != "" {
		return code
	}
	for _, sc := range symbolCurrencies {
		if strings.Contains(s, sc.symbol) {
			return sc.code
		}
	}

	return ""
}
