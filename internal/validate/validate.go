package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nameRe    = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё\s\-]+$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10,15}$`)
	addressRe = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё0-9\s,.\-№]+$`)

	titleCaser = cases.Title(language.Und)
)

// Name accepts letters, spaces and hyphens, at least 2 characters.
// The result is title-cased.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 2 || !nameRe.MatchString(s) {
		return "", false
	}
	return titleCaser.String(s), true
}

// Phone accepts 10 to 15 digits and nothing else.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !phoneRe.MatchString(s) {
		return "", false
	}
	return s, true
}

func Address(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 5 || !addressRe.MatchString(s) {
		return "", false
	}
	return s, true
}

// Price parses "199,90" and "199.90"; the value must be positive.
func Price(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d.Round(2), true
}

func Stock(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Title accepts any non-blank text up to max runes, used for category and product names.
func Title(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > max {
		return "", false
	}
	return s, true
}
