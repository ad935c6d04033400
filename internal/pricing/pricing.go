package pricing

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storebot/internal/models"
)

type Line struct {
	models.CartLine
	Subtotal decimal.Decimal
}

type Summary struct {
	Lines []Line
	Total decimal.Decimal
}

func (s Summary) Empty() bool {
	return len(s.Lines) == 0
}

// Summarize считается заново на каждый показ корзины и сводки, ничего не кэшируется.
func Summarize(lines []models.CartLine) Summary {
	summary := Summary{Total: decimal.Zero}
	for _, l := range lines {
		sub := l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		summary.Lines = append(summary.Lines, Line{CartLine: l, Subtotal: sub})
		summary.Total = summary.Total.Add(sub)
	}
	return summary
}

// FormatPrice renders whole currency units with the locale's grouping,
// "12 500" for ru and "12,500" for en.
func FormatPrice(amount decimal.Decimal, tag language.Tag) string {
	p := message.NewPrinter(tag)
	s := p.Sprintf("%d", amount.Round(0).IntPart())
	// x/text группирует ru неразрывным пробелом
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}

// ShortName trims a product name for button labels.
func ShortName(name string, max int) string {
	if utf8.RuneCountInString(name) <= max {
		return name
	}
	r := []rune(name)
	return string(r[:max-3]) + "..."
}
