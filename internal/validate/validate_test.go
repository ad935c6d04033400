package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storebot/internal/validate"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"иван петров", "Иван Петров", true},
		{"  anna-maria  ", "Anna-Maria", true},
		{"Ёж", "Ёж", true},
		{"A", "", false},
		{"R2D2", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := validate.Name(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhone(t *testing.T) {
	for in, ok := range map[string]bool{
		"79991234567":      true,
		"1234567890":       true,
		"123456789012345":  true,
		"123456789":        false,
		"1234567890123456": false,
		"+79991234567":     false,
		"abc":              false,
	} {
		_, got := validate.Phone(in)
		assert.Equal(t, ok, got, in)
	}
}

func TestAddress(t *testing.T) {
	for in, ok := range map[string]bool{
		"ул. Ленина, д. 5":     true,
		"Main st. 12-4":        true,
		"дом №7, кв. 3":        true,
		"ул.":                  false,
		"<script>alert</script>": false,
	} {
		_, got := validate.Address(in)
		assert.Equal(t, ok, got, in)
	}
}

func TestPrice(t *testing.T) {
	p, ok := validate.Price("199,90")
	assert.True(t, ok)
	assert.True(t, decimal.RequireFromString("199.9").Equal(p))

	_, ok = validate.Price("0")
	assert.False(t, ok)
	_, ok = validate.Price("-5")
	assert.False(t, ok)
	_, ok = validate.Price("дорого")
	assert.False(t, ok)
}

func TestStock(t *testing.T) {
	n, ok := validate.Stock(" 12 ")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = validate.Stock("-1")
	assert.False(t, ok)
	_, ok = validate.Stock("1.5")
	assert.False(t, ok)
}
