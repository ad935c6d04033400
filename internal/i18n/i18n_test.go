package i18n_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storebot/internal/i18n"
)

func TestLoadAndVerify(t *testing.T) {
	b, err := i18n.Load("ru")
	require.NoError(t, err)

	require.NoError(t, b.Verify("status.in_progress", "status.done", "status.cancelled"))
	assert.Error(t, b.Verify("status.lost_in_space"))
}

func TestLoadUnknownDefault(t *testing.T) {
	_, err := i18n.Load("xx")
	assert.Error(t, err)
}

func TestFor(t *testing.T) {
	b, err := i18n.Load("ru")
	require.NoError(t, err)

	tests := []struct {
		name string
		code string
		want string
	}{
		{name: "english: ok", code: "en", want: "Checkout cancelled"},
		{name: "regional english: ok", code: "en-GB", want: "Checkout cancelled"},
		{name: "russian: ok", code: "ru", want: "Оформление заказа отменено"},
		{name: "unknown falls back to default: ok", code: "de", want: "Оформление заказа отменено"},
		{name: "empty falls back to default: ok", code: "", want: "Оформление заказа отменено"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.For(tt.code).T(i18n.Cancelled))
		})
	}
}

func TestTemplates(t *testing.T) {
	b, err := i18n.Load("ru")
	require.NoError(t, err)
	en := b.For("en")

	assert.Equal(t, "✅ Order #42 has been placed! We will contact you shortly.", en.T(i18n.OrderPlaced, 42))
	assert.Equal(t, "Total: 1,250 ₽", en.T(i18n.OrderTotal, en.Price(decimal.NewFromInt(1250))))
	assert.Equal(t, "unknown.key", en.Lookup("unknown.key"))
	assert.Equal(t, "✅ Completed", en.Lookup("status.done"))
}
