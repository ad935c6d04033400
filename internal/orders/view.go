package orders

import (
	"fmt"
	"strings"

	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/pricing"
)

const DateLayout = "02.01.2006 15:04"

func PaymentLabel(t *i18n.Localizer, code string) string {
	switch code {
	case models.PaymentCard:
		return t.T(i18n.PaymentCard)
	case models.PaymentCash:
		return t.T(i18n.PaymentCash)
	case models.PaymentYooMoney:
		return t.T(i18n.PaymentYooMoney)
	}
	return models.NotSpecified
}

func DeliveryLabel(t *i18n.Localizer, code string) string {
	switch code {
	case models.DeliveryCourier:
		return t.T(i18n.DeliveryCourier)
	case models.DeliveryPickup:
		return t.T(i18n.DeliveryPickup)
	}
	return models.NotSpecified
}

// AddressLabel shows "not required" for pickup orders.
func AddressLabel(t *i18n.Localizer, delivery, address string) string {
	if delivery == models.DeliveryPickup {
		return t.T(i18n.AddressNotRequired)
	}
	if address == "" {
		return models.NotSpecified
	}
	return address
}

func CommentLabel(t *i18n.Localizer, comment string) string {
	if comment == "" || comment == models.NotSpecified {
		return t.T(i18n.NoComment)
	}
	return comment
}

func StatusKey(status string) string {
	return "status." + status
}

func StatusLabel(t *i18n.Localizer, status string) string {
	return t.Lookup(StatusKey(status))
}

// Describe renders an order with its frozen item prices.
func Describe(t *i18n.Localizer, o *models.OrderWithItems) string {
	var b strings.Builder
	b.WriteString(t.T(i18n.OrderHeader,
		o.Order.ID,
		o.Order.CreatedAt.Format(DateLayout),
		StatusLabel(t, o.Order.Status),
	))
	b.WriteString("\n\n")
	b.WriteString(t.T(i18n.OrderCustomer,
		o.Order.FullName,
		o.Order.Phone,
		PaymentLabel(t, o.Order.Payment),
		DeliveryLabel(t, o.Order.Delivery),
		AddressLabel(t, o.Order.Delivery, o.Order.Address),
		CommentLabel(t, o.Order.Comment),
	))
	b.WriteString("\n\n")
	for _, it := range o.Items {
		b.WriteString(t.T(i18n.OrderItemLine,
			pricing.ShortName(it.ProductName, 30),
			it.Quantity,
			t.Price(it.PriceAtOrder),
			t.Price(it.Subtotal()),
		))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t.T(i18n.OrderTotal, t.Price(o.Order.Total)))
	return b.String()
}

// Line is the one-line form used in order lists.
func Line(t *i18n.Localizer, o models.Order) string {
	return fmt.Sprintf("#%d · %s · %s · %s %s",
		o.ID, o.CreatedAt.Format(DateLayout), StatusLabel(t, o.Status), t.Price(o.Total), t.T(i18n.Currency))
}
