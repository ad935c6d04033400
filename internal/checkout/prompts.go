package checkout

import (
	"strings"

	"storebot/internal/chat"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/orders"
	"storebot/internal/pricing"
)

// editing reports whether step returns to the confirm screen: an editing
// step, or an address asked for after delivery was switched to courier.
func editing(step string, d Draft) bool {
	switch step {
	case StepEditingName, StepEditingPhone, StepEditingAddress,
		StepEditingComment, StepEditingPayment, StepEditingDelivery:
		return true
	}
	return d.Editing
}

func cancelRow(t *i18n.Localizer, step string, d Draft) []chat.Button {
	if editing(step, d) {
		return chat.Row(chat.Btn(t.T(i18n.BtnBack), ActionBackToConfirm))
	}
	return chat.Row(chat.Btn(t.T(i18n.BtnCancelOrder), ActionCancel))
}

func cartBackRow(t *i18n.Localizer) []chat.Button {
	return chat.Row(
		chat.Btn(t.T(i18n.BtnCatalog), chat.ActionCatalog),
		chat.Btn(t.T(i18n.BtnMainMenu), chat.ActionMainMenu),
	)
}

// prompt is the question asked on entering step.
func prompt(t *i18n.Localizer, step string, d Draft) []chat.Reply {
	switch step {
	case StepCollectingName, StepEditingName:
		return chat.Text(t.T(i18n.AskName), cancelRow(t, step, d))
	case StepCollectingPhone, StepEditingPhone:
		return chat.Text(t.T(i18n.AskPhone), cancelRow(t, step, d))
	case StepCollectingComment, StepEditingComment:
		return chat.Text(t.T(i18n.AskComment), cancelRow(t, step, d))
	case StepCollectingAddress, StepEditingAddress:
		return chat.Text(t.T(i18n.AskAddress), cancelRow(t, step, d))
	case StepChoosingPayment, StepEditingPayment:
		return chat.Text(t.T(i18n.AskPayment),
			chat.Row(chat.Btn(t.T(i18n.PaymentCard), ActionPayCard)),
			chat.Row(chat.Btn(t.T(i18n.PaymentCash), ActionPayCash)),
			chat.Row(chat.Btn(t.T(i18n.PaymentYooMoney), ActionPayYooMoney)),
			cancelRow(t, step, d),
		)
	case StepChoosingDelivery, StepEditingDelivery:
		return chat.Text(t.T(i18n.AskDelivery),
			chat.Row(
				chat.Btn(t.T(i18n.DeliveryCourier), ActionCourier),
				chat.Btn(t.T(i18n.DeliveryPickup), ActionPickup),
			),
			cancelRow(t, step, d),
		)
	case StepAddressChoice:
		return addressChoicePrompt(t, d.Address, cancelRow(t, step, d))
	}
	return nil
}

func invalid(t *i18n.Localizer, key i18n.Key, step string, d Draft) []chat.Reply {
	return chat.Text(t.T(key), cancelRow(t, step, d))
}

func profileChoicePrompt(t *i18n.Localizer, u *models.User) []chat.Reply {
	return chat.Text(t.T(i18n.CheckoutProfileChoice, u.FullName, u.Phone, u.Address),
		chat.Row(chat.Btn(t.T(i18n.BtnUseProfile), ActionUseProfile)),
		chat.Row(chat.Btn(t.T(i18n.BtnFillManually), ActionFillManually)),
		chat.Row(chat.Btn(t.T(i18n.BtnCancelOrder), ActionCancel)),
	)
}

func addressChoicePrompt(t *i18n.Localizer, address string, back []chat.Button) []chat.Reply {
	return chat.Text(t.T(i18n.AddressChoice, address),
		chat.Row(chat.Btn(t.T(i18n.BtnUseProfileAddress), ActionUseProfileAddress)),
		chat.Row(chat.Btn(t.T(i18n.BtnEnterNewAddress), ActionEnterNewAddress)),
		back,
	)
}

func editPicker(t *i18n.Localizer, d Draft) []chat.Reply {
	rows := [][]chat.Button{
		chat.Row(
			chat.Btn(t.T(i18n.BtnEditName), ActionEditName),
			chat.Btn(t.T(i18n.BtnEditPhone), ActionEditPhone),
		),
		chat.Row(
			chat.Btn(t.T(i18n.BtnEditPayment), ActionEditPayment),
			chat.Btn(t.T(i18n.BtnEditDelivery), ActionEditDelivery),
		),
	}
	last := chat.Row(chat.Btn(t.T(i18n.BtnEditComment), ActionEditComment))
	if d.Delivery == models.DeliveryCourier {
		last = append(last, chat.Btn(t.T(i18n.BtnEditAddress), ActionEditAddress))
	}
	rows = append(rows, last, chat.Row(chat.Btn(t.T(i18n.BtnBack), ActionBackToConfirm)))
	return chat.Text(t.T(i18n.EditWhat), rows...)
}

// summary is the confirmation screen; prices come from the live cart.
func summary(t *i18n.Localizer, d Draft, lines []models.CartLine) []chat.Reply {
	s := pricing.Summarize(lines)

	var b strings.Builder
	b.WriteString(t.T(i18n.ConfirmHeader))
	b.WriteString("\n\n")
	b.WriteString(t.T(i18n.OrderCustomer,
		d.Name,
		d.Phone,
		orders.PaymentLabel(t, d.Payment),
		orders.DeliveryLabel(t, d.Delivery),
		orders.AddressLabel(t, d.Delivery, d.Address),
		orders.CommentLabel(t, d.Comment),
	))
	b.WriteString("\n\n")
	for _, l := range s.Lines {
		b.WriteString(t.T(i18n.OrderItemLine,
			pricing.ShortName(l.Name, 30), l.Quantity, t.Price(l.Price), t.Price(l.Subtotal)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(t.T(i18n.OrderTotal, t.Price(s.Total)))

	return chat.Text(b.String(),
		chat.Row(chat.Btn(t.T(i18n.BtnConfirm), ActionConfirm)),
		chat.Row(chat.Btn(t.T(i18n.BtnEditData), ActionEditData)),
		chat.Row(chat.Btn(t.T(i18n.BtnCancelOrder), ActionCancel)),
	)
}

func placed(t *i18n.Localizer, orderID int) []chat.Reply {
	return chat.Text(t.T(i18n.OrderPlaced, orderID),
		chat.Row(chat.Btn(t.T(i18n.BtnMyOrders), chat.ActionMyOrders)),
		chat.MainMenuRow(t),
	)
}
