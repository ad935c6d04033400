// Package checkout is the conversational checkout: it collects contact,
// payment and delivery data step by step into a draft kept in the state
// store, shows a summary recomputed from the live cart, and commits.
package checkout

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"storebot/internal/chat"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/orders"
	"storebot/internal/repo"
	"storebot/internal/validate"
)

const StepPrefix = "checkout:"

const (
	StepProfileChoice     = StepPrefix + "profile_choice"
	StepCollectingName    = StepPrefix + "collecting_name"
	StepCollectingPhone   = StepPrefix + "collecting_phone"
	StepCollectingComment = StepPrefix + "collecting_comment"
	StepChoosingPayment   = StepPrefix + "choosing_payment"
	StepChoosingDelivery  = StepPrefix + "choosing_delivery"
	StepAddressChoice     = StepPrefix + "address_choice"
	StepCollectingAddress = StepPrefix + "collecting_address"
	StepConfirm           = StepPrefix + "confirm"
	StepEditingName       = StepPrefix + "editing_name"
	StepEditingPhone      = StepPrefix + "editing_phone"
	StepEditingAddress    = StepPrefix + "editing_address"
	StepEditingComment    = StepPrefix + "editing_comment"
	StepEditingPayment    = StepPrefix + "editing_payment"
	StepEditingDelivery   = StepPrefix + "editing_delivery"
)

// Callback data handled by the flow.
const (
	ActionStart             = "place_an_order"
	ActionUseProfile        = "use_profile"
	ActionFillManually      = "fill_manually"
	ActionCancel            = "cancel_order"
	ActionPayCard           = "pay_card"
	ActionPayCash           = "pay_cash"
	ActionPayYooMoney       = "pay_yoomoney"
	ActionCourier           = "delivery_courier"
	ActionPickup            = "delivery_pickup"
	ActionUseProfileAddress = "use_profile_address"
	ActionEnterNewAddress   = "enter_new_address"
	ActionEditData          = "edit_data"
	ActionEditName          = "edit_name"
	ActionEditPhone         = "edit_phone"
	ActionEditAddress       = "edit_address"
	ActionEditComment       = "edit_comment"
	ActionEditPayment       = "edit_payment"
	ActionEditDelivery      = "edit_delivery"
	ActionBackToConfirm     = "back_to_confirm"
	ActionConfirm           = "confirm_order"
)

// Actions lists every callback the flow answers to, ActionStart and ActionCancel included.
func Actions() []string {
	return []string{
		ActionStart, ActionUseProfile, ActionFillManually, ActionCancel,
		ActionPayCard, ActionPayCash, ActionPayYooMoney, ActionCourier, ActionPickup,
		ActionUseProfileAddress, ActionEnterNewAddress, ActionEditData,
		ActionEditName, ActionEditPhone, ActionEditAddress, ActionEditComment,
		ActionEditPayment, ActionEditDelivery, ActionBackToConfirm, ActionConfirm,
	}
}

// Draft is the order being assembled. It lives only in conversation state.
type Draft struct {
	Name     string            `json:"name"`
	Phone    string            `json:"phone"`
	Address  string            `json:"address"`
	Comment  string            `json:"comment"`
	Payment  string            `json:"payment_method"`
	Delivery string            `json:"delivery_method"`
	Cart     []models.CartItem `json:"cart_snapshot"`
	// Editing marks an address step entered from the edit menu.
	Editing bool `json:"editing,omitempty"`
}

func (d Draft) Details() models.OrderDetails {
	return models.OrderDetails{
		FullName: d.Name,
		Phone:    d.Phone,
		Address:  d.Address,
		Comment:  d.Comment,
		Payment:  d.Payment,
		Delivery: d.Delivery,
	}
}

type Carts interface {
	Lines(ctx context.Context, userID int64) ([]models.CartLine, error)
}

type Profiles interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	SaveProfile(ctx context.Context, user *models.User) error
}

type Placer interface {
	Place(ctx context.Context, userID int64, details models.OrderDetails) (*models.OrderWithItems, error)
}

type Flow struct {
	carts    Carts
	profiles Profiles
	placer   Placer
	logger   *zap.Logger
}

func NewFlow(carts Carts, profiles Profiles, placer Placer, logger *zap.Logger) *Flow {
	return &Flow{carts: carts, profiles: profiles, placer: placer, logger: logger}
}

func (f *Flow) profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := f.profiles.UserByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

// Start begins checkout from a non-empty cart, offering the saved profile when it is complete.
func (f *Flow) Start(c *chat.Context) ([]chat.Reply, error) {
	lines, err := f.carts.Lines(c.Ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		if err := c.State.Clear(c.Ctx); err != nil {
			return nil, err
		}
		return chat.Text(c.T.T(i18n.CartEmpty), cartBackRow(c.T)), nil
	}

	draft := Draft{}
	for _, l := range lines {
		draft.Cart = append(draft.Cart, models.CartItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	user, err := f.profile(c.Ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if user.ProfileComplete() {
		if err := c.State.Save(c.Ctx, StepProfileChoice, draft); err != nil {
			return nil, err
		}
		return profileChoicePrompt(c.T, user), nil
	}
	return f.save(c, StepCollectingName, draft)
}

// Cancel drops the draft from any step.
func (f *Flow) Cancel(c *chat.Context) ([]chat.Reply, error) {
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.Cancelled), cartBackRow(c.T)), nil
}

// HandleAction processes a button press. Buttons that do not belong to the
// current step are answered with an alert and change nothing.
func (f *Flow) HandleAction(c *chat.Context) ([]chat.Reply, error) {
	switch c.Action {
	case ActionStart:
		return f.Start(c)
	case ActionCancel:
		return f.Cancel(c)
	}

	var draft Draft
	step, err := c.State.Load(c.Ctx, &draft)
	if err != nil {
		return nil, err
	}

	if c.Action == ActionBackToConfirm && editing(step, draft) {
		return f.backToConfirm(c, draft)
	}

	switch step {
	case StepProfileChoice:
		switch c.Action {
		case ActionUseProfile:
			user, err := f.profile(c.Ctx, c.UserID)
			if err != nil {
				return nil, err
			}
			if !user.ProfileComplete() {
				return f.save(c, StepCollectingName, draft)
			}
			draft.Name, draft.Phone, draft.Address = user.FullName, user.Phone, user.Address
			return f.save(c, StepCollectingComment, draft)
		case ActionFillManually:
			return f.save(c, StepCollectingName, draft)
		}

	case StepChoosingPayment, StepEditingPayment:
		switch c.Action {
		case ActionPayCard, ActionPayYooMoney:
			return append(chat.Alert(c.T.T(i18n.PaymentUnavailable)), prompt(c.T, step, draft)...), nil
		case ActionPayCash:
			draft.Payment = models.PaymentCash
			if step == StepEditingPayment {
				return f.confirm(c, draft)
			}
			return f.save(c, StepChoosingDelivery, draft)
		}

	case StepChoosingDelivery, StepEditingDelivery:
		switch c.Action {
		case ActionCourier:
			draft.Delivery = models.DeliveryCourier
			draft.Editing = step == StepEditingDelivery
			return f.askAddress(c, draft)
		case ActionPickup:
			draft.Delivery = models.DeliveryPickup
			draft.Address = models.NotSpecified
			return f.confirm(c, draft)
		}

	case StepAddressChoice:
		switch c.Action {
		case ActionUseProfileAddress:
			user, err := f.profile(c.Ctx, c.UserID)
			if err != nil {
				return nil, err
			}
			if !user.HasAddress() {
				return f.save(c, StepCollectingAddress, draft)
			}
			draft.Address = user.Address
			return f.confirm(c, draft)
		case ActionEnterNewAddress:
			return f.save(c, StepCollectingAddress, draft)
		}

	case StepConfirm:
		return f.handleConfirmAction(c, draft)
	}

	return chat.Alert(c.T.T(i18n.StaleButton)), nil
}

func (f *Flow) handleConfirmAction(c *chat.Context, draft Draft) ([]chat.Reply, error) {
	switch c.Action {
	case ActionEditData:
		return editPicker(c.T, draft), nil
	case ActionBackToConfirm:
		return f.confirm(c, draft)
	case ActionEditName:
		return f.save(c, StepEditingName, draft)
	case ActionEditPhone:
		return f.save(c, StepEditingPhone, draft)
	case ActionEditComment:
		return f.save(c, StepEditingComment, draft)
	case ActionEditPayment:
		return f.save(c, StepEditingPayment, draft)
	case ActionEditDelivery:
		return f.save(c, StepEditingDelivery, draft)
	case ActionEditAddress:
		if draft.Delivery != models.DeliveryCourier {
			return chat.Alert(c.T.T(i18n.AddressNotRequired)), nil
		}
		return f.save(c, StepEditingAddress, draft)
	case ActionConfirm:
		return f.commit(c, draft)
	}
	return chat.Alert(c.T.T(i18n.StaleButton)), nil
}

// HandleText processes free text typed during checkout. Invalid input
// re-prompts and leaves the draft untouched.
func (f *Flow) HandleText(c *chat.Context) ([]chat.Reply, error) {
	var draft Draft
	step, err := c.State.Load(c.Ctx, &draft)
	if err != nil {
		return nil, err
	}

	switch step {
	case StepCollectingName, StepEditingName:
		name, ok := validate.Name(c.Text)
		if !ok {
			return invalid(c.T, i18n.InvalidName, step, draft), nil
		}
		draft.Name = name
		if step == StepEditingName {
			return f.confirm(c, draft)
		}
		return f.save(c, StepCollectingPhone, draft)

	case StepCollectingPhone, StepEditingPhone:
		phone, ok := validate.Phone(c.Text)
		if !ok {
			return invalid(c.T, i18n.InvalidPhone, step, draft), nil
		}
		draft.Phone = phone
		if step == StepEditingPhone {
			return f.confirm(c, draft)
		}
		return f.save(c, StepCollectingComment, draft)

	case StepCollectingComment, StepEditingComment:
		draft.Comment = strings.TrimSpace(c.Text)
		if draft.Comment == "" {
			draft.Comment = models.NotSpecified
		}
		if step == StepEditingComment {
			return f.confirm(c, draft)
		}
		return f.save(c, StepChoosingPayment, draft)

	case StepCollectingAddress, StepEditingAddress:
		address, ok := validate.Address(c.Text)
		if !ok {
			return invalid(c.T, i18n.InvalidAddress, step, draft), nil
		}
		draft.Address = address
		return f.confirm(c, draft)

	case "":
		return nil, nil
	}

	// шаг ждёт нажатия кнопки
	return append(chat.Text(c.T.T(i18n.UseButtons)), prompt(c.T, step, draft)...), nil
}

func (f *Flow) askAddress(c *chat.Context, draft Draft) ([]chat.Reply, error) {
	user, err := f.profile(c.Ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if user.HasAddress() {
		if err := c.State.Save(c.Ctx, StepAddressChoice, draft); err != nil {
			return nil, err
		}
		return addressChoicePrompt(c.T, user.Address, cancelRow(c.T, StepAddressChoice, draft)), nil
	}
	return f.save(c, StepCollectingAddress, draft)
}

// save stores the draft under step and shows that step's prompt.
func (f *Flow) save(c *chat.Context, step string, draft Draft) ([]chat.Reply, error) {
	if err := c.State.Save(c.Ctx, step, draft); err != nil {
		return nil, err
	}
	return prompt(c.T, step, draft), nil
}

// confirm enters the confirm step with a summary built from the live cart.
func (f *Flow) confirm(c *chat.Context, draft Draft) ([]chat.Reply, error) {
	lines, err := f.carts.Lines(c.Ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		if err := c.State.Clear(c.Ctx); err != nil {
			return nil, err
		}
		return chat.Text(c.T.T(i18n.CartEmpty), cartBackRow(c.T)), nil
	}
	draft.Editing = false
	if err := c.State.Save(c.Ctx, StepConfirm, draft); err != nil {
		return nil, err
	}
	return summary(c.T, draft, lines), nil
}

// backToConfirm leaves an edit unsaved. Switching to courier needs an
// address, so a switch abandoned before one was given stays pickup.
func (f *Flow) backToConfirm(c *chat.Context, draft Draft) ([]chat.Reply, error) {
	if draft.Delivery == models.DeliveryCourier && (draft.Address == "" || draft.Address == models.NotSpecified) {
		draft.Delivery = models.DeliveryPickup
		draft.Address = models.NotSpecified
	}
	return f.confirm(c, draft)
}

func (f *Flow) commit(c *chat.Context, draft Draft) ([]chat.Reply, error) {
	order, err := f.placer.Place(c.Ctx, c.UserID, draft.Details())
	if errors.Is(err, orders.ErrCartEmpty) {
		if err := c.State.Clear(c.Ctx); err != nil {
			return nil, err
		}
		return chat.Text(c.T.T(i18n.CartEmpty), cartBackRow(c.T)), nil
	}
	if err != nil {
		return nil, err
	}

	profile := &models.User{ID: c.UserID, FullName: draft.Name, Phone: draft.Phone}
	if draft.Delivery == models.DeliveryCourier {
		profile.Address = draft.Address
	}
	if err := f.profiles.SaveProfile(c.Ctx, profile); err != nil {
		f.logger.Warn("save profile after checkout", zap.Int64("user_id", c.UserID), zap.Error(err))
	}

	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	return placed(c.T, order.Order.ID), nil
}
