package admin

import (
	"errors"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"storebot/internal/chat"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/orders"
	"storebot/internal/pricing"
	"storebot/internal/repo"
)

const (
	ActionOrders = "admin_orders"
	ActionOrder  = "admin_order"
	ActionStatus = "admin_status"
	ActionSearch = "admin_search"

	StepSearch = StepPrefix + "search"
)

func (a *Admin) orderRows(t *i18n.Localizer, list []models.Order, pageNum int) [][]chat.Button {
	page := pricing.Paginate(list, pageNum, pricing.PageSize)
	rows := chat.Column(lo.Map(page.Items, func(o models.Order, _ int) chat.Button {
		return chat.Btn(orders.Line(t, o), chat.Action(ActionOrder, o.ID))
	}))
	if page.Total > 1 {
		rows = append(rows, chat.PageNav(t, page.Current, page.Total, func(p int) string {
			return chat.Action(ActionOrders, p)
		}))
	}
	return rows
}

// OrderList shows admin_orders_<page>, newest first.
func (a *Admin) OrderList(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	list, err := a.Orders.AllOrders(c.Ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return chat.Text(c.T.T(i18n.NoOrders), menuRow(c.T)), nil
	}
	rows := append(a.orderRows(c.T, list, chat.Arg(c.Action, ActionOrders, 0, 0)), menuRow(c.T))
	return chat.Text(c.T.T(i18n.AdminOrdersHeader, len(list)), rows...), nil
}

// Order shows admin_order_<id> with a button for every status except the current one.
func (a *Admin) Order(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	return a.showOrder(c, chat.Arg(c.Action, ActionOrder, 0, 0))
}

func (a *Admin) showOrder(c *chat.Context, id int) ([]chat.Reply, error) {
	order, err := a.Orders.OrderWithItems(c.Ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return chat.Alert(c.T.T(i18n.OrderNotFound)), nil
	}
	if err != nil {
		return nil, err
	}

	var buttons []chat.Button
	for i, s := range a.Status.AllStatuses() {
		if s != order.Order.Status {
			buttons = append(buttons, chat.Btn(orders.StatusLabel(c.T, s), chat.Action(ActionStatus, id, i)))
		}
	}
	rows := chat.Column(buttons)
	rows = append(rows, chat.Row(
		chat.Btn(c.T.T(i18n.BtnBack), chat.Action(ActionOrders, 0)),
		chat.Btn(c.T.T(i18n.BtnAdminPanel), ActionMenu),
	))
	text := orders.Describe(c.T, order) + "\n\n" + c.T.T(i18n.AdminChangeStatus)
	return chat.Text(text, rows...), nil
}

// SetStatus handles admin_status_<order>_<status index>.
func (a *Admin) SetStatus(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	id := chat.Arg(c.Action, ActionStatus, 0, 0)
	idx := chat.Arg(c.Action, ActionStatus, 1, -1)
	statuses := a.Status.AllStatuses()
	if idx < 0 || idx >= len(statuses) {
		return chat.Alert(c.T.T(i18n.StaleButton)), nil
	}

	_, err := a.Status.ChangeStatus(c.Ctx, id, statuses[idx])
	switch {
	case errors.Is(err, orders.ErrSameStatus):
		return chat.Alert(c.T.T(i18n.AdminSameStatus)), nil
	case errors.Is(err, orders.ErrUnknownStatus):
		return chat.Alert(c.T.T(i18n.StaleButton)), nil
	case errors.Is(err, repo.ErrNotFound):
		return chat.Alert(c.T.T(i18n.OrderNotFound)), nil
	case err != nil:
		return nil, err
	}
	a.Logger.Info("admin changed order status",
		zap.Int64("admin_id", c.UserID), zap.Int("order_id", id), zap.String("status", statuses[idx]))

	replies, err := a.showOrder(c, id)
	if err != nil {
		return nil, err
	}
	return append(chat.Alert(c.T.T(i18n.AdminStatusChanged, orders.StatusLabel(c.T, statuses[idx]))), replies...), nil
}

func (a *Admin) StartSearch(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	if err := c.State.Save(c.Ctx, StepSearch, nil); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminAskSearch), menuRow(c.T)), nil
}

// search matches the order id, customer name or phone.
func (a *Admin) search(c *chat.Context) ([]chat.Reply, error) {
	query := strings.TrimSpace(c.Text)
	if query == "" {
		return chat.Text(c.T.T(i18n.AdminAskSearch), menuRow(c.T)), nil
	}
	list, err := a.Orders.SearchOrders(c.Ctx, query)
	if err != nil {
		return nil, err
	}
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return chat.Text(c.T.T(i18n.AdminNothingFound, query),
			chat.Row(chat.Btn(c.T.T(i18n.BtnAdminSearch), ActionSearch)),
			menuRow(c.T),
		), nil
	}
	page := pricing.Paginate(list, 0, pricing.PageSize*2)
	rows := chat.Column(lo.Map(page.Items, func(o models.Order, _ int) chat.Button {
		return chat.Btn(orders.Line(c.T, o), chat.Action(ActionOrder, o.ID))
	}))
	rows = append(rows, menuRow(c.T))
	return chat.Text(c.T.T(i18n.AdminSearchResults, len(list)), rows...), nil
}
