// Package shop is the customer side: main menu, catalog browsing, the cart
// and the customer's own orders.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"storebot/internal/chat"
	"storebot/internal/checkout"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/orders"
	"storebot/internal/pricing"
	"storebot/internal/repo"
)

const (
	ActionCategories  = "categories"
	ActionCategory    = "category"
	ActionProduct     = "product"
	ActionQuantity    = "qty"
	ActionAddToCart   = "add_to_cart"
	ActionCartRemove  = "cart_remove"
	ActionCartClear   = "cart_clear"
	ActionOrdersAll   = "orders_all"
	ActionOrderActive = "orders_active"
	ActionOrder       = "order"

	maxQuantity = 99
)

type Categories interface {
	AllCategories(ctx context.Context) ([]models.Category, error)
}

type Products interface {
	ProductsByCategory(ctx context.Context, categoryID int) ([]models.Product, error)
	ProductByID(ctx context.Context, id int) (*models.Product, error)
}

type Cart interface {
	AddItem(ctx context.Context, userID int64, productID, quantity int) error
	RemoveItem(ctx context.Context, userID int64, productID int) error
	Clear(ctx context.Context, userID int64) error
	Lines(ctx context.Context, userID int64) ([]models.CartLine, error)
}

type Orders interface {
	UserOrders(ctx context.Context, userID int64, statuses []string) ([]models.Order, error)
	OrderWithItems(ctx context.Context, id int) (*models.OrderWithItems, error)
}

type Admins interface {
	IsAdmin(userID int64) bool
}

type Shop struct {
	categories Categories
	products   Products
	cart       Cart
	orders     Orders
	admins     Admins
	active     []string
}

// New builds the shop. Orders in statuses other than final ones count as active.
func New(categories Categories, products Products, cart Cart, orderStore Orders, admins Admins, statuses, final []string) *Shop {
	active, _ := lo.Difference(statuses, final)
	return &Shop{
		categories: categories,
		products:   products,
		cart:       cart,
		orders:     orderStore,
		admins:     admins,
		active:     active,
	}
}

func (s *Shop) MainMenu(c *chat.Context) ([]chat.Reply, error) {
	rows := [][]chat.Button{
		chat.Row(chat.Btn(c.T.T(i18n.BtnCatalog), chat.ActionCatalog)),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnCart), chat.ActionCart),
			chat.Btn(c.T.T(i18n.BtnMyOrders), chat.ActionMyOrders),
		),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnProfile), chat.ActionProfile),
			chat.Btn(c.T.T(i18n.BtnHelp), chat.ActionHelp),
		),
	}
	if s.admins.IsAdmin(c.UserID) {
		rows = append(rows, chat.Row(chat.Btn(c.T.T(i18n.BtnAdminPanel), chat.ActionAdmin)))
	}
	return chat.Text(c.T.T(i18n.Welcome), rows...), nil
}

func (s *Shop) Help(c *chat.Context) ([]chat.Reply, error) {
	return chat.Text(c.T.T(i18n.Help), chat.MainMenuRow(c.T)), nil
}

// Categories shows one page of categories. Out of range pages are clamped.
func (s *Shop) Categories(c *chat.Context) ([]chat.Reply, error) {
	categories, err := s.categories.AllCategories(c.Ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return chat.Text(c.T.T(i18n.NoCategories), chat.MainMenuRow(c.T)), nil
	}

	page := pricing.Paginate(categories, chat.Arg(c.Action, ActionCategories, 0, 0), pricing.PageSize)
	buttons := lo.Map(page.Items, func(cat models.Category, _ int) chat.Button {
		return chat.Btn(cat.Name, chat.Action(ActionCategory, cat.ID, 0))
	})
	rows := chat.Column(buttons)
	if page.Total > 1 {
		rows = append(rows, chat.PageNav(c.T, page.Current, page.Total, func(p int) string {
			return chat.Action(ActionCategories, p)
		}))
	}
	rows = append(rows, chat.MainMenuRow(c.T))
	return chat.Text(c.T.T(i18n.ChooseCategory), rows...), nil
}

// Products lists the active products of category_<id>_<page>.
func (s *Shop) Products(c *chat.Context) ([]chat.Reply, error) {
	categoryID := chat.Arg(c.Action, ActionCategory, 0, 0)
	products, err := s.products.ProductsByCategory(c.Ctx, categoryID)
	if err != nil {
		return nil, err
	}
	back := chat.Row(chat.Btn(c.T.T(i18n.BtnBack), ActionCategories))
	if len(products) == 0 {
		return chat.Text(c.T.T(i18n.NoProducts), back), nil
	}

	page := pricing.Paginate(products, chat.Arg(c.Action, ActionCategory, 1, 0), pricing.PageSize)
	buttons := lo.Map(page.Items, func(p models.Product, _ int) chat.Button {
		label := fmt.Sprintf("%s · %s %s", pricing.ShortName(p.Name, 30), c.T.Price(p.Price), c.T.T(i18n.Currency))
		return chat.Btn(label, chat.Action(ActionProduct, p.ID))
	})
	rows := chat.Column(buttons)
	if page.Total > 1 {
		rows = append(rows, chat.PageNav(c.T, page.Current, page.Total, func(p int) string {
			return chat.Action(ActionCategory, categoryID, p)
		}))
	}
	rows = append(rows, back)
	return chat.Text(c.T.T(i18n.ChooseProduct), rows...), nil
}

// Product shows the card of product_<id> or qty_<id>_<n> with a quantity picker.
func (s *Shop) Product(c *chat.Context) ([]chat.Reply, error) {
	prefix := ActionProduct
	if strings.HasPrefix(c.Action, ActionQuantity) {
		prefix = ActionQuantity
	}
	productID := chat.Arg(c.Action, prefix, 0, 0)
	quantity := min(max(chat.Arg(c.Action, prefix, 1, 1), 1), maxQuantity)

	product, err := s.products.ProductByID(c.Ctx, productID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !product.IsActive) {
		return chat.Alert(c.T.T(i18n.ProductUnavailable)), nil
	}
	if err != nil {
		return nil, err
	}

	picker := []chat.Button{}
	if quantity > 1 {
		picker = append(picker, chat.Btn("−", chat.Action(ActionQuantity, product.ID, quantity-1)))
	}
	picker = append(picker, chat.Btn(fmt.Sprint(quantity), chat.Action(ActionQuantity, product.ID, quantity)))
	if quantity < maxQuantity {
		picker = append(picker, chat.Btn("+", chat.Action(ActionQuantity, product.ID, quantity+1)))
	}

	back := ActionCategories
	if product.CategoryID != nil {
		back = chat.Action(ActionCategory, *product.CategoryID, 0)
	}

	text := c.T.T(i18n.ProductCard,
		product.Name,
		product.Description,
		c.T.Price(product.Price),
		product.Stock,
	)
	reply := chat.Reply{
		Text:    text,
		PhotoID: product.Photo,
		Keyboard: [][]chat.Button{
			picker,
			chat.Row(chat.Btn(c.T.T(i18n.BtnAddToCart), chat.Action(ActionAddToCart, product.ID, quantity))),
			chat.Row(
				chat.Btn(c.T.T(i18n.BtnBack), back),
				chat.Btn(c.T.T(i18n.BtnCart), chat.ActionCart),
			),
		},
	}
	return []chat.Reply{reply}, nil
}

// AddToCart handles add_to_cart_<id>_<qty>; quantities add up.
func (s *Shop) AddToCart(c *chat.Context) ([]chat.Reply, error) {
	productID := chat.Arg(c.Action, ActionAddToCart, 0, 0)
	quantity := min(max(chat.Arg(c.Action, ActionAddToCart, 1, 1), 1), maxQuantity)

	err := s.cart.AddItem(c.Ctx, c.UserID, productID, quantity)
	if errors.Is(err, repo.ErrNotFound) {
		return chat.Alert(c.T.T(i18n.ProductUnavailable)), nil
	}
	if err != nil {
		return nil, err
	}
	return chat.Alert(c.T.T(i18n.AddedToCart, quantity)), nil
}

// Cart shows cart_<page>: every line with its subtotal, the total, and one
// page of remove buttons.
func (s *Shop) Cart(c *chat.Context) ([]chat.Reply, error) {
	lines, err := s.cart.Lines(c.Ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	summary := pricing.Summarize(lines)
	if summary.Empty() {
		return chat.Text(c.T.T(i18n.CartEmpty),
			chat.Row(chat.Btn(c.T.T(i18n.BtnCatalog), chat.ActionCatalog)),
			chat.MainMenuRow(c.T),
		), nil
	}

	var b strings.Builder
	b.WriteString(c.T.T(i18n.CartHeader))
	b.WriteString("\n\n")
	for _, l := range summary.Lines {
		b.WriteString(c.T.T(i18n.OrderItemLine,
			pricing.ShortName(l.Name, 30), l.Quantity, c.T.Price(l.Price), c.T.Price(l.Subtotal)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(c.T.T(i18n.OrderTotal, c.T.Price(summary.Total)))

	page := pricing.Paginate(summary.Lines, chat.Arg(c.Action, chat.ActionCart, 0, 0), pricing.PageSize)
	rows := chat.Column(lo.Map(page.Items, func(l pricing.Line, _ int) chat.Button {
		return chat.Btn(c.T.T(i18n.BtnRemove, pricing.ShortName(l.Name, 25)),
			chat.Action(ActionCartRemove, l.ProductID, page.Current))
	}))
	if page.Total > 1 {
		rows = append(rows, chat.PageNav(c.T, page.Current, page.Total, func(p int) string {
			return chat.Action(chat.ActionCart, p)
		}))
	}
	rows = append(rows,
		chat.Row(chat.Btn(c.T.T(i18n.BtnPlaceOrder), checkout.ActionStart)),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnClearCart), ActionCartClear),
			chat.Btn(c.T.T(i18n.BtnCatalog), chat.ActionCatalog),
		),
		chat.MainMenuRow(c.T),
	)
	return chat.Text(b.String(), rows...), nil
}

// RemoveFromCart handles cart_remove_<product>_<page> and redraws the cart.
func (s *Shop) RemoveFromCart(c *chat.Context) ([]chat.Reply, error) {
	productID := chat.Arg(c.Action, ActionCartRemove, 0, 0)
	page := chat.Arg(c.Action, ActionCartRemove, 1, 0)
	if err := s.cart.RemoveItem(c.Ctx, c.UserID, productID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	return s.redrawCart(c, page)
}

func (s *Shop) ClearCart(c *chat.Context) ([]chat.Reply, error) {
	if err := s.cart.Clear(c.Ctx, c.UserID); err != nil {
		return nil, err
	}
	return s.redrawCart(c, 0)
}

func (s *Shop) redrawCart(c *chat.Context, page int) ([]chat.Reply, error) {
	redraw := *c
	redraw.Action = chat.Action(chat.ActionCart, page)
	return s.Cart(&redraw)
}

func (s *Shop) MyOrders(c *chat.Context) ([]chat.Reply, error) {
	return chat.Text(c.T.T(i18n.MyOrdersMenu),
		chat.Row(chat.Btn(c.T.T(i18n.BtnActiveOrders), chat.Action(ActionOrderActive, 0))),
		chat.Row(chat.Btn(c.T.T(i18n.BtnAllOrders), chat.Action(ActionOrdersAll, 0))),
		chat.MainMenuRow(c.T),
	), nil
}

// OrderList handles orders_all_<page> and orders_active_<page>.
func (s *Shop) OrderList(c *chat.Context) ([]chat.Reply, error) {
	prefix, statuses := ActionOrdersAll, []string(nil)
	if strings.HasPrefix(c.Action, ActionOrderActive) {
		prefix, statuses = ActionOrderActive, s.active
	}
	list, err := s.orders.UserOrders(c.Ctx, c.UserID, statuses)
	if err != nil {
		return nil, err
	}
	back := chat.Row(chat.Btn(c.T.T(i18n.BtnBack), chat.ActionMyOrders))
	if len(list) == 0 {
		return chat.Text(c.T.T(i18n.NoOrders), back), nil
	}

	page := pricing.Paginate(list, chat.Arg(c.Action, prefix, 0, 0), pricing.PageSize)
	rows := chat.Column(lo.Map(page.Items, func(o models.Order, _ int) chat.Button {
		return chat.Btn(orders.Line(c.T, o), chat.Action(ActionOrder, o.ID))
	}))
	if page.Total > 1 {
		rows = append(rows, chat.PageNav(c.T, page.Current, page.Total, func(p int) string {
			return chat.Action(prefix, p)
		}))
	}
	rows = append(rows, back)
	return chat.Text(c.T.T(i18n.OrdersHeader), rows...), nil
}

// Order shows one of the customer's own orders with the prices it was placed at.
func (s *Shop) Order(c *chat.Context) ([]chat.Reply, error) {
	order, err := s.orders.OrderWithItems(c.Ctx, chat.Arg(c.Action, ActionOrder, 0, 0))
	if errors.Is(err, repo.ErrNotFound) || (err == nil && order.Order.UserID != c.UserID) {
		return chat.Alert(c.T.T(i18n.OrderNotFound)), nil
	}
	if err != nil {
		return nil, err
	}
	return chat.Text(orders.Describe(c.T, order),
		chat.Row(chat.Btn(c.T.T(i18n.BtnBack), chat.ActionMyOrders)),
	), nil
}

// Routes maps callback prefixes to handlers.
func (s *Shop) Routes() map[string]chat.HandlerFunc {
	return map[string]chat.HandlerFunc{
		chat.ActionMainMenu: s.MainMenu,
		chat.ActionCatalog:  s.Categories,
		chat.ActionHelp:     s.Help,
		ActionCategories:    s.Categories,
		ActionCategory:      s.Products,
		ActionProduct:       s.Product,
		ActionQuantity:      s.Product,
		ActionAddToCart:     s.AddToCart,
		chat.ActionCart:     s.Cart,
		ActionCartRemove:    s.RemoveFromCart,
		ActionCartClear:     s.ClearCart,
		chat.ActionMyOrders: s.MyOrders,
		ActionOrdersAll:     s.OrderList,
		ActionOrderActive:   s.OrderList,
		ActionOrder:         s.Order,
	}
}
