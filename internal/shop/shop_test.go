package shop_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"storebot/internal/chat"
	"storebot/internal/checkout"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/repo"
	"storebot/internal/shop"
	"storebot/internal/state"
)

type fakeCatalog struct {
	categories []models.Category
	products   []models.Product
}

func (f *fakeCatalog) AllCategories(context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalog) ProductsByCategory(_ context.Context, id int) ([]models.Product, error) {
	return lo.Filter(f.products, func(p models.Product, _ int) bool {
		return p.IsActive && p.CategoryID != nil && *p.CategoryID == id
	}), nil
}

func (f *fakeCatalog) ProductByID(_ context.Context, id int) (*models.Product, error) {
	p, ok := lo.Find(f.products, func(p models.Product) bool { return p.ID == id })
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

type fakeCart struct {
	catalog *fakeCatalog
	items   map[int]int
	order   []int
}

func (f *fakeCart) AddItem(_ context.Context, _ int64, productID, qty int) error {
	p, err := f.catalog.ProductByID(context.Background(), productID)
	if err != nil || !p.IsActive {
		return repo.ErrNotFound
	}
	if _, ok := f.items[productID]; !ok {
		f.order = append(f.order, productID)
	}
	f.items[productID] += qty
	return nil
}

func (f *fakeCart) RemoveItem(_ context.Context, _ int64, productID int) error {
	delete(f.items, productID)
	f.order = lo.Without(f.order, productID)
	return nil
}

func (f *fakeCart) Clear(context.Context, int64) error {
	f.items = map[int]int{}
	f.order = nil
	return nil
}

func (f *fakeCart) Lines(context.Context, int64) ([]models.CartLine, error) {
	var lines []models.CartLine
	for _, id := range f.order {
		p, _ := f.catalog.ProductByID(context.Background(), id)
		lines = append(lines, models.CartLine{ProductID: id, Name: p.Name, Price: p.Price, Quantity: f.items[id]})
	}
	return lines, nil
}

type fakeOrders struct {
	orders   []models.Order
	statuses [][]string
}

func (f *fakeOrders) UserOrders(_ context.Context, userID int64, statuses []string) ([]models.Order, error) {
	f.statuses = append(f.statuses, statuses)
	return lo.Filter(f.orders, func(o models.Order, _ int) bool {
		return o.UserID == userID && (len(statuses) == 0 || lo.Contains(statuses, o.Status))
	}), nil
}

func (f *fakeOrders) OrderWithItems(_ context.Context, id int) (*models.OrderWithItems, error) {
	o, ok := lo.Find(f.orders, func(o models.Order) bool { return o.ID == id })
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &models.OrderWithItems{Order: o}, nil
}

type admins []int64

func (a admins) IsAdmin(id int64) bool { return lo.Contains(a, id) }

type ShopSuite struct {
	suite.Suite
	bundle  *i18n.Bundle
	catalog *fakeCatalog
	cart    *fakeCart
	orders  *fakeOrders
	shop    *shop.Shop
}

func TestShopSuite(t *testing.T) {
	suite.Run(t, new(ShopSuite))
}

func (s *ShopSuite) SetupSuite() {
	b, err := i18n.Load("ru")
	s.Require().NoError(err)
	s.bundle = b
}

func (s *ShopSuite) SetupTest() {
	catID := 1
	s.catalog = &fakeCatalog{categories: []models.Category{{ID: catID, Name: "Чай"}}}
	for i := 1; i <= 23; i++ {
		s.catalog.products = append(s.catalog.products, models.Product{
			ID:         i,
			Name:       gofakeit.ProductName(),
			Price:      decimal.NewFromInt(int64(gofakeit.IntRange(1, 1000))),
			CategoryID: &catID,
			IsActive:   true,
		})
	}
	s.catalog.products[0].Price = decimal.NewFromInt(100)
	s.catalog.products[1].Price = decimal.NewFromInt(50)
	s.catalog.products[22].IsActive = false

	s.cart = &fakeCart{catalog: s.catalog, items: map[int]int{}}
	s.orders = &fakeOrders{orders: []models.Order{
		{ID: 1, UserID: 7, Status: "in_progress", CreatedAt: time.Now()},
		{ID: 2, UserID: 7, Status: "done", CreatedAt: time.Now()},
		{ID: 3, UserID: 8, Status: "pending", CreatedAt: time.Now()},
	}}
	s.shop = shop.New(s.catalog, s.catalog, s.cart, s.orders, admins{1},
		[]string{"in_progress", "pending", "shipped", "done", "cancelled"}, []string{"done", "cancelled"})
}

func (s *ShopSuite) call(h chat.HandlerFunc, action string) []chat.Reply {
	c := &chat.Context{
		Ctx:    context.Background(),
		UserID: 7,
		ChatID: 7,
		Action: action,
		State:  state.NewHandle(state.NewMemory(), 7, time.Hour),
		T:      s.bundle.For("ru"),
	}
	replies, err := h(c)
	s.Require().NoError(err)
	s.Require().NotEmpty(replies)
	return replies
}

func buttons(r chat.Reply) []string {
	var out []string
	for _, row := range r.Keyboard {
		for _, b := range row {
			out = append(out, b.Action)
		}
	}
	return out
}

func (s *ShopSuite) TestProductsPagination() {
	tests := []struct {
		name     string
		action   string
		wantPage string
	}{
		{name: "first page: ok", action: "category_1_0", wantPage: "1/5"},
		{name: "last page: ok", action: "category_1_4", wantPage: "5/5"},
		{name: "past the end clamps: ok", action: "category_1_10", wantPage: "5/5"},
		{name: "missing page: ok", action: "category_1", wantPage: "1/5"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			r := s.call(s.shop.Products, tt.action)[0]
			labels := lo.FlatMap(r.Keyboard, func(row []chat.Button, _ int) []string {
				return lo.Map(row, func(b chat.Button, _ int) string { return b.Label })
			})
			s.Contains(labels, tt.wantPage)
		})
	}

	last := s.call(s.shop.Products, "category_1_4")[0]
	products := lo.Filter(buttons(last), func(a string, _ int) bool { return len(a) > 8 && a[:8] == "product_" })
	s.Len(products, 2, "22 active products leave 2 on the last page")
}

func (s *ShopSuite) TestProductCardQuantity() {
	r := s.call(s.shop.Product, "product_1")[0]
	s.Contains(buttons(r), "add_to_cart_1_1")
	s.NotContains(buttons(r), "qty_1_0")

	r = s.call(s.shop.Product, "qty_1_3")[0]
	s.Contains(buttons(r), "add_to_cart_1_3")
	s.Contains(buttons(r), "qty_1_2")
	s.Contains(buttons(r), "qty_1_4")
}

func (s *ShopSuite) TestArchivedProduct() {
	r := s.call(s.shop.Product, "product_23")
	s.NotEmpty(r[0].Alert)

	r = s.call(s.shop.AddToCart, "add_to_cart_23_1")
	s.NotEmpty(r[0].Alert)
	s.Empty(s.cart.items)
}

func (s *ShopSuite) TestCartTotal() {
	s.call(s.shop.AddToCart, "add_to_cart_1_1")
	s.call(s.shop.AddToCart, "add_to_cart_1_1")
	s.call(s.shop.AddToCart, "add_to_cart_2_1")
	s.Equal(2, s.cart.items[1], "adding twice accumulates")

	r := s.call(s.shop.Cart, chat.ActionCart)[0]
	s.Contains(r.Text, "250")
	s.Contains(buttons(r), checkout.ActionStart)
	s.Contains(buttons(r), "cart_remove_2_0")

	r = s.call(s.shop.RemoveFromCart, "cart_remove_2_0")[0]
	s.Contains(r.Text, "200")
	s.NotContains(buttons(r), "cart_remove_2_0")

	r = s.call(s.shop.ClearCart, shop.ActionCartClear)[0]
	s.NotContains(buttons(r), checkout.ActionStart)
}

func (s *ShopSuite) TestActiveOrders() {
	r := s.call(s.shop.OrderList, "orders_active_0")[0]
	s.Equal([]string{"order_1", chat.ActionMyOrders}, buttons(r))
	s.Equal([]string{"in_progress", "pending", "shipped"}, s.orders.statuses[0])

	r = s.call(s.shop.OrderList, "orders_all_0")[0]
	s.Equal([]string{"order_1", "order_2", chat.ActionMyOrders}, buttons(r))
}

func (s *ShopSuite) TestForeignOrderHidden() {
	r := s.call(s.shop.Order, "order_3")
	s.NotEmpty(r[0].Alert)

	r = s.call(s.shop.Order, "order_1")
	s.Empty(r[0].Alert)
	s.Contains(r[0].Text, "#1")
}

func TestMainMenuAdminButton(t *testing.T) {
	b, err := i18n.Load("ru")
	require.NoError(t, err)
	sh := shop.New(&fakeCatalog{}, &fakeCatalog{}, nil, nil, admins{1}, nil, nil)

	for _, tt := range []struct {
		name    string
		userID  int64
		wantBtn bool
	}{
		{name: "admin sees panel: ok", userID: 1, wantBtn: true},
		{name: "customer does not: ok", userID: 2},
	} {
		t.Run(tt.name, func(t *testing.T) {
			replies, err := sh.MainMenu(&chat.Context{Ctx: context.Background(), UserID: tt.userID, T: b.For("ru")})
			require.NoError(t, err)
			assert.Equal(t, tt.wantBtn, lo.Contains(buttons(replies[0]), chat.ActionAdmin))
		})
	}
}

func TestHelp(t *testing.T) {
	b, err := i18n.Load("ru")
	require.NoError(t, err)
	sh := shop.New(&fakeCatalog{}, &fakeCatalog{}, nil, nil, admins{}, nil, nil)
	c := &chat.Context{Ctx: context.Background(), UserID: 2, T: b.For("en")}

	menu, err := sh.MainMenu(c)
	require.NoError(t, err)
	assert.Contains(t, buttons(menu[0]), chat.ActionHelp)

	replies, err := sh.Help(c)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, c.T.T(i18n.Help), replies[0].Text)
	assert.Equal(t, []string{chat.ActionMainMenu}, buttons(replies[0]))
}
