package repo_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"storebot/internal/models"
	"storebot/internal/repo"
	"storebot/internal/state"
)

type RepoSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sql.DB
	dsn       string

	categories *repo.CategoryRepo
	products   *repo.ProductRepo
	users      *repo.UserRepo
	cart       *repo.CartRepo
	orders     *repo.OrderRepo
}

func TestRepoSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	suite.Run(t, new(RepoSuite))
}

func (s *RepoSuite) SetupSuite() {
	s.ctx = context.Background()

	scripts, err := filepath.Glob(filepath.Join("..", "..", "migrations", "00*.sql"))
	s.Require().NoError(err)
	s.Require().NotEmpty(scripts)

	s.container, err = postgres.Run(s.ctx, "postgres:16-alpine",
		postgres.WithDatabase("storebot"),
		postgres.WithUsername("storebot"),
		postgres.WithPassword("storebot"),
		postgres.WithInitScripts(scripts...),
		postgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)

	s.dsn, err = s.container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.db, err = sql.Open("postgres", s.dsn)
	s.Require().NoError(err)
	s.Require().NoError(s.db.PingContext(s.ctx))

	s.categories = repo.NewCategoryRepo(s.db)
	s.products = repo.NewProductRepo(s.db)
	s.users = repo.NewUserRepo(s.db)
	s.cart = repo.NewCartRepo(s.db)
	s.orders = repo.NewOrderRepo(s.db)
}

func (s *RepoSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	s.NoError(testcontainers.TerminateContainer(s.container))
}

func (s *RepoSuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, `
		TRUNCATE order_items, orders, cart_items, products, categories, users, conversation_state
		RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *RepoSuite) product(name string, price string, categoryID *int) *models.Product {
	p := &models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: 10, CategoryID: categoryID}
	s.Require().NoError(s.products.CreateProduct(s.ctx, p))
	return p
}

func (s *RepoSuite) customer(id int64) {
	s.Require().NoError(s.users.Touch(s.ctx, id, "user", "ru"))
}

func (s *RepoSuite) TestPlaceOrder() {
	s.customer(7)
	tea := s.product("Чай", "100", nil)
	coffee := s.product("Кофе", "50", nil)
	s.Require().NoError(s.cart.AddItem(s.ctx, 7, tea.ID, 1))
	s.Require().NoError(s.cart.AddItem(s.ctx, 7, tea.ID, 1))
	s.Require().NoError(s.cart.AddItem(s.ctx, 7, coffee.ID, 1))

	placed, err := s.orders.PlaceOrder(s.ctx, 7, models.OrderDetails{
		FullName: "Иван", Phone: "79991234567", Payment: models.PaymentCash, Delivery: models.DeliveryPickup,
	}, "in_progress")
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(250).Equal(placed.Order.Total), placed.Order.Total.String())
	s.Equal(models.NotSpecified, placed.Order.Comment)
	s.Len(placed.Items, 2)

	lines, err := s.cart.Lines(s.ctx, 7)
	s.Require().NoError(err)
	s.Empty(lines, "cart is cleared in the same transaction")

	// later price changes do not touch the order
	tea.Price = decimal.NewFromInt(999)
	s.Require().NoError(s.products.UpdateProduct(s.ctx, tea))
	stored, err := s.orders.OrderWithItems(s.ctx, placed.Order.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(250).Equal(stored.Order.Total))
	s.True(decimal.NewFromInt(100).Equal(stored.Items[0].PriceAtOrder))
}

func (s *RepoSuite) TestPlaceOrderEmptyCart() {
	s.customer(7)
	_, err := s.orders.PlaceOrder(s.ctx, 7, models.OrderDetails{}, "in_progress")
	s.ErrorIs(err, repo.ErrCartEmpty)

	list, err := s.orders.AllOrders(s.ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RepoSuite) TestConcurrentCommitPlacesOneOrder() {
	s.customer(7)
	tea := s.product("Чай", "100", nil)
	s.Require().NoError(s.cart.AddItem(s.ctx, 7, tea.ID, 3))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.orders.PlaceOrder(s.ctx, 7, models.OrderDetails{FullName: "Иван"}, "in_progress")
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			s.ErrorIs(err, repo.ErrCartEmpty)
			failed++
		}
	}
	s.Equal(1, failed)

	list, err := s.orders.UserOrders(s.ctx, 7, nil)
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *RepoSuite) TestCategoryNames() {
	tea, err := s.categories.CreateCategory(s.ctx, "Чай")
	s.Require().NoError(err)
	coffee, err := s.categories.CreateCategory(s.ctx, "Кофе")
	s.Require().NoError(err)

	_, err = s.categories.CreateCategory(s.ctx, "Чай")
	s.ErrorIs(err, repo.ErrCategoryExists)

	s.ErrorIs(s.categories.RenameCategory(s.ctx, coffee.ID, "Чай"), repo.ErrCategoryExists)
	got, err := s.categories.CategoryByID(s.ctx, coffee.ID)
	s.Require().NoError(err)
	s.Equal("Кофе", got.Name)

	s.NoError(s.categories.RenameCategory(s.ctx, tea.ID, "Зелёный чай"))
	s.ErrorIs(s.categories.RenameCategory(s.ctx, 404, "Какао"), repo.ErrNotFound)
}

func (s *RepoSuite) TestDeleteCategory() {
	cat, err := s.categories.CreateCategory(s.ctx, "Чай")
	s.Require().NoError(err)
	p := s.product("Пуэр", "300", &cat.ID)

	s.ErrorIs(s.categories.DeleteCategory(s.ctx, cat.ID), repo.ErrCategoryInUse)

	s.Require().NoError(s.products.DeleteProduct(s.ctx, p.ID))
	s.Require().NoError(s.categories.DeleteCategory(s.ctx, cat.ID))

	archived, err := s.products.ProductByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.False(archived.IsActive)
	s.Nil(archived.CategoryID, "archived products are detached")

	s.ErrorIs(s.categories.DeleteCategory(s.ctx, cat.ID), repo.ErrNotFound)
}

func (s *RepoSuite) TestArchivedProductLeavesCarts() {
	s.customer(7)
	tea := s.product("Чай", "100", nil)
	s.Require().NoError(s.cart.AddItem(s.ctx, 7, tea.ID, 2))

	s.Require().NoError(s.products.DeleteProduct(s.ctx, tea.ID))
	lines, err := s.cart.Lines(s.ctx, 7)
	s.Require().NoError(err)
	s.Empty(lines)

	s.ErrorIs(s.cart.AddItem(s.ctx, 7, tea.ID, 1), repo.ErrNotFound)
	s.ErrorIs(s.products.DeleteProduct(s.ctx, tea.ID), repo.ErrNotFound)
}

func (s *RepoSuite) TestProfile() {
	s.customer(7)
	u, err := s.users.UserByID(s.ctx, 7)
	s.Require().NoError(err)
	s.False(u.ProfileComplete())

	s.Require().NoError(s.users.SaveProfile(s.ctx, &models.User{ID: 7, FullName: "Иван", Phone: "79991234567", Address: "Москва"}))
	s.Require().NoError(s.users.SaveProfile(s.ctx, &models.User{ID: 7, FullName: "Иван", Phone: "79990000000", Address: "-"}))

	u, err = s.users.UserByID(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("79990000000", u.Phone)
	s.Equal("Москва", u.Address, "a dash keeps the stored address")
	s.Equal("ru", u.Locale)

	_, err = s.users.UserByID(s.ctx, 8)
	s.ErrorIs(err, repo.ErrNotFound)
}

func (s *RepoSuite) TestStatusSearchAndStats() {
	s.customer(7)
	tea := s.product("Чай", "100", nil)
	coffee := s.product("Кофе", "50", nil)
	s.Require().NoError(s.cart.AddItem(s.ctx, 7, tea.ID, 3))
	s.Require().NoError(s.cart.AddItem(s.ctx, 7, coffee.ID, 1))
	placed, err := s.orders.PlaceOrder(s.ctx, 7, models.OrderDetails{FullName: "Иван Петров", Phone: "79991234567"}, "in_progress")
	s.Require().NoError(err)

	prev, err := s.orders.SetStatus(s.ctx, placed.Order.ID, "done")
	s.Require().NoError(err)
	s.Equal("in_progress", prev)
	_, err = s.orders.SetStatus(s.ctx, 404, "done")
	s.ErrorIs(err, repo.ErrNotFound)

	active, err := s.orders.UserOrders(s.ctx, 7, []string{"in_progress", "pending"})
	s.Require().NoError(err)
	s.Empty(active)

	for _, q := range []string{"Петров", "1234", "1"} {
		found, err := s.orders.SearchOrders(s.ctx, q)
		s.Require().NoError(err)
		s.Len(found, 1, q)
	}

	since := time.Now().AddDate(0, 0, -30)
	stats, err := s.orders.Stats(s.ctx, since, 5)
	s.Require().NoError(err)
	s.Equal(1, stats.Count)
	s.True(decimal.NewFromInt(350).Equal(stats.Revenue), stats.Revenue.String())
	s.Equal([]models.ProductSales{{Name: "Чай", Quantity: 3}, {Name: "Кофе", Quantity: 1}}, stats.TopProducts)

	recent, err := s.orders.OrdersSince(s.ctx, since)
	s.Require().NoError(err)
	s.Len(recent, 1)
	none, err := s.orders.OrdersSince(s.ctx, time.Now().Add(time.Hour))
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *RepoSuite) TestPostgresStateStore() {
	pool, err := pgxpool.New(s.ctx, s.dsn)
	s.Require().NoError(err)
	defer pool.Close()

	store := state.NewPostgres(pool)
	h := state.NewHandle(store, 7, time.Hour)
	s.Require().NoError(h.Save(s.ctx, "checkout:collecting_phone", map[string]string{"name": "Иван"}))

	var data map[string]string
	step, err := h.Load(s.ctx, &data)
	s.Require().NoError(err)
	s.Equal("checkout:collecting_phone", step)
	s.Equal("Иван", data["name"])

	removed, err := store.Sweep(s.ctx, time.Now().Add(time.Minute))
	s.Require().NoError(err)
	s.Equal(1, removed)

	step, err = h.Step(s.ctx)
	s.Require().NoError(err)
	s.Empty(step)
}

func (s *RepoSuite) TestSearchProducts() {
	tea := s.product("Пуэр", "300", nil)
	s.product("Пуэр шу", "450", nil)
	s.product("Кофе", "200", nil)
	archived := s.product("Пуэр старый", "900", nil)
	s.Require().NoError(s.products.DeleteProduct(s.ctx, archived.ID))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "name substring: ok", query: "Пуэр", want: []string{"Пуэр", "Пуэр шу"}},
		{name: "id: ok", query: strconv.Itoa(tea.ID), want: []string{"Пуэр"}},
		{name: "archived id: fail", query: strconv.Itoa(archived.ID), want: []string{}},
		{name: "no match: fail", query: "Какао", want: []string{}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			found, err := s.products.SearchProducts(s.ctx, tt.query)
			s.Require().NoError(err)
			s.Equal(tt.want, lo.Map(found, func(p models.Product, _ int) string { return p.Name }))
		})
	}
}
