// Package admin is the operator panel: orders and their statuses, catalog
// management, statistics and CSV export. Every operation authorizes first.
package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"storebot/internal/auth"
	"storebot/internal/chat"
	"storebot/internal/i18n"
	"storebot/internal/models"
)

const StepPrefix = "admin:"

const (
	ActionMenu   = chat.ActionAdmin
	ActionLogout = "admin_logout"
	ActionHelp   = "admin_help"
)

type Authorizer interface {
	IsAdmin(userID int64) bool
	Login(userID int64, username, password string) error
	Logout(userID int64)
	Authorize(userID int64) error
}

type OrderStore interface {
	AllOrders(ctx context.Context) ([]models.Order, error)
	SearchOrders(ctx context.Context, query string) ([]models.Order, error)
	OrderWithItems(ctx context.Context, id int) (*models.OrderWithItems, error)
	OrdersSince(ctx context.Context, since time.Time) ([]models.Order, error)
	Stats(ctx context.Context, since time.Time, top int) (*models.OrderStats, error)
}

type StatusChanger interface {
	ChangeStatus(ctx context.Context, orderID int, status string) (*models.Order, error)
	AllStatuses() []string
}

type Categories interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	AllCategories(ctx context.Context) ([]models.Category, error)
	CategoryByID(ctx context.Context, id int) (*models.Category, error)
	RenameCategory(ctx context.Context, id int, name string) error
	DeleteCategory(ctx context.Context, id int) error
}

type Products interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	AllProducts(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id int) (*models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int) error
}

type Deps struct {
	Auth       Authorizer
	Orders     OrderStore
	Status     StatusChanger
	Categories Categories
	Products   Products
	Logger     *zap.Logger
	// ReportDays is the window for statistics and CSV export.
	ReportDays int
	TempDir    string
}

type Admin struct {
	Deps
	now func() time.Time
}

func New(d Deps) *Admin {
	if d.ReportDays <= 0 {
		d.ReportDays = 30
	}
	return &Admin{Deps: d, now: time.Now}
}

// deny returns the reply for a caller without a live admin session, nil otherwise.
func (a *Admin) deny(c *chat.Context) []chat.Reply {
	err := a.Auth.Authorize(c.UserID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, auth.ErrSessionExpired):
		a.Logger.Info("admin session expired", zap.Int64("user_id", c.UserID))
		return []chat.Reply{{Alert: c.T.T(i18n.AdminSessionExpired), Text: c.T.T(i18n.AdminSessionExpired)}}
	default:
		a.Logger.Warn("admin access denied", zap.Int64("user_id", c.UserID), zap.String("action", c.Action))
		return chat.Forbidden(c.T)
	}
}

// Login handles "/start_admin[@bot] [password]".
func (a *Admin) Login(c *chat.Context) ([]chat.Reply, error) {
	_, password, _ := strings.Cut(c.Text, " ")
	password = strings.TrimSpace(password)
	if err := a.Auth.Login(c.UserID, c.Username, password); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			a.Logger.Warn("admin login rejected", zap.Int64("user_id", c.UserID))
			return chat.Forbidden(c.T), nil
		}
		return nil, err
	}
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	a.Logger.Info("admin logged in", zap.Int64("user_id", c.UserID), zap.String("username", c.Username))
	return a.Menu(c)
}

func (a *Admin) Logout(c *chat.Context) ([]chat.Reply, error) {
	a.Auth.Logout(c.UserID)
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminLoggedOut), chat.MainMenuRow(c.T)), nil
}

func (a *Admin) Menu(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminMenu),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnAdminOrders), chat.Action(ActionOrders, 0)),
			chat.Btn(c.T.T(i18n.BtnAdminSearch), ActionSearch),
		),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnAdminCategories), chat.Action(ActionCategories, 0)),
			chat.Btn(c.T.T(i18n.BtnAdminProducts), chat.Action(ActionProducts, 0)),
		),
		chat.Row(chat.Btn(c.T.T(i18n.BtnAdminSearchProduct), ActionProductSearch)),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnAdminStats), ActionStats),
			chat.Btn(c.T.T(i18n.BtnAdminExport), ActionExport),
		),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnAdminHelp), ActionHelp),
			chat.Btn(c.T.T(i18n.BtnAdminLogout), ActionLogout),
		),
		chat.MainMenuRow(c.T),
	), nil
}

func (a *Admin) Help(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	return chat.Text(c.T.T(i18n.AdminHelp, a.ReportDays), menuRow(c.T)), nil
}

func menuRow(t *i18n.Localizer) []chat.Button {
	return chat.Row(chat.Btn(t.T(i18n.BtnAdminPanel), ActionMenu))
}

// HandleText processes free text for admin:* steps.
func (a *Admin) HandleText(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	step, err := c.State.Step(c.Ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case step == StepSearch:
		return a.search(c)
	case step == StepProductSearch:
		return a.searchProducts(c)
	case step == StepCategoryAdd, step == StepCategoryRename:
		return a.categoryText(c, step)
	case strings.HasPrefix(step, productStepPrefix):
		return a.productText(c, step)
	}
	return nil, nil
}

func (a *Admin) Routes() map[string]chat.HandlerFunc {
	return map[string]chat.HandlerFunc{
		ActionMenu:   a.Menu,
		ActionLogout: a.Logout,
		ActionHelp:   a.Help,

		ActionOrders: a.OrderList,
		ActionOrder:  a.Order,
		ActionStatus: a.SetStatus,
		ActionSearch: a.StartSearch,

		ActionCategories:     a.CategoryList,
		ActionCategory:       a.Category,
		ActionCategoryAdd:    a.StartCategoryAdd,
		ActionCategoryRename: a.StartCategoryRename,
		ActionCategoryDelete: a.DeleteCategory,

		ActionProducts:        a.ProductList,
		ActionProduct:         a.Product,
		ActionProductAdd:      a.StartProductAdd,
		ActionProductCategory: a.ProductCategory,
		ActionProductSkip:     a.SkipPhoto,
		ActionProductEdit:     a.StartProductEdit,
		ActionProductDelete:   a.DeleteProduct,
		ActionProductSearch:   a.StartProductSearch,

		ActionStats:  a.Stats,
		ActionExport: a.Export,
	}
}
