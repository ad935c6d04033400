package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"storebot/internal/events"
	"storebot/internal/i18n"
	"storebot/internal/metrics"
	"storebot/internal/models"
	"storebot/internal/repo"
)

var (
	ErrCartEmpty     = repo.ErrCartEmpty
	ErrNotFound      = repo.ErrNotFound
	ErrUnknownStatus = errors.New("unknown order status")
	ErrSameStatus    = errors.New("order already has this status")
)

type Store interface {
	PlaceOrder(ctx context.Context, userID int64, details models.OrderDetails, status string) (*models.OrderWithItems, error)
	OrderByID(ctx context.Context, id int) (*models.Order, error)
	SetStatus(ctx context.Context, id int, status string) (string, error)
}

type Users interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

type Locales interface {
	For(languageCode string) *i18n.Localizer
}

type Deps struct {
	Store     Store
	Users     Users
	Messenger Messenger
	Events    events.Publisher
	Locales   Locales
	Admins    []int64
	Statuses  []string
	Logger    *zap.Logger
	Metrics   *metrics.BotMetrics
}

type Service struct {
	Deps
}

func NewService(d Deps) *Service {
	if d.Events == nil {
		d.Events = events.Noop{}
	}
	return &Service{Deps: d}
}

// AllStatuses lists the configured statuses, initial one first.
func (s *Service) AllStatuses() []string {
	return s.Deps.Statuses
}

// Place commits the user's cart as an order. Admin notification and the
// order event are sent afterwards and never fail the call.
func (s *Service) Place(ctx context.Context, userID int64, details models.OrderDetails) (*models.OrderWithItems, error) {
	order, err := s.Store.PlaceOrder(ctx, userID, details, s.Deps.Statuses[0])
	if err != nil {
		return nil, err
	}
	s.Metrics.OrdersPlaced.Inc()
	s.Logger.Info("order placed",
		zap.Int("order_id", order.Order.ID),
		zap.Int64("user_id", userID),
		zap.String("total", order.Order.Total.String()),
	)

	t := s.Locales.For("")
	text := t.T(i18n.AdminNewOrder) + "\n\n" + Describe(t, order)
	for _, adminID := range s.Admins {
		if err := s.Messenger.SendText(ctx, adminID, text); err != nil {
			s.Metrics.NotifyFailures.WithLabelValues("admin").Inc()
			s.Logger.Warn("notify admin about new order",
				zap.Int64("admin_id", adminID), zap.Int("order_id", order.Order.ID), zap.Error(err))
		}
	}

	e := events.New(events.TypeOrderPlaced, order.Order.ID, userID, order.Order.Status)
	e.Total = order.Order.Total.String()
	s.publish(ctx, e)

	return order, nil
}

// ChangeStatus sets any configured status other than the current one.
// The customer is told about it on a best-effort basis.
func (s *Service) ChangeStatus(ctx context.Context, orderID int, status string) (*models.Order, error) {
	if !lo.Contains(s.Deps.Statuses, status) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	order, err := s.Store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == status {
		return nil, ErrSameStatus
	}

	prev, err := s.Store.SetStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	order.Status = status
	s.Metrics.StatusChanges.WithLabelValues(status).Inc()
	s.Logger.Info("order status changed",
		zap.Int("order_id", orderID), zap.String("from", prev), zap.String("to", status))

	locale := ""
	if user, err := s.Users.UserByID(ctx, order.UserID); err == nil {
		locale = user.Locale
	}
	t := s.Locales.For(locale)
	text := t.T(i18n.CustomerStatusChanged, order.ID, StatusLabel(t, status))
	if err := s.Messenger.SendText(ctx, order.UserID, text); err != nil {
		s.Metrics.NotifyFailures.WithLabelValues("customer").Inc()
		s.Logger.Warn("notify customer about status",
			zap.Int64("user_id", order.UserID), zap.Int("order_id", orderID), zap.Error(err))
	}

	e := events.New(events.TypeOrderStatusChanged, order.ID, order.UserID, status)
	e.PrevStatus = prev
	s.publish(ctx, e)

	return order, nil
}

func (s *Service) publish(ctx context.Context, e events.Event) {
	if err := s.Events.Publish(ctx, e); err != nil {
		s.Metrics.EventFailures.Inc()
		s.Logger.Warn("publish order event",
			zap.String("type", e.Type), zap.Int("order_id", e.OrderID), zap.Error(err))
	}
}
