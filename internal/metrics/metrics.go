package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type BotMetrics struct {
	Updates        *prometheus.CounterVec
	LatencyMS      *prometheus.HistogramVec
	OrdersPlaced   prometheus.Counter
	StatusChanges  *prometheus.CounterVec
	NotifyFailures *prometheus.CounterVec
	EventFailures  prometheus.Counter
}

func New(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storebot",
			Name:      "updates_total",
			Help:      "Handled Telegram updates by route and outcome.",
		}, []string{"route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "storebot",
			Name:      "update_duration_ms",
			Help:      "Update handling latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		OrdersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storebot",
			Name:      "orders_placed_total",
			Help:      "Orders committed.",
		}),
		StatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storebot",
			Name:      "order_status_changes_total",
			Help:      "Order status transitions by target status.",
		}, []string{"status"}),
		NotifyFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storebot",
			Name:      "notify_failures_total",
			Help:      "Best-effort notifications that could not be delivered.",
		}, []string{"target"}),
		EventFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storebot",
			Name:      "event_publish_failures_total",
			Help:      "Order events that could not be published.",
		}),
	}
	reg.MustRegister(m.Updates, m.LatencyMS, m.OrdersPlaced, m.StatusChanges, m.NotifyFailures, m.EventFailures)
	return m
}

// Observe records one handled update.
func (m *BotMetrics) Observe(route string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Updates.WithLabelValues(route, status).Inc()
	m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(started).Milliseconds()))
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until ctx is done. Empty addr disables it.
func Serve(ctx context.Context, addr string, logger *zap.Logger) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server listening", zap.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server", zap.Error(err))
	}
}
