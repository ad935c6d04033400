package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"storebot/internal/admin"
	"storebot/internal/auth"
	"storebot/internal/checkout"
	"storebot/internal/config"
	"storebot/internal/db"
	"storebot/internal/events"
	"storebot/internal/handlers"
	"storebot/internal/i18n"
	"storebot/internal/logging"
	"storebot/internal/metrics"
	"storebot/internal/notify"
	"storebot/internal/orders"
	"storebot/internal/profile"
	"storebot/internal/repo"
	"storebot/internal/shop"
	"storebot/internal/state"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфига: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Ошибка логгера: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
	logger.Info("bot stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	bundle, err := i18n.Load(cfg.DefaultLocale)
	if err != nil {
		return err
	}
	statusKeys := make([]string, 0, len(cfg.OrderStatuses))
	for _, s := range cfg.OrderStatuses {
		statusKeys = append(statusKeys, orders.StatusKey(s))
	}
	if err := bundle.Verify(statusKeys...); err != nil {
		return err
	}

	//инициализация бд, репозиториев
	sqlDB, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	productRepo := repo.NewProductRepo(sqlDB)
	categoryRepo := repo.NewCategoryRepo(sqlDB)
	userRepo := repo.NewUserRepo(sqlDB)
	cartRepo := repo.NewCartRepo(sqlDB)
	orderRepo := repo.NewOrderRepo(sqlDB)

	var states state.Store = state.NewMemory()
	if cfg.StateBackend == "postgres" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		states = state.NewPostgres(pool)
	}
	go state.RunJanitor(ctx, states, cfg.StateTTL, cfg.StateSweepInterval, logger)

	botMetrics := metrics.New(prometheus.DefaultRegisterer)
	go metrics.Serve(ctx, cfg.MetricsAddr, logger)

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer publisher.Close()

	//создание бота
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return err
	}
	bot.Debug = false
	logger.Info("authorized", zap.String("bot", bot.Self.UserName))

	authorizer := auth.NewAuthorizer(cfg.AdminIDs, cfg.JWTSecret, cfg.AdminSessionTTL, cfg.AdminPasswordHash)
	orderService := orders.NewService(orders.Deps{
		Store:     orderRepo,
		Users:     userRepo,
		Messenger: notify.NewTelegram(bot),
		Events:    publisher,
		Locales:   bundle,
		Admins:    authorizer.Admins(),
		Statuses:  cfg.OrderStatuses,
		Logger:    logger.Named("orders"),
		Metrics:   botMetrics,
	})

	router := handlers.Routes(
		shop.New(categoryRepo, productRepo, cartRepo, orderRepo, authorizer, cfg.OrderStatuses, cfg.FinalStatuses),
		checkout.NewFlow(cartRepo, userRepo, orderService, logger.Named("checkout")),
		profile.New(userRepo),
		admin.New(admin.Deps{
			Auth:       authorizer,
			Orders:     orderRepo,
			Status:     orderService,
			Categories: categoryRepo,
			Products:   productRepo,
			Logger:     logger.Named("admin"),
		}),
	)

	handlers.NewBot(handlers.Deps{
		API:           bot,
		Router:        router,
		Users:         userRepo,
		States:        states,
		StateTTL:      cfg.StateTTL,
		Locales:       bundle,
		Logger:        logger,
		Metrics:       botMetrics,
		HandleTimeout: cfg.HandleTimeout,
	}).HandleUpdates(ctx)
	return nil
}
