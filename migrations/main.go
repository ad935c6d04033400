package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"storebot/internal/config"
	"storebot/internal/db"
	"storebot/internal/logging"
)

// Files are applied in this order; every script is idempotent.
var migrations = []string{
	"001_create_categories.sql",
	"002_create_products.sql",
	"003_create_users.sql",
	"004_create_orders.sql",
	"005_create_cart_items.sql",
	"006_create_conversation_state.sql",
}

const seed = "100_data.sql"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфига: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Ошибка логгера: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sqlDB, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer sqlDB.Close()

	projectRoot, err := getProjectRoot()
	if err != nil {
		logger.Fatal("find project root", zap.Error(err))
	}

	files := migrations
	if os.Getenv("SKIP_SEED") == "" {
		files = append(files, seed)
	}

	successes := 0
	for _, migration := range files {
		if err := apply(ctx, sqlDB, filepath.Join(projectRoot, "migrations", migration)); err != nil {
			// схема без предыдущих шагов бессмысленна
			logger.Fatal("migration failed", zap.String("file", migration), zap.Error(err))
		}
		logger.Info("migration applied", zap.String("file", migration))
		successes++
	}
	logger.Info("migrations done", zap.Int("applied", successes), zap.Int("total", len(files)))
}

// apply runs one script inside a transaction.
func apply(ctx context.Context, sqlDB *sql.DB, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tx, err := sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func getProjectRoot() (string, error) {
	// Ищем корень проекта по наличию go.mod
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd, nil
		}

		parent := filepath.Dir(wd)
		if parent == wd {
			return "", os.ErrNotExist
		}
		wd = parent
	}
}
