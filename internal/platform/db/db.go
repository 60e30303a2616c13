// Package db はリレーショナルストアへの接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"todo_backend/internal/config"
	authentity "todo_backend/internal/feature/auth/domain/entity"
	todoadapters "todo_backend/internal/feature/todos/adapters"
)

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Opener はDSNからgorm.DBを開く関数です。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN はPostgreSQL用のDSN文字列を生成します。
// DatabaseURLが設定されている場合はそれを優先します。
func BuildDSN(cfg config.DBConfig) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// gormConfig はすべてのドライバで共通のGORM設定です。
// TranslateErrorによりユニーク制約違反はgorm.ErrDuplicatedKeyになります。
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// PostgresOpener はPostgreSQL（pgx）で接続するOpenerです。
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), gormConfig())
}

// SQLiteOpener はSQLiteで接続するOpenerです。DSNはファイルパスです。
func SQLiteOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), gormConfig())
}

// ConnectWithRetry はtimeoutに達するまで接続をリトライします。
// リトライは起動時のみで、リクエスト処理中の障害はリトライしません。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は設定されたドライバでDBに接続し、コネクションプールを設定します。
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite":
		db, err = ConnectWithRetry(cfg.SQLitePath, cfg.ConnectTimeout, SQLiteOpener)
	case "postgres":
		db, err = ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, PostgresOpener)
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := ConfigurePool(db, cfg); err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "driver", cfg.Driver)
	return db, nil
}

// ConfigurePool はコネクションプールの上限と寿命を設定します。
func ConfigurePool(db *gorm.DB, cfg config.DBConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return nil
}

// Migrate はusersとtasksのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	// マイグレーション（User, Task）
	if err := db.AutoMigrate(
		&authentity.User{},
		&todoadapters.TaskModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
