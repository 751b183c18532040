// Package storage 負責建立資料庫連線。
//
// 正式環境使用 PostgreSQL，本機開發與測試使用 SQLite，兩者都透過 GORM 操作。
package storage

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chat_relay/pkg/config"
)

type DB struct {
	*gorm.DB
}

// Open 依照設定的 driver 建立連線
func Open(cfg config.DBConfig) (*DB, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgresDB(cfg.URL, cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
	case "sqlite":
		return NewSQLiteDB(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// 唯一鍵衝突轉成 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate 自動遷移資料庫結構
func (db *DB) AutoMigrate(models ...interface{}) error {
	return db.DB.AutoMigrate(models...)
}
