package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB 開啟本機 SQLite 檔案，開發與測試使用
func NewSQLiteDB(path string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_foreign_keys=on"), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite 只允許單一寫入者
	sqlDB.SetMaxOpenConns(1)

	return &DB{DB: db}, nil
}
