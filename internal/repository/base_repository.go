package repository

import (
	"context"

	"chat_relay/internal/storage"
)

// baseRepository 提供各 repository 共用的單筆操作
type baseRepository struct {
	db *storage.DB
}

func (r *baseRepository) create(ctx context.Context, model interface{}) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *baseRepository) exists(ctx context.Context, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where(query, args...).Limit(1).Count(&count).Error
	return count > 0, err
}

// deleteWhere 回傳實際刪除的筆數
func (r *baseRepository) deleteWhere(ctx context.Context, model interface{}, query string, args ...interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Where(query, args...).Delete(model)
	return result.RowsAffected, result.Error
}
