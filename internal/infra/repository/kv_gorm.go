package repository

import (
	"context"
	"errors"
	"time"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// kv_entries の1行。namespace ごとに別セッション。
type KVEntry struct {
	Namespace string    `gorm:"primaryKey;type:varchar(64)"`
	Key       string    `gorm:"primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

type KVGormRepository struct {
	db        *gorm.DB
	namespace string
}

// DI
func NewKVGormRepository(db *gorm.DB, namespace string) *KVGormRepository {
	return &KVGormRepository{db: db, namespace: namespace}
}

func (r *KVGormRepository) Get(ctx context.Context, key string) (string, error) {
	var e KVEntry

	err := r.db.WithContext(ctx).
		Where(map[string]any{"namespace": r.namespace, "key": key}).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

// あれば上書き、無ければ作成
func (r *KVGormRepository) Set(ctx context.Context, key string, value string) error {
	e := KVEntry{
		Namespace: r.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

// 0件削除もエラーにしない
func (r *KVGormRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where(map[string]any{"namespace": r.namespace, "key": key}).
		Delete(&KVEntry{}).Error
}
