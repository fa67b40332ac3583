package repository

import "context"

// セッションの永続化先（ブラウザの localStorage 相当）。
// 値はシリアライズ済みの文字列。
type KeyValueStore interface {
	// 無ければ ErrNotFound
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	// 無いキーの削除はエラーにしない
	Delete(ctx context.Context, key string) error
}
