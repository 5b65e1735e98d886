// backend/internal/domain/favorite/repository_port.go
package favorite

import "context"

// Repository はお気に入りの永続化ポート。
type Repository interface {
	// Find は (userId, shopId) に一致する既存レコードを返す。無ければ ErrNotFound。
	Find(ctx context.Context, userID, shopID string) (Favorite, error)

	// Create は ID をストア側で採番して保存する。
	Create(ctx context.Context, f Favorite) (Favorite, error)

	// Delete は存在しない ID に対しては no-op。
	Delete(ctx context.Context, id string) error

	ListByUser(ctx context.Context, userID string) ([]Favorite, error)

	// CountByShop は店舗のお気に入り数を返す（おすすめ一覧の表示用）。
	CountByShop(ctx context.Context, shopID string) (int, error)
}
