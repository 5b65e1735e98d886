// backend/internal/domain/shop/repository_port.go
package shop

import "context"

// Repository は店舗の永続化ポート。
type Repository interface {
	GetByID(ctx context.Context, id string) (Shop, error)

	// GetName は店舗名だけが欲しい場面（フィードの表示名解決）用の点読み取り。
	GetName(ctx context.Context, id string) (string, error)

	// Create は ID をストア側で採番して保存する。
	Create(ctx context.Context, s Shop) (Shop, error)

	List(ctx context.Context) ([]Shop, error)

	// ListNewest は createdAt 降順で limit 件返す（おすすめ店舗）。
	ListNewest(ctx context.Context, limit int) ([]Shop, error)

	// UpdateStats は派生フィールド reviewCount / rating のみを書き換える。
	// 店舗ドキュメントが存在しない場合は ErrNotFound。
	UpdateStats(ctx context.Context, id string, stats Stats) error
}
