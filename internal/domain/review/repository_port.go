// backend/internal/domain/review/repository_port.go
package review

import (
	"context"

	"takokatsu/internal/domain/common"
)

// Repository はレビュー台帳の永続化ポート。
type Repository interface {
	GetByID(ctx context.Context, id string) (Review, error)

	// Create は ID が空ならストア側で採番して保存する。
	// ID が指定されている場合（冪等キー由来）は「存在しなければ作成」で、
	// 既に存在するなら既存レコードをそのまま返す（重複投稿を作らない）。
	Create(ctx context.Context, rv Review) (Review, error)

	// Delete は存在しない ID に対しては no-op。
	Delete(ctx context.Context, id string) error

	// ListByShop は shopId のレビューを createdAt 降順で返す。
	ListByShop(ctx context.Context, shopID string) ([]Review, error)

	// ListByUser は userId が投稿したレビューを createdAt 降順で返す。
	ListByUser(ctx context.Context, userID string) ([]Review, error)

	// ListLikedBy は userId がいいねしたレビュー（likedBy array-contains）を
	// createdAt 降順で返す。
	ListLikedBy(ctx context.Context, userID string) ([]Review, error)

	// ListRatingsByShop は集計再計算用に rating のみを返す（本文等は読まない）。
	ListRatingsByShop(ctx context.Context, shopID string) ([]int, error)

	// ListPage は全レビューを (createdAt desc, id asc) 順でカーソルページングする。
	ListPage(ctx context.Context, page common.CursorPage) (common.CursorPageResult[Review], error)

	// AddLike / RemoveLike は単一ドキュメントのトランザクションで
	// likedBy と likes を同時に更新する。方向ごとに冪等。
	AddLike(ctx context.Context, reviewID, userID string) (Review, error)
	RemoveLike(ctx context.Context, reviewID, userID string) (Review, error)
}
