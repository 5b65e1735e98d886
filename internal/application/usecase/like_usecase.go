// backend/internal/application/usecase/like_usecase.go
package usecase

import (
	"context"
	"strings"

	"takokatsu/internal/domain/identity"
	"takokatsu/internal/domain/review"
)

// LikeUsecase は「1ユーザー1いいね」の状態遷移を担当する。
// 追加/削除とも方向ごとに冪等：既に目的の状態なら no-op で現状を返す。
// likedBy と likes の同時更新はリポジトリ側の単一ドキュメント
// トランザクションで担保される（usecase はリトライしない）。
type LikeUsecase struct {
	reviews review.Repository
}

func NewLikeUsecase(reviews review.Repository) *LikeUsecase {
	return &LikeUsecase{reviews: reviews}
}

// Add はレビューにいいねを付ける。
func (u *LikeUsecase) Add(ctx context.Context, who identity.Identity, reviewID string) (review.Review, error) {
	if u.reviews == nil {
		return review.Review{}, ErrReviewRepoNotConfigured
	}
	if who.IsZero() {
		return review.Review{}, ErrAuthRequired
	}
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return review.Review{}, review.ErrInvalidID
	}
	return u.reviews.AddLike(ctx, reviewID, strings.TrimSpace(who.UID))
}

// Remove はレビューのいいねを取り消す。
func (u *LikeUsecase) Remove(ctx context.Context, who identity.Identity, reviewID string) (review.Review, error) {
	if u.reviews == nil {
		return review.Review{}, ErrReviewRepoNotConfigured
	}
	if who.IsZero() {
		return review.Review{}, ErrAuthRequired
	}
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return review.Review{}, review.ErrInvalidID
	}
	return u.reviews.RemoveLike(ctx, reviewID, strings.TrimSpace(who.UID))
}
