// backend/internal/application/usecase/review_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"takokatsu/internal/application/resolver"
	"takokatsu/internal/domain/identity"
	"takokatsu/internal/domain/review"
)

// ReviewImageRepo はレビュー画像をブロブストアへ保存するポート。
// 保存後の公開 URL を返す。コアは生バイトを永続化しない。
type ReviewImageRepo interface {
	Upload(ctx context.Context, userID string, data []byte, contentType string) (string, error)
}

// ReviewUsecase はレビュー台帳（投稿/削除/一覧）を担当する。
// 投稿・削除の後は同期的に店舗統計を再計算し、呼び出し元が戻った時点で
// 店舗の集計が一貫して見えるようにする。
type ReviewUsecase struct {
	reviews review.Repository
	images  ReviewImageRepo // nil なら画像なし投稿のみ受け付ける
	stats   *ShopStatsUsecase
	names   *resolver.ShopNameResolver
	now     func() time.Time
}

func NewReviewUsecase(
	reviews review.Repository,
	images ReviewImageRepo,
	stats *ShopStatsUsecase,
	names *resolver.ShopNameResolver,
) *ReviewUsecase {
	return &ReviewUsecase{
		reviews: reviews,
		images:  images,
		stats:   stats,
		names:   names,
		now:     time.Now,
	}
}

func (u *ReviewUsecase) WithNow(now func() time.Time) *ReviewUsecase {
	u.now = now
	return u
}

// -----------------------
// Commands
// -----------------------

type SubmitReviewInput struct {
	ShopID  string `json:"shopId"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`

	// Image は任意。ある場合はブロブストアに上げて URL だけ保存する。
	Image            []byte
	ImageContentType string

	// IdempotencyKey は任意。指定された場合、同じ (user, key) の再送は
	// 既存レビューを返すだけで二重投稿にならない。
	IdempotencyKey string `json:"idempotencyKey"`
}

// Submit はレビューを投稿し、店舗統計を再計算してから返す。
func (u *ReviewUsecase) Submit(ctx context.Context, who identity.Identity, in SubmitReviewInput) (review.Review, error) {
	if u.reviews == nil {
		return review.Review{}, ErrReviewRepoNotConfigured
	}
	if who.IsZero() {
		return review.Review{}, ErrAuthRequired
	}
	who = who.Normalize()

	rv := review.Review{
		ShopID:        strings.TrimSpace(in.ShopID),
		UserID:        who.UID,
		UserName:      who.DisplayName,
		UserAvatarURL: who.AvatarURL,
		Rating:        in.Rating,
		Content:       strings.TrimSpace(in.Content),
		CreatedAt:     u.now().UTC(),
		Likes:         0,
		LikedBy:       nil,
	}
	if err := rv.Validate(); err != nil {
		return review.Review{}, err
	}

	if len(in.Image) > 0 {
		if u.images == nil {
			return review.Review{}, errors.New("review: image repo not configured")
		}
		url, err := u.images.Upload(ctx, who.UID, in.Image, in.ImageContentType)
		if err != nil {
			return review.Review{}, err
		}
		rv.ImageURL = url
	}

	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		rv.ID = review.DocIDForIdempotencyKey(who.UID, key)
	}

	created, err := u.reviews.Create(ctx, rv)
	if err != nil {
		return review.Review{}, err
	}

	// 集計は副次的な帳簿付け。失敗してもユーザーの投稿自体は成功として返す。
	if u.stats != nil {
		u.stats.Recompute(ctx, created.ShopID)
	}
	return created, nil
}

// Delete はレビューを削除し、店舗統計を再計算する。
// 作者本人以外からの削除は ErrNotOwner。既に無いレビューは no-op。
func (u *ReviewUsecase) Delete(ctx context.Context, who identity.Identity, reviewID string) error {
	if u.reviews == nil {
		return ErrReviewRepoNotConfigured
	}
	if who.IsZero() {
		return ErrAuthRequired
	}
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return review.ErrInvalidID
	}

	rv, err := u.reviews.GetByID(ctx, reviewID)
	if errors.Is(err, review.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if rv.UserID != strings.TrimSpace(who.UID) {
		return review.ErrNotOwner
	}

	if err := u.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	if u.stats != nil {
		u.stats.Recompute(ctx, rv.ShopID)
	}
	return nil
}

// -----------------------
// Queries
// -----------------------

// ListByShop は店舗のレビューを新しい順で返す。
func (u *ReviewUsecase) ListByShop(ctx context.Context, shopID string) ([]review.Review, error) {
	if u.reviews == nil {
		return nil, ErrReviewRepoNotConfigured
	}
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return nil, review.ErrInvalidShopID
	}
	return u.reviews.ListByShop(ctx, shopID)
}

// ListMine は自分の投稿を新しい順で返す。各件に店舗名を付与する。
func (u *ReviewUsecase) ListMine(ctx context.Context, who identity.Identity) ([]review.Review, error) {
	if u.reviews == nil {
		return nil, ErrReviewRepoNotConfigured
	}
	if who.IsZero() {
		return nil, ErrAuthRequired
	}

	items, err := u.reviews.ListByUser(ctx, strings.TrimSpace(who.UID))
	if err != nil {
		return nil, err
	}
	return u.attachShopNames(ctx, items), nil
}

// ListLikedByMe は自分がいいねしたレビューを新しい順で返す。各件に店舗名を付与する。
func (u *ReviewUsecase) ListLikedByMe(ctx context.Context, who identity.Identity) ([]review.Review, error) {
	if u.reviews == nil {
		return nil, ErrReviewRepoNotConfigured
	}
	if who.IsZero() {
		return nil, ErrAuthRequired
	}

	items, err := u.reviews.ListLikedBy(ctx, strings.TrimSpace(who.UID))
	if err != nil {
		return nil, err
	}
	return u.attachShopNames(ctx, items), nil
}

// attachShopNames は一覧の各レビューに店舗名を付与する。
// 解決はページ単位で一括ファンアウト。失敗した分はプレースホルダに落ちる。
func (u *ReviewUsecase) attachShopNames(ctx context.Context, items []review.Review) []review.Review {
	if u.names == nil || len(items) == 0 {
		return items
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ShopID)
	}
	names := u.names.ResolveMany(ctx, ids)

	for i := range items {
		if name, ok := names[items[i].ShopID]; ok {
			items[i].ShopName = name
		} else {
			items[i].ShopName = resolver.UnknownShopName
		}
	}
	return items
}
