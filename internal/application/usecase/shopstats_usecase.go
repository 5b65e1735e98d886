// backend/internal/application/usecase/shopstats_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"

	"takokatsu/internal/domain/shop"
)

// RatingSource は集計再計算に必要な最小限の読み取りポート。
type RatingSource interface {
	ListRatingsByShop(ctx context.Context, shopID string) ([]int, error)
}

// StatsWriter は店舗の派生フィールドだけを書き込むポート。
type StatsWriter interface {
	UpdateStats(ctx context.Context, id string, stats shop.Stats) error
}

// ShopStatsUsecase は店舗のレビュー数・平均評価をレビュー台帳から導出して
// 店舗ドキュメントに書き戻す。レビューの投稿/削除のたびに同期的に呼ばれる。
//
// 方針: 増分カウンタではなく毎回全読みの再計算。書き込みコストと引き換えに、
// 一度ズレた値も次の書き込みで自己修復される。読み→書きの間に挟まった
// 同時投稿は、その投稿自身が引き起こす次の再計算で拾われる。
type ShopStatsUsecase struct {
	reviews RatingSource
	shops   StatsWriter
}

func NewShopStatsUsecase(reviews RatingSource, shops StatsWriter) *ShopStatsUsecase {
	return &ShopStatsUsecase{reviews: reviews, shops: shops}
}

// Recompute は shopID の統計を再計算して書き戻す。
// 副次的な帳簿付けなので、どんな失敗もログに残して飲み込む。
// 店舗ドキュメントが無い（参照切れ）場合も同様で、呼び出し元の
// レビュー操作を失敗させない。読み手は欠けた統計を常に 0 として扱うこと。
func (u *ShopStatsUsecase) Recompute(ctx context.Context, shopID string) {
	if u == nil || u.reviews == nil || u.shops == nil {
		return
	}

	ratings, err := u.reviews.ListRatingsByShop(ctx, shopID)
	if err != nil {
		log.Printf("[shopstats] WARN: list ratings failed shopId=%s err=%v", shopID, err)
		return
	}

	stats := shop.ComputeStats(ratings)

	if err := u.shops.UpdateStats(ctx, shopID, stats); err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			// 参照切れ：店舗ドキュメントが存在しない。次にこの店舗が
			// 書かれるまで統計は欠けたままになるが、それは許容する。
			log.Printf("[shopstats] WARN: shop doc missing, stats not written shopId=%s", shopID)
			return
		}
		log.Printf("[shopstats] WARN: update stats failed shopId=%s err=%v", shopID, err)
	}
}
