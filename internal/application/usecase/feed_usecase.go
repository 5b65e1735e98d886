// backend/internal/application/usecase/feed_usecase.go
package usecase

import (
	"context"
	"strings"

	"takokatsu/internal/application/resolver"
	"takokatsu/internal/domain/common"
	"takokatsu/internal/domain/review"
)

// フィードのページサイズ。フロントの初期表示は5件（新着たこ活）。
const (
	DefaultFeedPageSize = 5
	MaxFeedPageSize     = 50
)

// FeedPage はフィード1ページ分の結果。
// Exhausted が true になったら、それ以上ページを要求してはならない。
type FeedPage struct {
	Items      []review.Review `json:"items"`
	NextCursor string          `json:"nextCursor,omitempty"`
	Exhausted  bool            `json:"exhausted"`
}

// FeedUsecase は全レビューの逆時系列フィードをカーソルページングで提供する。
// 並び順は (createdAt desc, id asc)。読み取りに副作用は無いので、
// 同じカーソルの再取得は安全（ライブなフィードなので、取得と同時に入った
// 新規投稿の包含/除外は未定義）。
type FeedUsecase struct {
	reviews review.Repository
	names   *resolver.ShopNameResolver
}

func NewFeedUsecase(reviews review.Repository, names *resolver.ShopNameResolver) *FeedUsecase {
	return &FeedUsecase{reviews: reviews, names: names}
}

// FirstPage は先頭ページを返す。
func (u *FeedUsecase) FirstPage(ctx context.Context, pageSize int) (FeedPage, error) {
	return u.page(ctx, "", pageSize)
}

// NextPage はカーソル位置から次のページを返す。
func (u *FeedUsecase) NextPage(ctx context.Context, cursor string, pageSize int) (FeedPage, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor != "" {
		// 壊れたカーソルはページ取得前に弾く
		if _, _, err := review.DecodeCursor(cursor); err != nil {
			return FeedPage{}, err
		}
	}
	return u.page(ctx, cursor, pageSize)
}

func (u *FeedUsecase) page(ctx context.Context, after string, pageSize int) (FeedPage, error) {
	if u.reviews == nil {
		return FeedPage{}, ErrReviewRepoNotConfigured
	}
	if pageSize <= 0 {
		pageSize = DefaultFeedPageSize
	}
	if pageSize > MaxFeedPageSize {
		pageSize = MaxFeedPageSize
	}

	res, err := u.reviews.ListPage(ctx, common.CursorPage{After: after, Limit: pageSize})
	if err != nil {
		return FeedPage{}, err
	}

	items := u.enrich(ctx, res.Items)

	page := FeedPage{
		Items:     items,
		Exhausted: res.Exhausted(),
	}
	if res.NextCursor != nil {
		page.NextCursor = *res.NextCursor
	}
	return page, nil
}

// enrich はページ内の各レビューに店舗名を付与する。
// ページ内のユニークな shopId をまとめて並行解決し、1回の合流で返す。
func (u *FeedUsecase) enrich(ctx context.Context, items []review.Review) []review.Review {
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
