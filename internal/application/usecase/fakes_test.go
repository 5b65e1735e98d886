// backend/internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"takokatsu/internal/domain/common"
	"takokatsu/internal/domain/favorite"
	"takokatsu/internal/domain/review"
	"takokatsu/internal/domain/shop"
)

// ------------------------------------------------------------
// in-memory review.Repository
// ------------------------------------------------------------

type fakeReviewRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]review.Review

	// エラー注入用
	failList error
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{byID: map[string]review.Review{}}
}

func (r *fakeReviewRepo) GetByID(_ context.Context, id string) (review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return review.Review{}, review.ErrNotFound
	}
	return rv, nil
}

func (r *fakeReviewRepo) Create(_ context.Context, rv review.Review) (review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id := strings.TrimSpace(rv.ID); id != "" {
		if existing, ok := r.byID[id]; ok {
			return existing, nil
		}
		rv.ID = id
		r.byID[id] = rv
		return rv, nil
	}

	r.seq++
	rv.ID = fmt.Sprintf("rev%03d", r.seq)
	r.byID[rv.ID] = rv
	return rv, nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, strings.TrimSpace(id))
	return nil
}

func (r *fakeReviewRepo) ListByShop(_ context.Context, shopID string) ([]review.Review, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []review.Review
	for _, rv := range r.byID {
		if rv.ShopID == shopID {
			out = append(out, rv)
		}
	}
	sortDesc(out)
	return out, nil
}

func (r *fakeReviewRepo) ListByUser(_ context.Context, userID string) ([]review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []review.Review
	for _, rv := range r.byID {
		if rv.UserID == userID {
			out = append(out, rv)
		}
	}
	sortDesc(out)
	return out, nil
}

func (r *fakeReviewRepo) ListLikedBy(_ context.Context, userID string) ([]review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []review.Review
	for _, rv := range r.byID {
		if rv.HasLiked(userID) {
			out = append(out, rv)
		}
	}
	sortDesc(out)
	return out, nil
}

func (r *fakeReviewRepo) ListRatingsByShop(_ context.Context, shopID string) ([]int, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, rv := range r.byID {
		if rv.ShopID == shopID {
			out = append(out, rv.Rating)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) ListPage(_ context.Context, page common.CursorPage) (common.CursorPageResult[review.Review], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	limit := page.Limit
	if limit <= 0 {
		limit = DefaultFeedPageSize
	}

	all := make([]review.Review, 0, len(r.byID))
	for _, rv := range r.byID {
		all = append(all, rv)
	}
	sortDesc(all)

	start := 0
	if after := strings.TrimSpace(page.After); after != "" {
		createdAt, id, err := review.DecodeCursor(after)
		if err != nil {
			return common.CursorPageResult[review.Review]{}, err
		}
		// カーソル位置より厳密に後ろの最初の item から再開する
		// （カーソル位置のドキュメントが消えていても成立する）
		start = len(all)
		for i, rv := range all {
			if sortsAfter(rv, createdAt, id) {
				start = i
				break
			}
		}
	}

	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	items := all[start:end]

	var next *string
	if len(items) > 0 {
		last := items[len(items)-1]
		c := review.EncodeCursor(last.CreatedAt, last.ID)
		next = &c
	}
	return common.CursorPageResult[review.Review]{Items: items, NextCursor: next, Limit: limit}, nil
}

func (r *fakeReviewRepo) AddLike(ctx context.Context, reviewID, userID string) (review.Review, error) {
	return r.updateLike(ctx, reviewID, userID, true)
}

func (r *fakeReviewRepo) RemoveLike(ctx context.Context, reviewID, userID string) (review.Review, error) {
	return r.updateLike(ctx, reviewID, userID, false)
}

func (r *fakeReviewRepo) updateLike(_ context.Context, reviewID, userID string, liked bool) (review.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rv, ok := r.byID[strings.TrimSpace(reviewID)]
	if !ok {
		return review.Review{}, review.ErrNotFound
	}
	if rv.HasLiked(userID) == liked {
		return rv, nil
	}

	set := rv.LikeSet()
	if liked {
		set[userID] = struct{}{}
	} else {
		delete(set, userID)
	}
	likedBy := make([]string, 0, len(set))
	for id := range set {
		likedBy = append(likedBy, id)
	}
	sort.Strings(likedBy)

	rv.LikedBy = likedBy
	rv.Likes = len(likedBy)
	r.byID[rv.ID] = rv
	return rv, nil
}

// sortDesc は実リポジトリと同じ (createdAt desc, id asc) で整列する。
func sortDesc(items []review.Review) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// sortsAfter は rv が (createdAt desc, id asc) 順で位置 (createdAt, id) より
// 厳密に後ろに来るかどうか。
func sortsAfter(rv review.Review, createdAt time.Time, id string) bool {
	if !rv.CreatedAt.Equal(createdAt) {
		return rv.CreatedAt.Before(createdAt)
	}
	return rv.ID > id
}

// ------------------------------------------------------------
// in-memory shop.Repository
// ------------------------------------------------------------

type fakeShopRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]shop.Shop

	statsCalls []string // UpdateStats が呼ばれた shopId の記録
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{byID: map[string]shop.Shop{}}
}

func (r *fakeShopRepo) GetByID(_ context.Context, id string) (shop.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return shop.Shop{}, shop.ErrNotFound
	}
	return s, nil
}

func (r *fakeShopRepo) GetName(_ context.Context, id string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return "", shop.ErrNotFound
	}
	return s.Name, nil
}

func (r *fakeShopRepo) Create(_ context.Context, s shop.Shop) (shop.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	s.ID = fmt.Sprintf("shop%03d", r.seq)
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeShopRepo) List(_ context.Context) ([]shop.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shop.Shop, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeShopRepo) ListNewest(_ context.Context, limit int) ([]shop.Shop, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shop.Shop, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeShopRepo) UpdateStats(_ context.Context, id string, stats shop.Stats) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statsCalls = append(r.statsCalls, id)
	s, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return shop.ErrNotFound
	}
	s.ReviewCount = stats.ReviewCount
	s.Rating = stats.Rating
	r.byID[s.ID] = s
	return nil
}

// ------------------------------------------------------------
// in-memory favorite.Repository
// ------------------------------------------------------------

type fakeFavoriteRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]favorite.Favorite
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{byID: map[string]favorite.Favorite{}}
}

func (r *fakeFavoriteRepo) Find(_ context.Context, userID, shopID string) (favorite.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.byID {
		if f.UserID == userID && f.ShopID == shopID {
			return f, nil
		}
	}
	return favorite.Favorite{}, favorite.ErrNotFound
}

func (r *fakeFavoriteRepo) Create(_ context.Context, f favorite.Favorite) (favorite.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	f.ID = fmt.Sprintf("fav%03d", r.seq)
	r.byID[f.ID] = f
	return f, nil
}

func (r *fakeFavoriteRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, strings.TrimSpace(id))
	return nil
}

func (r *fakeFavoriteRepo) ListByUser(_ context.Context, userID string) ([]favorite.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []favorite.Favorite
	for _, f := range r.byID {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFavoriteRepo) CountByShop(_ context.Context, shopID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, f := range r.byID {
		if f.ShopID == shopID {
			n++
		}
	}
	return n, nil
}
