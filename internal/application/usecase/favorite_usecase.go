// backend/internal/application/usecase/favorite_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"takokatsu/internal/domain/favorite"
	"takokatsu/internal/domain/identity"
	"takokatsu/internal/domain/shop"
)

// FavoriteUsecase はユーザー↔店舗のお気に入り関係を担当する。
// (userId, shopId) の一意性はストア制約ではなく「検索してから挿入」で担保する。
// 追加/削除とも冪等なので、一時障害後のリトライは安全。
type FavoriteUsecase struct {
	favorites favorite.Repository
	shops     shop.Repository
	now       func() time.Time
}

func NewFavoriteUsecase(favorites favorite.Repository, shops shop.Repository) *FavoriteUsecase {
	return &FavoriteUsecase{
		favorites: favorites,
		shops:     shops,
		now:       time.Now,
	}
}

func (u *FavoriteUsecase) WithNow(now func() time.Time) *FavoriteUsecase {
	u.now = now
	return u
}

// Add はお気に入りを登録する。既に登録済みなら既存レコードを返すだけ。
func (u *FavoriteUsecase) Add(ctx context.Context, who identity.Identity, shopID string) (favorite.Favorite, error) {
	if u.favorites == nil {
		return favorite.Favorite{}, ErrFavoriteRepoNotConfigured
	}
	if who.IsZero() {
		return favorite.Favorite{}, ErrAuthRequired
	}
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return favorite.Favorite{}, favorite.ErrInvalidShopID
	}
	userID := strings.TrimSpace(who.UID)

	existing, err := u.favorites.Find(ctx, userID, shopID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, favorite.ErrNotFound) {
		return favorite.Favorite{}, err
	}

	return u.favorites.Create(ctx, favorite.Favorite{
		UserID:    userID,
		ShopID:    shopID,
		CreatedAt: u.now().UTC(),
	})
}

// Remove はお気に入りを解除する。未登録なら no-op。
func (u *FavoriteUsecase) Remove(ctx context.Context, who identity.Identity, shopID string) error {
	if u.favorites == nil {
		return ErrFavoriteRepoNotConfigured
	}
	if who.IsZero() {
		return ErrAuthRequired
	}
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return favorite.ErrInvalidShopID
	}

	existing, err := u.favorites.Find(ctx, strings.TrimSpace(who.UID), shopID)
	if errors.Is(err, favorite.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return u.favorites.Delete(ctx, existing.ID)
}

// IsFavorite は userId が shopId をお気に入り済みかどうかを返す。
func (u *FavoriteUsecase) IsFavorite(ctx context.Context, userID, shopID string) (bool, error) {
	if u.favorites == nil {
		return false, ErrFavoriteRepoNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false, favorite.ErrInvalidUserID
	}
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return false, favorite.ErrInvalidShopID
	}

	_, err := u.favorites.Find(ctx, userID, shopID)
	if errors.Is(err, favorite.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListShops は自分のお気に入り店舗を返す。
// 店舗の点読み取りは並行にファンアウトし、削除済みの店舗は黙って除外する。
func (u *FavoriteUsecase) ListShops(ctx context.Context, who identity.Identity) ([]shop.Shop, error) {
	if u.favorites == nil {
		return nil, ErrFavoriteRepoNotConfigured
	}
	if u.shops == nil {
		return nil, ErrShopRepoNotConfigured
	}
	if who.IsZero() {
		return nil, ErrAuthRequired
	}

	favs, err := u.favorites.ListByUser(ctx, strings.TrimSpace(who.UID))
	if err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return []shop.Shop{}, nil
	}

	found := make([]*shop.Shop, len(favs))
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for i, f := range favs {
		g.Go(func() error {
			s, err := u.shops.GetByID(ctx, f.ShopID)
			if err != nil {
				// 店舗が消えている等。お気に入り一覧からは黙って落とす。
				return nil
			}
			mu.Lock()
			found[i] = &s
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	out := make([]shop.Shop, 0, len(found))
	for _, s := range found {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}
