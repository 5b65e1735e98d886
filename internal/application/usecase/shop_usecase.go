// backend/internal/application/usecase/shop_usecase.go
package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"takokatsu/internal/domain/favorite"
	"takokatsu/internal/domain/identity"
	"takokatsu/internal/domain/shop"
)

const DefaultRecommendedLimit = 5

// ShopUsecase は店舗の登録・取得を担当する。
// 派生フィールド（rating / reviewCount）はここでは初期値を入れるだけで、
// 以後の書き込みは shopstats に限定される。
type ShopUsecase struct {
	shops     shop.Repository
	favorites favorite.Repository // おすすめ一覧のお気に入り数表示用（nil 可）
	now       func() time.Time
}

func NewShopUsecase(shops shop.Repository, favorites favorite.Repository) *ShopUsecase {
	return &ShopUsecase{
		shops:     shops,
		favorites: favorites,
		now:       time.Now,
	}
}

func (u *ShopUsecase) WithNow(now func() time.Time) *ShopUsecase {
	u.now = now
	return u
}

// -----------------------
// Commands
// -----------------------

type RegisterShopInput struct {
	Name          string           `json:"name"`
	Prefecture    string           `json:"prefecture"`
	City          string           `json:"city"`
	Address       string           `json:"address"`
	BusinessHours []shop.HoursSlot `json:"businessHours"`
	Menus         []shop.MenuItem  `json:"menus"`
}

// Register は店舗を新規登録する。
// 営業時間は "12:00~18:00, ..." 形式の文字列へ、エリアは都道府県＋市区町村へ変換する。
func (u *ShopUsecase) Register(ctx context.Context, who identity.Identity, in RegisterShopInput) (shop.Shop, error) {
	if u.shops == nil {
		return shop.Shop{}, ErrShopRepoNotConfigured
	}
	if who.IsZero() {
		return shop.Shop{}, ErrAuthRequired
	}

	s := shop.Shop{
		Name:          strings.TrimSpace(in.Name),
		Prefecture:    strings.TrimSpace(in.Prefecture),
		City:          strings.TrimSpace(in.City),
		Address:       strings.TrimSpace(in.Address),
		Area:          shop.BuildArea(in.Prefecture, in.City),
		BusinessHours: shop.FormatBusinessHours(in.BusinessHours),
		Menus:         in.Menus,

		// 派生値の初期値。以後は shopstats だけが書く。
		Rating:      0,
		ReviewCount: 0,

		CreatedAt: u.now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return shop.Shop{}, err
	}

	return u.shops.Create(ctx, s)
}

// -----------------------
// Queries
// -----------------------

func (u *ShopUsecase) GetByID(ctx context.Context, id string) (shop.Shop, error) {
	if u.shops == nil {
		return shop.Shop{}, ErrShopRepoNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return shop.Shop{}, shop.ErrInvalidID
	}
	return u.shops.GetByID(ctx, id)
}

func (u *ShopUsecase) List(ctx context.Context) ([]shop.Shop, error) {
	if u.shops == nil {
		return nil, ErrShopRepoNotConfigured
	}
	return u.shops.List(ctx)
}

// ListRecommended は最新の登録店舗を limit 件返す。
// 各店舗のお気に入り数を並行に取得して表示用 Likes に載せる。
func (u *ShopUsecase) ListRecommended(ctx context.Context, limit int) ([]shop.Shop, error) {
	if u.shops == nil {
		return nil, ErrShopRepoNotConfigured
	}
	if limit <= 0 {
		limit = DefaultRecommendedLimit
	}

	shops, err := u.shops.ListNewest(ctx, limit)
	if err != nil {
		return nil, err
	}
	if u.favorites == nil || len(shops) == 0 {
		return shops, nil
	}

	var g errgroup.Group
	for i := range shops {
		g.Go(func() error {
			n, err := u.favorites.CountByShop(ctx, shops[i].ID)
			if err != nil {
				// 表示用の数値なので落とさない
				log.Printf("[shop] WARN: favorite count failed shopId=%s err=%v", shops[i].ID, err)
				return nil
			}
			shops[i].Likes = n
			return nil
		})
	}
	_ = g.Wait()

	return shops, nil
}
