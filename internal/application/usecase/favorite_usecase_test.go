// backend/internal/application/usecase/favorite_usecase_test.go
package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takokatsu/internal/domain/favorite"
	"takokatsu/internal/domain/identity"
	"takokatsu/internal/domain/shop"
)

func newFavoriteFixture() (*FavoriteUsecase, *fakeFavoriteRepo, *fakeShopRepo) {
	favorites := newFakeFavoriteRepo()
	shops := newFakeShopRepo()
	return NewFavoriteUsecase(favorites, shops), favorites, shops
}

func TestFavoriteAdd_Idempotent(t *testing.T) {
	ctx := context.Background()
	uc, favorites, shops := newFavoriteFixture()
	s, err := shops.Create(ctx, shop.Shop{Name: "たこ勝 本店", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	alice := identity.Identity{UID: "alice"}

	first, err := uc.Add(ctx, alice, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", first.UserID)
	assert.Equal(t, s.ID, first.ShopID)

	// 再追加は既存レコードを返すだけ。レコードは増えない。
	second, err := uc.Add(ctx, alice, s.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, favorites.byID, 1)
}

func TestFavoriteRemove_Idempotent(t *testing.T) {
	ctx := context.Background()
	uc, favorites, _ := newFavoriteFixture()
	alice := identity.Identity{UID: "alice"}

	// 未登録の解除は no-op
	require.NoError(t, uc.Remove(ctx, alice, "shop001"))

	_, err := uc.Add(ctx, alice, "shop001")
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, alice, "shop001"))
	require.NoError(t, uc.Remove(ctx, alice, "shop001"))
	assert.Empty(t, favorites.byID)
}

func TestFavoriteIsFavorite(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newFavoriteFixture()
	alice := identity.Identity{UID: "alice"}

	ok, err := uc.IsFavorite(ctx, "alice", "shop001")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = uc.Add(ctx, alice, "shop001")
	require.NoError(t, err)

	ok, err = uc.IsFavorite(ctx, "alice", "shop001")
	require.NoError(t, err)
	assert.True(t, ok)

	// 他ユーザーには影響しない
	ok, err = uc.IsFavorite(ctx, "bob", "shop001")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = uc.IsFavorite(ctx, " ", "shop001")
	assert.ErrorIs(t, err, favorite.ErrInvalidUserID)
}

func TestFavoriteListShops_FiltersMissingShops(t *testing.T) {
	ctx := context.Background()
	uc, _, shops := newFavoriteFixture()
	alice := identity.Identity{UID: "alice"}

	s1, err := shops.Create(ctx, shop.Shop{Name: "たこ勝 本店", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	s2, err := shops.Create(ctx, shop.Shop{Name: "たこ勝 梅田店", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	for _, id := range []string{s1.ID, s2.ID, "deleted-shop"} {
		_, err := uc.Add(ctx, alice, id)
		require.NoError(t, err)
	}

	got, err := uc.ListShops(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)

	names := []string{got[0].Name, got[1].Name}
	assert.Contains(t, names, "たこ勝 本店")
	assert.Contains(t, names, "たこ勝 梅田店")
}

func TestFavorite_Guards(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newFavoriteFixture()

	_, err := uc.Add(ctx, identity.Identity{}, "shop001")
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = uc.Add(ctx, identity.Identity{UID: "alice"}, "  ")
	assert.ErrorIs(t, err, favorite.ErrInvalidShopID)

	err = uc.Remove(ctx, identity.Identity{}, "shop001")
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = uc.ListShops(ctx, identity.Identity{})
	assert.ErrorIs(t, err, ErrAuthRequired)
}
