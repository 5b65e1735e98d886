// backend/internal/application/usecase/review_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"takokatsu/internal/application/resolver"
	"takokatsu/internal/domain/identity"
	"takokatsu/internal/domain/review"
	"takokatsu/internal/domain/shop"
)

type fakeImageRepo struct {
	lastUserID string
	lastCT     string
}

func (f *fakeImageRepo) Upload(_ context.Context, userID string, _ []byte, contentType string) (string, error) {
	f.lastUserID = userID
	f.lastCT = contentType
	return "https://storage.example.com/reviews/" + userID + "_123", nil
}

func newReviewFixture(t *testing.T) (*ReviewUsecase, *fakeReviewRepo, *fakeShopRepo) {
	t.Helper()
	reviews := newFakeReviewRepo()
	shops := newFakeShopRepo()
	stats := NewShopStatsUsecase(reviews, shops)
	names := resolver.NewShopNameResolver(shops)
	uc := NewReviewUsecase(reviews, nil, stats, names)
	return uc, reviews, shops
}

func seedShop(t *testing.T, shops *fakeShopRepo, name string) shop.Shop {
	t.Helper()
	s, err := shops.Create(context.Background(), shop.Shop{Name: name, CreatedAt: time.Now().UTC()})
	require.NoError(t, err)
	return s
}

func TestReviewSubmit_RecomputesShopStats(t *testing.T) {
	ctx := context.Background()
	uc, _, shops := newReviewFixture(t)
	s := seedShop(t, shops, "たこ勝 本店")

	who := identity.Identity{UID: "u1", DisplayName: "Taro", AvatarURL: "https://a.example/u1.png"}

	for _, rating := range []int{5, 4, 3} {
		_, err := uc.Submit(ctx, who, SubmitReviewInput{
			ShopID:  s.ID,
			Rating:  rating,
			Content: "外はカリッと中はトロトロ",
		})
		require.NoError(t, err)
	}

	got, err := shops.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ReviewCount)
	assert.InDelta(t, 4.0, got.Rating, 1e-9)
}

func TestReviewSubmit_PopulatesAuthorSnapshot(t *testing.T) {
	ctx := context.Background()
	uc, _, shops := newReviewFixture(t)
	s := seedShop(t, shops, "たこ勝 本店")

	// 表示名もアイコンも無い identity はデフォルトで埋める
	created, err := uc.Submit(ctx, identity.Identity{UID: "u2"}, SubmitReviewInput{
		ShopID:  s.ID,
		Rating:  4,
		Content: "ソース濃いめ",
	})
	require.NoError(t, err)

	assert.Equal(t, "u2", created.UserID)
	assert.Equal(t, identity.DefaultDisplayName, created.UserName)
	assert.Equal(t, identity.DefaultAvatarURL, created.UserAvatarURL)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, 0, created.Likes)
}

func TestReviewSubmit_Validation(t *testing.T) {
	ctx := context.Background()
	uc, _, shops := newReviewFixture(t)
	s := seedShop(t, shops, "たこ勝 本店")
	who := identity.Identity{UID: "u1"}

	cases := []struct {
		name string
		in   SubmitReviewInput
		want error
	}{
		{"rating below min", SubmitReviewInput{ShopID: s.ID, Rating: 0, Content: "x"}, review.ErrInvalidRating},
		{"rating above max", SubmitReviewInput{ShopID: s.ID, Rating: 6, Content: "x"}, review.ErrInvalidRating},
		{"empty content", SubmitReviewInput{ShopID: s.ID, Rating: 3, Content: "   "}, review.ErrEmptyContent},
		{"empty shop id", SubmitReviewInput{ShopID: " ", Rating: 3, Content: "x"}, review.ErrInvalidShopID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Submit(ctx, who, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("no identity", func(t *testing.T) {
		_, err := uc.Submit(ctx, identity.Identity{}, SubmitReviewInput{ShopID: s.ID, Rating: 3, Content: "x"})
		assert.ErrorIs(t, err, ErrAuthRequired)
	})
}

func TestReviewSubmit_IdempotencyKey(t *testing.T) {
	ctx := context.Background()
	uc, reviews, shops := newReviewFixture(t)
	s := seedShop(t, shops, "たこ勝 本店")
	who := identity.Identity{UID: "u1"}

	in := SubmitReviewInput{ShopID: s.ID, Rating: 5, Content: "再送テスト", IdempotencyKey: "key-abc"}

	first, err := uc.Submit(ctx, who, in)
	require.NoError(t, err)

	// 同じ (user, key) の再送は同じレビューを返し、二重投稿にならない
	second, err := uc.Submit(ctx, who, in)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, reviews.byID, 1)

	// 別ユーザーの同じ key は独立
	other, err := uc.Submit(ctx, identity.Identity{UID: "u2"}, in)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestReviewSubmit_WithImage(t *testing.T) {
	ctx := context.Background()
	reviews := newFakeReviewRepo()
	shops := newFakeShopRepo()
	images := &fakeImageRepo{}
	uc := NewReviewUsecase(reviews, images, NewShopStatsUsecase(reviews, shops), nil)
	s := seedShop(t, shops, "たこ勝 本店")

	created, err := uc.Submit(ctx, identity.Identity{UID: "u1"}, SubmitReviewInput{
		ShopID:           s.ID,
		Rating:           4,
		Content:          "写真付き",
		Image:            []byte{0xff, 0xd8},
		ImageContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", images.lastUserID)
	assert.Equal(t, "image/jpeg", images.lastCT)
	assert.Contains(t, created.ImageURL, "https://storage.example.com/reviews/u1_")
}

func TestReviewSubmit_MissingShopDoesNotFailSubmit(t *testing.T) {
	ctx := context.Background()
	uc, reviews, shops := newReviewFixture(t)

	// 店舗ドキュメントが無い shopId への投稿。集計の書き戻しは飲み込まれ、
	// 投稿自体は成功する。
	created, err := uc.Submit(ctx, identity.Identity{UID: "u1"}, SubmitReviewInput{
		ShopID:  "ghost-shop",
		Rating:  5,
		Content: "幻の店",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, reviews.byID, 1)
	assert.Contains(t, shops.statsCalls, "ghost-shop")
}

func TestReviewDelete(t *testing.T) {
	ctx := context.Background()
	uc, reviews, shops := newReviewFixture(t)
	s := seedShop(t, shops, "たこ勝 本店")
	owner := identity.Identity{UID: "u1"}

	created, err := uc.Submit(ctx, owner, SubmitReviewInput{ShopID: s.ID, Rating: 4, Content: "うまい"})
	require.NoError(t, err)

	t.Run("non-owner is rejected", func(t *testing.T) {
		err := uc.Delete(ctx, identity.Identity{UID: "u2"}, created.ID)
		assert.ErrorIs(t, err, review.ErrNotOwner)
		assert.Len(t, reviews.byID, 1)
	})

	t.Run("owner delete recomputes stats to zero", func(t *testing.T) {
		require.NoError(t, uc.Delete(ctx, owner, created.ID))
		assert.Empty(t, reviews.byID)

		got, err := shops.GetByID(ctx, s.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.ReviewCount)
		assert.Zero(t, got.Rating)
	})

	t.Run("missing review is a no-op", func(t *testing.T) {
		assert.NoError(t, uc.Delete(ctx, owner, created.ID))
	})

	t.Run("no identity", func(t *testing.T) {
		assert.ErrorIs(t, uc.Delete(ctx, identity.Identity{}, created.ID), ErrAuthRequired)
	})
}

func TestReviewListMine_AttachesShopNames(t *testing.T) {
	ctx := context.Background()
	uc, _, shops := newReviewFixture(t)
	s := seedShop(t, shops, "たこ勝 本店")
	who := identity.Identity{UID: "u1"}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"1軒目", "2軒目"} {
		tick := base.Add(time.Duration(i) * time.Minute)
		uc.WithNow(func() time.Time { return tick })
		_, err := uc.Submit(ctx, who, SubmitReviewInput{ShopID: s.ID, Rating: 4, Content: content})
		require.NoError(t, err)
	}
	// 消えた店舗を指すレビューはプレースホルダ名になる
	uc.WithNow(func() time.Time { return base.Add(2 * time.Minute) })
	_, err := uc.Submit(ctx, who, SubmitReviewInput{ShopID: "gone", Rating: 3, Content: "3軒目"})
	require.NoError(t, err)

	items, err := uc.ListMine(ctx, who)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// 新しい順
	assert.Equal(t, "3軒目", items[0].Content)
	assert.Equal(t, resolver.UnknownShopName, items[0].ShopName)
	assert.Equal(t, "たこ勝 本店", items[1].ShopName)
	assert.Equal(t, "たこ勝 本店", items[2].ShopName)
}

func TestReviewSubmitThenListByShop_RoundTrip(t *testing.T) {
	ctx := context.Background()
	uc, _, shops := newReviewFixture(t)
	s := seedShop(t, shops, "たこ勝 本店")
	who := identity.Identity{UID: "u1", DisplayName: "Taro"}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	uc.WithNow(func() time.Time { return base })
	first, err := uc.Submit(ctx, who, SubmitReviewInput{ShopID: s.ID, Rating: 5, Content: "x"})
	require.NoError(t, err)

	uc.WithNow(func() time.Time { return base.Add(time.Minute) })
	second, err := uc.Submit(ctx, who, SubmitReviewInput{ShopID: s.ID, Rating: 3, Content: "y"})
	require.NoError(t, err)

	// 別店舗のレビューは混ざらない
	other := seedShop(t, shops, "たこ勝 梅田店")
	_, err = uc.Submit(ctx, who, SubmitReviewInput{ShopID: other.ID, Rating: 1, Content: "z"})
	require.NoError(t, err)

	items, err := uc.ListByShop(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// 新しい順で、投稿した内容がそのまま読み戻せる
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, 3, items[0].Rating)
	assert.Equal(t, "y", items[0].Content)

	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, 5, items[1].Rating)
	assert.Equal(t, "x", items[1].Content)
	assert.Equal(t, "Taro", items[1].UserName)
	assert.Equal(t, 0, items[1].Likes)
	assert.Empty(t, items[1].LikedBy)
}

func TestReviewListByShop_TransientErrorPropagates(t *testing.T) {
	ctx := context.Background()
	uc, reviews, _ := newReviewFixture(t)

	boom := errors.New("unavailable")
	reviews.failList = boom

	_, err := uc.ListByShop(ctx, "shop001")
	assert.ErrorIs(t, err, boom)
}
