// backend/internal/adapters/in/http/router.go
package http

import (
	"net/http"

	"takokatsu/internal/adapters/in/http/handlers"
	"takokatsu/internal/adapters/in/http/middleware"
	uc "takokatsu/internal/application/usecase"
)

// RouterDeps はルータ構築に必要な依存の束。
// nil の usecase は該当ルートが 503 で応答する（起動は止めない）。
type RouterDeps struct {
	FirebaseAuth *middleware.FirebaseAuthClient

	ReviewUC   *uc.ReviewUsecase
	LikeUC     *uc.LikeUsecase
	FeedUC     *uc.FeedUsecase
	ShopUC     *uc.ShopUsecase
	FavoriteUC *uc.FavoriteUsecase
}

// NewRouter は API のルーティングを組み立てます。
//
// 認証ポリシー:
//   - /feed, /healthz          … 公開（トークン不要）
//   - /shops, /reviews         … Optional（読み取りは匿名可、書き込みは usecase が弾く）
//   - /favorites, /me          … Required（identity が無ければ成立しない操作のみ）
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	auth := &middleware.AuthMiddleware{FirebaseAuth: deps.FirebaseAuth}

	// ヘルスチェック（Cloud Run 向け。依存の初期化有無に関わらず応答する）
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if deps.FeedUC != nil {
		feed := handlers.NewFeedHandler(deps.FeedUC)
		mux.Handle("/feed", feed)
	} else {
		mux.Handle("/feed", unavailable("feed"))
	}

	if deps.ReviewUC != nil && deps.LikeUC != nil {
		review := auth.Optional(handlers.NewReviewHandler(deps.ReviewUC, deps.LikeUC))
		mux.Handle("/reviews", review)
		mux.Handle("/reviews/", review)
	} else {
		mux.Handle("/reviews", unavailable("reviews"))
		mux.Handle("/reviews/", unavailable("reviews"))
	}

	if deps.ShopUC != nil && deps.ReviewUC != nil {
		shop := auth.Optional(handlers.NewShopHandler(deps.ShopUC, deps.ReviewUC))
		mux.Handle("/shops", shop)
		mux.Handle("/shops/", shop)
	} else {
		mux.Handle("/shops", unavailable("shops"))
		mux.Handle("/shops/", unavailable("shops"))
	}

	if deps.FavoriteUC != nil {
		favorite := auth.Required(handlers.NewFavoriteHandler(deps.FavoriteUC))
		mux.Handle("/favorites", favorite)
		mux.Handle("/favorites/", favorite)
	} else {
		mux.Handle("/favorites", unavailable("favorites"))
		mux.Handle("/favorites/", unavailable("favorites"))
	}

	if deps.ReviewUC != nil {
		me := auth.Required(handlers.NewMeHandler(deps.ReviewUC))
		mux.Handle("/me/", me)
	} else {
		mux.Handle("/me/", unavailable("me"))
	}

	return middleware.Recover(mux)
}

func unavailable(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, name+" service unavailable", http.StatusServiceUnavailable)
	})
}
