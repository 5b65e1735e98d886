// internal/platform/di/container.go
package di

import (
	"context"
	"log"

	fsrepo "takokatsu/internal/adapters/out/firestore"
	gcsrepo "takokatsu/internal/adapters/out/gcs"

	httpadapter "takokatsu/internal/adapters/in/http"
	"takokatsu/internal/adapters/in/http/middleware"

	"takokatsu/internal/application/resolver"
	uc "takokatsu/internal/application/usecase"

	"takokatsu/internal/infra/config"
	firebaseinfra "takokatsu/internal/infra/firebase"
	firestoreinfra "takokatsu/internal/infra/firestore"
	gcsinfra "takokatsu/internal/infra/gcs"
)

// Container は main.go から使う依存オブジェクトの束。
// 目的は main.go を極限まで薄くすること。
//
// 外部クライアントの初期化に失敗しても panic せず、その機能だけ
// 縮退させて起動は続行する（Cloud Run ではまずヘルスチェックに
// 応答できることが大事）。
type Container struct {
	Config *config.Config

	Firestore    *firestoreinfra.ClientWrapper
	FirebaseAuth *middleware.FirebaseAuthClient

	ReviewUC   *uc.ReviewUsecase
	LikeUC     *uc.LikeUsecase
	FeedUC     *uc.FeedUsecase
	ShopUC     *uc.ShopUsecase
	FavoriteUC *uc.FavoriteUsecase

	cleanupFn []func()
}

// NewContainer は設定を読み、外部クライアント → Repository → Usecase の順に
// 依存を組み立てて返す。
func NewContainer(ctx context.Context) *Container {
	cfg := config.Load()
	c := &Container{Config: cfg}

	// ------------------------------------------------------------
	// 1. 外部リソース初期化 (Firestore / Firebase Auth / GCS)
	// ------------------------------------------------------------

	fsClient, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		log.Printf("[di] WARN: firestore init failed, review/shop/favorite routes degraded: %v", err)
	} else {
		// 疎通チェック。失敗しても起動は続行する（リクエスト時に再試行される）。
		if pingErr := fsClient.Ping(ctx); pingErr != nil {
			log.Printf("[di] WARN: firestore ping failed: %v", pingErr)
		}
		c.Firestore = fsClient
		c.cleanupFn = append(c.cleanupFn, func() { _ = fsClient.Close() })
	}

	authClient, err := firebaseinfra.NewAuthClient(ctx, cfg.FirebaseProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		// 認証なしでも読み取り系は動かせる。書き込みは usecase が弾く。
		log.Printf("[di] WARN: firebase auth init failed, token verification disabled: %v", err)
	} else {
		c.FirebaseAuth = authClient
	}

	var imageRepo uc.ReviewImageRepo
	gcsClient, err := gcsinfra.NewClient(ctx, cfg.GCPCreds)
	if err != nil {
		log.Printf("[di] WARN: gcs init failed, image-less reviews only: %v", err)
	} else {
		imageRepo = gcsrepo.NewReviewImageRepositoryGCS(gcsClient, cfg.GCSBucket)
		c.cleanupFn = append(c.cleanupFn, func() { _ = gcsClient.Close() })
	}

	// ------------------------------------------------------------
	// 2. Repository (outbound adapter) → Usecase
	// ------------------------------------------------------------

	if c.Firestore != nil {
		reviewRepo := fsrepo.NewReviewRepositoryFS(c.Firestore.Client)
		shopRepo := fsrepo.NewShopRepositoryFS(c.Firestore.Client)
		favoriteRepo := fsrepo.NewFavoriteRepositoryFS(c.Firestore.Client)

		names := resolver.NewShopNameResolver(shopRepo)
		stats := uc.NewShopStatsUsecase(reviewRepo, shopRepo)

		c.ReviewUC = uc.NewReviewUsecase(reviewRepo, imageRepo, stats, names)
		c.LikeUC = uc.NewLikeUsecase(reviewRepo)
		c.FeedUC = uc.NewFeedUsecase(reviewRepo, names)
		c.ShopUC = uc.NewShopUsecase(shopRepo, favoriteRepo)
		c.FavoriteUC = uc.NewFavoriteUsecase(favoriteRepo, shopRepo)
	}

	return c
}

// RouterDeps はルータ構築用の束に詰め替える。
func (c *Container) RouterDeps() httpadapter.RouterDeps {
	return httpadapter.RouterDeps{
		FirebaseAuth: c.FirebaseAuth,
		ReviewUC:     c.ReviewUC,
		LikeUC:       c.LikeUC,
		FeedUC:       c.FeedUC,
		ShopUC:       c.ShopUC,
		FavoriteUC:   c.FavoriteUC,
	}
}

// Close は Cloud Run 終了時などに呼んで安全にリソースを閉じる。
func (c *Container) Close() {
	for _, fn := range c.cleanupFn {
		fn()
	}
}
