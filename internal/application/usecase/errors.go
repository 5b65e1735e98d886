// backend/internal/application/usecase/errors.go
package usecase

import "errors"

var (
	// ErrAuthRequired は identity なしで書き込み系操作を呼んだ場合のエラー。
	ErrAuthRequired = errors.New("auth: login required")

	ErrReviewRepoNotConfigured   = errors.New("review: repo not configured")
	ErrShopRepoNotConfigured     = errors.New("shop: repo not configured")
	ErrFavoriteRepoNotConfigured = errors.New("favorite: repo not configured")
)
