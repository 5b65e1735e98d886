// backend/internal/domain/favorite/entity.go
package favorite

import (
	"errors"
	"time"
)

// Favorite はユーザー↔店舗のお気に入り関係。
// (userId, shopId) の組で一意。ストア側の一意制約は無いため、
// Registry 側の「検索してから挿入」で担保する。
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ShopID    string    `json:"shopId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Errors (single source)
var (
	ErrNotFound      = errors.New("favorite: not found")
	ErrInvalidUserID = errors.New("favorite: invalid userId")
	ErrInvalidShopID = errors.New("favorite: invalid shopId")
)
