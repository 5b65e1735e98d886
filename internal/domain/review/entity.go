// backend/internal/domain/review/entity.go
package review

import (
	"errors"
	"strings"
	"time"
)

// Review mirrors web-app の reviews コレクション。
// 1ユーザーが1レビューに付けられる「いいね」は最大1回（likedBy で判定）。
// 不変条件: Likes == len(LikedBy)。更新はトランザクション内で両方同時に書く。
type Review struct {
	ID            string    `json:"id"`
	ShopID        string    `json:"shopId"`
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName"`
	UserAvatarURL string    `json:"userAvatarUrl"`
	Rating        int       `json:"rating"` // 1〜5
	Content       string    `json:"content"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	Likes         int       `json:"likes"`
	LikedBy       []string  `json:"likedBy"`

	// ShopName は一覧表示用に読み取り時に解決される派生フィールド。
	// ストアには保存しない。解決できなかった場合はプレースホルダが入る。
	ShopName string `json:"shopName,omitempty"`
}

// Errors (single source)
var (
	ErrNotFound       = errors.New("review: not found")
	ErrInvalidID      = errors.New("review: invalid id")
	ErrInvalidShopID  = errors.New("review: invalid shopId")
	ErrInvalidUserID  = errors.New("review: invalid userId")
	ErrInvalidRating  = errors.New("review: rating must be between 1 and 5")
	ErrEmptyContent   = errors.New("review: content is empty")
	ErrContentTooLong = errors.New("review: content too long")
	ErrNotOwner       = errors.New("review: not the author")
	ErrInvalidCursor  = errors.New("review: invalid cursor")
)

// Policy
var (
	MinRating        = 1
	MaxRating        = 5
	MaxContentLength = 2000
)

// Validate は投稿時の入力検証。
func (r Review) Validate() error {
	if strings.TrimSpace(r.ShopID) == "" {
		return ErrInvalidShopID
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrInvalidUserID
	}
	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidRating
	}
	content := strings.TrimSpace(r.Content)
	if content == "" {
		return ErrEmptyContent
	}
	if len([]rune(content)) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

// HasLiked は userID が既にいいね済みかどうかを返す。
func (r Review) HasLiked(userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return false
	}
	for _, id := range r.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// LikeSet は likedBy を set として返す（要素数分の O(1) 判定用）。
func (r Review) LikeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.LikedBy))
	for _, id := range r.LikedBy {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}
