// backend/internal/domain/shop/entity.go
package shop

import (
	"errors"
	"strings"
	"time"
)

// Shop mirrors web-app の shops コレクション。
// Rating / ReviewCount は派生値で、集計再計算（shopstats）だけが書き込む。
// 古いドキュメントにはこの2フィールドが無いことがあるため、読み手は常に
// ゼロ値を「レビュー無し」として扱う（エラーにしない）。
type Shop struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Prefecture    string     `json:"prefecture"`
	City          string     `json:"city"`
	Address       string     `json:"address"`
	Area          string     `json:"area"` // 都道府県＋市区町村
	BusinessHours string     `json:"businessHours"`
	Menus         []MenuItem `json:"menus,omitempty"`

	Rating      float64 `json:"rating"`      // 派生: 平均評価（小数第1位）
	ReviewCount int     `json:"reviewCount"` // 派生: レビュー数
	Likes       int     `json:"likes"`       // 表示用: お気に入り数（一覧取得時に解決）

	CreatedAt time.Time `json:"createdAt"`
}

// MenuItem は店舗の代表メニュー。
type MenuItem struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// HoursSlot は営業時間の入力1枠（"12:00" 〜 "18:00" など）。
type HoursSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Errors (single source)
var (
	ErrNotFound     = errors.New("shop: not found")
	ErrInvalidID    = errors.New("shop: invalid id")
	ErrInvalidName  = errors.New("shop: invalid name")
	ErrInvalidLimit = errors.New("shop: list limit invalid")
)

// Validate は登録時の入力検証。
func (s Shop) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrInvalidName
	}
	return nil
}
