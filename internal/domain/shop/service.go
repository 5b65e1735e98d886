// backend/internal/domain/shop/service.go
package shop

import (
	"math"
	"strings"
)

// Stats は店舗の派生統計。
type Stats struct {
	ReviewCount int
	Rating      float64
}

// ComputeStats はレビューの評価値から店舗統計を計算する。
// 平均は小数第1位で四捨五入。レビューが無ければ両方 0。
func ComputeStats(ratings []int) Stats {
	count := len(ratings)
	if count == 0 {
		return Stats{ReviewCount: 0, Rating: 0}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(count)

	return Stats{
		ReviewCount: count,
		Rating:      math.Round(avg*10) / 10,
	}
}

// FormatBusinessHours は営業時間の入力枠を "12:00~18:00, 19:00~22:00" 形式に変換する。
// start / end どちらかが空の枠は捨てる。
func FormatBusinessHours(slots []HoursSlot) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		start := strings.TrimSpace(s.Start)
		end := strings.TrimSpace(s.End)
		if start == "" || end == "" {
			continue
		}
		parts = append(parts, start+"~"+end)
	}
	return strings.Join(parts, ", ")
}

// BuildArea は都道府県＋市区町村からエリア表記を作る。
func BuildArea(prefecture, city string) string {
	return strings.TrimSpace(prefecture) + strings.TrimSpace(city)
}
