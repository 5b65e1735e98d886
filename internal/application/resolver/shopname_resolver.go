// backend/internal/application/resolver/shopname_resolver.go
package resolver

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// UnknownShopName は店舗情報を解決できなかったときのプレースホルダ。
// 1件の解決失敗で一覧全体を落とさないための表示用デフォルト。
const UnknownShopName = "不明な店舗"

// ------------------------------------------------------------
// Repository interface (最小限の読み取り専用ポート)
// ------------------------------------------------------------

// ShopNameRepository は店舗名の取得に必要な最小限のインターフェース。
type ShopNameRepository interface {
	GetName(ctx context.Context, id string) (string, error)
}

// ------------------------------------------------------------
// ShopNameResolver 本体
// ------------------------------------------------------------

// ShopNameResolver はレビュー一覧/フィード向けの「店舗名解決ヘルパ」。
// 取得失敗は UnknownShopName に落とし、エラーは返さない。
type ShopNameResolver struct {
	repo ShopNameRepository
}

func NewShopNameResolver(repo ShopNameRepository) *ShopNameResolver {
	return &ShopNameResolver{repo: repo}
}

// Resolve は shopId から店舗名を解決する。
// 取得できなかった場合はプレースホルダを返す。
func (r *ShopNameResolver) Resolve(ctx context.Context, shopID string) string {
	if r == nil || r.repo == nil {
		return UnknownShopName
	}
	id := strings.TrimSpace(shopID)
	if id == "" {
		return UnknownShopName
	}

	name, err := r.repo.GetName(ctx, id)
	if err != nil || strings.TrimSpace(name) == "" {
		return UnknownShopName
	}
	return strings.TrimSpace(name)
}

// ResolveMany は複数 shopId の店舗名を並行に解決して map で返す。
// 1ページ分の点読み取りを直列で回すとページサイズに比例して往復が増えるため、
// ここで一度にファンアウトして合流する。個々の失敗はプレースホルダに落ちる。
func (r *ShopNameResolver) ResolveMany(ctx context.Context, shopIDs []string) map[string]string {
	out := make(map[string]string, len(shopIDs))

	// 重複を除いたうえで並行取得
	seen := make(map[string]struct{}, len(shopIDs))
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, raw := range shopIDs {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		g.Go(func() error {
			name := r.Resolve(ctx, id)
			mu.Lock()
			out[id] = name
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return out
}
