// backend/internal/domain/identity/identity.go
package identity

import (
	"context"
	"strings"
)

// デフォルト値。フロントの表示仕様に合わせる。
const (
	DefaultDisplayName = "ユーザー"
	DefaultAvatarURL   = "/default-user-icon.png"
)

// Identity は認証済み呼び出し元のクレーム（Firebase ID トークン由来）。
// 読み取り系のAPIでは不要。書き込み系のAPIでは必須。
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// IsZero は未認証（identity 無し）かどうかを返す。
func (id Identity) IsZero() bool {
	return strings.TrimSpace(id.UID) == ""
}

// Normalize は空の表示名/アイコンURLをデフォルト値で埋めた Identity を返す。
func (id Identity) Normalize() Identity {
	out := Identity{
		UID:         strings.TrimSpace(id.UID),
		DisplayName: strings.TrimSpace(id.DisplayName),
		AvatarURL:   strings.TrimSpace(id.AvatarURL),
	}
	if out.DisplayName == "" {
		out.DisplayName = DefaultDisplayName
	}
	if out.AvatarURL == "" {
		out.AvatarURL = DefaultAvatarURL
	}
	return out
}

// context key は string を使わず、衝突回避のため独自型を使用（SA1029 対策）
type ctxKey struct{ name string }

var ctxKeyIdentity = ctxKey{name: "identity"}

// WithContext は Identity を context に格納する。
func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// FromContext は context から Identity を取り出す。未認証なら ok=false。
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	if !ok || id.IsZero() {
		return Identity{}, false
	}
	return id, true
}
