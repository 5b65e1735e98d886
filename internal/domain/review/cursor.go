// backend/internal/domain/review/cursor.go
package review

import (
	"encoding/base64"
	"strings"
	"time"
)

// フィードのカーソルは「最後に返した item のソート位置」を表す不透明トークン。
// 中身は createdAt(RFC3339Nano) と docID を "|" で繋いで base64 にしただけ。
// クライアントはデコードせず、そのまま次ページ要求に渡す。

// EncodeCursor はソート位置 (createdAt, id) をカーソル文字列にする。
func EncodeCursor(createdAt time.Time, id string) string {
	raw := createdAt.UTC().Format(time.RFC3339Nano) + "|" + strings.TrimSpace(id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor はカーソル文字列をソート位置に戻す。
// 壊れたトークンは ErrInvalidCursor。
func DecodeCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(cursor))
	if err != nil {
		return time.Time{}, "", ErrInvalidCursor
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", ErrInvalidCursor
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", ErrInvalidCursor
	}
	id := strings.TrimSpace(parts[1])
	if id == "" {
		return time.Time{}, "", ErrInvalidCursor
	}
	return createdAt.UTC(), id, nil
}
