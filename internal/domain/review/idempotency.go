// backend/internal/domain/review/idempotency.go
package review

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// DocIDForIdempotencyKey はクライアント指定の冪等キーから決定的なドキュメントIDを作る。
// 同じ (userId, key) の再送は同じ ID になるため、タイムアウト後のリトライで
// レビューが二重に作られない（ストア側は「存在しなければ作成」）。
func DocIDForIdempotencyKey(userID, key string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(userID) + ":" + strings.TrimSpace(key)))
	return "idem" + hex.EncodeToString(sum[:])[:28]
}
