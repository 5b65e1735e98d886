// backend/internal/adapters/out/firestore/common_fs.go
package firestore

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"takokatsu/internal/domain/common"
)

// classify は Firestore のエラーをドメインの分類へ落とす。
//   - NotFound          → 各ドメインの notFound センチネル
//   - 一時障害系のコード → common.TransientError（リトライ推奨。冪等な操作に限る）
//   - それ以外          → そのまま返す
func classify(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return notFound
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
		return common.Transient(op, err)
	default:
		return err
	}
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}
