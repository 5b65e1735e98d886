package common

import (
	"errors"
	"fmt"
)

// TransientError はストア/ネットワーク起因の一時障害を表す。
// 冪等な操作（読み取り、いいね/お気に入りのトグル）に限りリトライ安全。
// コア側で勝手にリトライはしない（レイテンシ予測性と二重書き込み防止のため）。
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: transient store error: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// Transient は err を TransientError でラップする。
func Transient(op string, err error) error {
	return &TransientError{Op: op, Err: err}
}

// IsTransient は err が一時障害（リトライ推奨）かどうかを返す。
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
