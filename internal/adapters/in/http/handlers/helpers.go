// backend/internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	uc "takokatsu/internal/application/usecase"
	"takokatsu/internal/domain/common"
	favdom "takokatsu/internal/domain/favorite"
	revdom "takokatsu/internal/domain/review"
	shopdom "takokatsu/internal/domain/shop"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errBody struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// writeErr はドメインのエラー分類を HTTP ステータスに落とす。
//   - 認証なし            → 401
//   - 作者以外の削除       → 403
//   - 入力不正/壊れたカーソル → 400
//   - 見つからない         → 404
//   - ストアの一時障害      → 503 + retryable（冪等な操作のみ再試行してよい）
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, uc.ErrAuthRequired):
		writeJSON(w, http.StatusUnauthorized, errBody{Error: err.Error()})

	case errors.Is(err, revdom.ErrNotOwner):
		writeJSON(w, http.StatusForbidden, errBody{Error: err.Error()})

	case errors.Is(err, revdom.ErrNotFound),
		errors.Is(err, shopdom.ErrNotFound),
		errors.Is(err, favdom.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody{Error: err.Error()})

	case errors.Is(err, revdom.ErrInvalidID),
		errors.Is(err, revdom.ErrInvalidShopID),
		errors.Is(err, revdom.ErrInvalidUserID),
		errors.Is(err, revdom.ErrInvalidRating),
		errors.Is(err, revdom.ErrEmptyContent),
		errors.Is(err, revdom.ErrContentTooLong),
		errors.Is(err, revdom.ErrInvalidCursor),
		errors.Is(err, shopdom.ErrInvalidID),
		errors.Is(err, shopdom.ErrInvalidName),
		errors.Is(err, shopdom.ErrInvalidLimit),
		errors.Is(err, favdom.ErrInvalidUserID),
		errors.Is(err, favdom.ErrInvalidShopID):
		writeJSON(w, http.StatusBadRequest, errBody{Error: err.Error()})

	case common.IsTransient(err):
		writeJSON(w, http.StatusServiceUnavailable, errBody{Error: err.Error(), Retryable: true})

	default:
		writeJSON(w, http.StatusInternalServerError, errBody{Error: err.Error()})
	}
}
