// backend/internal/adapters/in/http/handlers/me_handler.go
package handlers

import (
	"net/http"
	"strings"

	uc "takokatsu/internal/application/usecase"
	iddom "takokatsu/internal/domain/identity"
)

// MeHandler はマイページ向け（自分の投稿/いいね一覧）を担当します。
type MeHandler struct {
	reviewUC *uc.ReviewUsecase
}

func NewMeHandler(reviewUC *uc.ReviewUsecase) http.Handler {
	return &MeHandler{reviewUC: reviewUC}
}

// ServeHTTP はHTTPルーティングの入口です。
//
//	GET /me/reviews  自分が投稿したレビュー（店舗名付き、新しい順）
//	GET /me/likes    自分がいいねしたレビュー（店舗名付き、新しい順）
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errBody{Error: "method not allowed"})
		return
	}

	who, _ := iddom.FromContext(r.Context())
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/me"), "/")

	switch path {
	case "reviews":
		items, err := h.reviewUC.ListMine(r.Context(), who)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)

	case "likes":
		items, err := h.reviewUC.ListLikedByMe(r.Context(), who)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, items)

	default:
		writeJSON(w, http.StatusNotFound, errBody{Error: "not_found"})
	}
}
