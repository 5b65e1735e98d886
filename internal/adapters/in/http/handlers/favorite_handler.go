// backend/internal/adapters/in/http/handlers/favorite_handler.go
package handlers

import (
	"net/http"
	"strings"

	uc "takokatsu/internal/application/usecase"
	iddom "takokatsu/internal/domain/identity"
)

// FavoriteHandler は /favorites 関連のエンドポイントを担当します。
// Registry の追加/削除はどちらも冪等で、リトライ安全。
type FavoriteHandler struct {
	uc *uc.FavoriteUsecase
}

func NewFavoriteHandler(favoriteUC *uc.FavoriteUsecase) http.Handler {
	return &FavoriteHandler{uc: favoriteUC}
}

// ServeHTTP はHTTPルーティングの入口です。
//
//	GET    /favorites           自分のお気に入り店舗一覧
//	GET    /favorites/{shopId}  お気に入り済みか確認
//	PUT    /favorites/{shopId}  お気に入り登録（冪等）
//	DELETE /favorites/{shopId}  お気に入り解除（冪等）
func (h *FavoriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	who, _ := iddom.FromContext(r.Context())

	path := strings.TrimPrefix(r.URL.Path, "/favorites")
	shopID := strings.Trim(path, "/")

	switch {
	case r.Method == http.MethodGet && shopID == "":
		shops, err := h.uc.ListShops(r.Context(), who)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, shops)

	case r.Method == http.MethodGet:
		ok, err := h.uc.IsFavorite(r.Context(), who.UID, shopID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"favorite": ok})

	case r.Method == http.MethodPut:
		f, err := h.uc.Add(r.Context(), who, shopID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, f)

	case r.Method == http.MethodDelete:
		if err := h.uc.Remove(r.Context(), who, shopID); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})

	default:
		writeJSON(w, http.StatusMethodNotAllowed, errBody{Error: "method not allowed"})
	}
}
