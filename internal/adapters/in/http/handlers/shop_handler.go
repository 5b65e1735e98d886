// backend/internal/adapters/in/http/handlers/shop_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	uc "takokatsu/internal/application/usecase"
	iddom "takokatsu/internal/domain/identity"
)

// ShopHandler は /shops 関連のエンドポイントを担当します。
type ShopHandler struct {
	shopUC   *uc.ShopUsecase
	reviewUC *uc.ReviewUsecase
}

func NewShopHandler(shopUC *uc.ShopUsecase, reviewUC *uc.ReviewUsecase) http.Handler {
	return &ShopHandler{shopUC: shopUC, reviewUC: reviewUC}
}

// ServeHTTP はHTTPルーティングの入口です。
//
//	GET  /shops                店舗一覧（?recommended=1&limit= で新着おすすめ）
//	POST /shops                店舗登録
//	GET  /shops/{id}           店舗詳細
//	GET  /shops/{id}/reviews   店舗のレビュー一覧（新しい順）
func (h *ShopHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/shops")
	path = strings.Trim(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "":
		h.list(w, r)

	case r.Method == http.MethodPost && path == "":
		h.register(w, r)

	case r.Method == http.MethodGet && strings.HasSuffix(path, "/reviews"):
		id := strings.Trim(strings.TrimSuffix(path, "/reviews"), "/")
		h.listReviews(w, r, id)

	case r.Method == http.MethodGet && path != "":
		h.get(w, r, path)

	default:
		writeJSON(w, http.StatusNotFound, errBody{Error: "not_found"})
	}
}

func (h *ShopHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	recommended := strings.EqualFold(q.Get("recommended"), "1") || strings.EqualFold(q.Get("recommended"), "true")
	if recommended {
		limit := 0
		if v := strings.TrimSpace(q.Get("limit")); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}
		shops, err := h.shopUC.ListRecommended(r.Context(), limit)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, shops)
		return
	}

	shops, err := h.shopUC.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shops)
}

func (h *ShopHandler) register(w http.ResponseWriter, r *http.Request) {
	who, _ := iddom.FromContext(r.Context())

	var in uc.RegisterShopInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: err.Error()})
		return
	}

	created, err := h.shopUC.Register(r.Context(), who, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ShopHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	s, err := h.shopUC.GetByID(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *ShopHandler) listReviews(w http.ResponseWriter, r *http.Request, id string) {
	items, err := h.reviewUC.ListByShop(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
