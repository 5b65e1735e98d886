// backend/internal/adapters/in/http/handlers/review_handler.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	uc "takokatsu/internal/application/usecase"
	iddom "takokatsu/internal/domain/identity"
)

// multipart の画像は 10MB まで受ける
const maxReviewImageBytes = 10 << 20

// ReviewHandler は /reviews 関連のエンドポイントを担当します。
type ReviewHandler struct {
	reviewUC *uc.ReviewUsecase
	likeUC   *uc.LikeUsecase
}

func NewReviewHandler(reviewUC *uc.ReviewUsecase, likeUC *uc.LikeUsecase) http.Handler {
	return &ReviewHandler{reviewUC: reviewUC, likeUC: likeUC}
}

// ServeHTTP はHTTPルーティングの入口です。
//
//	POST   /reviews             レビュー投稿（multipart または JSON）
//	DELETE /reviews/{id}        レビュー削除（作者のみ）
//	PUT    /reviews/{id}/like   いいね追加（冪等）
//	DELETE /reviews/{id}/like   いいね取消（冪等）
func (h *ReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/reviews")
	path = strings.Trim(path, "/")

	switch {
	case r.Method == http.MethodPost && path == "":
		h.submit(w, r)

	case path != "" && strings.HasSuffix(path, "/like"):
		id := strings.TrimSuffix(path, "/like")
		id = strings.Trim(id, "/")
		switch r.Method {
		case http.MethodPut:
			h.like(w, r, id, true)
		case http.MethodDelete:
			h.like(w, r, id, false)
		default:
			writeJSON(w, http.StatusMethodNotAllowed, errBody{Error: "method not allowed"})
		}

	case r.Method == http.MethodDelete && path != "":
		h.delete(w, r, path)

	default:
		writeJSON(w, http.StatusNotFound, errBody{Error: "not_found"})
	}
}

func (h *ReviewHandler) submit(w http.ResponseWriter, r *http.Request) {
	who, _ := iddom.FromContext(r.Context())

	in, err := decodeSubmitInput(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errBody{Error: err.Error()})
		return
	}

	created, err := h.reviewUC.Submit(r.Context(), who, in)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// decodeSubmitInput は multipart/form-data と JSON の両方を受ける。
// 画像は multipart のみ（JSON では URL 化した画像を持ち込む手段は無い）。
func decodeSubmitInput(r *http.Request) (uc.SubmitReviewInput, error) {
	ct := r.Header.Get("Content-Type")

	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxReviewImageBytes); err != nil {
			return uc.SubmitReviewInput{}, err
		}

		rating, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("rating")))
		in := uc.SubmitReviewInput{
			ShopID:         strings.TrimSpace(r.FormValue("shopId")),
			Rating:         rating,
			Content:        r.FormValue("content"),
			IdempotencyKey: strings.TrimSpace(r.FormValue("idempotencyKey")),
		}

		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, maxReviewImageBytes))
			if err != nil {
				return uc.SubmitReviewInput{}, err
			}
			in.Image = data
			in.ImageContentType = header.Header.Get("Content-Type")
		}
		return in, nil
	}

	var in uc.SubmitReviewInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return uc.SubmitReviewInput{}, err
	}
	return in, nil
}

func (h *ReviewHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	who, _ := iddom.FromContext(r.Context())

	if err := h.reviewUC.Delete(r.Context(), who, id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ReviewHandler) like(w http.ResponseWriter, r *http.Request, id string, add bool) {
	who, _ := iddom.FromContext(r.Context())

	var (
		rv  any
		err error
	)
	if add {
		rv, err = h.likeUC.Add(r.Context(), who, id)
	} else {
		rv, err = h.likeUC.Remove(r.Context(), who, id)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}
