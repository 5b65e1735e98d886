// backend/internal/adapters/in/http/handlers/feed_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	uc "takokatsu/internal/application/usecase"
)

// FeedHandler は /feed（新着たこ活フィード）を担当します。
type FeedHandler struct {
	uc *uc.FeedUsecase
}

func NewFeedHandler(feedUC *uc.FeedUsecase) http.Handler {
	return &FeedHandler{uc: feedUC}
}

// GET /feed?limit=&cursor=
// cursor 無しは先頭ページ。exhausted=true が返ったらそれ以上要求しないこと。
func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errBody{Error: "method not allowed"})
		return
	}

	q := r.URL.Query()
	limit := 0
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	cursor := strings.TrimSpace(q.Get("cursor"))

	var (
		page uc.FeedPage
		err  error
	)
	if cursor == "" {
		page, err = h.uc.FirstPage(r.Context(), limit)
	} else {
		page, err = h.uc.NextPage(r.Context(), cursor, limit)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
