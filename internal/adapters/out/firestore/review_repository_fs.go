// backend/internal/adapters/out/firestore/review_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"takokatsu/internal/domain/common"
	revdom "takokatsu/internal/domain/review"
)

var ErrReviewRepoFSInvalid = errors.New("firestore: review repository invalid")

// ReviewRepositoryFS implements review.Repository using Firestore.
type ReviewRepositoryFS struct {
	Client *firestore.Client
}

func NewReviewRepositoryFS(client *firestore.Client) *ReviewRepositoryFS {
	return &ReviewRepositoryFS{Client: client}
}

func (r *ReviewRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("reviews")
}

// ----------
// Firestore DTOs
// ----------

type reviewDoc struct {
	ShopID        string    `firestore:"shopId"`
	UserID        string    `firestore:"userId"`
	UserName      string    `firestore:"userName"`
	UserAvatarURL string    `firestore:"userAvatarUrl,omitempty"`
	Rating        int       `firestore:"rating"`
	Content       string    `firestore:"content"`
	ImageURL      string    `firestore:"imageUrl,omitempty"`
	CreatedAt     time.Time `firestore:"createdAt"`
	Likes         int       `firestore:"likes"`
	LikedBy       []string  `firestore:"likedBy"`
}

func toReviewDoc(rv revdom.Review) reviewDoc {
	return reviewDoc{
		ShopID:        strings.TrimSpace(rv.ShopID),
		UserID:        strings.TrimSpace(rv.UserID),
		UserName:      strings.TrimSpace(rv.UserName),
		UserAvatarURL: strings.TrimSpace(rv.UserAvatarURL),
		Rating:        rv.Rating,
		Content:       strings.TrimSpace(rv.Content),
		ImageURL:      strings.TrimSpace(rv.ImageURL),
		CreatedAt:     rv.CreatedAt.UTC(),
		Likes:         rv.Likes,
		LikedBy:       rv.LikedBy,
	}
}

func toDomainReview(id string, d reviewDoc) revdom.Review {
	return revdom.Review{
		ID:            strings.TrimSpace(id),
		ShopID:        d.ShopID,
		UserID:        d.UserID,
		UserName:      d.UserName,
		UserAvatarURL: d.UserAvatarURL,
		Rating:        d.Rating,
		Content:       d.Content,
		ImageURL:      d.ImageURL,
		CreatedAt:     d.CreatedAt.UTC(),
		Likes:         d.Likes,
		LikedBy:       d.LikedBy,
	}
}

func docToReview(snap *firestore.DocumentSnapshot) (revdom.Review, error) {
	var d reviewDoc
	if err := snap.DataTo(&d); err != nil {
		return revdom.Review{}, err
	}
	return toDomainReview(snap.Ref.ID, d), nil
}

// ----------
// review.Repository
// ----------

func (r *ReviewRepositoryFS) GetByID(ctx context.Context, id string) (revdom.Review, error) {
	if r == nil || r.Client == nil {
		return revdom.Review{}, ErrReviewRepoFSInvalid
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return revdom.Review{}, revdom.ErrInvalidID
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return revdom.Review{}, classify("review.get", err, revdom.ErrNotFound)
	}
	return docToReview(snap)
}

// Create は ID が空ならストア側で採番して保存する。
// ID 指定あり（冪等キー由来）の場合は Create 条件付き書き込みを使い、
// 既に存在しているなら既存ドキュメントを返す（再送を重複させない）。
func (r *ReviewRepositoryFS) Create(ctx context.Context, rv revdom.Review) (revdom.Review, error) {
	if r == nil || r.Client == nil {
		return revdom.Review{}, ErrReviewRepoFSInvalid
	}

	doc := toReviewDoc(rv)

	if strings.TrimSpace(rv.ID) == "" {
		docRef := r.col().NewDoc()
		if _, err := docRef.Set(ctx, doc); err != nil {
			return revdom.Review{}, classify("review.create", err, revdom.ErrNotFound)
		}
		return toDomainReview(docRef.ID, doc), nil
	}

	docRef := r.col().Doc(strings.TrimSpace(rv.ID))
	if _, err := docRef.Create(ctx, doc); err != nil {
		if isAlreadyExists(err) {
			return r.GetByID(ctx, docRef.ID)
		}
		return revdom.Review{}, classify("review.create", err, revdom.ErrNotFound)
	}
	return toDomainReview(docRef.ID, doc), nil
}

// Delete は存在しないドキュメントに対しても成功する（no-op）。
func (r *ReviewRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return ErrReviewRepoFSInvalid
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return revdom.ErrInvalidID
	}
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return classify("review.delete", err, nil)
	}
	return nil
}

func (r *ReviewRepositoryFS) ListByShop(ctx context.Context, shopID string) ([]revdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, ErrReviewRepoFSInvalid
	}
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return nil, revdom.ErrInvalidShopID
	}

	// shopId + createdAt の複合インデックスを前提にする
	it := r.col().
		Where("shopId", "==", shopID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	return collectReviews(it)
}

func (r *ReviewRepositoryFS) ListByUser(ctx context.Context, userID string) ([]revdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, ErrReviewRepoFSInvalid
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, revdom.ErrInvalidUserID
	}

	// userId の等価フィルタのみ（複合インデックス不要）。並びはクライアント側で整える。
	it := r.col().Where("userId", "==", userID).Documents(ctx)
	defer it.Stop()

	items, err := collectReviews(it)
	if err != nil {
		return nil, err
	}
	sortReviewsDesc(items)
	return items, nil
}

func (r *ReviewRepositoryFS) ListLikedBy(ctx context.Context, userID string) ([]revdom.Review, error) {
	if r == nil || r.Client == nil {
		return nil, ErrReviewRepoFSInvalid
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, revdom.ErrInvalidUserID
	}

	it := r.col().Where("likedBy", "array-contains", userID).Documents(ctx)
	defer it.Stop()

	items, err := collectReviews(it)
	if err != nil {
		return nil, err
	}
	sortReviewsDesc(items)
	return items, nil
}

// ListRatingsByShop は集計用に rating フィールドだけを読む。
func (r *ReviewRepositoryFS) ListRatingsByShop(ctx context.Context, shopID string) ([]int, error) {
	if r == nil || r.Client == nil {
		return nil, ErrReviewRepoFSInvalid
	}
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return nil, revdom.ErrInvalidShopID
	}

	it := r.col().
		Where("shopId", "==", shopID).
		Select("rating").
		Documents(ctx)
	defer it.Stop()

	var ratings []int
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("review.listRatings", err, revdom.ErrNotFound)
		}
		var d struct {
			Rating int `firestore:"rating"`
		}
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		ratings = append(ratings, d.Rating)
	}
	return ratings, nil
}

// ListPage は全レビューを (createdAt desc, id asc) でカーソルページングする。
// カーソルは直前ページ最終 item の (createdAt, id) を符号化したもの。
func (r *ReviewRepositoryFS) ListPage(ctx context.Context, page common.CursorPage) (common.CursorPageResult[revdom.Review], error) {
	if r == nil || r.Client == nil {
		return common.CursorPageResult[revdom.Review]{}, ErrReviewRepoFSInvalid
	}

	limit := page.Limit
	if limit <= 0 {
		limit = 5
	}

	q := r.col().Query.
		OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc)

	if after := strings.TrimSpace(page.After); after != "" {
		createdAt, id, err := revdom.DecodeCursor(after)
		if err != nil {
			return common.CursorPageResult[revdom.Review]{}, err
		}
		q = q.StartAfter(createdAt, id)
	}

	it := q.Limit(limit).Documents(ctx)
	defer it.Stop()

	items, err := collectReviews(it)
	if err != nil {
		return common.CursorPageResult[revdom.Review]{}, err
	}

	var next *string
	if len(items) > 0 {
		last := items[len(items)-1]
		c := revdom.EncodeCursor(last.CreatedAt, last.ID)
		next = &c
	}

	return common.CursorPageResult[revdom.Review]{
		Items:      items,
		NextCursor: next,
		Limit:      limit,
	}, nil
}

// ----------
// Like transitions
// ----------

// AddLike は単一ドキュメントのトランザクションで likedBy と likes を
// 同時に更新する。既にいいね済みなら現状を返すだけ（冪等）。
// 読み→書きの競合はトランザクションの再実行で解消されるため、
// likes == len(likedBy) は常に成立する。
func (r *ReviewRepositoryFS) AddLike(ctx context.Context, reviewID, userID string) (revdom.Review, error) {
	return r.updateLike(ctx, reviewID, userID, true)
}

// RemoveLike は AddLike の逆方向。未いいねなら no-op。
func (r *ReviewRepositoryFS) RemoveLike(ctx context.Context, reviewID, userID string) (revdom.Review, error) {
	return r.updateLike(ctx, reviewID, userID, false)
}

func (r *ReviewRepositoryFS) updateLike(ctx context.Context, reviewID, userID string, liked bool) (revdom.Review, error) {
	if r == nil || r.Client == nil {
		return revdom.Review{}, ErrReviewRepoFSInvalid
	}
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return revdom.Review{}, revdom.ErrInvalidID
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return revdom.Review{}, revdom.ErrInvalidUserID
	}

	ref := r.col().Doc(reviewID)

	var out revdom.Review
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		rv, err := docToReview(snap)
		if err != nil {
			return err
		}

		if rv.HasLiked(userID) == liked {
			// 既に目的の状態
			out = rv
			return nil
		}

		set := rv.LikeSet()
		if liked {
			set[userID] = struct{}{}
		} else {
			delete(set, userID)
		}

		likedBy := make([]string, 0, len(set))
		for id := range set {
			likedBy = append(likedBy, id)
		}
		sort.Strings(likedBy)

		rv.LikedBy = likedBy
		rv.Likes = len(likedBy)
		out = rv

		return tx.Update(ref, []firestore.Update{
			{Path: "likes", Value: rv.Likes},
			{Path: "likedBy", Value: likedBy},
		})
	})
	if err != nil {
		return revdom.Review{}, classify("review.like", err, revdom.ErrNotFound)
	}
	return out, nil
}

// ----------
// helpers
// ----------

func collectReviews(it *firestore.DocumentIterator) ([]revdom.Review, error) {
	var out []revdom.Review
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("review.list", err, revdom.ErrNotFound)
		}
		rv, err := docToReview(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, nil
}

func sortReviewsDesc(items []revdom.Review) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
