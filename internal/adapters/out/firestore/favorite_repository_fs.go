// backend/internal/adapters/out/firestore/favorite_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	favdom "takokatsu/internal/domain/favorite"
)

var ErrFavoriteRepoFSInvalid = errors.New("firestore: favorite repository invalid")

// FavoriteRepositoryFS implements favorite.Repository using Firestore.
// (userId, shopId) の一意性はストア制約ではなく Registry 側の
// 「Find してから Create」で担保する前提。
type FavoriteRepositoryFS struct {
	Client *firestore.Client
}

func NewFavoriteRepositoryFS(client *firestore.Client) *FavoriteRepositoryFS {
	return &FavoriteRepositoryFS{Client: client}
}

func (r *FavoriteRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("favorites")
}

// ----------
// Firestore DTOs
// ----------

type favoriteDoc struct {
	UserID    string    `firestore:"userId"`
	ShopID    string    `firestore:"shopId"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func toDomainFavorite(id string, d favoriteDoc) favdom.Favorite {
	return favdom.Favorite{
		ID:        strings.TrimSpace(id),
		UserID:    d.UserID,
		ShopID:    d.ShopID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// ----------
// favorite.Repository
// ----------

// Find は (userId, shopId) の等価クエリで既存レコードを探す。
func (r *FavoriteRepositoryFS) Find(ctx context.Context, userID, shopID string) (favdom.Favorite, error) {
	if r == nil || r.Client == nil {
		return favdom.Favorite{}, ErrFavoriteRepoFSInvalid
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return favdom.Favorite{}, favdom.ErrInvalidUserID
	}
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return favdom.Favorite{}, favdom.ErrInvalidShopID
	}

	it := r.col().
		Where("userId", "==", userID).
		Where("shopId", "==", shopID).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if errors.Is(err, iterator.Done) {
		return favdom.Favorite{}, favdom.ErrNotFound
	}
	if err != nil {
		return favdom.Favorite{}, classify("favorite.find", err, favdom.ErrNotFound)
	}

	var d favoriteDoc
	if err := snap.DataTo(&d); err != nil {
		return favdom.Favorite{}, err
	}
	return toDomainFavorite(snap.Ref.ID, d), nil
}

func (r *FavoriteRepositoryFS) Create(ctx context.Context, f favdom.Favorite) (favdom.Favorite, error) {
	if r == nil || r.Client == nil {
		return favdom.Favorite{}, ErrFavoriteRepoFSInvalid
	}

	doc := favoriteDoc{
		UserID:    strings.TrimSpace(f.UserID),
		ShopID:    strings.TrimSpace(f.ShopID),
		CreatedAt: f.CreatedAt.UTC(),
	}
	docRef := r.col().NewDoc()
	if _, err := docRef.Set(ctx, doc); err != nil {
		return favdom.Favorite{}, classify("favorite.create", err, favdom.ErrNotFound)
	}
	return toDomainFavorite(docRef.ID, doc), nil
}

// Delete は存在しないドキュメントに対しても成功する（no-op）。
func (r *FavoriteRepositoryFS) Delete(ctx context.Context, id string) error {
	if r == nil || r.Client == nil {
		return ErrFavoriteRepoFSInvalid
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return favdom.ErrNotFound
	}
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return classify("favorite.delete", err, nil)
	}
	return nil
}

func (r *FavoriteRepositoryFS) ListByUser(ctx context.Context, userID string) ([]favdom.Favorite, error) {
	if r == nil || r.Client == nil {
		return nil, ErrFavoriteRepoFSInvalid
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, favdom.ErrInvalidUserID
	}

	it := r.col().Where("userId", "==", userID).Documents(ctx)
	defer it.Stop()

	var out []favdom.Favorite
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("favorite.list", err, favdom.ErrNotFound)
		}
		var d favoriteDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, toDomainFavorite(snap.Ref.ID, d))
	}
	return out, nil
}

// CountByShop は店舗のお気に入り数を返す。
// Firestore には簡単な COUNT がないので、フィールドを読まない Select で
// ドキュメント数だけ数える。
func (r *FavoriteRepositoryFS) CountByShop(ctx context.Context, shopID string) (int, error) {
	if r == nil || r.Client == nil {
		return 0, ErrFavoriteRepoFSInvalid
	}
	shopID = strings.TrimSpace(shopID)
	if shopID == "" {
		return 0, favdom.ErrInvalidShopID
	}

	it := r.col().
		Where("shopId", "==", shopID).
		Select().
		Documents(ctx)
	defer it.Stop()

	count := 0
	for {
		_, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return 0, classify("favorite.count", err, favdom.ErrNotFound)
		}
		count++
	}
	return count, nil
}
