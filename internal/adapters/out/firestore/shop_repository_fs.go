// backend/internal/adapters/out/firestore/shop_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	shopdom "takokatsu/internal/domain/shop"
)

var ErrShopRepoFSInvalid = errors.New("firestore: shop repository invalid")

// ShopRepositoryFS implements shop.Repository using Firestore.
type ShopRepositoryFS struct {
	Client *firestore.Client
}

func NewShopRepositoryFS(client *firestore.Client) *ShopRepositoryFS {
	return &ShopRepositoryFS{Client: client}
}

func (r *ShopRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("shops")
}

// ----------
// Firestore DTOs
// ----------

type shopMenuDoc struct {
	Name  string `firestore:"name"`
	Price int    `firestore:"price"`
}

// rating / reviewCount は古いドキュメントに存在しないことがある。
// DataTo はフィールド欠落をゼロ値で埋めるため、読み手は常に
// 「欠落 = レビュー無し(0)」として扱える。
type shopDoc struct {
	Name          string        `firestore:"name"`
	Prefecture    string        `firestore:"prefecture,omitempty"`
	City          string        `firestore:"city,omitempty"`
	Address       string        `firestore:"address,omitempty"`
	Area          string        `firestore:"area,omitempty"`
	BusinessHours string        `firestore:"businessHours,omitempty"`
	Menus         []shopMenuDoc `firestore:"menus,omitempty"`
	Rating        float64       `firestore:"rating"`
	ReviewCount   int           `firestore:"reviewCount"`
	CreatedAt     time.Time     `firestore:"createdAt"`
}

func toShopDoc(s shopdom.Shop) shopDoc {
	menus := make([]shopMenuDoc, 0, len(s.Menus))
	for _, m := range s.Menus {
		name := strings.TrimSpace(m.Name)
		if name == "" {
			continue
		}
		menus = append(menus, shopMenuDoc{Name: name, Price: m.Price})
	}
	if len(menus) == 0 {
		menus = nil
	}

	return shopDoc{
		Name:          strings.TrimSpace(s.Name),
		Prefecture:    strings.TrimSpace(s.Prefecture),
		City:          strings.TrimSpace(s.City),
		Address:       strings.TrimSpace(s.Address),
		Area:          strings.TrimSpace(s.Area),
		BusinessHours: strings.TrimSpace(s.BusinessHours),
		Menus:         menus,
		Rating:        s.Rating,
		ReviewCount:   s.ReviewCount,
		CreatedAt:     s.CreatedAt.UTC(),
	}
}

func toDomainShop(id string, d shopDoc) shopdom.Shop {
	menus := make([]shopdom.MenuItem, 0, len(d.Menus))
	for _, m := range d.Menus {
		menus = append(menus, shopdom.MenuItem{Name: m.Name, Price: m.Price})
	}
	if len(menus) == 0 {
		menus = nil
	}

	return shopdom.Shop{
		ID:            strings.TrimSpace(id),
		Name:          d.Name,
		Prefecture:    d.Prefecture,
		City:          d.City,
		Address:       d.Address,
		Area:          d.Area,
		BusinessHours: d.BusinessHours,
		Menus:         menus,
		Rating:        d.Rating,
		ReviewCount:   d.ReviewCount,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

func docToShop(snap *firestore.DocumentSnapshot) (shopdom.Shop, error) {
	var d shopDoc
	if err := snap.DataTo(&d); err != nil {
		return shopdom.Shop{}, err
	}
	return toDomainShop(snap.Ref.ID, d), nil
}

// ----------
// shop.Repository
// ----------

func (r *ShopRepositoryFS) GetByID(ctx context.Context, id string) (shopdom.Shop, error) {
	if r == nil || r.Client == nil {
		return shopdom.Shop{}, ErrShopRepoFSInvalid
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return shopdom.Shop{}, shopdom.ErrInvalidID
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return shopdom.Shop{}, classify("shop.get", err, shopdom.ErrNotFound)
	}
	return docToShop(snap)
}

// GetName は店舗名だけを読む（フィードの表示名解決用の点読み取り）。
func (r *ShopRepositoryFS) GetName(ctx context.Context, id string) (string, error) {
	if r == nil || r.Client == nil {
		return "", ErrShopRepoFSInvalid
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", shopdom.ErrInvalidID
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return "", classify("shop.getName", err, shopdom.ErrNotFound)
	}
	var d struct {
		Name string `firestore:"name"`
	}
	if err := snap.DataTo(&d); err != nil {
		return "", err
	}
	return strings.TrimSpace(d.Name), nil
}

func (r *ShopRepositoryFS) Create(ctx context.Context, s shopdom.Shop) (shopdom.Shop, error) {
	if r == nil || r.Client == nil {
		return shopdom.Shop{}, ErrShopRepoFSInvalid
	}

	doc := toShopDoc(s)
	docRef := r.col().NewDoc()
	if _, err := docRef.Set(ctx, doc); err != nil {
		return shopdom.Shop{}, classify("shop.create", err, shopdom.ErrNotFound)
	}
	return toDomainShop(docRef.ID, doc), nil
}

func (r *ShopRepositoryFS) List(ctx context.Context) ([]shopdom.Shop, error) {
	if r == nil || r.Client == nil {
		return nil, ErrShopRepoFSInvalid
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	return collectShops(it)
}

func (r *ShopRepositoryFS) ListNewest(ctx context.Context, limit int) ([]shopdom.Shop, error) {
	if r == nil || r.Client == nil {
		return nil, ErrShopRepoFSInvalid
	}
	if limit <= 0 {
		return nil, shopdom.ErrInvalidLimit
	}

	it := r.col().
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer it.Stop()

	return collectShops(it)
}

// UpdateStats は派生フィールドだけを書き換える。
// ドキュメントが無い場合は shop.ErrNotFound（呼び出し側で参照切れとして扱う）。
func (r *ShopRepositoryFS) UpdateStats(ctx context.Context, id string, stats shopdom.Stats) error {
	if r == nil || r.Client == nil {
		return ErrShopRepoFSInvalid
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return shopdom.ErrInvalidID
	}

	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "reviewCount", Value: stats.ReviewCount},
		{Path: "rating", Value: stats.Rating},
	})
	if err != nil {
		return classify("shop.updateStats", err, shopdom.ErrNotFound)
	}
	return nil
}

// ----------
// helpers
// ----------

func collectShops(it *firestore.DocumentIterator) ([]shopdom.Shop, error) {
	var out []shopdom.Shop
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classify("shop.list", err, shopdom.ErrNotFound)
		}
		s, err := docToShop(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
