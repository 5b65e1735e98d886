// backend/internal/adapters/out/gcs/reviewImage_repository_gcs.go
package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// ReviewImageRepositoryGCS is a GCS adapter for review images (object storage).
//
// レイアウト（単一バケット）:
// - bucket: <project>-reviews
// - objectPath: reviews/{userId}_{unixMilli}
//
// Public access:
//   - バケットに IAM "allUsers: Storage Object Viewer"（uniform access）が
//     付いていれば、オブジェクト単位の ACL 操作なしで公開読み取りになる。
type ReviewImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string

	now func() time.Time
}

func NewReviewImageRepositoryGCS(client *storage.Client, bucket string) *ReviewImageRepositoryGCS {
	return &ReviewImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
		now:           time.Now,
	}
}

func (r *ReviewImageRepositoryGCS) WithNow(now func() time.Time) *ReviewImageRepositoryGCS {
	r.now = now
	return r
}

// Upload はレビュー画像を書き込み、公開 URL を返す。
// コア側が永続化するのはこの URL のみ（生バイトは持たない）。
func (r *ReviewImageRepositoryGCS) Upload(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("reviewImage_repository_gcs: storage client is nil")
	}
	bucket := strings.TrimSpace(r.Bucket)
	if bucket == "" {
		return "", errors.New("reviewImage_repository_gcs: bucket is empty")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("reviewImage_repository_gcs: userId is empty")
	}
	if len(data) == 0 {
		return "", errors.New("reviewImage_repository_gcs: payload is empty")
	}

	objPath := fmt.Sprintf("reviews/%s_%d", userID, r.now().UnixMilli())

	w := r.Client.Bucket(bucket).Object(objPath).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	} else {
		w.ContentType = "image/jpeg"
	}

	if _, err := bytes.NewReader(data).WriteTo(w); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("reviewImage_repository_gcs: write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("reviewImage_repository_gcs: close failed: %w", err)
	}

	base := strings.TrimRight(strings.TrimSpace(r.PublicBaseURL), "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	return fmt.Sprintf("%s/%s/%s", base, bucket, objPath), nil
}
