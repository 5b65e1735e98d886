// backend/internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// ClientWrapper は Firestore クライアントと接続先プロジェクトをまとめて持つ。
// reviews / shops / favorites の各リポジトリはこの Client を共有する。
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient は Firestore クライアントを初期化する。
// credentialsFile が空なら ADC(Application Default Credentials) を使う
// （Cloud Run 上はこちら。鍵ファイルはローカル開発用）。
func NewClient(ctx context.Context, projectID string, credentialsFile string) (*ClientWrapper, error) {
	var (
		client *firestore.Client
		err    error
	)
	if credentialsFile != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("firestore client init failed (project: %s): %w", projectID, err)
	}

	log.Printf("✅ Firestore connected (project: %s)", projectID)
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Ping は起動時の疎通確認。Firestore に Ping API は無いので、
// reviews コレクションの1件読みで代用する。
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return fmt.Errorf("firestore client is nil")
	}
	it := cw.Client.Collection("reviews").Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.GetAll(); err != nil {
		return fmt.Errorf("firestore ping failed: %w", err)
	}
	return nil
}

// Close は Firestore クライアントを閉じる。
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
