// backend/internal/infra/gcs/client.go
package gcsinfra

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewClient は GCS クライアントを初期化します。
// credentialsFile が空文字の場合、ADC(Application Default Credentials)を使用します。
func NewClient(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	var (
		client *storage.Client
		err    error
	)
	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = storage.NewClient(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	log.Printf("✅ GCS client initialized")
	return client, nil
}
