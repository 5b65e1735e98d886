// backend/internal/infra/firebase/auth.go
package firebaseinfra

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// NewAuthClient は Firebase Auth クライアントを初期化します。
// credentialsFile が空文字の場合、ADC(Application Default Credentials)を使用します。
func NewAuthClient(ctx context.Context, projectID string, credentialsFile string) (*fbauth.Client, error) {
	fbCfg := &firebase.Config{ProjectID: projectID}

	var (
		app *firebase.App
		err error
	)
	if credentialsFile != "" {
		app, err = firebase.NewApp(ctx, fbCfg, option.WithCredentialsFile(credentialsFile))
	} else {
		app, err = firebase.NewApp(ctx, fbCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("firebase app init failed: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth init failed: %w", err)
	}

	log.Printf("✅ Firebase Auth initialized (project: %s)", projectID)
	return authClient, nil
}
