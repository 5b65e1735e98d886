// backend/internal/infra/config/config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Firebase Auth 用のプロジェクトID
	FirebaseProjectID string

	// レビュー画像を置く GCS バケット
	GCSBucket string
	GCPCreds  string

	// フロント（Firebase Hosting）のオリジン。CORS で使用。
	AllowedOrigin string
}

// Load は環境変数を読み込み Config を返します。
// ローカル開発では .env があれば先に読み込みます（Cloud Run 上には無い前提）。
func Load() *Config {
	_ = godotenv.Load()

	defaultProject := getenvDefault("GCP_PROJECT_ID", "takokatsu-app")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		// FIREBASE_PROJECT_ID が未指定なら GCP のデフォルトを使う
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		GCSBucket: getenvDefault("GCS_BUCKET", defaultProject+"-reviews"),
		GCPCreds:  os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		AllowedOrigin: getenvDefault("ALLOWED_ORIGIN", "https://takokatsu-app.web.app"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
