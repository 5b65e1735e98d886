// backend/internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	iddom "takokatsu/internal/domain/identity"
)

// FirebaseAuthClient は firebase auth クライアントのエイリアス。
type FirebaseAuthClient = fbauth.Client

// AuthMiddleware は
//
//   - Authorization: Bearer <ID_TOKEN>
//
// を検証し、トークンのクレーム（uid / name / picture）から Identity を
// 組み立てて context に詰めて次のハンドラへ渡す。
//
// 読み取り系エンドポイントは identity 不要なので、required=false の
// Optional モードではトークン無しでも素通しする（書き込み系の usecase 側が
// identity 無しを ErrAuthRequired として弾く）。
type AuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

// Required はトークン必須のラッパ。検証失敗は 401。
func (m *AuthMiddleware) Required(next http.Handler) http.Handler {
	return m.handler(next, true)
}

// Optional はトークンがあれば Identity を詰め、無ければそのまま通すラッパ。
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return m.handler(next, false)
}

func (m *AuthMiddleware) handler(next http.Handler, required bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if m.FirebaseAuth == nil {
			if required {
				http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			if required {
				http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			if required {
				http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		// Firebase ID トークン検証
		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		who := iddom.Identity{UID: uid}
		if v, ok := token.Claims["name"].(string); ok {
			who.DisplayName = strings.TrimSpace(v)
		}
		if v, ok := token.Claims["picture"].(string); ok {
			who.AvatarURL = strings.TrimSpace(v)
		}

		next.ServeHTTP(w, r.WithContext(iddom.WithContext(r.Context(), who)))
	})
}
