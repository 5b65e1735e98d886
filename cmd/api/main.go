// backend/cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "takokatsu/internal/adapters/in/http"
	"takokatsu/internal/adapters/in/http/middleware"
	"takokatsu/internal/platform/di"
)

func main() {
	ctx := context.Background()

	// DI 組み立て。外部クライアントの初期化に失敗しても縮退起動する
	// （Cloud Run はまず PORT で listen していることを見る）。
	container := di.NewContainer(ctx)
	defer container.Close()

	router := httpadapter.NewRouter(container.RouterDeps())
	handler := middleware.CORS(container.Config.AllowedOrigin)(router)

	port := container.Config.Port
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[api] ✅ listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[api] serve error: %v", err)
		}
	}()

	// SIGINT / SIGTERM で graceful shutdown（Cloud Run は SIGTERM 後 10 秒待つ）
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[api] shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[api] WARN: shutdown: %v", err)
	}
	log.Println("[api] bye")
}
