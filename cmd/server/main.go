// Command server runs the secretaria HTTP API.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) and
// environment variables. Requires DATABASE_DSN and AUTH_JWT_SECRET.
//
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/secretaria-app/secretaria-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
