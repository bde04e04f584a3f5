// cmd/pandoer-server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/CodeStix/bieden/internal/cache"
	"github.com/CodeStix/bieden/internal/database"
	"github.com/CodeStix/bieden/internal/server"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("could not load .env")
	}

	if lvl, err := logrus.ParseLevel(envOr("LOG_LEVEL", "info")); err == nil {
		logrus.SetLevel(lvl)
	}

	addr := envOr("LISTEN_ADDR", ":8080")
	turnDelay := time.Duration(envInt("TURN_DELAY_MS", 700)) * time.Millisecond

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(ctx, os.Getenv("DATABASE_URL")); err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	if err := cache.InitRedis(ctx, os.Getenv("REDIS_ADDR")); err != nil {
		logrus.WithError(err).Fatal("redis connection failed")
	}

	s := server.New(turnDelay)
	mux := http.NewServeMux()
	s.Routes(mux)

	httpSrv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Warn("shutdown")
		}
	}()

	logrus.WithField("addr", addr).Info("listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("server failed")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		logrus.Warnf("ignoring non-numeric %s=%q", key, v)
	}
	return def
}
