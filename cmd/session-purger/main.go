package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	userspostgres "github.com/galeria/marketplace-api/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/galeria/marketplace-api/internal/platform/postgres"
)

// The purger deletes expired session rows. With no interval configured it
// runs once and exits, suited to cron; with SESSION_PURGE_INTERVAL_MINUTES
// set it keeps running until interrupted.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		logger.Error("POSTGRES_DSN not set or connection failed, cannot purge sessions")
		os.Exit(1)
	}

	store := userspostgres.NewSessionStore(db, sessionTTLFromEnv())
	purge := func() {
		purgeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := store.PurgeExpired(purgeCtx); err != nil {
			logger.Error("session purge failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("session purge completed")
	}

	purge()
	interval := purgeIntervalFromEnv()
	if interval <= 0 {
		return
	}

	logger.Info("session purger running on interval", slog.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("session purger stopped")
			return
		case <-ticker.C:
			purge()
		}
	}
}

func sessionTTLFromEnv() time.Duration {
	hours := positiveIntEnv("SESSION_TTL_HOURS")
	if hours <= 0 {
		return userspostgres.DefaultSessionTTL
	}
	return time.Duration(hours) * time.Hour
}

func purgeIntervalFromEnv() time.Duration {
	minutes := positiveIntEnv("SESSION_PURGE_INTERVAL_MINUTES")
	if minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

func positiveIntEnv(key string) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0
	}
	return value
}
