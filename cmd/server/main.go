package main

import (
	"log"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	"account_backend/internal/app/di"
	"account_backend/internal/app/router"
	accounthandler "account_backend/internal/feature/account/transport/handler"
	accountusecase "account_backend/internal/feature/account/usecase"
	authadapters "account_backend/internal/feature/auth/adapters"
	authhandler "account_backend/internal/feature/auth/transport/handler"
	authusecase "account_backend/internal/feature/auth/usecase"
	"account_backend/internal/platform/config"
	"account_backend/internal/platform/db"
	platformredis "account_backend/internal/platform/redis"
	"account_backend/internal/platform/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	gdb, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	// Redis is optional; sessions fall back to Postgres without it.
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := platformredis.NewClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
			slog.Warn("redis unavailable, using postgres session store")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close redis client", "error", err)
				}
			}()
		}
	}

	// Repositories
	userRepo := authadapters.NewUserPostgres(gdb)
	sessionRepo := di.NewSessionRepository(rdb, gdb)

	// Usecases
	tokenGen := token.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokenGen,
		cfg.AccessTokenTTL, cfg.SessionTTL, cfg.MaxSessionsPerUser)
	accountUC := accountusecase.NewAccountUsecase(userRepo, sessionRepo)

	// Handlers
	authH := authhandler.NewAuthHandler(authUC)
	accountH := accounthandler.NewAccountHandler(accountUC)

	r := router.NewRouter(cfg, authH, accountH)

	slog.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
