package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"fynix_backend/internal/app/config"
	"fynix_backend/internal/app/di"
	"fynix_backend/internal/app/router"
	authadapters "fynix_backend/internal/feature/auth/adapters"
	authhandler "fynix_backend/internal/feature/auth/transport/handler"
	authusecase "fynix_backend/internal/feature/auth/usecase"
	markethandler "fynix_backend/internal/feature/marketdata/transport/handler"
	"fynix_backend/internal/platform/db"
	jwtmw "fynix_backend/internal/platform/jwt"
	platformredis "fynix_backend/internal/platform/redis"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.OpenDB(cfg.DB, cfg.DBTimeout)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// The cache is optional. A missing Redis only costs latency.
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword); err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	userRepo := authadapters.NewUserRepository(gormDB)
	jwtGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	authH := authhandler.NewAuthHandler(authUC)

	ohlcSvc := di.NewOHLCService(cfg, rdb)
	newsSvc := di.NewNewsService(cfg)
	marketH := markethandler.NewMarketHandler(ohlcSvc, newsSvc)

	r := router.NewRouter(authH, marketH, cfg.JWTSecret)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
