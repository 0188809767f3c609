package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"socialforum/internal/config"
	"socialforum/internal/database"
	handlers "socialforum/internal/handler"
	"socialforum/internal/middleware"
	"socialforum/internal/repository"
	"socialforum/internal/repository/memory"
	"socialforum/internal/service"
	"socialforum/internal/storage"
)

type Application struct {
	Handler http.Handler
	closers []func() error
	log     *zap.Logger
}

// App wires storage, services and routes. Avatar storage and Redis are optional:
// when they are unreachable the API still starts without them.
func App(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Application, error) {
	application := &Application{log: log}

	var (
		repo   *repository.Repository
		tx     repository.Transactor
		health handlers.HealthChecker
	)

	switch cfg.StorageBackend {
	case "postgres":
		db, err := database.ConnectDB(cfg, log)
		if err != nil {
			return nil, err
		}
		application.closers = append(application.closers, db.CloseDB)

		repo = repository.NewRepository(db.DB)
		tx = repository.NewTransactor(db.DB)
		health = db
	case "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		repo = store.Repository()
		tx = store
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	var avatars service.AvatarStorage
	minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
	if err != nil {
		log.Warn("minio unavailable, avatar uploads disabled", zap.Error(err))
	} else {
		avatars = minioClient
	}

	var revocation service.RevocationStore = storage.NewMemoryRevocation()
	redisClient, err := storage.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	switch {
	case err != nil:
		log.Warn("redis unavailable, keeping revoked tokens in memory", zap.Error(err))
	case redisClient != nil:
		revocation = storage.NewRedisRevocation(redisClient)
		application.closers = append(application.closers, redisClient.Close)
	}

	tokens := service.NewTokenService(cfg.JWTSecretKey, cfg.AccessTokenDuration, revocation)
	services := service.NewService(repo, tx, tokens, avatars, cfg, log)
	h := handlers.NewHandlers(services, health, cfg, log)

	application.Handler = middleware.Chain(
		h.Routes(),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.RecoverMiddleware(log),
	)

	return application, nil
}

func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
}
