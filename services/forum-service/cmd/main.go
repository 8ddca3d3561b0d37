package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/config"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/handler"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/repository"
	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/usecase"
	"github.com/vasapolrittideah/recipe-forum/shared/auth"
	"github.com/vasapolrittideah/recipe-forum/shared/database"
	"github.com/vasapolrittideah/recipe-forum/shared/logger"
	"github.com/vasapolrittideah/recipe-forum/shared/session"
	"github.com/vasapolrittideah/recipe-forum/shared/validation"
)

const (
	sessionAudience = "recipe-forum-web"
	sessionIssuer   = "recipe-forum"
	shutdownTimeout = 30 * time.Second

	sessionSweepInterval = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logger.New("info", false)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := database.NewMongoClient(ctx, cfg.Mongo.URI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()

	var redisClient *redis.Client
	var store session.Store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err = database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		store = session.NewRedisStore(redisClient)
	case config.SessionStoreMongo:
		store = session.NewMongoStore(ctx, log, db)
	default:
		memoryStore := session.NewMemoryStore()
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "recipe_forum_memory_sessions",
			Help: "Sessions held by the in-process session store.",
		}, func() float64 {
			return float64(memoryStore.Len())
		})
		go memoryStore.RunSweeper(sweepCtx, sessionSweepInterval)
		store = memoryStore
	}

	validator, err := validation.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	userRepo := repository.NewUserMongoRepository(ctx, log, db)
	recipeRepo := repository.NewRecipeMongoRepository(ctx, log, db)

	sessions := session.NewManager(
		store,
		auth.NewJWTAuthenticator(sessionAudience, sessionIssuer, cfg.Session.Key),
		session.Options{TTL: cfg.Session.TTL, SecureCookie: cfg.Session.SecureCookie},
	)

	forumHandler := handler.NewForumHTTPHandler(
		usecase.NewAuthUsecase(userRepo, validator),
		usecase.NewRecipeUsecase(recipeRepo, validator),
		sessions,
		log,
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(forumHandler, mongoClient, redisClient, cfg.StaticDir, log),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("session_store", cfg.Session.Store).
			Msg("recipe forum listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	stopSweeper()

	closeClients(shutdownCtx, log, mongoClient, redisClient)

	log.Info().Msg("recipe forum stopped")
}

func closeClients(ctx context.Context, log *zerolog.Logger, mongoClient *mongo.Client, redisClient *redis.Client) {
	if err := mongoClient.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from mongodb")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}
}
