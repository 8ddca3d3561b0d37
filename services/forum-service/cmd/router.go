package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vasapolrittideah/recipe-forum/services/forum-service/internal/handler"
	"github.com/vasapolrittideah/recipe-forum/shared/middleware"
)

// pinger is satisfied by the dependencies /ready checks.
type pinger interface {
	ping(ctx context.Context) error
}

type mongoPinger struct{ client *mongo.Client }

func (p mongoPinger) ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

type redisPinger struct{ client *redis.Client }

func (p redisPinger) ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func newRouter(
	forumHandler *handler.ForumHTTPHandler,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
	staticDir string,
	log *zerolog.Logger,
) chi.Router {
	deps := map[string]pinger{"mongodb": mongoPinger{client: mongoClient}}
	if redisClient != nil {
		deps["redis"] = redisPinger{client: redisClient}
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", healthHandler())
	r.Get("/ready", readyHandler(deps))
	r.Handle("/metrics", promhttp.Handler())

	if staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	}

	forumHandler.RegisterRoutes(r)

	return r
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// readyHandler reports 503 naming the first dependency that fails to answer.
func readyHandler(deps map[string]pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")

		for name, dep := range deps {
			if err := dep.ping(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"error","component":"` + name + `"}`))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}
