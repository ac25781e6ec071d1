package app

import (
	"context"
	"fmt"
	"time"

	"Clientes/internal/config"
	"Clientes/internal/logger"
	"Clientes/internal/migrations"
	"Clientes/internal/repo"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type App struct {
	cfg    config.Config
	log    zerolog.Logger
	store  repo.ClienteRepo
	reg    *prometheus.Registry
	router *gin.Engine
}

// New connects the configured store and builds the router. A store that can't
// be reached is an error; the caller is expected to exit.
func New(cfg config.Config, log zerolog.Logger) (*App, error) {
	store, err := newStore(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewWithStore(cfg, log, store), nil
}

// NewWithStore builds the app around an already opened store.
func NewWithStore(cfg config.Config, log zerolog.Logger, store repo.ClienteRepo) *App {
	a := &App{cfg: cfg, log: log, store: store}

	a.reg = prometheus.NewRegistry()
	a.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a.router = newRouter(cfg, log, store, a.reg)
	return a
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	if a.store != nil {
		return a.store.Close(ctx)
	}
	return nil
}

func newStore(cfg config.Config, log zerolog.Logger) (repo.ClienteRepo, error) {
	timeout := cfg.Store.ConnectTimeout.Duration()
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := newPostgres(cfg.PG.DSN, timeout)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(cfg.PG.DSN); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("connected to Postgres")
		return repo.NewPGClienteRepo(pool), nil
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return repo.NewMemoryClienteRepo(), nil
	default:
		client, err := newMongo(cfg.Mongo.URI, timeout)
		if err != nil {
			return nil, err
		}
		r := repo.NewMongoClienteRepo(client, cfg.Mongo.Database, cfg.Mongo.Collection)
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := r.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("db", cfg.Mongo.Database).Msg("connected to MongoDB")
		return r, nil
	}
}

func newMongo(uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func newPostgres(dsn string, timeout time.Duration) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pg parse config: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}

	return pool, nil
}

func runMigrations(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("goose open db: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func newRouter(cfg config.Config, log zerolog.Logger, store repo.ClienteRepo, reg *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(log))

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", logger.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.HTTP.Origins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	Setup(r, cfg, store, reg)
	return r
}
