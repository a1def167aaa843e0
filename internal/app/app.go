package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"microblog/config"
	inhttp "microblog/internal/adapter/in/http"
	memcache "microblog/internal/adapter/out/cache/inmemory"
	rediscache "microblog/internal/adapter/out/cache/redis"
	"microblog/internal/adapter/out/events"
	memstore "microblog/internal/adapter/out/storage/inmemory"
	pgstore "microblog/internal/adapter/out/storage/postgres"
	"microblog/internal/service"
	"microblog/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

type App struct {
	cfg  config.Config
	srv  *http.Server
	pool *pgxpool.Pool
	rdb  *redis.Client
	nc   *nats.Conn
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)

	var (
		postStorage    service.PostStorage
		groupStorage   service.GroupStorage
		commentStorage service.CommentStorage
		followStorage  service.FollowStorage
		userStorage    service.UserStorage
		pool           *pgxpool.Pool
	)

	switch cfg.StorageType {
	case "postgres":
		var err error
		pool, err = pgxpool.New(ctx, cfg.Postgres.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("pgxpool: %w", err)
		}
		postStorage = pgstore.NewPostStorage(pool, trmpgx.DefaultCtxGetter)
		groupStorage = pgstore.NewGroupStorage(pool, trmpgx.DefaultCtxGetter)
		commentStorage = pgstore.NewCommentStorage(pool, trmpgx.DefaultCtxGetter)
		followStorage = pgstore.NewFollowStorage(pool, trmpgx.DefaultCtxGetter)
		userStorage = pgstore.NewUserStorage(pool, trmpgx.DefaultCtxGetter)

	default:
		posts := memstore.NewPostStorage()
		groups := memstore.NewGroupStorage()
		follows := memstore.NewFollowStorage()
		posts.SetFollowSource(follows)
		groups.SetPostSource(posts)

		postStorage = posts
		groupStorage = groups
		commentStorage = memstore.NewCommentStorage()
		followStorage = follows
		userStorage = memstore.NewUserStorage()
	}

	var (
		feedCache service.FeedCache
		rdb       *redis.Client
	)
	switch cfg.CacheType {
	case "redis":
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		feedCache = rediscache.NewFeedCache(rdb, service.FeedCacheTTL)

	default:
		feedCache = memcache.NewFeedCache(service.FeedCacheTTL)
	}

	var (
		publisher service.EventPublisher
		nc        *nats.Conn
	)
	switch cfg.EventsType {
	case "nats":
		var err error
		nc, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			return nil, fmt.Errorf("nats connect: %w", err)
		}
		publisher = events.NewNatsPublisher(nc)

	default:
		publisher = events.NewBus(0)
	}

	postSvc := service.NewPostService(postStorage, groupStorage, userStorage, followStorage, commentStorage, feedCache, publisher)
	commentSvc := service.NewCommentService(commentStorage, postStorage, publisher)
	followSvc := service.NewFollowService(followStorage, userStorage)
	groupSvc := service.NewGroupService(groupStorage)

	handlerCfg := inhttp.Config{
		JWTSecret:    []byte(cfg.Auth.JWTSecret),
		MediaDir:     cfg.MediaDir,
		ClientOrigin: cfg.ClientOrigin,
	}
	handler := inhttp.New(postSvc, commentSvc, followSvc, groupSvc, handlerCfg)

	addr := ":" + cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.InitRoutes(handlerCfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized",
		"addr", addr,
		"storage", cfg.StorageType,
		"cache", cfg.CacheType,
		"events", cfg.EventsType,
	)
	return &App{cfg: cfg, srv: srv, pool: pool, rdb: rdb, nc: nc}, nil
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.srv.Shutdown(shCtx)
		a.closeResources()
		return nil

	case err := <-errCh:
		a.closeResources()
		return err
	}
}

func (a *App) closeResources() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.nc != nil {
		a.nc.Close()
	}
}
