package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GoPolymarket/go-clob-client/internal/cache"
	"github.com/GoPolymarket/go-clob-client/internal/config"
	"github.com/GoPolymarket/go-clob-client/internal/gateway"
	"github.com/GoPolymarket/go-clob-client/internal/pkg/logger"
	"github.com/GoPolymarket/go-clob-client/internal/store"
	"github.com/GoPolymarket/go-clob-client/pkg/client"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/GoPolymarket/go-clob-client/pkg/stream"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)

	// Metadata cache: Redis when configured, in-process otherwise.
	var metaCache client.MetadataCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisCache(cfg)
		if err != nil {
			logger.Error("Failed to connect to Redis, falling back to memory", "error", err)
		} else {
			logger.Info("Connected to Redis")
			metaCache = redisCache
		}
	}
	if metaCache == nil {
		metaCache = client.NewMemoryCache()
	}

	opts := []client.Option{
		client.WithMetadataCache(metaCache),
	}
	if cfg.Polymarket.PrivateKey != "" {
		opts = append(opts, client.WithPrivateKey(cfg.Polymarket.PrivateKey))
	}
	if cfg.Polymarket.ApiKey != "" {
		opts = append(opts, client.WithApiCreds(clobtypes.ApiCreds{
			Key:        cfg.Polymarket.ApiKey,
			Secret:     cfg.Polymarket.ApiSecret,
			Passphrase: cfg.Polymarket.ApiPassphrase,
		}))
	}
	if cfg.Builder.ApiKey != "" {
		opts = append(opts, client.WithBuilderCreds(clobtypes.BuilderApiCreds{
			Key:        cfg.Builder.ApiKey,
			Secret:     cfg.Builder.ApiSecret,
			Passphrase: cfg.Builder.ApiPassphrase,
		}))
	}

	clob := client.NewClient(cfg.Polymarket.BaseURL, clobtypes.Chain(cfg.Chain.ID), opts...)

	if builder := clob.Builder(); builder != nil {
		builder.WithSignatureType(clobtypes.SignatureType(cfg.Polymarket.SignatureType))
		if cfg.Polymarket.Funder != "" {
			builder.WithFunder(common.HexToAddress(cfg.Polymarket.Funder))
		}
	}

	// Without explicit credentials, derive (or mint) them from the wallet.
	if cfg.Polymarket.ApiKey == "" && cfg.Polymarket.PrivateKey != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		creds, err := clob.CreateOrDeriveApiKey(ctx, nil)
		cancel()
		if err != nil {
			logger.Error("Failed to derive api credentials, trading disabled", "error", err)
		} else {
			clob.SetApiCreds(*creds)
			logger.Info("Derived api credentials", "key", creds.Key)
		}
	}

	// Order audit trail (optional).
	var orderStore *store.OrderStore
	if cfg.Database.DSN != "" {
		db, err := store.NewDB(cfg.Database.DSN)
		if err != nil {
			logger.Error("Failed to connect to DB, audit trail disabled", "error", err)
		} else {
			orderStore, err = store.NewOrderStore(db)
			if err != nil {
				logger.Error("Failed to migrate order store", "error", err)
			} else {
				logger.Info("Connected to PostgreSQL")
			}
		}
	}

	// Live book stream (optional).
	var marketStream *stream.MarketStream
	if cfg.Stream.Enabled {
		marketStream = stream.NewMarketStream(cfg.Stream.WSURL)
		marketStream.Start()
	}

	svc := gateway.NewService(clob, orderStore)
	handler := gateway.NewHandler(svc)
	router := handler.Router(cfg.Auth.RequireAPIKey, cfg.Auth.APIKey, cfg.Metrics.Enabled, cfg.Metrics.Path)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("clobgate started", "port", cfg.Server.Port, "chain", cfg.Chain.ID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		if marketStream != nil {
			marketStream.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server exiting")
}
