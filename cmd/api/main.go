package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/token"
	"storefront/internal/logging"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/session"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	//.env は任意
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//永続化先
	kv, closeKV, err := openKVStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeKV()
	log.Info("storage ready", "driver", cfg.StorageDriver, "namespace", cfg.StorageNamespace)

	//セッション復元
	store := session.NewStore(ctx, kv, session.Options{
		LoadingDelay: cfg.LoadingDelay,
		Logger:       log,
	})
	defer store.Close()

	catalog := infraRepo.NewStaticCatalogRepository(nil)

	//usecaseに渡す部品
	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	v := validator.NewAuthValidator()
	idGen := auth.UUIDGenerator{}
	clock := auth.RealClock{}

	//Usecase生成
	menuUC := usecase.NewMenuUsecase(catalog)
	cartUC := usecase.NewCartUsecase(store, catalog, log)
	registerUC := auth.NewRegisterUserUsecase(store, v, issuer, idGen, clock)
	loginUC := auth.NewLoginUsecase(store, v, issuer, idGen, clock)
	logoutUC := auth.NewLogoutUsecase(store)

	//Handler生成
	e := server.New(cfg, log)
	server.RegisterRoutes(e, cfg, store, server.Handlers{
		Session: handler.NewSessionHandler(store),
		Menu:    handler.NewMenuHandler(menuUC),
		Cart:    handler.NewCartHandler(cartUC),
		Auth:    handler.NewAuthHandler(registerUC, loginUC, logoutUC, store, log),
	})

	//Server起動
	return server.Start(ctx, e, cfg.Addr(), log)
}

// STORAGE_DRIVER に応じた KeyValueStore を作る
func openKVStore(ctx context.Context, cfg config.Config) (repo.KeyValueStore, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return infraRepo.NewMemoryKVStore(), func() {}, nil

	case config.DriverRedis:
		client, err := db.NewRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return infraRepo.NewKVRedisRepository(client, cfg.StorageNamespace), func() { _ = client.Close() }, nil

	default:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := gormDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return infraRepo.NewKVGormRepository(gormDB, cfg.StorageNamespace), closeFn, nil
	}
}
