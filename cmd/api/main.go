package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"careerhub/internal/api"
	"careerhub/internal/auth"
	"careerhub/internal/config"
	"careerhub/internal/database"
	"careerhub/internal/domain"
	"careerhub/internal/storage"
	"careerhub/internal/store"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	st, err := buildStore(cfg, logger)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	ctx := context.Background()
	if err := store.Seed(ctx, st); err != nil {
		log.Fatalf("seed store: %v", err)
	}

	if strings.EqualFold(cfg.Store.Driver, "memory") {
		if err := seedDemoUser(ctx, st); err != nil {
			log.Fatalf("seed demo user: %v", err)
		}
	}

	authService, err := buildAuthService(cfg.Auth)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
	})

	storageClient, err := buildStorage(cfg)
	if err != nil {
		log.Fatalf("init object storage: %v", err)
	}

	router := api.NewRouter(cfg, logger)
	api.RegisterRoutes(router, st, authService, redisClient, storageClient, cfg.Upload, logger)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s (store driver %s)", address, cfg.Store.Driver)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}

func buildStore(cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Store.Driver)) {
	case "", "postgres":
		db, err := database.InitDatabase(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		if err := db.AutoMigrate(
			&database.User{},
			&database.Job{},
			&database.Application{},
			&database.JobAlert{},
			&database.Resume{},
			&database.InterviewQuestion{},
		); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Printf("database migrated (host=%s db=%s)", cfg.Database.Host, cfg.Database.Name)
		return store.NewGorm(db, logger), nil
	case "memory":
		latency := time.Duration(cfg.Store.MemoryLatencyMS) * time.Millisecond
		log.Printf("running with in-memory store (latency %s)", latency)
		return store.NewMemory(latency, logger), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// seedDemoUser 为内存模式准备一个可直接登录的演示账号。
func seedDemoUser(ctx context.Context, st *store.Store) error {
	const demoUsername = "demo"
	const demoPassword = "demo-password"

	if _, err := st.Users.GetByUsername(ctx, demoUsername); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return err
	}
	if _, err := st.Users.Create(ctx, domain.User{Username: demoUsername, PasswordHash: hashed}); err != nil {
		return err
	}
	log.Printf("seeded demo user %q (password %q)", demoUsername, demoPassword)
	return nil
}

func buildStorage(cfg *config.Config) (api.ResumeStorage, error) {
	client, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func buildAuthService(cfg config.AuthConfig) (*auth.AuthService, error) {
	privateKey, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	publicKey, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return auth.NewAuthService(privateKey, publicKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
}
