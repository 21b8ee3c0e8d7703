package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ideaforge-backend/cache"
	"ideaforge-backend/config"
	"ideaforge-backend/handlers"
	"ideaforge-backend/llm"
	"ideaforge-backend/logger"
	"ideaforge-backend/middleware"
	"ideaforge-backend/repository"
	"ideaforge-backend/service"
	"ideaforge-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Component: "server"})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := initPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to initialize postgres", zap.Error(err))
	}
	defer db.Close()
	log.Info("postgres connection established")

	// Initialize repositories
	ideaRepo := repository.NewIdeaRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize model client
	modelClient, closeModel, err := initModelClient(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize model client", zap.Error(err))
	}
	defer closeModel()

	ideaOpts := []service.IdeaServiceOption{
		service.WithModelClient(modelClient),
		service.WithIdeaStore(ideaRepo),
		service.WithVoteStore(voteRepo),
		service.WithCommentStore(commentRepo),
		service.WithLogger(log),
		service.WithGenerationTimeout(cfg.GenerationTimeout),
	}
	communityOpts := []service.CommunityServiceOption{
		service.CommunityWithVoteStore(voteRepo),
		service.CommunityWithCommentStore(commentRepo),
		service.CommunityWithLogger(log),
	}

	// Feed cache is optional
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()

		feedCache := cache.NewFeedCache(rdb, cfg.FeedCacheTTL)
		ideaOpts = append(ideaOpts, service.WithFeedCache(feedCache))
		communityOpts = append(communityOpts, service.CommunityWithFeedCache(feedCache))
		log.Info("feed cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.FeedCacheTTL))
	}

	// Completion archive is optional
	store, err := storage.NewStorage(ctx, storage.StorageConfig{
		Type:         storage.StorageType(cfg.StorageType),
		LocalPath:    cfg.StorageLocalPath,
		S3Bucket:     cfg.AWSS3Bucket,
		S3Region:     cfg.AWSRegion,
		AWSAccessKey: cfg.AWSAccessKeyID,
		AWSSecretKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		log.Fatal("failed to initialize storage", zap.Error(err))
	}
	if store != nil {
		ideaOpts = append(ideaOpts, service.WithCompletionArchive(storage.NewCompletionArchive(store)))
		log.Info("completion archive enabled", zap.String("type", cfg.StorageType))
	}

	// Initialize services
	ideaService := service.NewIdeaService(ideaOpts...)
	communityService := service.NewCommunityService(communityOpts...)

	router := handlers.NewRouter(handlers.RouterConfig{
		Ideas:           handlers.NewIdeaHandler(ideaService, communityService),
		Logger:          log,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		GenerateLimiter: middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func initPostgres(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// initModelClient returns the configured provider and a func releasing it
func initModelClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (llm.Client, func(), error) {
	switch cfg.LLMProvider {
	case "gemini":
		client, err := llm.DialGemini(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using gemini model client")
		return client, func() { _ = client.Close() }, nil
	default:
		opts := []llm.OpenRouterOption{
			llm.WithBaseURL(cfg.OpenRouterBaseURL),
			llm.WithLogger(log),
		}
		if cfg.LLMModel != "" {
			opts = append(opts, llm.WithModel(cfg.LLMModel))
		}
		log.Info("using openrouter model client", zap.String("baseURL", cfg.OpenRouterBaseURL))
		return llm.NewOpenRouterClient(cfg.OpenRouterAPIKey, opts...), func() {}, nil
	}
}
