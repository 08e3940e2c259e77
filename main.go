package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Viniciustertuliano/photovault/config"
	"github.com/Viniciustertuliano/photovault/database"
	"github.com/Viniciustertuliano/photovault/handlers"
	"github.com/Viniciustertuliano/photovault/logger"
	"github.com/Viniciustertuliano/photovault/middleware"
	"github.com/Viniciustertuliano/photovault/repositories"
	"github.com/Viniciustertuliano/photovault/services"
	"github.com/Viniciustertuliano/photovault/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(config.ConfigPath())
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Server.Mode == gin.DebugMode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer logger.Sync()
	logger.Info("starting photovault service", zap.String("mode", cfg.Server.Mode))

	if err := database.InitDB(&cfg.Database); err != nil {
		logger.Fatal("init database failed", zap.Error(err))
	}
	if err := database.Migrate(database.DB); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	logger.Info("database migration completed")

	ctx := context.Background()
	if err := database.InitRedis(ctx, &cfg.Redis); err != nil {
		logger.Fatal("init redis failed", zap.Error(err))
	}

	backend, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal("init storage failed", zap.Error(err))
	}
	if err := backend.EnsureRoot(ctx); err != nil {
		logger.Fatal("prepare storage failed", zap.String("backend", backend.Name()), zap.Error(err))
	}

	repoContainer := repositories.NewGormRepositories(database.DB, database.RedisClient, cfg.Redis).BuildContainer()
	handlers.SetServices(services.NewContainer(repoContainer, backend))

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	handlers.RegisterRoutes(r)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr), zap.String("storage", backend.Name()))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server start failed", zap.Error(err))
	}
}
