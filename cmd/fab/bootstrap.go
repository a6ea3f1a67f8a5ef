package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/bitfantasy/nimo-fab/internal/config"
	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/bitfantasy/nimo-fab/internal/oms/service"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// app 一次命令运行所需的全部依赖
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	rdb      *redis.Client
	repos    *repository.Repositories
	services *service.Services
}

// loadApp 加载 .env 与配置文件后初始化依赖
func loadApp(ctx context.Context, configPath string) (*app, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newApp(ctx, cfg)
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	a := &app{cfg: cfg, logger: zapLogger}

	blobs, err := initBlobStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	var locker sheet.Locker
	if cfg.Redis.Host != "" {
		a.rdb = initRedis(cfg.Redis)
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		locker = sheet.NewRedisLocker(a.rdb, cfg.Redis.LockPrefix, cfg.Redis.LockTTL)
	} else {
		// serve 与 CLI 共用同一目录时靠文件锁串行化
		locker = sheet.NewFileLocker(cfg.Storage.DataDir)
	}

	if cfg.Database.Driver != "" {
		a.db, err = initDatabase(cfg.Database)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	store := sheet.NewStore(blobs, locker, zapLogger.Named("sheet"))
	a.repos = repository.NewRepositories(store, cfg.TableLocations(), a.db)
	if a.repos.TransitionLog != nil {
		if err := a.repos.TransitionLog.AutoMigrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to auto-migrate transition log: %w", err)
		}
	}
	a.services = service.NewServices(a.repos, zapLogger.Named("oms"))
	return a, nil
}

// Close 释放数据库与 Redis 连接
func (a *app) Close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if a.rdb != nil {
		a.rdb.Close()
	}
	a.logger.Sync()
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

func initBlobStore(ctx context.Context, cfg *config.Config) (sheet.BlobStore, error) {
	if cfg.Storage.Driver == "minio" {
		store, err := sheet.NewMinIOStore(ctx, sheet.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			Prefix:    cfg.MinIO.Prefix,
			UseSSL:    cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init minio: %w", err)
		}
		return store, nil
	}
	return sheet.NewDirStore(cfg.Storage.DataDir), nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
		)
		dialector = postgres.Open(dsn)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}
