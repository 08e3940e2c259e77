package repositories

import (
	"context"

	"github.com/Viniciustertuliano/photovault/config"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}

type GormRepositories struct {
	db    *gorm.DB
	redis *redis.Client
	cfg   config.RedisConfig
}

// NewGormRepositories wires the relational repositories. A nil redisClient
// disables the share access history.
func NewGormRepositories(db *gorm.DB, redisClient *redis.Client, cfg config.RedisConfig) *GormRepositories {
	return &GormRepositories{db: db, redis: redisClient, cfg: cfg}
}

func (r *GormRepositories) BuildContainer() Container {
	var accessLog ShareAccessLogRepository = NoopShareAccessLogRepository{}
	if r.redis != nil {
		accessLog = NewRedisShareAccessLogRepository(r.redis, r.cfg.AccessLogSize, r.cfg.AccessLogExpire)
	}

	return Container{
		TxManager:     NewGormTxManager(r.db),
		Photographers: NewGormPhotographerRepository(r.db),
		Clients:       NewGormClientRepository(r.db),
		Folders:       NewGormFolderRepository(r.db),
		Files:         NewGormFileRepository(r.db),
		ShareLinks:    NewGormShareLinkRepository(r.db),
		AccessLog:     accessLog,
	}
}

func useTx(ctx context.Context, db *gorm.DB, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
