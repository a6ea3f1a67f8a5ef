package repository

import (
	"context"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransitionLogRepository 状态变更审计仓库
type TransitionLogRepository struct {
	db *gorm.DB
}

func NewTransitionLogRepository(db *gorm.DB) *TransitionLogRepository {
	return &TransitionLogRepository{db: db}
}

// AutoMigrate 建表
func (r *TransitionLogRepository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&entity.TransitionLog{})
}

// Create 记录一次状态变更
func (r *TransitionLogRepository) Create(ctx context.Context, log *entity.TransitionLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByJONumber 查询工单的状态变更记录，按时间正序
func (r *TransitionLogRepository) ListByJONumber(ctx context.Context, joNumber string) ([]entity.TransitionLog, error) {
	var logs []entity.TransitionLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entity.EntityTypeJobOrder, joNumber).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}

// Ping 检查数据库连接
func (r *TransitionLogRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
