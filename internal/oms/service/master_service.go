package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"go.uber.org/zap"
)

// MasterService 主数据查询
type MasterService struct {
	repo   *repository.MasterRepository
	logger *zap.Logger
}

func NewMasterService(repo *repository.MasterRepository, logger *zap.Logger) *MasterService {
	return &MasterService{repo: repo, logger: logger}
}

// ResolveClient 获取客户快照
func (s *MasterService) ResolveClient(ctx context.Context, code string) (*entity.ClientSnapshot, error) {
	client, err := s.repo.FindClient(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("client lookup missed", zap.String("client_code", code), zap.Error(err))
		return nil, &NotFoundError{Kind: KindClient, Key: code}
	}
	if err != nil {
		return nil, fmt.Errorf("读取客户主数据失败: %w", err)
	}
	return client, nil
}

// ResolveItem 获取物料快照
func (s *MasterService) ResolveItem(ctx context.Context, code string) (*entity.ItemSnapshot, error) {
	item, err := s.repo.FindItem(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		s.logger.Debug("item lookup missed", zap.String("item_code", code), zap.Error(err))
		return nil, &NotFoundError{Kind: KindItem, Key: code}
	}
	if err != nil {
		return nil, fmt.Errorf("读取物料主数据失败: %w", err)
	}
	return item, nil
}

// ItemDescription 物料描述，查不到时返回空字符串
func (s *MasterService) ItemDescription(ctx context.Context, code string) string {
	item, err := s.repo.FindItem(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("item description lookup failed", zap.String("item_code", code), zap.Error(err))
		}
		return ""
	}
	return item.ItemDescription
}
