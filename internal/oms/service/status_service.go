package service

import (
	"context"
	"errors"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
	"go.uber.org/zap"
)

// StatusService 工单完成与取消
type StatusService struct {
	repos  *repository.Repositories
	audit  *auditor
	logger *zap.Logger
	now    Clock
}

func NewStatusService(repos *repository.Repositories, audit *auditor, logger *zap.Logger) *StatusService {
	return &StatusService{repos: repos, audit: audit, logger: logger, now: time.Now}
}

// StatusResult 状态变更结果
type StatusResult struct {
	JONumber string `json:"jo_number"`
	Status   string `json:"status"`
}

// Complete 完成工单（Delivering -> Completed），同步送货单
func (s *StatusService) Complete(ctx context.Context, operator, joNumber string) (*StatusResult, error) {
	return s.transition(ctx, operator, joNumber, entity.EventComplete)
}

// Cancel 取消工单（Preparing/Delivering -> Canceled），同步送货单
func (s *StatusService) Cancel(ctx context.Context, operator, joNumber string) (*StatusResult, error) {
	return s.transition(ctx, operator, joNumber, entity.EventCancel)
}

func (s *StatusService) transition(ctx context.Context, operator, joNumber, event string) (*StatusResult, error) {
	var from, to string
	tables := s.repos.Tables
	err := s.repos.Store.Transaction(ctx, func(tx *sheet.Tx) error {
		joRepo := s.repos.JobOrder.WithTx(tx)
		doRepo := s.repos.DeliveryOrder.WithTx(tx)

		jo, err := joRepo.FindByNumber(ctx, joNumber)
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: KindJobOrder, Key: joNumber}
		}
		if err != nil {
			return err
		}
		next, ok := entity.NextStatus(jo.Status, event)
		if !ok {
			return &TransitionError{JONumber: joNumber, Status: jo.Status, Event: event}
		}

		now := s.now()
		ts := now.Format(timestampLayout)
		today := now.Format(dateLayout)

		from, to = jo.Status, next
		jo.Status = next
		jo.CompleteDate = today
		jo.UpdatedAt = ts
		if err := joRepo.Update(ctx, jo); err != nil {
			return err
		}

		mirrored, err := doRepo.MirrorStatus(ctx, joNumber, next, today, ts)
		if err != nil {
			return err
		}
		if mirrored > 0 {
			s.logger.Debug("delivery order status mirrored", zap.String("jo_number", joNumber), zap.String("status", next))
		}
		return nil
	}, tables.JobOrders, tables.DeliveryOrders)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, &entity.TransitionLog{
		EntityID:    joNumber,
		Event:       event,
		FromState:   from,
		ToState:     to,
		TriggeredBy: operator,
	})
	return &StatusResult{JONumber: joNumber, Status: to}, nil
}
