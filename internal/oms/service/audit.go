package service

import (
	"context"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/shared/metrics"
	"go.uber.org/zap"
)

// TransitionRecorder 状态变更审计的写入端
type TransitionRecorder interface {
	Create(ctx context.Context, log *entity.TransitionLog) error
}

type auditor struct {
	recorder TransitionRecorder
	logger   *zap.Logger
}

func newAuditor(recorder TransitionRecorder, logger *zap.Logger) *auditor {
	return &auditor{recorder: recorder, logger: logger}
}

// record 写审计日志；失败只记日志，不影响业务结果
func (a *auditor) record(ctx context.Context, log *entity.TransitionLog) {
	a.logger.Info("job order transition",
		zap.String("jo_number", log.EntityID),
		zap.String("event", log.Event),
		zap.String("from", log.FromState),
		zap.String("to", log.ToState),
		zap.String("operator", log.TriggeredBy),
	)
	metrics.RecordTransition(log.Event, log.ToState)
	if a.recorder == nil {
		return
	}
	log.EntityType = entity.EntityTypeJobOrder
	if err := a.recorder.Create(context.WithoutCancel(ctx), log); err != nil {
		a.logger.Warn("record transition failed", zap.String("jo_number", log.EntityID), zap.Error(err))
	}
}
