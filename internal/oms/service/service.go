package service

import (
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"go.uber.org/zap"
)

const (
	timestampLayout = "2006-01-02T15:04:05"
	dateLayout      = "2006-01-02"
)

// Clock 当前时间来源
type Clock func() time.Time

// Services OMS服务集合
type Services struct {
	Master    *MasterService
	Order     *OrderService
	Status    *StatusService
	Delivery  *DeliveryService
	Dashboard *DashboardService
	Import    *MasterImportService
}

// NewServices 创建OMS服务集合
func NewServices(repos *repository.Repositories, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	var recorder TransitionRecorder
	if repos.TransitionLog != nil {
		recorder = repos.TransitionLog
	}
	audit := newAuditor(recorder, logger)

	master := NewMasterService(repos.Master, logger)
	return &Services{
		Master:    master,
		Order:     NewOrderService(repos, master, audit, logger),
		Status:    NewStatusService(repos, audit, logger),
		Delivery:  NewDeliveryService(repos.DeliveryOrder, logger),
		Dashboard: NewDashboardService(repos.JobOrder),
		Import:    NewMasterImportService(repos.Master, logger),
	}
}

// SetClock 替换所有服务的时间来源
func (s *Services) SetClock(now Clock) {
	s.Order.now = now
	s.Status.now = now
	s.Dashboard.now = now
}
