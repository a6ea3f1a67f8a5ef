package entity

import "time"

// TransitionLog 订单状态变更审计
type TransitionLog struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	EntityType  string    `json:"entity_type" gorm:"size:32;not null;index:idx_transition_entity"` // job_order
	EntityID    string    `json:"entity_id" gorm:"size:32;not null;index:idx_transition_entity"`   // jo_number
	Event       string    `json:"event" gorm:"size:20;not null"`                                  // create/confirm/complete/cancel
	FromState   string    `json:"from_state" gorm:"size:20"`
	ToState     string    `json:"to_state" gorm:"size:20"`
	TriggeredBy string    `json:"triggered_by" gorm:"size:64"`
	Detail      string    `json:"detail" gorm:"size:64"` // 确认时记录 DO 号
	CreatedAt   time.Time `json:"created_at"`
}

func (TransitionLog) TableName() string {
	return "oms_transition_logs"
}

const EntityTypeJobOrder = "job_order"
