package entity

// 订单状态，JO 与 DO 共用
const (
	StatusPreparing  = "Preparing"
	StatusDelivering = "Delivering"
	StatusCompleted  = "Completed"
	StatusCanceled   = "Canceled"
)

// 状态事件
const (
	EventCreate   = "create"
	EventConfirm  = "confirm"
	EventComplete = "complete"
	EventCancel   = "cancel"
)

var transitions = map[string]map[string]string{
	StatusPreparing: {
		EventConfirm: StatusDelivering,
		EventCancel:  StatusCanceled,
	},
	StatusDelivering: {
		EventComplete: StatusCompleted,
		EventCancel:   StatusCanceled,
	},
}

// NextStatus 返回 current 在 event 下的目标状态；不允许的迁移返回 false
func NextStatus(current, event string) (string, bool) {
	next, ok := transitions[current][event]
	return next, ok
}
