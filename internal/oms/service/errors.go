package service

import (
	"errors"
	"fmt"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError 请求字段校验失败
type ValidationError struct {
	Field   string
	Message string // 为空时使用 "Missing required field: <Field>"
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Missing required field: " + e.Field
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// 查找对象类型
const (
	KindJobOrder      = "job_order"
	KindDeliveryOrder = "delivery_order"
	KindClient        = "client"
	KindItem          = "item"
)

// NotFoundError 工单、送货单或主数据不存在
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case KindJobOrder:
		return "JO number not found: " + e.Key
	case KindDeliveryOrder:
		return "DO number not found: " + e.Key
	case KindClient:
		return "Client code not found in masterlist: " + e.Key
	case KindItem:
		return "Item code not found in masterlist: " + e.Key
	}
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TransitionError 当前状态不允许该操作
type TransitionError struct {
	JONumber string
	Status   string
	Event    string
}

func (e *TransitionError) Error() string {
	var rule string
	switch e.Event {
	case entity.EventConfirm:
		rule = "Only Preparing orders can be confirmed"
	case entity.EventComplete:
		rule = "Only Delivering orders can be completed"
	case entity.EventCancel:
		rule = "Only Preparing or Delivering orders can be canceled"
	default:
		rule = "Transition " + e.Event + " not allowed"
	}
	return fmt.Sprintf("%s (%s is %s)", rule, e.JONumber, e.Status)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
