package handler

import (
	"errors"
	"net/http"

	"github.com/bitfantasy/nimo-fab/internal/middleware"
	"github.com/bitfantasy/nimo-fab/internal/oms/service"
	"github.com/gin-gonic/gin"
)

// Handlers OMS处理器集合
type Handlers struct {
	Order    *OrderHandler
	Delivery *DeliveryHandler
	Master   *MasterHandler
}

// NewHandlers 创建OMS处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Order:    NewOrderHandler(svc.Order, svc.Status, svc.Dashboard),
		Delivery: NewDeliveryHandler(svc.Delivery),
		Master:   NewMasterHandler(svc.Master, svc.Import),
	}
}

// === 响应辅助函数 ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 业务错误码，HTTP 状态码为 code/100
const (
	CodeValidation        = 40000
	CodeNotFound          = 40400
	CodeInvalidTransition = 40900
	CodeInternal          = 50000
)

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, CodeValidation, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, CodeInternal, message)
}

// ServiceError 按错误类型写响应；业务错误原样返回消息
func ServiceError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		Error(c, CodeValidation, err.Error())
	case errors.Is(err, service.ErrNotFound):
		Error(c, CodeNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTransition):
		Error(c, CodeInvalidTransition, err.Error())
	default:
		c.Error(err)
		InternalError(c, action+"失败: "+err.Error())
	}
}

// GetOperator 当前操作人
func GetOperator(c *gin.Context) string {
	return middleware.Operator(c)
}
