package handler

import (
	"github.com/bitfantasy/nimo-fab/internal/oms/service"
	"github.com/gin-gonic/gin"
)

// OrderHandler 工单处理器
type OrderHandler struct {
	orders    *service.OrderService
	status    *service.StatusService
	dashboard *service.DashboardService
}

func NewOrderHandler(orders *service.OrderService, status *service.StatusService, dashboard *service.DashboardService) *OrderHandler {
	return &OrderHandler{orders: orders, status: status, dashboard: dashboard}
}

// List 工单看板
// GET /api/v1/orders?month=3&year=2026&status=Preparing
func (h *OrderHandler) List(c *gin.Context) {
	var q service.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	rows, err := h.dashboard.ListOrders(c.Request.Context(), q)
	if err != nil {
		ServiceError(c, "获取工单列表", err)
		return
	}
	Success(c, rows)
}

// Create 创建工单草稿
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	jo, err := h.orders.CreateDraft(c.Request.Context(), GetOperator(c), &req)
	if err != nil {
		ServiceError(c, "创建工单", err)
		return
	}
	Created(c, jo)
}

// Get 工单详情
// GET /api/v1/orders/:jo
func (h *OrderHandler) Get(c *gin.Context) {
	jo, err := h.orders.GetOrder(c.Request.Context(), c.Param("jo"))
	if err != nil {
		ServiceError(c, "获取工单", err)
		return
	}
	Success(c, jo)
}

// History 工单状态变更记录
// GET /api/v1/orders/:jo/history
func (h *OrderHandler) History(c *gin.Context) {
	logs, err := h.orders.History(c.Request.Context(), c.Param("jo"))
	if err != nil {
		ServiceError(c, "获取变更记录", err)
		return
	}
	Success(c, logs)
}

// Confirm 确认工单并生成送货单
// POST /api/v1/orders/:jo/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	res, err := h.orders.Confirm(c.Request.Context(), GetOperator(c), c.Param("jo"))
	if err != nil {
		ServiceError(c, "确认工单", err)
		return
	}
	Success(c, res)
}

// Complete 完成工单
// POST /api/v1/orders/:jo/complete
func (h *OrderHandler) Complete(c *gin.Context) {
	res, err := h.status.Complete(c.Request.Context(), GetOperator(c), c.Param("jo"))
	if err != nil {
		ServiceError(c, "完成工单", err)
		return
	}
	Success(c, res)
}

// Cancel 取消工单
// POST /api/v1/orders/:jo/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	res, err := h.status.Cancel(c.Request.Context(), GetOperator(c), c.Param("jo"))
	if err != nil {
		ServiceError(c, "取消工单", err)
		return
	}
	Success(c, res)
}
