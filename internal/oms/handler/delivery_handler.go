package handler

import (
	"github.com/bitfantasy/nimo-fab/internal/oms/service"
	"github.com/gin-gonic/gin"
)

// DeliveryHandler 送货单处理器
type DeliveryHandler struct {
	svc *service.DeliveryService
}

func NewDeliveryHandler(svc *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

// Get 送货单详情
// GET /api/v1/delivery/:do
func (h *DeliveryHandler) Get(c *gin.Context) {
	do, err := h.svc.GetDelivery(c.Request.Context(), c.Param("do"))
	if err != nil {
		ServiceError(c, "获取送货单", err)
		return
	}
	Success(c, do)
}

// Export 导出送货单 Excel
// GET /api/v1/delivery/:do/export
func (h *DeliveryHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.ExportDeliveryNote(c.Request.Context(), c.Param("do"))
	if err != nil {
		ServiceError(c, "导出送货单", err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		c.Error(err)
	}
}
