package handler

import "github.com/gin-gonic/gin"

// RegisterRoutes 注册 OMS 路由
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:jo", h.Order.Get)
		orders.GET("/:jo/history", h.Order.History)
		orders.POST("/:jo/confirm", h.Order.Confirm)
		orders.POST("/:jo/complete", h.Order.Complete)
		orders.POST("/:jo/cancel", h.Order.Cancel)
	}

	delivery := rg.Group("/delivery")
	{
		delivery.GET("/:do", h.Delivery.Get)
		delivery.GET("/:do/export", h.Delivery.Export)
	}

	rg.GET("/clients/:code", h.Master.GetClient)
	rg.GET("/items/:code", h.Master.GetItem)
	rg.POST("/masters/:kind/import", h.Master.Import)
}
