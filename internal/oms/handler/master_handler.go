package handler

import (
	"github.com/bitfantasy/nimo-fab/internal/oms/service"
	"github.com/gin-gonic/gin"
)

// MasterHandler 主数据处理器
type MasterHandler struct {
	master   *service.MasterService
	importer *service.MasterImportService
}

func NewMasterHandler(master *service.MasterService, importer *service.MasterImportService) *MasterHandler {
	return &MasterHandler{master: master, importer: importer}
}

// GetClient 客户主数据
// GET /api/v1/clients/:code
func (h *MasterHandler) GetClient(c *gin.Context) {
	client, err := h.master.ResolveClient(c.Request.Context(), c.Param("code"))
	if err != nil {
		ServiceError(c, "获取客户", err)
		return
	}
	Success(c, client)
}

// GetItem 物料主数据
// GET /api/v1/items/:code
func (h *MasterHandler) GetItem(c *gin.Context) {
	item, err := h.master.ResolveItem(c.Request.Context(), c.Param("code"))
	if err != nil {
		ServiceError(c, "获取物料", err)
		return
	}
	Success(c, item)
}

// Import 上传 CSV 覆盖主数据
// POST /api/v1/masters/:kind/import  (multipart: file, encoding)
func (h *MasterHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "请上传CSV文件")
		return
	}
	defer file.Close()

	res, err := h.importer.ImportMasterCSV(c.Request.Context(), c.Param("kind"), file, c.PostForm("encoding"))
	if err != nil {
		ServiceError(c, "导入主数据", err)
		return
	}
	Success(c, res)
}
