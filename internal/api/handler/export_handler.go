package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"allumni-network/internal/dto"
	"allumni-network/internal/service"
	"allumni-network/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportUsers 导出用户列表
// GET /api/admin/usuarios/export?userId=
func (h *ExportHandler) ExportUsers(c *gin.Context) {
	var q dto.AdminUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}

	buf, filename, err := h.exportSvc.ExportUsers(c.Request.Context(), actingID(c, q.UserID))
	if err != nil {
		handleError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", filename, url.PathEscape(filename)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
