package handler

import (
	"github.com/gin-gonic/gin"

	"allumni-network/internal/dto"
	"allumni-network/internal/model"
	"allumni-network/internal/service"
	"allumni-network/pkg/response"
)

// AdminHandler 管理模块 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// ListUsers 用户列表
// GET /api/admin/usuarios?userId=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.AdminUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}

	users, err := h.adminSvc.ListUsers(c.Request.Context(), actingID(c, q.UserID))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, users)
}

// userAction 针对目标用户的管理操作
func (h *AdminHandler) userAction(c *gin.Context, message string, fn func(targetID, adminID int64) error) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	admin, ok := adminID(c)
	if !ok {
		return
	}

	if err := fn(targetID, admin); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": message})
}

// CloseAccount 关闭账号（删除账号及其数据）
// PUT /api/admin/usuarios/:id/fechar
func (h *AdminHandler) CloseAccount(c *gin.Context) {
	h.userAction(c, "Conta fechada com sucesso", func(targetID, admin int64) error {
		return h.adminSvc.CloseAccount(c.Request.Context(), targetID, admin)
	})
}

// SuspendAccount 暂停账号
// PUT /api/admin/usuarios/:id/suspender
func (h *AdminHandler) SuspendAccount(c *gin.Context) {
	h.userAction(c, "Conta suspensa com sucesso", func(targetID, admin int64) error {
		return h.adminSvc.SetAccountStatus(c.Request.Context(), targetID, admin, model.AccountClosed)
	})
}

// ReopenAccount 恢复账号
// PUT /api/admin/usuarios/:id/reabrir
func (h *AdminHandler) ReopenAccount(c *gin.Context) {
	h.userAction(c, "Conta reaberta com sucesso", func(targetID, admin int64) error {
		return h.adminSvc.SetAccountStatus(c.Request.Context(), targetID, admin, model.AccountActive)
	})
}

// Promote 授予管理员
// PUT /api/admin/usuarios/:id/tornar-admin
func (h *AdminHandler) Promote(c *gin.Context) {
	h.userAction(c, "Usuário promovido a administrador", func(targetID, admin int64) error {
		return h.adminSvc.Promote(c.Request.Context(), targetID, admin)
	})
}

// Demote 撤销管理员
// PUT /api/admin/usuarios/:id/remover-admin
func (h *AdminHandler) Demote(c *gin.Context) {
	h.userAction(c, "Privilégios de administrador removidos", func(targetID, admin int64) error {
		return h.adminSvc.Demote(c.Request.Context(), targetID, admin)
	})
}

// RemoveJob 删除职位及其申请
// DELETE /api/admin/vagas/:id
func (h *AdminHandler) RemoveJob(c *gin.Context) {
	h.userAction(c, "Vaga removida com sucesso", func(jobID, admin int64) error {
		return h.adminSvc.RemoveJob(c.Request.Context(), jobID, admin)
	})
}

// RemoveGroup 删除群组及其成员关系、消息
// DELETE /api/admin/grupos/:id
func (h *AdminHandler) RemoveGroup(c *gin.Context) {
	h.userAction(c, "Grupo removido com sucesso", func(groupID, admin int64) error {
		return h.adminSvc.RemoveGroup(c.Request.Context(), groupID, admin)
	})
}
