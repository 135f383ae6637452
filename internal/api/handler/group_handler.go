package handler

import (
	"github.com/gin-gonic/gin"

	"allumni-network/internal/dto"
	"allumni-network/internal/service"
	"allumni-network/pkg/response"
)

// GroupHandler 群组模块 HTTP 处理器
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建 GroupHandler
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// ListGroups 全部群组
// GET /api/grupos
func (h *GroupHandler) ListGroups(c *gin.Context) {
	groups, err := h.groupSvc.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, groups)
}

// ListUserGroups 用户所在的群组
// GET /api/grupos/usuario/:userId
func (h *GroupHandler) ListUserGroups(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	groups, err := h.groupSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, groups)
}

// CreateGroup 创建群组
// POST /api/grupos
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	req.CreatedBy = actingID(c, req.CreatedBy)

	id, err := h.groupSvc.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"grupoId": id})
}

// JoinGroup 加入群组
// POST /api/grupos/:id/entrar
func (h *GroupHandler) JoinGroup(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.JoinGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	req.UserID = actingID(c, req.UserID)

	id, err := h.groupSvc.Join(c.Request.Context(), groupID, &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"membroId": id})
}

// ListMembers 群组成员
// GET /api/grupos/:id/membros
func (h *GroupHandler) ListMembers(c *gin.Context) {
	groupID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.groupSvc.ListMembers(c.Request.Context(), groupID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, members)
}
