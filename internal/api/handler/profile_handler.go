package handler

import (
	"github.com/gin-gonic/gin"

	"allumni-network/internal/dto"
	"allumni-network/internal/service"
	"allumni-network/pkg/response"
)

// ProfileHandler 资料模块 HTTP 处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// GetProfile 查看资料
// GET /api/perfil/:userId
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	result, err := h.profileSvc.Get(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateProfile 更新资料（部分更新）
// PUT /api/perfil/:userId
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	// 已登录时只能修改自己的资料
	if sid := sessionUserID(c); sid != 0 && sid != userID {
		handleError(c, errNotOwner)
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.profileSvc.Update(c.Request.Context(), userID, &req); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Perfil atualizado com sucesso"})
}
