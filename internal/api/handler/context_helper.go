package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"allumni-network/internal/api/middleware"
	"allumni-network/internal/dto"
	apperrors "allumni-network/pkg/errors"
	"allumni-network/pkg/jwt"
	"allumni-network/pkg/response"
)

// ── 请求错误文案 ──

const (
	msgInvalidBody = "Dados inválidos"
	msgInvalidID   = "ID inválido"
	msgBodyTooBig  = "Requisição muito grande"
)

// errNotOwner 已登录用户尝试修改他人资料
var errNotOwner = apperrors.Forbidden("Você só pode editar seu próprio perfil")

// handleError 业务错误统一映射为 HTTP 响应
func handleError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		_ = c.Error(err)
	}
	response.Error(c, apperrors.HTTPStatus(kind), apperrors.MessageOf(err))
}

// bindFailed 请求体绑定失败
func bindFailed(c *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, msgBodyTooBig)
		return
	}
	response.BadRequest(c, msgInvalidBody)
}

// bindJSON 绑定 JSON 请求体；空请求体视为空对象
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		bindFailed(c, err)
		return false
	}
	return true
}

// pathID 解析路径中的整数 ID
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, msgInvalidID)
		return 0, false
	}
	return id, true
}

// sessionUserID 会话中的用户 ID；无会话时为 0
func sessionUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.CtxUserID)
}

// actingID 执行操作的用户：有会话时以会话为准，否则使用请求中声明的 ID
func actingID(c *gin.Context, declared int64) int64 {
	if id := sessionUserID(c); id != 0 {
		return id
	}
	return declared
}

// adminID 从查询参数或请求体中读取 adminId
func adminID(c *gin.Context) (int64, bool) {
	var req dto.AdminActionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return 0, false
	}
	if req.AdminID == 0 && c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return 0, false
		}
	}
	return actingID(c, req.AdminID), true
}

// MustGetClaims 从 Gin 上下文中提取会话 Claims。
// 会话中间件未注入时写入 401，调用方应在 ok=false 时直接 return。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.CtxClaims)
	if !exists {
		response.Unauthorized(c, "Sessão não informada")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, "Sessão não informada")
		return nil, false
	}
	return claims, true
}
