package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "allumni-network/pkg/errors"
)

// ErrorBody 错误响应体，所有失败接口统一为 {"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// ── 成功响应 ──

// OK 200，直接输出数据本身（不加外层包装）
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Success 200 {"success": true, ...extra}
func Success(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}

// AbortWithError 输出错误并中止后续处理
func AbortWithError(c *gin.Context, httpStatus int, message string) {
	c.AbortWithStatusJSON(httpStatus, ErrorBody{Error: message})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError 500 并中止，不向客户端暴露内部细节
func InternalError(c *gin.Context) {
	AbortWithError(c, http.StatusInternalServerError, apperrors.InternalMessage)
}
