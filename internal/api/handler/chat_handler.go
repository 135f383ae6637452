package handler

import (
	"github.com/gin-gonic/gin"

	"allumni-network/internal/dto"
	"allumni-network/internal/service"
	"allumni-network/pkg/response"
)

// ChatHandler 聊天模块 HTTP 处理器
type ChatHandler struct {
	chatSvc service.ChatService
}

// NewChatHandler 创建 ChatHandler
func NewChatHandler(chatSvc service.ChatService) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc}
}

// ListPrivate 两个用户之间的私信
// GET /api/chat/privado/:userId1/:userId2
func (h *ChatHandler) ListPrivate(c *gin.Context) {
	a, ok := pathID(c, "userId1")
	if !ok {
		return
	}
	b, ok := pathID(c, "userId2")
	if !ok {
		return
	}

	msgs, err := h.chatSvc.ListPrivate(c.Request.Context(), a, b)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, msgs)
}

// ListGroup 群消息；?since=<id> 只返回更新的消息
// GET /api/chat/grupo/:grupoId
func (h *ChatHandler) ListGroup(c *gin.Context) {
	groupID, ok := pathID(c, "grupoId")
	if !ok {
		return
	}

	var q dto.GroupMessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, msgInvalidBody)
		return
	}

	msgs, err := h.chatSvc.ListGroup(c.Request.Context(), groupID, q.Since)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, msgs)
}

// Send 发送消息
// POST /api/chat/enviar
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	req.SenderID = actingID(c, req.SenderID)

	id, err := h.chatSvc.Send(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"mensagemId": id})
}
