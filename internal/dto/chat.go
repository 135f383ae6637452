package dto

import "time"

// ── 聊天模块 DTO ──

// SendMessageRequest 发送消息请求
// RecipientID 与 GroupID 二选一
type SendMessageRequest struct {
	SenderID    int64   `json:"remetente_id"`
	RecipientID *int64  `json:"destinatario_id"`
	GroupID     *int64  `json:"grupo_id"`
	Content     string  `json:"conteudo"`
	Kind        string  `json:"tipo"`
	Payload     *string `json:"arquivo_url"` // data-URI
}

// GroupMessagesQuery 群消息查询参数
type GroupMessagesQuery struct {
	Since int64 `form:"since" binding:"omitempty,gte=0"` // 仅返回 id 大于该值的消息
}

// MessageView 消息（含发送者名称）
type MessageView struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"remetente_id"`
	RecipientID *int64    `json:"destinatario_id"`
	GroupID     *int64    `json:"grupo_id"`
	Content     string    `json:"conteudo"`
	Kind        string    `json:"tipo"`
	Payload     *string   `json:"arquivo_url"`
	CreatedAt   time.Time `json:"created_at"`
	SenderName  string    `json:"remetente_nome"`
}
