package dto

import "time"

// ── 群组模块 DTO ──

// CreateGroupRequest 创建群组请求
type CreateGroupRequest struct {
	Name        string  `json:"nome"`
	Description *string `json:"descricao"`
	CreatedBy   int64   `json:"criado_por"`
	Type        string  `json:"tipo"`
}

// JoinGroupRequest 加入群组请求
type JoinGroupRequest struct {
	UserID int64 `json:"usuario_id"`
}

// GroupView 群组信息；Role 仅在按用户查询时返回
type GroupView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nome"`
	Description *string   `json:"descricao"`
	CreatedBy   int64     `json:"criado_por"`
	Type        string    `json:"tipo"`
	CreatedAt   time.Time `json:"created_at"`
	CreatorName string    `json:"criador_nome"`
	MemberCount int       `json:"total_membros"`
	Role        string    `json:"role,omitempty"`
}

// MemberView 群组成员
type MemberView struct {
	ID       int64     `json:"id"` // 用户 ID
	Name     string    `json:"nome"`
	Email    string    `json:"email"`
	Course   *string   `json:"curso"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
