package dto

// ── 管理模块 DTO ──

// AdminActionRequest 管理操作请求；adminId 可来自请求体或查询参数
type AdminActionRequest struct {
	AdminID int64 `json:"adminId" form:"adminId"`
}

// AdminUsersQuery 用户列表查询参数
type AdminUsersQuery struct {
	UserID int64 `form:"userId"`
}
