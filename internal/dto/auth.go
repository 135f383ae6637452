package dto

// ── 认证模块 DTO ──

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name           string  `json:"nome"`
	Email          string  `json:"email"`
	Password       string  `json:"senha"`
	Course         *string `json:"curso"`
	GraduationYear *int    `json:"ano_formatura" binding:"omitempty,gte=1900,lte=2100"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// SessionUser 登录后返回的当前用户（附带资料）
type SessionUser struct {
	UserView
	Profile ProfileView `json:"perfil"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Success bool        `json:"success"`
	User    SessionUser `json:"user"`
	Token   string      `json:"token,omitempty"` // 未配置 JWT 时为空
}
