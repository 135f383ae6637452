package dto

import (
	"encoding/json"
	"time"
)

// ── 用户与资料 DTO ──

// UserView 用户信息（脱敏，不含密码）
type UserView struct {
	ID             int64     `json:"id"`
	Name           string    `json:"nome"`
	Email          string    `json:"email"`
	Course         *string   `json:"curso"`
	GraduationYear *int      `json:"ano_formatura"`
	AccountType    string    `json:"tipo"`
	IsAdmin        bool      `json:"is_admin"`
	Status         string    `json:"status_conta"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProfileView 用户资料；尚未创建资料时输出为 {}
type ProfileView struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"usuario_id"`
	Bio         *string   `json:"bio"`
	LinkedinURL *string   `json:"linkedin_url"`
	GithubURL   *string   `json:"github_url"`
	Phone       *string   `json:"telefone"`
	Employer    *string   `json:"empresa_atual"`
	JobTitle    *string   `json:"cargo_atual"`
	Photo       *string   `json:"foto_perfil"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Empty 资料是否尚未创建
func (p ProfileView) Empty() bool { return p.ID == 0 }

func (p ProfileView) MarshalJSON() ([]byte, error) {
	if p.Empty() {
		return []byte("{}"), nil
	}
	type plain ProfileView
	return json.Marshal(plain(p))
}

// ProfileResponse GET /perfil/:userId
type ProfileResponse struct {
	User    UserView    `json:"user"`
	Profile ProfileView `json:"perfil"`
}

// UpdateProfileRequest 更新资料请求
// 用户字段仅在非空时生效；资料字段出现即生效（可置空）
type UpdateProfileRequest struct {
	Name           string  `json:"nome"`
	Course         string  `json:"curso"`
	GraduationYear *int    `json:"ano_formatura" binding:"omitempty,gte=1900,lte=2100"`
	Bio            *string `json:"bio"`
	LinkedinURL    *string `json:"linkedin_url"`
	GithubURL      *string `json:"github_url"`
	Phone          *string `json:"telefone"`
	Employer       *string `json:"empresa_atual"`
	JobTitle       *string `json:"cargo_atual"`
	Photo          *string `json:"foto_perfil"`
}
