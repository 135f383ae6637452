package dto

import "time"

// ── 职位模块 DTO ──

// CreateJobRequest 发布职位请求
type CreateJobRequest struct {
	Title          string   `json:"titulo"`
	Description    *string  `json:"descricao"`
	Company        string   `json:"empresa"`
	Location       *string  `json:"localizacao"`
	EmploymentType *string  `json:"tipo_emprego"`
	SalaryMin      *float64 `json:"salario_min" binding:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salario_max" binding:"omitempty,gte=0"`
	Requirements   *string  `json:"requisitos"`
	CreatedBy      int64    `json:"criado_por"`
}

// ApplyRequest 申请职位请求
type ApplyRequest struct {
	UserID  int64   `json:"usuario_id"`
	Message *string `json:"mensagem"`
}

// JobView 职位信息（含创建者名称）
type JobView struct {
	ID             int64     `json:"id"`
	Title          string    `json:"titulo"`
	Description    *string   `json:"descricao"`
	Company        string    `json:"empresa"`
	Location       *string   `json:"localizacao"`
	EmploymentType *string   `json:"tipo_emprego"`
	SalaryMin      *float64  `json:"salario_min"`
	SalaryMax      *float64  `json:"salario_max"`
	Requirements   *string   `json:"requisitos"`
	CreatedBy      int64     `json:"criado_por"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	CreatorName    string    `json:"criador_nome"`
}
