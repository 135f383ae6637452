package model

import "time"

// Job 职位表，对应 vagas
type Job struct {
	Key
	Title          string    `gorm:"column:titulo;type:varchar(200);not null"  json:"titulo"`
	Description    *string   `gorm:"column:descricao;type:text"                json:"descricao"`
	Company        string    `gorm:"column:empresa;type:varchar(200);not null" json:"empresa"`
	Location       *string   `gorm:"column:localizacao;type:varchar(200)"      json:"localizacao"`
	EmploymentType *string   `gorm:"column:tipo_emprego;type:varchar(50)"      json:"tipo_emprego"`
	SalaryMin      *float64  `gorm:"column:salario_min"                        json:"salario_min"`
	SalaryMax      *float64  `gorm:"column:salario_max"                        json:"salario_max"`
	Requirements   *string   `gorm:"column:requisitos;type:text"               json:"requisitos"`
	CreatedBy      int64     `gorm:"column:criado_por;not null;index"          json:"criado_por"` // 创建者删除后保留悬空引用
	Status         string    `gorm:"column:status;type:varchar(10);not null"   json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"                json:"created_at"`
}

// TableName 指定表名
func (Job) TableName() string { return "vagas" }

// Application 职位申请表，对应 candidaturas，(vaga_id, usuario_id) 唯一
type Application struct {
	Key
	JobID     int64     `gorm:"column:vaga_id;not null;uniqueIndex:uq_candidatura"    json:"vaga_id"`
	UserID    int64     `gorm:"column:usuario_id;not null;uniqueIndex:uq_candidatura" json:"usuario_id"`
	Message   *string   `gorm:"column:mensagem;type:text"                             json:"mensagem"`
	CreatedAt time.Time `gorm:"column:created_at;not null"                            json:"created_at"`
}

// TableName 指定表名
func (Application) TableName() string { return "candidaturas" }
