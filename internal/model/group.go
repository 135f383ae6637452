package model

import "time"

// Group 群组表，对应 grupos
type Group struct {
	Key
	Name        string    `gorm:"column:nome;type:varchar(150);not null" json:"nome"`
	Description *string   `gorm:"column:descricao;type:text"             json:"descricao"`
	CreatedBy   int64     `gorm:"column:criado_por;not null;index"       json:"criado_por"`
	Type        string    `gorm:"column:tipo;type:varchar(20);not null"  json:"tipo"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"             json:"created_at"`
}

// TableName 指定表名
func (Group) TableName() string { return "grupos" }

// Membership 群组成员表，对应 grupo_membros，(grupo_id, usuario_id) 唯一
type Membership struct {
	Key
	GroupID  int64     `gorm:"column:grupo_id;not null;uniqueIndex:uq_grupo_usuario"   json:"grupo_id"`
	UserID   int64     `gorm:"column:usuario_id;not null;uniqueIndex:uq_grupo_usuario" json:"usuario_id"`
	Role     string    `gorm:"column:role;type:varchar(10);not null"                   json:"role"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"                               json:"joined_at"`
}

// TableName 指定表名
func (Membership) TableName() string { return "grupo_membros" }
