package model

import "time"

// Profile 用户资料表，对应 perfis（与 usuarios 一对一）
type Profile struct {
	Key
	UserID      int64     `gorm:"column:usuario_id;not null;unique" json:"usuario_id"`
	Bio         *string   `gorm:"column:bio;type:text"              json:"bio"`
	LinkedinURL *string   `gorm:"column:linkedin_url;type:text"     json:"linkedin_url"`
	GithubURL   *string   `gorm:"column:github_url;type:text"       json:"github_url"`
	Phone       *string   `gorm:"column:telefone;type:varchar(30)"  json:"telefone"`
	Employer    *string   `gorm:"column:empresa_atual;type:text"    json:"empresa_atual"`
	JobTitle    *string   `gorm:"column:cargo_atual;type:text"      json:"cargo_atual"`
	Photo       *string   `gorm:"column:foto_perfil;type:text"      json:"foto_perfil"` // data-URI
	CreatedAt   time.Time `gorm:"column:created_at;not null"        json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"        json:"updated_at"`
}

// TableName 指定表名
func (Profile) TableName() string { return "perfis" }
