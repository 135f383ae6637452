package model

import "time"

// User 用户表，对应 usuarios
type User struct {
	Key
	Name           string    `gorm:"column:nome;type:varchar(100);not null"           json:"nome"`
	Email          string    `gorm:"column:email;type:varchar(255);not null;unique"   json:"email"`
	PasswordHash   string    `gorm:"column:senha;type:varchar(255);not null"          json:"senha"`
	Course         *string   `gorm:"column:curso;type:varchar(150)"                   json:"curso"`
	GraduationYear *int      `gorm:"column:ano_formatura"                             json:"ano_formatura"`
	AccountType    string    `gorm:"column:tipo;type:varchar(30);not null"            json:"tipo"`
	IsAdmin        bool      `gorm:"column:is_admin;not null"                         json:"is_admin"`
	Status         string    `gorm:"column:status_conta;type:varchar(10);not null"    json:"status_conta"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"                       json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"                       json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "usuarios" }

// Active 账号是否处于正常状态
func (u *User) Active() bool { return u.Status != AccountClosed }
