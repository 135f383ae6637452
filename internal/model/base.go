package model

// Key 自增整数主键（所有集合共用）
type Key struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
}

// PrimaryKey 返回主键
func (k *Key) PrimaryKey() int64 { return k.ID }

// SetPrimaryKey 写入存储分配的主键
func (k *Key) SetPrimaryKey(id int64) { k.ID = id }

// ── 枚举值（与历史数据保持一致，使用葡萄牙语取值）──

// 账号状态
const (
	AccountActive = "ativa"
	AccountClosed = "fechada"
)

// 账号类型
const (
	AccountTypeAlumni = "ex_estudante"
	AccountTypeAdmin  = "admin"
)

// 职位状态
const JobActive = "ativa"

// 群组类型
const GroupPublic = "publico"

// 群组成员角色
const (
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "membro"
)

// UnknownName 关联用户已不存在时的占位名称
const UnknownName = "Desconhecido"
