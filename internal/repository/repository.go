package repository

import (
	"context"
	"errors"
	"fmt"
)

// ── 存储层通用错误 ──

var (
	ErrNotFound            = errors.New("记录不存在")
	ErrConstraintViolation = errors.New("违反唯一约束")
	ErrUnknownField        = errors.New("字段未建立索引")
	ErrUnknownCollection   = errors.New("未知的集合")
)

// Collection 记录集合名（关系库表名 / 嵌入式存储的对象仓库名）
type Collection string

const (
	Users        Collection = "usuarios"
	Profiles     Collection = "perfis"
	Jobs         Collection = "vagas"
	Applications Collection = "candidaturas"
	Groups       Collection = "grupos"
	Memberships  Collection = "grupo_membros"
	Messages     Collection = "mensagens"
)

// Record 由存储分配整数主键的记录
type Record interface {
	PrimaryKey() int64
	SetPrimaryKey(id int64)
}

// Fields 部分更新的字段集合，键为列名
type Fields map[string]interface{}

// Filter 单个索引字段上的等值过滤
type Filter struct {
	Field string
	Value interface{}
}

// Where 构造等值过滤条件
func Where(field string, value interface{}) *Filter {
	return &Filter{Field: field, Value: value}
}

// Store 存储后端的统一能力集
//
// 所有操作仅保证单条记录原子性，不提供跨集合事务；
// 需要多步写入的业务操作自行按顺序调用。
type Store interface {
	// Get 按主键读取，不存在返回 ErrNotFound
	Get(ctx context.Context, c Collection, id int64, dst Record) error
	// GetByUnique 按单字段唯一索引读取，不存在返回 ErrNotFound
	GetByUnique(ctx context.Context, c Collection, field string, value interface{}, dst Record) error
	// List 读取全部记录（filter 为 nil）或按索引字段等值过滤，按主键升序；dst 为 *[]T
	List(ctx context.Context, c Collection, filter *Filter, dst interface{}) error
	// Insert 插入并回填主键，违反唯一约束返回 ErrConstraintViolation
	Insert(ctx context.Context, c Collection, rec Record) (int64, error)
	// Update 部分更新，主键不存在返回 ErrNotFound
	Update(ctx context.Context, c Collection, id int64, fields Fields) error
	// Delete 删除记录，主键不存在时视为成功
	Delete(ctx context.Context, c Collection, id int64) error
	Close() error
}

// ── 集合声明（两种后端共用）──

// CollectionSchema 集合的索引声明
type CollectionSchema struct {
	Name    Collection
	Unique  [][]string // 唯一索引（可为复合）
	Indexes []string   // 普通二级索引
}

// Schema 全部集合的索引声明，与数据库迁移保持一致
var Schema = []CollectionSchema{
	{Name: Users, Unique: [][]string{{"email"}}, Indexes: []string{"status_conta"}},
	{Name: Profiles, Unique: [][]string{{"usuario_id"}}},
	{Name: Jobs, Indexes: []string{"criado_por", "status"}},
	{Name: Applications, Unique: [][]string{{"vaga_id", "usuario_id"}}, Indexes: []string{"vaga_id", "usuario_id"}},
	{Name: Groups, Indexes: []string{"criado_por"}},
	{Name: Memberships, Unique: [][]string{{"grupo_id", "usuario_id"}}, Indexes: []string{"grupo_id", "usuario_id"}},
	{Name: Messages, Indexes: []string{"grupo_id", "remetente_id", "destinatario_id"}},
}

func lookupSchema(c Collection) (CollectionSchema, error) {
	for _, s := range Schema {
		if s.Name == c {
			return s, nil
		}
	}
	return CollectionSchema{}, fmt.Errorf("%w: %s", ErrUnknownCollection, c)
}

// uniqueField 字段是否声明了单字段唯一索引
func (s CollectionSchema) uniqueField(field string) bool {
	for _, u := range s.Unique {
		if len(u) == 1 && u[0] == field {
			return true
		}
	}
	return false
}

// indexed 字段是否可用于等值过滤
func (s CollectionSchema) indexed(field string) bool {
	if field == "id" || s.uniqueField(field) {
		return true
	}
	for _, f := range s.Indexes {
		if f == field {
			return true
		}
	}
	return false
}

func (s CollectionSchema) checkUnique(field string) error {
	if !s.uniqueField(field) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, s.Name, field)
	}
	return nil
}

func (s CollectionSchema) checkFilter(f *Filter) error {
	if f != nil && !s.indexed(f.Field) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, s.Name, f.Field)
	}
	return nil
}
