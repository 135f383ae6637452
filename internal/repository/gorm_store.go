package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore Store 的关系型实现（PostgreSQL via GORM）
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建关系型存储
// db 需以 TranslateError 打开，以便唯一约束冲突被翻译为 gorm.ErrDuplicatedKey
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) table(ctx context.Context, c Collection) (*gorm.DB, CollectionSchema, error) {
	schema, err := lookupSchema(c)
	if err != nil {
		return nil, schema, err
	}
	return s.db.WithContext(ctx).Table(string(c)), schema, nil
}

func (s *GormStore) Get(ctx context.Context, c Collection, id int64, dst Record) error {
	q, _, err := s.table(ctx, c)
	if err != nil {
		return err
	}
	return translateGormError(q.Where("id = ?", id).Take(dst).Error)
}

func (s *GormStore) GetByUnique(ctx context.Context, c Collection, field string, value interface{}, dst Record) error {
	q, schema, err := s.table(ctx, c)
	if err != nil {
		return err
	}
	if err := schema.checkUnique(field); err != nil {
		return err
	}
	return translateGormError(q.Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).Take(dst).Error)
}

func (s *GormStore) List(ctx context.Context, c Collection, filter *Filter, dst interface{}) error {
	q, schema, err := s.table(ctx, c)
	if err != nil {
		return err
	}
	if err := schema.checkFilter(filter); err != nil {
		return err
	}
	if filter != nil {
		q = q.Where(clause.Eq{Column: clause.Column{Name: filter.Field}, Value: filter.Value})
	}
	return translateGormError(q.Order("id").Find(dst).Error)
}

func (s *GormStore) Insert(ctx context.Context, c Collection, rec Record) (int64, error) {
	q, _, err := s.table(ctx, c)
	if err != nil {
		return 0, err
	}
	if err := q.Create(rec).Error; err != nil {
		return 0, translateGormError(err)
	}
	return rec.PrimaryKey(), nil
}

func (s *GormStore) Update(ctx context.Context, c Collection, id int64, fields Fields) error {
	q, _, err := s.table(ctx, c)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		// 无字段时仍需确认记录存在
		var n int64
		if err := q.Where("id = ?", id).Count(&n).Error; err != nil {
			return translateGormError(err)
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	}
	res := q.Where("id = ?", id).Updates(map[string]interface{}(fields))
	if res.Error != nil {
		return translateGormError(res.Error)
	}
	// PostgreSQL 返回匹配行数，值未变化时同样计数
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, c Collection, id int64) error {
	if _, err := lookupSchema(c); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).
		Exec("DELETE FROM ? WHERE id = ?", clause.Table{Name: string(c)}, id).Error
	return translateGormError(err)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateGormError 将 GORM / 驱动错误映射为存储层错误
func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConstraintViolation
	case strings.Contains(err.Error(), "SQLSTATE 23505"):
		return ErrConstraintViolation
	}
	return fmt.Errorf("关系型存储操作失败: %w", err)
}
