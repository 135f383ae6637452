package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// EmbeddedStore Store 的嵌入式实现
//
// 每个集合是一张 (id, data) 表，data 为 JSON 文档；
// 唯一索引与二级索引建立在 json_extract 表达式上，对应浏览器端对象仓库的索引声明。
// 读取时用 json_set 注入主键，文档本身不依赖存储中的 id 字段。
type EmbeddedStore struct {
	db *sql.DB
}

// NewEmbeddedStore 在已打开的 SQLite 连接上建立集合与索引
func NewEmbeddedStore(ctx context.Context, db *sql.DB) (*EmbeddedStore, error) {
	s := &EmbeddedStore{db: db}
	if err := s.createCollections(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *EmbeddedStore) createCollections(ctx context.Context) error {
	for _, schema := range Schema {
		stmts := []string{fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %q (id INTEGER PRIMARY KEY AUTOINCREMENT, data TEXT NOT NULL)`,
			schema.Name,
		)}
		for _, fields := range schema.Unique {
			stmts = append(stmts, fmt.Sprintf(
				`CREATE UNIQUE INDEX IF NOT EXISTS %q ON %q (%s)`,
				indexName(schema.Name, "uq", fields), schema.Name, jsonColumns(fields),
			))
		}
		for _, field := range schema.Indexes {
			stmts = append(stmts, fmt.Sprintf(
				`CREATE INDEX IF NOT EXISTS %q ON %q (%s)`,
				indexName(schema.Name, "idx", []string{field}), schema.Name, jsonColumns([]string{field}),
			))
		}
		for _, stmt := range stmts {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("初始化集合 %s 失败: %w", schema.Name, err)
			}
		}
	}
	return nil
}

func (s *EmbeddedStore) Get(ctx context.Context, c Collection, id int64, dst Record) error {
	if _, err := lookupSchema(c); err != nil {
		return err
	}
	var doc string
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json_set(data, '$.id', id) FROM %q WHERE id = ?`, c), id,
	).Scan(&doc)
	if err != nil {
		return translateSQLiteError(err)
	}
	return decodeDocument(doc, dst)
}

func (s *EmbeddedStore) GetByUnique(ctx context.Context, c Collection, field string, value interface{}, dst Record) error {
	schema, err := lookupSchema(c)
	if err != nil {
		return err
	}
	if err := schema.checkUnique(field); err != nil {
		return err
	}
	var doc string
	err = s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT json_set(data, '$.id', id) FROM %q WHERE %s = ? LIMIT 1`, c, jsonColumn(field)),
		value,
	).Scan(&doc)
	if err != nil {
		return translateSQLiteError(err)
	}
	return decodeDocument(doc, dst)
}

func (s *EmbeddedStore) List(ctx context.Context, c Collection, filter *Filter, dst interface{}) error {
	schema, err := lookupSchema(c)
	if err != nil {
		return err
	}
	if err := schema.checkFilter(filter); err != nil {
		return err
	}

	query := fmt.Sprintf(`SELECT json_set(data, '$.id', id) FROM %q`, c)
	var args []interface{}
	if filter != nil {
		if filter.Field == "id" {
			query += ` WHERE id = ?`
		} else {
			query += fmt.Sprintf(` WHERE %s = ?`, jsonColumn(filter.Field))
		}
		args = append(args, filter.Value)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return translateSQLiteError(err)
	}
	defer rows.Close()

	var b strings.Builder
	b.WriteByte('[')
	first := true
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return translateSQLiteError(err)
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(doc)
	}
	if err := rows.Err(); err != nil {
		return translateSQLiteError(err)
	}
	b.WriteByte(']')

	if err := json.Unmarshal([]byte(b.String()), dst); err != nil {
		return fmt.Errorf("解码 %s 文档失败: %w", c, err)
	}
	return nil
}

func (s *EmbeddedStore) Insert(ctx context.Context, c Collection, rec Record) (int64, error) {
	if _, err := lookupSchema(c); err != nil {
		return 0, err
	}
	doc, err := json.Marshal(rec)
	if err != nil {
		return 0, fmt.Errorf("编码 %s 文档失败: %w", c, err)
	}
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %q (data) VALUES (?)`, c), string(doc))
	if err != nil {
		return 0, translateSQLiteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("读取 %s 主键失败: %w", c, err)
	}
	rec.SetPrimaryKey(id)
	return id, nil
}

func (s *EmbeddedStore) Update(ctx context.Context, c Collection, id int64, fields Fields) error {
	if _, err := lookupSchema(c); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return translateSQLiteError(err)
	}
	defer tx.Rollback()

	var doc string
	err = tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT data FROM %q WHERE id = ?`, c), id).Scan(&doc)
	if err != nil {
		return translateSQLiteError(err)
	}

	// 数值保持原文，避免大整数经 float64 失真
	current := make(map[string]interface{})
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&current); err != nil {
		return fmt.Errorf("解码 %s 文档失败: %w", c, err)
	}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		current[k] = v
	}
	merged, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("编码 %s 文档失败: %w", c, err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`UPDATE %q SET data = ? WHERE id = ?`, c), string(merged), id); err != nil {
		return translateSQLiteError(err)
	}
	return translateSQLiteError(tx.Commit())
}

func (s *EmbeddedStore) Delete(ctx context.Context, c Collection, id int64) error {
	if _, err := lookupSchema(c); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %q WHERE id = ?`, c), id)
	return translateSQLiteError(err)
}

func (s *EmbeddedStore) Close() error {
	return s.db.Close()
}

// ── 内部辅助 ──

func jsonColumn(field string) string {
	return fmt.Sprintf(`json_extract(data, '$.%s')`, field)
}

func jsonColumns(fields []string) string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = jsonColumn(f)
	}
	return strings.Join(cols, ", ")
}

func indexName(c Collection, kind string, fields []string) string {
	return fmt.Sprintf("%s_%s_%s", c, kind, strings.Join(fields, "_"))
}

func decodeDocument(doc string, dst Record) error {
	if err := json.Unmarshal([]byte(doc), dst); err != nil {
		return fmt.Errorf("解码文档失败: %w", err)
	}
	return nil
}

// translateSQLiteError 将 SQLite 错误映射为存储层错误
func translateSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return ErrConstraintViolation
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConstraintViolation
	}
	return fmt.Errorf("嵌入式存储操作失败: %w", err)
}
