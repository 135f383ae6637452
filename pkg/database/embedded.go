package database

import (
	"database/sql"
	"fmt"

	// 纯 Go SQLite 驱动，注册为 "sqlite"
	_ "modernc.org/sqlite"
)

// MemoryPath 内存库路径，进程退出即丢失
const MemoryPath = ":memory:"

// OpenEmbedded 打开本地单文件 SQLite 数据库
// 仅保持一条连接：内存库在连接之间不共享，文件库也只需单写者
func OpenEmbedded(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("打开嵌入式数据库失败: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("设置嵌入式数据库参数失败: %w", err)
		}
	}
	return db, nil
}
