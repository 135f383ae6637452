package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"allumni-network/config"
	"allumni-network/pkg/database"
)

// Open 按配置打开存储后端
//
//	postgres: GORM 连接 + golang-migrate 迁移
//	embedded: 本地 SQLite 文件（或内存库），启动时建表建索引
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		return openPostgres(cfg, logger)
	case config.StorageDriverEmbedded:
		return OpenEmbedded(ctx, cfg.Storage.EmbeddedPath, logger)
	default:
		return nil, fmt.Errorf("未知的存储后端: %q", cfg.Storage.Driver)
	}
}

// OpenEmbedded 打开嵌入式存储
func OpenEmbedded(ctx context.Context, path string, logger *zap.Logger) (*EmbeddedStore, error) {
	db, err := database.OpenEmbedded(path)
	if err != nil {
		return nil, err
	}
	store, err := NewEmbeddedStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化嵌入式存储失败: %w", err)
	}
	logger.Info("嵌入式存储已就绪", zap.String("path", path))
	return store, nil
}

func openPostgres(cfg *config.Config, logger *zap.Logger) (*GormStore, error) {
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Info("数据库连接成功", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))
	return NewGormStore(db), nil
}
