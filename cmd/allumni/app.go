package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"allumni-network/config"
	"allumni-network/internal/repository"
	"allumni-network/internal/service"
	"allumni-network/internal/session"
	apperrors "allumni-network/pkg/errors"
	applogger "allumni-network/pkg/logger"
	"allumni-network/pkg/password"
)

// app 一次命令执行所需的依赖
type app struct {
	svc          *service.Service
	holder       *session.Holder
	pollInterval time.Duration
	logger       *zap.Logger
	out          io.Writer
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

// run 解析全局参数并执行子命令，返回进程退出码
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("allumni", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", os.Getenv("ALLUMNI_CONFIG"), "配置文件（可选）")
	dbPath := fs.String("db", "allumni.db", "本地数据库文件，覆盖 storage.embedded_path")
	sessionPath := fs.String("session", defaultSessionPath(), "会话文件")
	logLevel := fs.String("log-level", "warn", "日志级别")
	poll := fs.Duration("poll", 3*time.Second, "群聊刷新间隔，覆盖 chat.poll_interval")
	maxPayload := fs.Int("max-payload", 5<<20, "附件大小上限（字节），覆盖 chat.max_payload_bytes")
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		printUsage(stderr, fs)
		return 2
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "未知命令: %s\n", fs.Arg(0))
		printUsage(stderr, fs)
		return 2
	}

	cfg, err := config.LoadLocal(*cfgPath, func(c *config.Config) {
		// 显式给出的参数覆盖配置文件
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "db":
				c.Storage.EmbeddedPath = *dbPath
			case "poll":
				c.Chat.PollInterval = *poll
			case "max-payload":
				c.Chat.MaxPayloadBytes = *maxPayload
			}
		})
		// 命令行固定使用内嵌存储
		c.Storage.Driver = config.StorageDriverEmbedded
		c.Log = config.LogConfig{Level: *logLevel, Format: "console"}
	})
	if err != nil {
		fmt.Fprintf(stderr, "加载配置失败: %v\n", err)
		return 2
	}

	logger, err := applogger.NewLogger(&cfg.Log, "allumni-cli")
	if err != nil {
		fmt.Fprintf(stderr, "初始化日志失败: %v\n", err)
		return 1
	}
	defer logger.Sync()

	store, err := repository.OpenEmbedded(ctx, cfg.Storage.EmbeddedPath, applogger.Component(logger, "store"))
	if err != nil {
		fmt.Fprintf(stderr, "打开数据库失败: %v\n", err)
		return 1
	}
	defer store.Close()

	a := &app{
		svc:          service.NewService(cfg, store, password.NewBcryptHasher(cfg.Auth.BcryptCost), nil, nil, logger),
		holder:       session.NewHolder(*sessionPath),
		pollInterval: cfg.Chat.PollInterval,
		logger:       logger,
		out:          stdout,
	}

	if err := cmd.run(ctx, a, fs.Args()[1:]); err != nil {
		if err == flag.ErrHelp {
			return 2
		}
		fmt.Fprintf(stderr, "erro: %s\n", errorMessage(err))
		return 1
	}
	return 0
}

// errorMessage 业务错误显示原文，其余错误显示底层原因
func errorMessage(err error) string {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		return err.Error()
	}
	return apperrors.MessageOf(err)
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".allumni-session.json"
	}
	return filepath.Join(dir, "allumni", "session.json")
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "用法: allumni [全局参数] <命令> [参数]")
	fmt.Fprintln(w, "\n全局参数:")
	fs.PrintDefaults()
	fmt.Fprintln(w, "\n命令:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %s\n", name, commands[name].usage)
	}
}

// print 以缩进 JSON 输出结果
func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// currentUserID 页面守卫：要求已登录
func (a *app) currentUserID() (int64, error) {
	user, err := a.holder.Require()
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// optString 空字符串视为未提供
func optString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// flagSet 子命令参数解析
func flagSet(name string, a *app) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}
