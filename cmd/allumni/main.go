// allumni 本地命令行客户端
//
// 直接在本机 SQLite 文件上运行全部业务操作，不依赖服务端；
// 当前登录用户保存在会话文件中，跨命令保持。
//
//	allumni [-db allumni.db] [-session ~/.allumni/session.json] <命令> [参数]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}
