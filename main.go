package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"font-manager/internal/app"
	"font-manager/internal/config"
)

//go:embed all:public
var publicFiles embed.FS

func main() {
	// 设置简洁的中文日志系统
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05",
		NoColor:    false,
	}))
	slog.SetDefault(logger)

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		slog.Error("配置加载失败", "error", err)
		os.Exit(1)
	}
	slog.Info("✓ 配置加载完成", "字体目录", cfg.FontRoot)

	// 创建应用实例
	application := app.NewApp(cfg)

	// 初始化应用
	if err := application.Initialize(); err != nil {
		slog.Error("应用初始化失败", "error", err)
		os.Exit(1)
	}

	// 收到退出信号时释放监视与定时器
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("收到退出信号", "signal", sig.String())
		application.Shutdown()
		os.Exit(0)
	}()

	// 使用 embed.FS 提供静态文件服务
	staticFS, err := fs.Sub(publicFiles, "public")
	if err != nil {
		slog.Error("无法创建静态文件子系统", "error", err)
		os.Exit(1)
	}

	// 设置路由
	application.SetupRoutes(staticFS)

	// 启动服务器
	if err := application.Run(); err != nil {
		slog.Error("启动服务器失败", "error", err)
		os.Exit(1)
	}
}
