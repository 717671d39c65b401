package app

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"font-manager/internal/config"
	"font-manager/internal/handlers"
	"font-manager/internal/pkg/fetch"
	"font-manager/internal/pkg/fontcache"
	"font-manager/internal/pkg/fontdir"
	"font-manager/internal/pkg/fonts"
)

// App 应用程序结构体，包含所有依赖
type App struct {
	Config       *config.Config
	Cache        *fontcache.Cache
	Synchronizer *fontdir.Synchronizer
	Service      *fonts.Service
	Handlers     *handlers.Handlers
}

// NewApp 创建新的应用实例
func NewApp(cfg *config.Config) *App {
	// 初始化字体缓存
	cache := fontcache.New()

	// 初始化目录同步器
	synchronizer := fontdir.NewSynchronizer(cfg.FontRoot, cfg.Debounce())

	// 初始化字体服务
	service := fonts.NewService(cfg.FontRoot, cache, synchronizer, fetch.NewHTTPFetcher(cfg.Proxy))

	// 初始化处理器
	h := handlers.NewHandlers(cfg, service)

	// 字体列表变化时推送给事件通道订阅者
	synchronizer.Subscribe(h.WS.BroadcastNames)

	return &App{
		Config:       cfg,
		Cache:        cache,
		Synchronizer: synchronizer,
		Service:      service,
		Handlers:     h,
	}
}

// Initialize 初始化应用：建立初始字体列表、安装目录监视、启动缓存清理
func (a *App) Initialize() error {
	if err := a.Synchronizer.Start(); err != nil {
		// 目录不可读时不安装监视，但宿主进程继续运行
		slog.Warn("目录同步启动失败，字体列表停留在空状态", "目录", a.Config.FontRoot, "error", err)
	} else {
		slog.Info("✓ 字体目录同步已就绪", "目录", a.Config.FontRoot)
	}

	a.Cache.StartSweeper(a.Config.SweepInterval(), a.Config.CacheTTL())
	return nil
}

// SetupRoutes 设置路由
func (a *App) SetupRoutes(staticFS fs.FS) {
	// 静态文件服务
	http.Handle("/", http.FileServer(http.FS(staticFS)))

	// 字体读取相关路由
	http.HandleFunc("/api/fonts", a.withMiddleware(a.Handlers.Fonts.GetFonts))
	http.HandleFunc("/api/font-data", a.withMiddleware(a.Handlers.Fonts.GetFontData))
	http.HandleFunc("/api/font-info", a.withMiddleware(a.Handlers.Fonts.GetFontInfo))
	http.HandleFunc("/api/ensure", a.withMiddleware(a.Handlers.Fonts.EnsureFont))

	// 管理操作相关路由
	http.HandleFunc("/api/upload", a.withMiddleware(a.Handlers.Admin.UploadFont))
	http.HandleFunc("/api/delete", a.withMiddleware(a.Handlers.Admin.DeleteFont))
	http.HandleFunc("/api/stats", a.withMiddleware(a.Handlers.Admin.GetStats))
	http.HandleFunc("/api/clear-cache", a.withMiddleware(a.Handlers.Admin.ClearCache))

	// 宿主事件通道
	http.HandleFunc("/ws", a.Handlers.WS.Serve)
}

// Run 启动应用
func (a *App) Run() error {
	port := strconv.Itoa(a.Config.Port)
	if port == "0" {
		port = "3000" // 默认端口
	}

	slog.Info("🚀 服务器启动", "地址", fmt.Sprintf("http://localhost:%s", port))
	slog.Info("📋 管理页面", "地址", fmt.Sprintf("http://localhost:%s/index.html", port))

	return http.ListenAndServe(":"+port, nil)
}

// Shutdown 确定性地释放监视句柄、防抖与清理定时器和事件通道连接
func (a *App) Shutdown() {
	// 先停清理协程：清理触发的列表重建不得在监视停止后重新武装防抖定时器
	a.Cache.StopSweeper()
	a.Synchronizer.Stop()
	a.Handlers.WS.CloseAll()
	slog.Info("👋 应用已关闭")
}
