package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// withMiddleware 应用中间件链
func (a *App) withMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return a.loggingMiddleware(
		a.corsMiddleware(
			a.panicRecoveryMiddleware(
				a.nameValidationMiddleware(handler),
			),
		),
	)
}

// loggingMiddleware 请求日志中间件
func (a *App) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// 创建响应写入器包装器来捕获状态码
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		slog.Info("HTTP请求",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"duration", duration.String(),
		)
	}
}

// panicRecoveryMiddleware panic恢复中间件
func (a *App) panicRecoveryMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("HTTP处理器发生panic", "error", err, "path", r.URL.Path, "method", r.Method)
				http.Error(w, "内部服务器错误", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	}
}

// corsMiddleware CORS中间件
func (a *App) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// nameValidationMiddleware 字体名验证中间件：拒绝携带路径成分的名称参数
func (a *App) nameValidationMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if needsNameValidation(r.URL.Path) {
			if err := validateName(r.URL.Query().Get("name")); err != nil {
				http.Error(w, "名称验证失败: "+err.Error(), http.StatusForbidden)
				return
			}
		}

		next.ServeHTTP(w, r)
	}
}

// validateName 验证名称不包含路径遍历成分
func validateName(name string) error {
	if name == "" {
		return nil
	}

	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		slog.Warn("❌ 名称验证失败", "原因", "包含非法字符", "名称", name)
		return fmt.Errorf("名称包含非法字符")
	}

	return nil
}

// needsNameValidation 判断端点是否需要名称验证
func needsNameValidation(path string) bool {
	nameValidationEndpoints := []string{
		"/api/font-data",
		"/api/font-info",
	}

	for _, endpoint := range nameValidationEndpoints {
		if strings.HasPrefix(path, endpoint) {
			return true
		}
	}

	return false
}

// responseWriter 包装器用于捕获状态码
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// 实现 Flusher 接口
func (rw *responseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
