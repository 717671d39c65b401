package fonts

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"

	"font-manager/internal/models"
	"font-manager/internal/pkg/format"
)

// EnsureAvailable 保证指定字体可用：已驻留、可从磁盘加载或可从
// sourceURL下载三者之一成立即返回true。所有失败路径记录日志并
// 返回false，绝不向调用方抛出错误。同名并发调用允许做重复工作，
// 缓存的替换写入语义保证最终一致。
func (s *Service) EnsureAvailable(ctx context.Context, name, sourceURL string) bool {
	// 哨兵值永远可用
	if models.IsSentinel(name) {
		return true
	}

	// 名称会拼进FontRoot下的路径，携带路径成分的名称一律拒绝
	if !validName(name) {
		slog.Warn("字体名包含路径成分，拒绝解析", "字体", name)
		return false
	}

	// 已在缓存中，Get刷新最后访问时间
	if _, found := s.cache.Get(name); found {
		return true
	}

	// 磁盘上已有匹配文件，同步加载
	if _, err := s.loadFromDisk(name); err == nil {
		return true
	} else if !os.IsNotExist(err) {
		slog.Error("字体加载失败", "字体", name, "error", err)
		return false
	}

	// 最后从远端下载
	if sourceURL == "" {
		slog.Warn("字体缺失且未提供下载地址", "字体", name)
		return false
	}
	return s.download(ctx, name, sourceURL)
}

// download 抓取远端字体并落盘入缓存；任一步失败都不会留下缓存条目
func (s *Service) download(ctx context.Context, name, sourceURL string) bool {
	result, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		slog.Error("字体下载失败", "字体", name, "url", sourceURL, "error", err)
		return false
	}

	ext, ok := format.ExtensionOfMime(result.MimeType)
	if !ok {
		slog.Error("无法识别下载响应的MIME类型", "字体", name, "mime", result.MimeType)
		return false
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		slog.Error("创建字体目录失败", "目录", s.root, "error", err)
		return false
	}

	path := filepath.Join(s.root, name+"."+ext)
	if err := os.WriteFile(path, result.Bytes, 0644); err != nil {
		slog.Error("写入字体文件失败", "路径", path, "error", err)
		return false
	}

	s.cache.Put(models.FontRecord{
		Name:      name,
		DataURL:   dataURL(ext, result.Bytes),
		Format:    ext,
		SizeBytes: int64(len(result.Bytes)),
	})
	s.sync.Refresh()

	slog.Info("⬇️ 字体下载完成", "字体", name, "格式", ext, "大小", len(result.Bytes))
	return true
}

// loadFromDisk 按注册表扩展名顺序查找磁盘文件并加载入缓存。
// 没有任何匹配文件时返回os.ErrNotExist语义的错误。
func (s *Service) loadFromDisk(name string) (models.FontRecord, error) {
	for _, ext := range format.Extensions() {
		path := filepath.Join(s.root, name+"."+ext)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return models.FontRecord{}, err
		}

		record := models.FontRecord{
			Name:      name,
			DataURL:   dataURL(ext, data),
			Format:    ext,
			SizeBytes: int64(len(data)),
		}
		s.cache.Put(record)
		slog.Info("📦 字体已载入缓存", "字体", name, "格式", ext, "大小", len(data))
		return record, nil
	}
	return models.FontRecord{}, os.ErrNotExist
}

// dataURL 把字体字节编码为自描述的data URL
func dataURL(ext string, data []byte) string {
	return "data:" + format.MimeTypeOf(ext) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
