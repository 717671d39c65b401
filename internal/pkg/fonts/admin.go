package fonts

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"font-manager/internal/models"
	"font-manager/internal/pkg/format"
)

// Upload 把base64载荷写入字体根目录下的fileName，覆盖同名文件。
// 本操作不更新缓存：目录监视会发现新文件，下次访问时从磁盘加载
// 最新字节；需要立即一致的调用方应随后调用Invalidate。
func (s *Service) Upload(fileName, payload string) error {
	if filepath.Base(fileName) != fileName || fileName == "" {
		return fmt.Errorf("%w: 文件名不合法 %q", models.ErrMalformedPayload, fileName)
	}

	ext := filepath.Ext(fileName)
	if !format.IsSupported(ext) {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, ext)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedPayload, err)
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("%w: %v", models.ErrIOFailure, err)
	}

	path := filepath.Join(s.root, fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", models.ErrIOFailure, err)
	}

	slog.Info("⬆️ 字体上传完成", "文件", fileName, "大小", len(data))
	return nil
}

// Delete 删除所有去掉扩展名后与name匹配的字体文件。
// 逐个删除并记录日志，返回遇到的第一个错误；多扩展名字体
// 可能被部分删除。删除后淘汰缓存条目并立即重建名称列表。
func (s *Service) Delete(name string) error {
	files, err := s.sync.Scanner().CandidateFiles()
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrDirectoryUnreadable, err)
	}

	var firstErr error
	removed := 0
	for _, file := range files {
		if strings.TrimSuffix(file, filepath.Ext(file)) != name {
			continue
		}
		path := filepath.Join(s.root, file)
		if err := os.Remove(path); err != nil {
			slog.Error("删除字体文件失败", "路径", path, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%w: %v", models.ErrIOFailure, err)
			}
			continue
		}
		removed++
		slog.Info("🗑️ 字体文件已删除", "文件", file)
	}

	s.cache.Evict(name)
	s.sync.Refresh()

	if firstErr != nil {
		return firstErr
	}
	if removed == 0 {
		slog.Warn("删除请求未匹配任何文件", "字体", name)
	}
	return nil
}

// Invalidate 淘汰指定字体的缓存条目，下次访问将从磁盘重新加载
func (s *Service) Invalidate(name string) {
	s.cache.Evict(name)
}

// ClearCache 清空字体缓存
func (s *Service) ClearCache() {
	s.cache.EvictAll()
	slog.Info("🗑️ 字体缓存已清空")
}
