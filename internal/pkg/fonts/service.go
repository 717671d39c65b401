package fonts

import (
	"log/slog"
	"strings"

	"font-manager/internal/models"
	"font-manager/internal/pkg/fetch"
	"font-manager/internal/pkg/fontcache"
	"font-manager/internal/pkg/fontdir"
)

// Service 字体服务：把缓存、目录同步器和下载能力组合为
// 对外的可用性解析与管理操作入口。所有状态由实例自身持有。
type Service struct {
	root    string
	cache   *fontcache.Cache
	sync    *fontdir.Synchronizer
	fetcher fetch.Fetcher
}

// NewService 创建新的字体服务，并把缓存成员变更接到列表重建上
func NewService(root string, cache *fontcache.Cache, sync *fontdir.Synchronizer, fetcher fetch.Fetcher) *Service {
	s := &Service{
		root:    root,
		cache:   cache,
		sync:    sync,
		fetcher: fetcher,
	}
	cache.SetOnChange(sync.Trigger)
	return s
}

// ListFontNames 返回当前的字体名称列表（含哨兵）
func (s *Service) ListFontNames() []string {
	return s.sync.Names()
}

// GetFontDataURL 返回字体的data URL；未驻留时尝试从磁盘懒加载
func (s *Service) GetFontDataURL(name string) (string, bool) {
	record, found := s.lookup(name)
	if !found {
		return "", false
	}
	return record.DataURL, true
}

// GetFontInfo 返回字体的格式和大小；未驻留时尝试从磁盘懒加载
func (s *Service) GetFontInfo(name string) (models.FontInfo, bool) {
	record, found := s.lookup(name)
	if !found {
		return models.FontInfo{}, false
	}
	return models.FontInfo{Format: record.Format, SizeBytes: record.SizeBytes}, true
}

// validName 字体名不得携带路径成分：名称只用于拼接FontRoot下的文件名
func validName(name string) bool {
	return name != "" && !strings.Contains(name, "..") && !strings.ContainsAny(name, `/\`)
}

// lookup 读取路径共用逻辑：先查缓存，未命中再尝试磁盘
func (s *Service) lookup(name string) (models.FontRecord, bool) {
	if !validName(name) {
		return models.FontRecord{}, false
	}
	if record, found := s.cache.Get(name); found {
		return record, true
	}

	record, err := s.loadFromDisk(name)
	if err != nil {
		return models.FontRecord{}, false
	}
	return record, true
}

// Stats 汇总磁盘文件数与缓存驻留情况
func (s *Service) Stats() models.StatsResponse {
	stats := models.StatsResponse{
		ResidentRecords: s.cache.Len(),
		ResidentBytes:   s.cache.TotalBytes(),
	}

	files, err := s.sync.Scanner().CandidateFiles()
	if err != nil {
		slog.Warn("统计时目录不可读", "目录", s.root, "error", err)
		return stats
	}
	stats.FilesOnDisk = len(files)
	return stats
}
