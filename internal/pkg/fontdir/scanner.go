package fontdir

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"font-manager/internal/pkg/format"
)

// Scanner 字体目录扫描器，负责从磁盘枚举候选字体
type Scanner struct {
	root string
}

// NewScanner 创建新的字体目录扫描器
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Root 返回被扫描的字体根目录
func (s *Scanner) Root() string {
	return s.root
}

// CandidateFiles 枚举根目录下所有受支持扩展名的非目录文件，按目录序返回文件名
func (s *Scanner) CandidateFiles() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if format.IsSupported(filepath.Ext(entry.Name())) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// Scan 扫描根目录并返回去重后的字体名称列表（不含哨兵），顺序为目录扫描序。
// 同名不同扩展名的文件视为命名冲突：列表中只保留一个条目并记录警告。
func (s *Scanner) Scan() ([]string, error) {
	files, err := s.CandidateFiles()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]string, len(files))
	names := make([]string, 0, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(file, filepath.Ext(file))
		if prev, dup := seen[name]; dup {
			slog.Warn("⚠️ 字体命名冲突", "名称", name, "文件1", prev, "文件2", file)
			continue
		}
		seen[name] = file
		names = append(names, name)
	}
	return names, nil
}
