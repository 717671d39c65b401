package fontdir

import (
	"log/slog"
	"os"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"font-manager/internal/models"
)

// Synchronizer 目录同步器：监视字体根目录，把原始文件系统事件
// 防抖合并为一次重扫，并向订阅者发布当前的字体名称列表。
// 名称列表始终以哨兵值开头；目录为空时发布两个哨兵占位符，
// 保证下游配置界面始终有可选项。
type Synchronizer struct {
	scanner  *Scanner
	debounce time.Duration

	mutex       sync.RWMutex
	names       []string
	subscribers []func([]string)

	watcher *fsnotify.Watcher
	running atomic.Bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	timerMutex sync.Mutex
	timer      *time.Timer
}

// NewSynchronizer 创建新的目录同步器
func NewSynchronizer(root string, debounce time.Duration) *Synchronizer {
	return &Synchronizer{
		scanner:  NewScanner(root),
		debounce: debounce,
		names:    emptyList(),
	}
}

// Scanner 返回底层扫描器
func (s *Synchronizer) Scanner() *Scanner {
	return s.scanner
}

// Subscribe 注册名称列表变更回调；发布发生在同步器自身的协程上
func (s *Synchronizer) Subscribe(fn func([]string)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Names 返回当前的字体名称列表（含哨兵）
func (s *Synchronizer) Names() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.names)
}

// Start 建立初始列表并安装文件系统监视。
// 初始扫描失败时发布空状态哨兵对且不安装监视，返回错误由调用方记录；
// 宿主进程不因此退出。
func (s *Synchronizer) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	// 字体根目录不存在时在启动阶段创建
	if err := os.MkdirAll(s.scanner.Root(), 0755); err != nil {
		s.running.Store(false)
		s.publish(emptyList())
		return err
	}

	names, err := s.scanner.Scan()
	if err != nil {
		s.running.Store(false)
		s.publish(emptyList())
		return err
	}
	s.publish(buildList(names))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.running.Store(false)
		return err
	}
	if err := watcher.Add(s.scanner.Root()); err != nil {
		watcher.Close()
		s.running.Store(false)
		return err
	}

	s.watcher = watcher
	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.watchLoop()

	slog.Info("👀 字体目录监视已启动", "目录", s.scanner.Root(), "防抖", s.debounce.String())
	return nil
}

// Stop 释放监视句柄和防抖定时器
func (s *Synchronizer) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}

	close(s.stopCh)
	if s.watcher != nil {
		s.watcher.Close()
	}
	s.wg.Wait()

	s.timerMutex.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerMutex.Unlock()

	slog.Info("⏹️ 字体目录监视已停止")
}

// Trigger 请求一次防抖重扫；窗口内的多次请求合并为一次。
// 同步器未运行（尚未启动或已停止）时是空操作，避免停止后残留定时器。
func (s *Synchronizer) Trigger() {
	if !s.running.Load() {
		return
	}

	s.timerMutex.Lock()
	defer s.timerMutex.Unlock()

	if s.timer != nil {
		s.timer.Reset(s.debounce)
		return
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.timerMutex.Lock()
		s.timer = nil
		s.timerMutex.Unlock()
		s.Refresh()
	})
}

// Refresh 立即重扫并发布。扫描失败时保留上一份列表，只记录日志。
func (s *Synchronizer) Refresh() {
	names, err := s.scanner.Scan()
	if err != nil {
		slog.Error("字体目录扫描失败，保留现有列表", "目录", s.scanner.Root(), "error", err)
		return
	}
	s.publish(buildList(names))
}

// watchLoop 消费原始文件系统事件，全部折叠到防抖触发器上
func (s *Synchronizer) watchLoop() {
	defer s.wg.Done()

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.Trigger()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("文件系统监视错误", "error", err)
		case <-s.stopCh:
			return
		}
	}
}

// publish 替换当前列表，仅在内容变化时通知订阅者
func (s *Synchronizer) publish(names []string) {
	s.mutex.Lock()
	if slices.Equal(s.names, names) {
		s.mutex.Unlock()
		return
	}
	s.names = names
	subscribers := slices.Clone(s.subscribers)
	s.mutex.Unlock()

	slog.Info("📜 字体列表已更新", "条目", len(names))
	for _, fn := range subscribers {
		fn(slices.Clone(names))
	}
}

// buildList 按哨兵规则构造对外发布的名称列表
func buildList(names []string) []string {
	if len(names) == 0 {
		return emptyList()
	}
	list := make([]string, 0, len(names)+1)
	list = append(list, models.SentinelName)
	return append(list, names...)
}

// emptyList 空目录状态：两个哨兵占位符
func emptyList() []string {
	return []string{models.SentinelName, models.SentinelNameAlt}
}
