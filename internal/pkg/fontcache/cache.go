package fontcache

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"font-manager/internal/models"
)

// Cache 字体缓存管理器，按名称持有已加载的字体记录
type Cache struct {
	mutex    sync.RWMutex
	records  map[string]models.FontRecord
	onChange func()

	// 清理协程的生命周期
	sweeperRunning atomic.Bool
	stopSweeper    chan struct{}
}

// New 创建新的字体缓存
func New() *Cache {
	return &Cache{
		records: make(map[string]models.FontRecord),
	}
}

// SetOnChange 注册成员变更回调，在新增、淘汰、清空后触发
func (c *Cache) SetOnChange(fn func()) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.onChange = fn
}

// Get 获取字体记录，命中时刷新最后访问时间；未命中不产生任何副作用
func (c *Cache) Get(name string) (models.FontRecord, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	record, found := c.records[name]
	if !found {
		return models.FontRecord{}, false
	}
	record.LastAccess = time.Now()
	c.records[name] = record
	return record, true
}

// Put 插入或替换字体记录；同名记录被新记录覆盖
func (c *Cache) Put(record models.FontRecord) {
	c.mutex.Lock()
	_, existed := c.records[record.Name]
	if record.LastAccess.IsZero() {
		record.LastAccess = time.Now()
	}
	c.records[record.Name] = record
	fn := c.onChange
	c.mutex.Unlock()

	// 仅当成员集合发生变化时通知订阅者
	if !existed && fn != nil {
		fn()
	}
}

// Evict 淘汰指定名称的记录，不存在时为空操作
func (c *Cache) Evict(name string) {
	c.mutex.Lock()
	_, existed := c.records[name]
	delete(c.records, name)
	fn := c.onChange
	c.mutex.Unlock()

	if existed && fn != nil {
		fn()
	}
}

// EvictAll 清空所有记录
func (c *Cache) EvictAll() {
	c.mutex.Lock()
	count := len(c.records)
	c.records = make(map[string]models.FontRecord)
	fn := c.onChange
	c.mutex.Unlock()

	if count > 0 && fn != nil {
		fn()
	}
}

// Sweep 淘汰所有闲置时间超过ttl的记录，返回淘汰数量
func (c *Cache) Sweep(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	c.mutex.Lock()
	var evicted []string
	for name, record := range c.records {
		if record.LastAccess.Before(cutoff) {
			delete(c.records, name)
			evicted = append(evicted, name)
		}
	}
	fn := c.onChange
	c.mutex.Unlock()

	for _, name := range evicted {
		slog.Info("🧹 字体缓存过期淘汰", "字体", name, "闲置上限", ttl.String())
	}
	if len(evicted) > 0 && fn != nil {
		fn()
	}
	return len(evicted)
}

// Names 返回当前驻留的字体名称
func (c *Cache) Names() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	names := make([]string, 0, len(c.records))
	for name := range c.records {
		names = append(names, name)
	}
	return names
}

// Len 当前驻留的记录数
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.records)
}

// TotalBytes 当前驻留字体的总字节数
func (c *Cache) TotalBytes() int64 {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var total int64
	for _, record := range c.records {
		total += record.SizeBytes
	}
	return total
}

// StartSweeper 启动后台清理协程，按固定间隔执行Sweep
func (c *Cache) StartSweeper(interval, ttl time.Duration) {
	if c.sweeperRunning.CompareAndSwap(false, true) {
		c.stopSweeper = make(chan struct{})
		go c.runSweeper(interval, ttl, c.stopSweeper)
		slog.Info("⏲️ 缓存清理协程已启动", "间隔", interval.String(), "有效期", ttl.String())
	}
}

// StopSweeper 停止后台清理协程
func (c *Cache) StopSweeper() {
	if c.sweeperRunning.CompareAndSwap(true, false) {
		if c.stopSweeper != nil {
			close(c.stopSweeper)
		}
	}
}

// runSweeper 运行清理循环
func (c *Cache) runSweeper(interval, ttl time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Sweep(ttl)
		case <-stop:
			slog.Info("⏹️ 缓存清理协程已停止")
			return
		}
	}
}
