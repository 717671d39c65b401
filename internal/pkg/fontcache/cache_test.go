package fontcache

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"font-manager/internal/models"
)

func record(name string) models.FontRecord {
	return models.FontRecord{
		Name:      name,
		DataURL:   "data:font/ttf;base64,AAAA",
		Format:    "ttf",
		SizeBytes: 4,
	}
}

func TestGetRefreshesLastAccess(t *testing.T) {
	c := New()
	c.Put(record("A"))

	first, found := c.Get("A")
	require.True(t, found)

	second, found := c.Get("A")
	require.True(t, found)
	assert.False(t, second.LastAccess.Before(first.LastAccess))
}

func TestGetMissHasNoSideEffects(t *testing.T) {
	c := New()

	_, found := c.Get("缺失")
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}

func TestPutReplacesSameName(t *testing.T) {
	c := New()
	c.Put(record("A"))

	updated := record("A")
	updated.SizeBytes = 99
	c.Put(updated)

	got, found := c.Get("A")
	require.True(t, found)
	assert.Equal(t, int64(99), got.SizeBytes)
	assert.Equal(t, 1, c.Len())
}

func TestEvictIsIdempotent(t *testing.T) {
	c := New()
	c.Put(record("A"))

	c.Evict("A")
	_, found := c.Get("A")
	assert.False(t, found)

	// 再次淘汰不存在的记录是空操作
	c.Evict("A")
	c.Evict("从未存在")
}

func TestSweepEvictsStaleRecords(t *testing.T) {
	c := New()

	stale := record("旧")
	stale.LastAccess = time.Now().Add(-10 * time.Minute)
	c.Put(stale)

	fresh := record("新")
	c.Put(fresh)

	evicted := c.Sweep(5 * time.Minute)
	assert.Equal(t, 1, evicted)

	_, found := c.Get("旧")
	assert.False(t, found)
	_, found = c.Get("新")
	assert.True(t, found)
}

func TestTotalBytes(t *testing.T) {
	c := New()
	a := record("A")
	a.SizeBytes = 10
	b := record("B")
	b.SizeBytes = 20
	c.Put(a)
	c.Put(b)

	assert.Equal(t, int64(30), c.TotalBytes())
}

func TestOnChangeFiresOnMembershipMutations(t *testing.T) {
	c := New()
	var changes atomic.Int32
	c.SetOnChange(func() { changes.Add(1) })

	c.Put(record("A"))
	assert.Equal(t, int32(1), changes.Load())

	// 同名替换不改变成员，不触发
	c.Put(record("A"))
	assert.Equal(t, int32(1), changes.Load())

	c.Evict("A")
	assert.Equal(t, int32(2), changes.Load())

	// 淘汰不存在的记录不触发
	c.Evict("A")
	assert.Equal(t, int32(2), changes.Load())

	stale := record("B")
	stale.LastAccess = time.Now().Add(-time.Hour)
	c.Put(stale)
	c.Sweep(time.Minute)
	assert.Equal(t, int32(4), changes.Load())
}

func TestSweeperLifecycle(t *testing.T) {
	c := New()

	stale := record("旧")
	stale.LastAccess = time.Now().Add(-time.Hour)
	c.Put(stale)

	c.StartSweeper(20*time.Millisecond, time.Minute)
	defer c.StopSweeper()

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, time.Second, 10*time.Millisecond)

	// 重复停止是安全的
	c.StopSweeper()
	c.StopSweeper()
}
