package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("data", "fonts"), cfg.FontRoot)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
	assert.Equal(t, time.Minute, cfg.SweepInterval())
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `字体根目录: fonts
端口: 8080
缓存有效期分钟: 10
防抖毫秒: 300
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "fonts", cfg.FontRoot)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce())
}

func TestTTLClampedToSaneRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("缓存有效期分钟: 500\n"), 0644))

	cfg, err := LoadFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute, cfg.CacheTTL())

	require.NoError(t, os.WriteFile(path, []byte("缓存有效期分钟: -3\n"), 0644))
	cfg, err = LoadFromYAML(path)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.CacheTTL())
}
