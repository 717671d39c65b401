package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// 缓存有效期的允许范围（分钟）
const (
	minTTLMinutes = 1
	maxTTLMinutes = 60
)

// 应用配置结构体
type Config struct {
	// 字体根目录 - 存放所有受管字体文件的目录
	FontRoot string `yaml:"字体根目录" json:"fontRoot"`
	// 端口号 - 应用程序监听的端口号
	Port int `yaml:"端口" json:"port"`
	// 代理地址 - 下载字体时使用的代理服务器地址
	Proxy string `yaml:"代理地址" json:"proxy"`
	// 缓存有效期 - 字体字节在内存中的最大闲置分钟数，范围1-60
	CacheTTLMinutes int `yaml:"缓存有效期分钟" json:"cacheTtlMinutes"`
	// 防抖窗口 - 目录变更事件合并窗口，单位毫秒
	DebounceMs int `yaml:"防抖毫秒" json:"debounceMs"`
	// 清理间隔 - 过期缓存扫描的周期，单位分钟
	SweepIntervalMinutes int `yaml:"清理间隔分钟" json:"sweepIntervalMinutes"`
}

// Default 返回内置默认配置
func Default() *Config {
	cfg := &Config{
		FontRoot:             filepath.Join("data", "fonts"),
		Port:                 3000,
		CacheTTLMinutes:      30,
		DebounceMs:           200,
		SweepIntervalMinutes: 1,
	}
	return cfg
}

// 从 ./config/ 目录加载配置，找不到配置文件时使用默认值
func Load() (*Config, error) {
	// 优先尝试加载YAML配置
	yamlPath := filepath.Join("config", "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return LoadFromYAML(yamlPath)
	}

	// 回退到JSON配置以保持兼容性
	jsonPath := filepath.Join("config", "config.json")
	file, err := os.ReadFile(jsonPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(file, config); err != nil {
		return nil, err
	}
	config.normalize()

	return config, nil
}

// 从YAML文件加载配置
func LoadFromYAML(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(file, config); err != nil {
		return nil, err
	}
	config.normalize()

	return config, nil
}

// normalize 把缺失或越界的字段拉回合法范围
func (c *Config) normalize() {
	if c.FontRoot == "" {
		c.FontRoot = filepath.Join("data", "fonts")
	}
	if c.Port <= 0 {
		c.Port = 3000
	}
	if c.CacheTTLMinutes < minTTLMinutes {
		c.CacheTTLMinutes = minTTLMinutes
	}
	if c.CacheTTLMinutes > maxTTLMinutes {
		c.CacheTTLMinutes = maxTTLMinutes
	}
	if c.DebounceMs <= 0 {
		c.DebounceMs = 200
	}
	if c.SweepIntervalMinutes <= 0 {
		c.SweepIntervalMinutes = 1
	}
}

// CacheTTL 缓存有效期
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Debounce 目录变更防抖窗口
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// SweepInterval 过期缓存扫描周期
func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMinutes) * time.Minute
}
