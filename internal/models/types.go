package models

import "time"

// 哨兵字体名，表示"不使用字体"，始终视为可用
const (
	SentinelName    = "无"
	SentinelNameAlt = "无 "
)

// IsSentinel 检查名称是否为哨兵值（两种写法均接受）
func IsSentinel(name string) bool {
	return name == SentinelName || name == SentinelNameAlt
}

// FontRecord 代表一个已加载到内存的字体
type FontRecord struct {
	Name       string    `json:"name"`
	DataURL    string    `json:"dataUrl"`
	Format     string    `json:"format"`
	SizeBytes  int64     `json:"sizeBytes"`
	LastAccess time.Time `json:"lastAccess"`
}

// FontInfo 字体的元数据摘要
type FontInfo struct {
	Format    string `json:"format"`
	SizeBytes int64  `json:"sizeBytes"`
}

// StatsResponse 是 /api/stats 端点的响应结构
type StatsResponse struct {
	FilesOnDisk     int   `json:"filesOnDisk"`
	ResidentRecords int   `json:"residentRecords"`
	ResidentBytes   int64 `json:"residentBytes"`
}

// APIResponse 统一的API响应格式
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// UploadRequest 上传字体请求，载荷为base64编码的文件内容
type UploadRequest struct {
	FileName string `json:"fileName"`
	Payload  string `json:"payload"`
}

// DeleteRequest 删除字体请求
type DeleteRequest struct {
	Name string `json:"name"`
}

// EnsureRequest 确保字体可用请求
type EnsureRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// EnsureResponse 确保字体可用的结果
type EnsureResponse struct {
	Available bool `json:"available"`
}

// WSCommand 通过事件通道下发的命令
type WSCommand struct {
	Type     string `json:"type"`
	Name     string `json:"name,omitempty"`
	FileName string `json:"fileName,omitempty"`
	Payload  string `json:"payload,omitempty"`
	URL      string `json:"url,omitempty"`
}

// WSNotification 推送给事件通道订阅者的通知
type WSNotification struct {
	Type  string   `json:"type"`
	Names []string `json:"names,omitempty"`
	Error string   `json:"error,omitempty"`
}
