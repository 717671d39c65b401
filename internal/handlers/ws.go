package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"font-manager/internal/models"
	"font-manager/internal/pkg/fonts"
)

// WSHandler 宿主事件通道：客户端通过WebSocket下发upload/delete/ensure
// 命令，并在字体列表变化时收到fonts-changed通知。
type WSHandler struct {
	service  *fonts.Service
	upgrader websocket.Upgrader

	mutex   sync.Mutex
	clients map[*wsClient]struct{}
}

// wsClient 一条已建立的事件通道连接
type wsClient struct {
	conn      *websocket.Conn
	writeLock sync.Mutex
}

// send 序列化并写出一条通知；gorilla连接的并发写需要加锁
func (c *wsClient) send(msg models.WSNotification) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()
	return c.conn.WriteJSON(msg)
}

// NewWSHandler 创建新的事件通道处理器
func NewWSHandler(service *fonts.Service) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// Serve 升级连接并进入命令读取循环
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket升级失败", "error", err)
		return
	}

	client := &wsClient{conn: conn}
	h.mutex.Lock()
	h.clients[client] = struct{}{}
	h.mutex.Unlock()
	slog.Info("🔌 事件通道已连接", "远端", conn.RemoteAddr().String())

	defer func() {
		h.mutex.Lock()
		delete(h.clients, client)
		h.mutex.Unlock()
		conn.Close()
		slog.Info("🔌 事件通道已断开", "远端", conn.RemoteAddr().String())
	}()

	// 连接建立后先推送一次当前列表
	_ = client.send(models.WSNotification{Type: "fonts-changed", Names: h.service.ListFontNames()})

	for {
		var cmd models.WSCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("事件通道读取失败", "error", err)
			}
			return
		}
		h.handleCommand(r, client, cmd)
	}
}

// handleCommand 执行一条通道命令并回传结果
func (h *WSHandler) handleCommand(r *http.Request, client *wsClient, cmd models.WSCommand) {
	switch cmd.Type {
	case "upload":
		if err := h.service.Upload(cmd.FileName, cmd.Payload); err != nil {
			_ = client.send(models.WSNotification{Type: "error", Error: err.Error()})
			return
		}
		h.service.Invalidate(nameOf(cmd.FileName))
		_ = client.send(models.WSNotification{Type: "uploaded", Names: []string{nameOf(cmd.FileName)}})
	case "delete":
		if err := h.service.Delete(cmd.Name); err != nil {
			_ = client.send(models.WSNotification{Type: "error", Error: err.Error()})
			return
		}
		_ = client.send(models.WSNotification{Type: "deleted", Names: []string{cmd.Name}})
	case "ensure":
		available := h.service.EnsureAvailable(r.Context(), cmd.Name, cmd.URL)
		msgType := "unavailable"
		if available {
			msgType = "available"
		}
		_ = client.send(models.WSNotification{Type: msgType, Names: []string{cmd.Name}})
	default:
		_ = client.send(models.WSNotification{Type: "error", Error: "未知命令: " + cmd.Type})
	}
}

// BroadcastNames 向所有已连接客户端推送最新的字体列表
func (h *WSHandler) BroadcastNames(names []string) {
	h.mutex.Lock()
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mutex.Unlock()

	for _, client := range clients {
		if err := client.send(models.WSNotification{Type: "fonts-changed", Names: names}); err != nil {
			slog.Warn("推送字体列表失败", "error", err)
		}
	}
}

// CloseAll 关闭所有事件通道连接
func (h *WSHandler) CloseAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for client := range h.clients {
		client.conn.Close()
	}
	h.clients = make(map[*wsClient]struct{})
}
