package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"font-manager/internal/config"
	"font-manager/internal/models"
	"font-manager/internal/pkg/fonts"
)

// nameOf 去掉扩展名得到字体名
func nameOf(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}

// AdminHandler 处理上传、删除等管理操作的API请求
type AdminHandler struct {
	config  *config.Config
	service *fonts.Service
}

// NewAdminHandler 创建新的管理处理器
func NewAdminHandler(config *config.Config, service *fonts.Service) *AdminHandler {
	return &AdminHandler{
		config:  config,
		service: service,
	}
}

// UploadFont 上传字体文件，载荷为base64编码
func (h *AdminHandler) UploadFont(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		handleAppError(w, models.ErrMethodNotAllowed)
		return
	}

	var req models.UploadRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		handleAppError(w, err.(*models.AppError))
		return
	}

	if err := h.service.Upload(req.FileName, req.Payload); err != nil {
		writeErrorResponse(w, models.HTTPCodeOf(err), "字体上传失败", err)
		return
	}

	// 上传本身不更新缓存，这里显式失效以保证界面立即读到新字节
	h.service.Invalidate(nameOf(req.FileName))

	writeSuccessResponse(w, "字体上传成功", nil)
}

// DeleteFont 删除指定名称的所有字体文件
func (h *AdminHandler) DeleteFont(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		handleAppError(w, models.ErrMethodNotAllowed)
		return
	}

	var req models.DeleteRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		handleAppError(w, err.(*models.AppError))
		return
	}
	if req.Name == "" {
		writeErrorResponse(w, http.StatusBadRequest, "缺少name字段", nil)
		return
	}

	if err := h.service.Delete(req.Name); err != nil {
		writeErrorResponse(w, models.HTTPCodeOf(err), "字体删除失败", err)
		return
	}

	writeSuccessResponse(w, "字体删除成功", nil)
}

// GetStats 返回磁盘与缓存的统计信息
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeSuccessResponse(w, "统计信息", h.service.Stats())
}

// ClearCache 清空字体缓存
func (h *AdminHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		handleAppError(w, models.ErrMethodNotAllowed)
		return
	}

	h.service.ClearCache()
	writeSuccessResponse(w, "缓存已清空", nil)
}
