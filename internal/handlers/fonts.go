package handlers

import (
	"net/http"

	"font-manager/internal/config"
	"font-manager/internal/models"
	"font-manager/internal/pkg/fonts"
)

// FontsHandler 处理字体读取相关的API请求
type FontsHandler struct {
	config  *config.Config
	service *fonts.Service
}

// NewFontsHandler 创建新的字体处理器
func NewFontsHandler(config *config.Config, service *fonts.Service) *FontsHandler {
	return &FontsHandler{
		config:  config,
		service: service,
	}
}

// GetFonts 返回当前的字体名称列表（含哨兵）
func (h *FontsHandler) GetFonts(w http.ResponseWriter, r *http.Request) {
	writeSuccessResponse(w, "字体列表", h.service.ListFontNames())
}

// GetFontData 返回指定字体的data URL
func (h *FontsHandler) GetFontData(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeErrorResponse(w, http.StatusBadRequest, "缺少name参数", nil)
		return
	}

	dataURL, found := h.service.GetFontDataURL(name)
	if !found {
		handleAppError(w, models.ErrFontNotFound)
		return
	}

	writeSuccessResponse(w, "字体数据", map[string]string{"name": name, "dataUrl": dataURL})
}

// GetFontInfo 返回指定字体的格式与大小
func (h *FontsHandler) GetFontInfo(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeErrorResponse(w, http.StatusBadRequest, "缺少name参数", nil)
		return
	}

	info, found := h.service.GetFontInfo(name)
	if !found {
		handleAppError(w, models.ErrFontNotFound)
		return
	}

	writeSuccessResponse(w, "字体信息", info)
}

// EnsureFont 保证字体可用，必要时从远端下载
func (h *FontsHandler) EnsureFont(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		handleAppError(w, models.ErrMethodNotAllowed)
		return
	}

	var req models.EnsureRequest
	if err := decodeJSONRequest(r, &req); err != nil {
		handleAppError(w, err.(*models.AppError))
		return
	}
	if req.Name == "" {
		writeErrorResponse(w, http.StatusBadRequest, "缺少name字段", nil)
		return
	}

	available := h.service.EnsureAvailable(r.Context(), req.Name, req.URL)
	writeSuccessResponse(w, "可用性检查完成", models.EnsureResponse{Available: available})
}
