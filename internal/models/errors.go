package models

import (
	"errors"
	"fmt"
	"net/http"
)

// 核心操作的错误种类
var (
	ErrDirectoryUnreadable = errors.New("目录不可读")
	ErrUnsupportedFormat   = errors.New("不支持的字体格式")
	ErrMalformedPayload    = errors.New("载荷无法解码")
	ErrIOFailure           = errors.New("文件读写失败")
	ErrNetworkFailure      = errors.New("字体下载失败")
	ErrUnknownMimeType     = errors.New("无法识别的MIME类型")
)

// AppError 应用错误类型
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// 预定义错误
var (
	ErrInvalidRequest   = &AppError{Code: http.StatusBadRequest, Message: "请求格式无效"}
	ErrNameForbidden    = &AppError{Code: http.StatusForbidden, Message: "文件名验证失败"}
	ErrFontNotFound     = &AppError{Code: http.StatusNotFound, Message: "字体不存在"}
	ErrInternalError    = &AppError{Code: http.StatusInternalServerError, Message: "内部服务器错误"}
	ErrMethodNotAllowed = &AppError{Code: http.StatusMethodNotAllowed, Message: "方法不允许"}
)

// NewAppError 创建新的应用错误
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewBadRequestError 创建400错误
func NewBadRequestError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// NewNotFoundError 创建404错误
func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(http.StatusNotFound, message, err)
}

// NewInternalError 创建500错误
func NewInternalError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// HTTPCodeOf 根据错误种类映射HTTP状态码
func HTTPCodeOf(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedFormat), errors.Is(err, ErrMalformedPayload), errors.Is(err, ErrUnknownMimeType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
