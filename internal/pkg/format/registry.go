package format

import "strings"

// 支持的字体扩展名到MIME类型的映射
var extToMime = map[string]string{
	"ttf":   "font/ttf",
	"otf":   "font/otf",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"eot":   "application/vnd.ms-fontobject",
}

// MIME类型到扩展名的映射，包含历史上常见的别名
var mimeToExt = map[string]string{
	"font/ttf":                      "ttf",
	"font/otf":                      "otf",
	"font/woff":                     "woff",
	"font/woff2":                    "woff2",
	"font/sfnt":                     "ttf",
	"application/font-sfnt":         "ttf",
	"application/x-font-ttf":        "ttf",
	"application/x-font-truetype":   "ttf",
	"application/x-font-opentype":   "otf",
	"application/font-woff":         "woff",
	"application/font-woff2":        "woff2",
	"application/vnd.ms-fontobject": "eot",
}

// Normalize 规范化扩展名：去掉前导点并转为小写
func Normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsSupported 检查扩展名是否为受支持的字体格式
func IsSupported(ext string) bool {
	_, ok := extToMime[Normalize(ext)]
	return ok
}

// MimeTypeOf 返回扩展名对应的MIME类型，未知扩展名返回通用二进制类型
func MimeTypeOf(ext string) string {
	if mime, ok := extToMime[Normalize(ext)]; ok {
		return mime
	}
	return "application/octet-stream"
}

// ExtensionOfMime 根据MIME类型推断扩展名，无法识别时返回false
func ExtensionOfMime(mimeType string) (string, bool) {
	ext, ok := mimeToExt[strings.ToLower(strings.TrimSpace(mimeType))]
	return ext, ok
}

// Extensions 返回所有受支持的扩展名，顺序固定
func Extensions() []string {
	return []string{"ttf", "otf", "woff", "woff2", "eot"}
}
