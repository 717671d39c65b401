package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"
)

// Result 一次字节抓取的结果
type Result struct {
	Bytes    []byte
	MimeType string
}

// Fetcher 对外部HTTP抓取能力的抽象
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Result, error)
}

// HTTPFetcher 基于net/http的抓取实现，支持代理
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher 创建新的HTTP抓取器；proxy为空时直连
func NewHTTPFetcher(proxy string) *HTTPFetcher {
	client := &http.Client{Timeout: 30 * time.Second}
	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err == nil {
			client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}
	return &HTTPFetcher{client: client}
}

// Fetch 下载URL的全部字节并返回声明的MIME类型
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("意外的HTTP状态码: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	mimeType := resp.Header.Get("Content-Type")
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}

	return &Result{Bytes: data, MimeType: mimeType}, nil
}
