//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 针对已启动的服务(go run ./cmd/api)发送真实HTTP请求:
//
//	BOOKS_BASE_URL=http://localhost:8080 BOOKS_API_KEY=xxx go test -tags integration ./test/integration/...

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

var client = &http.Client{Timeout: Timeout}

// BaseURL 服务地址，默认http://localhost:8080
func BaseURL() string {
	if v := os.Getenv("BOOKS_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// APIKey 写操作使用的API Key
func APIKey(t *testing.T) string {
	key := os.Getenv("BOOKS_API_KEY")
	if key == "" {
		t.Skip("未设置BOOKS_API_KEY，跳过写操作集成测试")
	}
	return key
}

// Response 原始响应(状态码+响应体)
type Response struct {
	Status int
	Body   []byte
}

// Decode 解析响应体
func (r *Response) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "解析JSON响应失败: %s", string(r.Body))
}

// ErrorBody 统一错误响应
type ErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// BookData 图书响应数据
type BookData struct {
	ID     uint    `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Year   int     `json:"year"`
	ISBN   *string `json:"isbn"`
}

// BookListData 图书列表响应数据
type BookListData struct {
	Items  []BookData `json:"items"`
	Total  int64      `json:"total"`
	Offset int        `json:"offset"`
	Limit  int        `json:"limit"`
}

// Do 发送请求；apiKey为空表示不带X-API-Key
func Do(t *testing.T, method, path string, data interface{}, apiKey string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, BaseURL()+path, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败(服务是否已启动?)")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Response{Status: resp.StatusCode, Body: raw}
}

// UniqueAuthor 生成唯一的作者名，避免与已有数据混淆
func UniqueAuthor(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CreateTestBook 创建测试图书并注册清理函数
func CreateTestBook(t *testing.T, apiKey, title, author string, year int) BookData {
	t.Helper()

	resp := Do(t, http.MethodPost, "/books", map[string]interface{}{
		"title":  title,
		"author": author,
		"year":   year,
	}, apiKey)
	require.Equal(t, http.StatusCreated, resp.Status, "创建图书失败: %s", string(resp.Body))

	var book BookData
	resp.Decode(t, &book)

	t.Cleanup(func() {
		Do(t, http.MethodDelete, fmt.Sprintf("/books/%d", book.ID), nil, apiKey)
	})

	return book
}
