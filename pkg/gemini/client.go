// Package gemini provides a client for the generative language API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"private-chat-go/internal/config"
)

// Part 是一个内容分段，要么是文本，要么是内联的二进制数据。
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData 携带 base64 编码的二进制内容及其 MIME 类型。
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Content 是发送给生成接口的一个回合（turn），带角色和一个或多个分段。
type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// NewTextContent 构造一个只含单个文本分段的回合。
func NewTextContent(role, text string) Content {
	return Content{Role: role, Parts: []Part{{Text: text}}}
}

// APIError 表示上游接口返回的非 2xx 响应，Body 为上游原样返回的错误内容。
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api returned status %d: %s", e.StatusCode, e.Body)
}

// Client defines the interface for the generation gateway.
type Client interface {
	// GenerateContent 同步调用 generateContent 接口，返回第一个候选的全部文本
	// 分段（以换行拼接）。没有任何候选时返回空字符串，不视为错误。
	GenerateContent(ctx context.Context, apiKey string, contents []Content) (string, error)
}

type geminiClient struct {
	cfg    config.GeminiConfig
	client *http.Client
}

// NewClient 根据配置创建一个新的 Gemini 客户端。
// 模型密钥不在此处持有，而是由调用方逐次传入（密钥存于设置表，可随时在 UI 更换）。
func NewClient(cfg config.GeminiConfig) Client {
	return &geminiClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

type generateRequest struct {
	Model    string    `json:"model"`
	Contents []Content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateContent 将回合数组序列化后 POST 到固定的模型端点。
// 密钥通过 x-goog-api-key 请求头传递，绝不写入日志。
func (c *geminiClient) GenerateContent(ctx context.Context, apiKey string, contents []Content) (string, error) {
	reqBody := generateRequest{
		Model:    c.cfg.Model,
		Contents: contents,
	}
	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call generate api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var data generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode generate response: %w", err)
	}

	// 没有候选不算错误，按空回复处理
	if len(data.Candidates) == 0 {
		return "", nil
	}

	texts := make([]string, 0, len(data.Candidates[0].Content.Parts))
	for _, p := range data.Candidates[0].Content.Parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n"), nil
}
