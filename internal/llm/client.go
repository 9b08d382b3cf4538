/**
* Name: 			client.go
* Description: 		OpenAI REST 클라이언트 (리포트 텍스트 생성, 스타일 이미지 편집)
* Workflow: 		chat/completions (텍스트 + 사진), images/edits (multipart)
 */

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"AJY_Stylist/internal/config"
	"AJY_Stylist/internal/metrics"
	"AJY_Stylist/internal/prompt"

	"go.uber.org/zap"
)

var (
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")
	ErrEmptyReport   = errors.New("empty report content")
)

// APIError OpenAI가 2xx 이외의 상태를 반환한 경우
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("OpenAI API error (%d): %s", e.StatusCode, e.Body)
}

type Client struct {
	apiKey    string
	baseURL   string
	textModel string
	image     config.ImageConfig
	http      *http.Client
	logger    *zap.Logger
}

func NewClient(cfg config.OpenAIConfig, image config.ImageConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:    cfg.APIKey,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		textModel: cfg.TextModel,
		image:     image,
		http:      &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

// GenerateReport 사진과 체형 정보로 마크다운 스타일 리포트 생성
func (c *Client) GenerateReport(ctx context.Context, systemPrompt, userText, photoURL string) (string, error) {
	if !c.HasAPIKey() {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model: c.textModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []chatContentPart{
				{Type: "text", Text: userText},
				{Type: "image_url", ImageURL: &chatImageURL{URL: photoURL}},
			}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out chatResponse
	err = c.do(req, &out)
	metrics.ObserveUpstream("openai", "chat_completions", err)
	if err != nil {
		return "", err
	}

	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReport
	}
	return out.Choices[0].Message.Content, nil
}

// EditImage 업로드 사진을 기반으로 스타일 이미지 생성
// b64_json 응답은 data URL로 변환, url 응답은 그대로 반환, 둘 다 없으면 빈 문자열
func (c *Client) EditImage(ctx context.Context, photo string, stylePrompt string) (string, error) {
	if !c.HasAPIKey() {
		return "", ErrMissingAPIKey
	}

	img, err := DecodeDataURL(photo)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	// CreateFormFile은 octet-stream으로 고정되므로 헤더를 직접 구성
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, img.Filename))
	header.Set("Content-Type", img.MimeType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return "", fmt.Errorf("failed to write image part: %w", err)
	}

	if err := mw.WriteField("prompt", stylePrompt); err != nil {
		return "", fmt.Errorf("failed to write prompt field: %w", err)
	}
	for _, f := range prompt.ImageFields(c.image) {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return "", fmt.Errorf("failed to write %s field: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/edits", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	start := time.Now()
	var out imageResponse
	err = c.do(req, &out)
	metrics.ObserveUpstream("openai", "images_edits", err)
	if err != nil {
		return "", err
	}
	c.logger.Debug("EditImage(): image generated", zap.Duration("cost", time.Since(start)))

	if len(out.Data) == 0 {
		return "", nil
	}
	if out.Data[0].B64JSON != "" {
		return "data:image/png;base64," + out.Data[0].B64JSON, nil
	}
	return out.Data[0].URL, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
