package pushgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент HTTP шлюза push-уведомлений
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(url, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет сообщение на все устройства получателя
func (c *Client) Send(ctx context.Context, msg Message) (*SendResponse, error) {
	if len(msg.Tokens) == 0 {
		return nil, ErrNoTokens
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "key="+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		// Продолжаем обработку
	case http.StatusBadRequest:
		var e ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, fmt.Errorf("%w: rejected message: %s", ErrInvalidResponse, e.Message)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var result SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if result.SuccessCount == 0 && result.FailureCount > 0 {
		return &result, ErrDeliveryFailed
	}

	c.log.Info("Push delivered: title=%q, success=%d, failure=%d", msg.Title, result.SuccessCount, result.FailureCount)
	return &result, nil
}
