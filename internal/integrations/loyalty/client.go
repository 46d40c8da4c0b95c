package loyalty

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

// Client клиент сервиса лояльности
// Ядро сообщает только количество сыгранных часов; начисление баллов
// и кривая уровней - ответственность самого сервиса лояльности
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса лояльности
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type durationRequest struct {
	UserID int64   `json:"user_id"`
	Hours  float64 `json:"hours"`
}

// CreditHours сообщает сервису лояльности о сыгранных часах пользователя
func (c *Client) CreditHours(ctx context.Context, userID int64, hours float64) error {
	return c.post(ctx, "/internal/loyalty/credit", durationRequest{UserID: userID, Hours: hours})
}

// ReverseHours откатывает ранее зачтенные часы (при отмене бронирования)
func (c *Client) ReverseHours(ctx context.Context, userID int64, hours float64) error {
	return c.post(ctx, "/internal/loyalty/reverse", durationRequest{UserID: userID, Hours: hours})
}

func (c *Client) post(ctx context.Context, path string, payload durationRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
