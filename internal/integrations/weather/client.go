package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент погодного сервиса с in-memory TTL кешем
// Снимок на пару (город, дата) запрашивается один раз за TTL:
// повторные бронирования на ту же дату переиспользуют закешированный ответ
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	log        Logger
}

// NewClient создает новый экземпляр погодного клиента
func NewClient(baseURL string, timeout time.Duration, cacheTTL time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cache: gocache.New(cacheTTL, 2*cacheTTL),
		log:   log,
	}
}

// Snapshot получает снимок погоды для города и даты
// Ошибки не критичны для бронирования - вызывающая сторона обрабатывает
// их в режиме best-effort
func (c *Client) Snapshot(ctx context.Context, city string, date time.Time) (*Snapshot, error) {
	key := cacheKey(city, date)
	if cached, found := c.cache.Get(key); found {
		return cached.(*Snapshot), nil
	}

	reqURL := fmt.Sprintf("%s/internal/weather?city=%s&date=%s",
		c.baseURL, url.QueryEscape(city), date.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var snapshot Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.cache.Set(key, &snapshot, gocache.DefaultExpiration)

	return &snapshot, nil
}

func cacheKey(city string, date time.Time) string {
	return fmt.Sprintf("%s|%s", city, date.Format("2006-01-02"))
}
