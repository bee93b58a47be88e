package weatherapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vosstorgg/dailybot/internal/domain"
)

const astronomyEndpoint = "astronomy.json"

// truncateString обрезает строку до указанной длины
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Client клиент WeatherAPI для получения астрономических данных
type Client struct {
	cfg        *Config
	HTTPClient *http.Client
	Log        *slog.Logger
}

// NewClient создаёт новый клиент WeatherAPI
func NewClient(cfg *Config, log *slog.Logger) *Client {
	transport := &http.Transport{}

	if cfg.ShouldSkipSSL() {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		cfg: cfg,
		HTTPClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		Log: log,
	}
}

// buildURL собирает полный URL запроса астрономических данных на дату
func (c *Client) buildURL(date time.Time) string {
	baseURL := strings.TrimSuffix(c.cfg.BaseURL, "/")

	params := url.Values{}
	params.Set("key", c.cfg.APIKey)
	params.Set("q", c.cfg.ReferencePoint)
	params.Set("dt", date.Format("2006-01-02"))

	return baseURL + "/" + astronomyEndpoint + "?" + params.Encode()
}

// GetAstronomy получает данные о фазе Луны на указанную дату.
// Любой сбой запроса или ответа вне 200 маппится в domain.ErrProviderUnavailable.
func (c *Client) GetAstronomy(ctx context.Context, date time.Time) (*domain.MoonData, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(date), nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		c.Log.Debug("weather API request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: чтение ответа: %v", domain.ErrProviderUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			c.Log.Debug("weather API returned error",
				"status_code", resp.StatusCode,
				"api_code", apiErr.Error.Code,
				"message", apiErr.Error.Message,
			)
			return nil, fmt.Errorf("%w: [status=%d] %s", domain.ErrProviderUnavailable, resp.StatusCode, apiErr.Error.Message)
		}
		c.Log.Debug("weather API returned non-200 status",
			"status_code", resp.StatusCode,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, fmt.Errorf("%w: status=%d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var astroResp astronomyResponse
	if err := json.Unmarshal(body, &astroResp); err != nil {
		c.Log.Debug("failed to unmarshal weather API response",
			"error", err,
			"body_preview", truncateString(string(body), 200),
		)
		return nil, fmt.Errorf("%w: unmarshal: %v", domain.ErrProviderUnavailable, err)
	}

	illumination, err := astroResp.Astronomy.Astro.MoonIllumination.Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: некорректная освещённость Луны: %v", domain.ErrProviderUnavailable, err)
	}

	return &domain.MoonData{
		Phase:        astroResp.Astronomy.Astro.MoonPhase,
		Illumination: int(illumination),
		Date:         date.Format("2006-01-02"),
		Source:       "weatherapi.com",
	}, nil
}
