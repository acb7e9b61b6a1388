// services/health_client.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DailyTotals is one user's activity for one day as reported by the
// health provider.
type DailyTotals struct {
	Steps         int64 `json:"steps"`
	Calories      int64 `json:"calories"`
	ActiveMinutes int64 `json:"active_minutes"`
}

// HealthProvider reports raw daily activity. Values are untrusted and go
// through the anti-cheat limits before anything is credited.
type HealthProvider interface {
	GetDailyTotals(ctx context.Context, userID string, date time.Time) (DailyTotals, error)
}

// HTTPHealthProvider talks to the health aggregation service.
type HTTPHealthProvider struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewHTTPHealthProvider(baseURL, token string) *HTTPHealthProvider {
	return &HTTPHealthProvider{
		BaseURL: baseURL,
		Token:   token,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetDailyTotals calls GET /api/v1/activity/daily on the health service.
func (c *HTTPHealthProvider) GetDailyTotals(ctx context.Context, userID string, date time.Time) (DailyTotals, error) {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("date", date.UTC().Format(syncDateLayout))
	endpoint := fmt.Sprintf("%s/api/v1/activity/daily?%s", c.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return DailyTotals{}, err
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return DailyTotals{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return DailyTotals{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return DailyTotals{}, fmt.Errorf("health service returned %d: %s", resp.StatusCode, string(body))
	}

	var out DailyTotals
	if err := json.Unmarshal(body, &out); err != nil {
		return DailyTotals{}, fmt.Errorf("decode health response: %w", err)
	}
	return out, nil
}
