package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RestClient talks to the remote counter service:
//
//	POST {base}/limit/{identifier} -> {"success": bool, "limit": n, "remaining": n, "reset": unix_ms}
//
// The backend maintains the sliding window; each call both counts the
// request and reports whether it fit into the window.
type RestClient struct {
	baseUrl string
	token   string
	client  *http.Client
}

func NewRestClient(baseUrl, token string, timeout time.Duration) *RestClient {
	return &RestClient{
		baseUrl: baseUrl,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

type limitResponse struct {
	Success   bool  `json:"success"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"` // unix milliseconds
}

func (c *RestClient) Limit(ctx context.Context, identifier string) (Result, error) {
	endpoint := fmt.Sprintf("%s/limit/%s", c.baseUrl, url.PathEscape(identifier))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("rate limit backend returned status %d", resp.StatusCode)
	}

	var body limitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("failed to decode rate limit response: %w", err)
	}

	return Result{
		Allowed:   body.Success,
		Limit:     body.Limit,
		Remaining: body.Remaining,
		Reset:     time.UnixMilli(body.Reset),
	}, nil
}
