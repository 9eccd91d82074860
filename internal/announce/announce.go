// Package announce is a thin client for the external announcements
// content service. The service itself is an opaque collaborator; this
// only fetches and decodes.
package announce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/petchan-dev/petchan/internal/domain"
)

type Client struct {
	baseUrl string
	apiKey  string
	client  *http.Client
}

func New(baseUrl, apiKey string) *Client {
	return &Client{
		baseUrl: baseUrl,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Configured reports whether the content service is wired up.
// An unconfigured client makes the announcement endpoints serve
// empty lists instead of failing.
func (c *Client) Configured() bool {
	return c != nil && c.baseUrl != ""
}

type listResponse struct {
	Contents []domain.Announcement `json:"contents"`
}

func (c *Client) List(ctx context.Context) ([]domain.Announcement, error) {
	var body listResponse
	if err := c.get(ctx, c.baseUrl+"/announcements", &body); err != nil {
		return nil, err
	}
	return body.Contents, nil
}

func (c *Client) Get(ctx context.Context, id string) (domain.Announcement, error) {
	var a domain.Announcement
	err := c.get(ctx, c.baseUrl+"/announcements/"+url.PathEscape(id), &a)
	return a, err
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-MICROCMS-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("content service returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
