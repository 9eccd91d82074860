// Package objectstore is a thin client for the external image
// bucket. Objects are written once and never modified.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/petchan-dev/petchan/internal/config"
)

type Client struct {
	endpoint string
	bucket   string
	token    string
	client   *http.Client
}

func New(cfg config.ObjectStorage) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		token:    cfg.Token,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether the bucket is wired up. Unconfigured
// means image uploads are disabled, text posting still works.
func (c *Client) Configured() bool {
	return c != nil && c.endpoint != ""
}

// Put stores the object and returns its public URL.
func (c *Client) Put(ctx context.Context, key, contentType string, data io.Reader) (string, error) {
	objectUrl := c.endpoint + "/" + c.bucket + "/" + key

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, objectUrl, data)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("object store returned status %d", resp.StatusCode)
	}
	return objectUrl, nil
}
