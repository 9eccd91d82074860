package domain

import "github.com/lib/pq"

type (
	ThreadId   = string // uuid, generated by the database
	ResponseId = string
	CategoryId = string

	ThreadTitle = string
	Content     = string

	// ImageUrls is stored as text[] in postgres. Max 3 entries,
	// enforced at validation time before any persistence call.
	ImageUrls = pq.StringArray
)

// Client identifies the submitting client as far as an anonymous
// forum can: best-effort network address plus user agent. IP may be
// empty, in which case the client falls into the shared "anonymous"
// rate-limit bucket.
type Client struct {
	IP        string
	UserAgent string
}

// Identity returns the rate-limit identity for this client.
func (c Client) Identity() string {
	if c.IP == "" {
		return "anonymous"
	}
	return c.IP
}
