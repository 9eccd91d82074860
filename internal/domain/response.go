package domain

import (
	"database/sql"
	"time"
)

type ResponseCreationData struct {
	ThreadId  ThreadId
	Content   Content
	ImageUrls []string
	AnchorTo  ResponseId // empty when the response is not a reply
	ClientIP  string
}

type Response struct {
	Id        ResponseId
	ThreadId  ThreadId
	Content   Content
	ImageUrls ImageUrls
	AnchorTo  sql.NullString
	UserIP    sql.NullString
	CreatedAt time.Time
}

// ThreadPage is a thread plus its responses in insertion order,
// enriched for display: 1-based post numbers, resolved anchor labels
// and rendered content HTML. The display number is derived from the
// creation order, never stored.
type ThreadPage struct {
	Thread    Thread         `json:"thread"`
	Responses []ResponseView `json:"responses"`
}

type ResponseView struct {
	Id        ResponseId `json:"id"`
	Number    int        `json:"number"`
	Content   Content    `json:"content"`
	Html      string     `json:"html"`
	Anchor    string     `json:"anchor,omitempty"` // ">>N", omitted when unresolvable
	ImageUrls []string   `json:"image_urls,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
