package domain

// Announcement comes from the external content service verbatim.
type Announcement struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	RevisedAt   string `json:"revisedAt"`
}
