package domain

import "database/sql"

const (
	CategoryMain = "main"
	CategorySub  = "sub"
)

// Category is read-only from the posting pipeline's perspective.
type Category struct {
	Id           CategoryId     `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"` // main | sub
	ParentId     sql.NullString `json:"-"`
	DisplayOrder int            `json:"display_order"`
}
