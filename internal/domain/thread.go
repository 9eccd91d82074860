package domain

import (
	"database/sql"
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title         ThreadTitle
	Content       Content
	CategoryId    CategoryId
	SubCategoryId CategoryId
	ImageUrls     []string
	ClientIP      string // empty when the client address is unknown
}

type Thread struct {
	Id             ThreadId       `json:"id"`
	Title          ThreadTitle    `json:"title"`
	Content        Content        `json:"content"`
	CategoryId     CategoryId     `json:"category_id"`
	SubCategoryId  CategoryId     `json:"sub_category_id"`
	ImageUrls      ImageUrls      `json:"image_urls"`
	UserIP         sql.NullString `json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	ResponseCount  int            `json:"response_count"`
	LastResponseAt *time.Time     `json:"last_response_at,omitempty"`
}

// Created is what the create procedures return to the caller.
type Created struct {
	Id string `json:"id"`
}
