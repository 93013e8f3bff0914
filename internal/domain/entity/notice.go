package entity

import (
	"time"
)

// Category classifies a notice. The set is fixed; an empty value means
// the notice is uncategorized.
type Category string

const (
	CategoryParking     Category = "parking"
	CategoryCovid       Category = "covid"
	CategoryMaintenance Category = "maintenance"
)

// Categories lists every valid non-empty category.
var Categories = []Category{CategoryParking, CategoryCovid, CategoryMaintenance}

// Valid reports whether c is empty or one of the fixed set.
func (c Category) Valid() bool {
	if c == "" {
		return true
	}
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Notice is a categorized announcement on the community board.
// JSON tags are the API wire shape; notices are returned (and cached) as-is.
type Notice struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Category      Category  `json:"category,omitempty"`
	Date          time.Time `json:"date"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
