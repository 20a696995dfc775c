package listing

import "encoding/json"

// Listing is a single job post embedded in its owner's user record. Field
// names follow the persisted document format.
type Listing struct {
	Title        string          `json:"listing_title"`
	Pics         []string        `json:"pic"`
	Description  string          `json:"description"`
	Age          json.RawMessage `json:"age,omitempty"`
	AgeSuggested json.RawMessage `json:"age_suggested,omitempty"`
	AgeRequired  json.RawMessage `json:"age_required,omitempty"`
	City         string          `json:"city"`
	Date         string          `json:"date"`
	PayInfo      string          `json:"payinfo"`
	OwnerEmail   string          `json:"ownerEmail"`
	ID           string          `json:"id"`
	CreatedAt    int64           `json:"created_at"` // unix milliseconds
}

// SearchResult annotates a listing with its owner's email for search
// responses.
type SearchResult struct {
	Listing
	UserEmail string `json:"user_email"`
}

// CreateRequest carries the caller-supplied listing fields. Pics holds
// base64 data URIs before decoding; the age fields ride through unvalidated.
type CreateRequest struct {
	Title        string          `json:"listing_title"`
	Description  string          `json:"description"`
	City         string          `json:"city"`
	Date         string          `json:"date"`
	PayInfo      string          `json:"payinfo"`
	Age          json.RawMessage `json:"age"`
	AgeSuggested json.RawMessage `json:"age_suggested"`
	AgeRequired  json.RawMessage `json:"age_required"`
	Pics         []string        `json:"pic"`
}
