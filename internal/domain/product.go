package domain

import "time"

// Product is a read-only view of one catalog entry. Categories and Tags
// hold the label text already concatenated (space separated), the way the
// catalog renders them for display.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Categories  string    `json:"categories" db:"categories"`
	Tags        string    `json:"tags" db:"tags"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Permalink   string    `json:"permalink" db:"permalink"`
	Status      string    `json:"status" db:"status"`
	PublishedAt time.Time `json:"publishedAt" db:"published_at"`
}

// HasImage reports whether the product can be shown in search results.
// Products without a primary image are never returned, regardless of score.
func (p *Product) HasImage() bool {
	return p.ImageURL != ""
}

// StatusPublished is the catalog status visible to scoring scans.
const StatusPublished = "publish"

// ResultItem is one entry of a search response. Exact is reserved for
// future exact-match signaling and is always false today.
type ResultItem struct {
	Title string `json:"title"`
	Image string `json:"image"`
	Link  string `json:"link"`
	Exact bool   `json:"exact"`
}

// SearchResponse is the externally visible result of one search request.
// Products is never nil so it marshals as a JSON array, not null.
type SearchResponse struct {
	Products []ResultItem `json:"products"`
}
