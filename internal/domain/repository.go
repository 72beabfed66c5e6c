package domain

import "context"

// ProductRepository defines read access to the product catalog.
// The core never writes to the catalog; both methods return bounded pages.
type ProductRepository interface {
	// ListPublished returns up to limit published products in catalog order.
	ListPublished(ctx context.Context, limit int) ([]Product, error)

	// ListRecent returns up to limit products ordered by publish date
	// descending, regardless of status.
	ListRecent(ctx context.Context, limit int) ([]Product, error)
}

// VisionClient defines the interface for the external image-analysis service
type VisionClient interface {
	// ExtractKeywords sends the image to the service and returns the
	// lowercase keywords it identified.
	ExtractKeywords(ctx context.Context, image []byte) ([]string, error)
}
