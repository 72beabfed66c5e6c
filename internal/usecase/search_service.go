package usecase

import (
	"context"
	"log"

	"github.com/lenscart/backend/internal/domain"
)

// SearchServiceConfig holds the page sizes and caps of the search pipeline
type SearchServiceConfig struct {
	VocabScanLimit int
	VocabSize      int
	ScanLimit      int
	FallbackLimit  int
	MaxResults     int
}

// SearchService runs the image-to-products pipeline: resolve a keyword set,
// score the catalog against it, and assemble a bounded, deduplicated result.
type SearchService struct {
	repo          domain.ProductRepository
	vision        domain.VisionClient
	vocabulary    *VocabularyService
	scanLimit     int
	fallbackLimit int
	maxResults    int
}

// NewSearchService creates a search service with dependencies
func NewSearchService(
	repo domain.ProductRepository,
	vision domain.VisionClient,
	config SearchServiceConfig,
) *SearchService {
	scanLimit := config.ScanLimit
	if scanLimit <= 0 {
		scanLimit = 120
	}
	fallbackLimit := config.FallbackLimit
	if fallbackLimit <= 0 {
		fallbackLimit = 6
	}
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 6
	}

	return &SearchService{
		repo:          repo,
		vision:        vision,
		vocabulary:    NewVocabularyService(repo, config.VocabScanLimit, config.VocabSize),
		scanLimit:     scanLimit,
		fallbackLimit: fallbackLimit,
		maxResults:    maxResults,
	}
}

// Search resolves keywords for the uploaded image and returns matching
// products. An empty image yields an empty response without touching the
// catalog. Every internal failure degrades to the weakest valid fallback;
// the response is always well formed.
func (s *SearchService) Search(ctx context.Context, image []byte) (*domain.SearchResponse, error) {
	if len(image) == 0 {
		return &domain.SearchResponse{Products: []domain.ResultItem{}}, nil
	}

	keywords := s.resolveKeywords(ctx, image)
	results := s.assemble(ctx, keywords)

	return &domain.SearchResponse{
		Products: Deduplicate(results, s.maxResults),
	}, nil
}

// resolveKeywords picks the keyword set for one request: the vision
// service's answer when it has one, the catalog vocabulary otherwise.
// Vision failures are absorbed here; they never reach the caller.
func (s *SearchService) resolveKeywords(ctx context.Context, image []byte) []string {
	keywords, err := s.vision.ExtractKeywords(ctx, image)
	if err != nil {
		log.Printf("[SEARCH] vision unavailable, using catalog vocabulary: %v", err)
	}
	if len(keywords) > 0 {
		return keywords
	}

	return s.vocabulary.BuildVocabulary(ctx)
}

// assemble scans the catalog in order, keeping positively scored products
// that have an image. If the scored scan produces nothing it falls back to
// the most recent listable products, ignoring scores entirely, so the
// response is only empty when the catalog has no displayable product at all.
func (s *SearchService) assemble(ctx context.Context, keywords []string) []domain.ResultItem {
	results := make([]domain.ResultItem, 0, s.maxResults)
	added := make(map[int64]bool)

	products, err := s.repo.ListPublished(ctx, s.scanLimit)
	if err != nil {
		log.Printf("[SEARCH] catalog scan failed: %v", err)
	}

	for i := range products {
		p := &products[i]
		if added[p.ID] {
			continue
		}
		if Score(keywords, p) == 0 {
			continue
		}
		if !p.HasImage() {
			continue
		}

		results = append(results, resultItem(p))
		added[p.ID] = true
	}

	if len(results) > 0 {
		return results
	}

	recent, err := s.repo.ListRecent(ctx, s.fallbackLimit)
	if err != nil {
		log.Printf("[SEARCH] recency fallback failed: %v", err)
		return results
	}

	for i := range recent {
		p := &recent[i]
		if !p.HasImage() {
			continue
		}
		results = append(results, resultItem(p))
	}

	return results
}

func resultItem(p *domain.Product) domain.ResultItem {
	return domain.ResultItem{
		Title: p.Name,
		Image: p.ImageURL,
		Link:  p.Permalink,
		Exact: false,
	}
}
