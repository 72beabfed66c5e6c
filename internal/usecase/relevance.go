package usecase

import (
	"strings"

	"github.com/lenscart/backend/internal/domain"
)

// Keyword match weights, applied per keyword and summed
const (
	weightTitle    = 3 // keyword appears in the product title
	weightCategory = 2 // keyword appears in the category labels
	weightTag      = 2 // keyword appears in the tag labels
	rescueScore    = 1 // zero matches, but the product is categorized at all
)

// Score computes the relevance of one product against the keyword set:
// a case-insensitive substring match per keyword, weighted by field.
// A product that matches nothing but carries category text still scores 1,
// so category-only catalogs surface results. Pure function of its inputs.
func Score(keywords []string, p *domain.Product) int {
	title := strings.ToLower(p.Name)
	categories := strings.ToLower(p.Categories)
	tags := strings.ToLower(p.Tags)

	score := 0
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(title, kw) {
			score += weightTitle
		}
		if strings.Contains(categories, kw) {
			score += weightCategory
		}
		if strings.Contains(tags, kw) {
			score += weightTag
		}
	}

	if score == 0 && categories != "" {
		score = rescueScore
	}

	return score
}

// Deduplicate keeps the first occurrence of each distinct link and caps the
// result at max items. The returned slice is never nil.
func Deduplicate(items []domain.ResultItem, max int) []domain.ResultItem {
	unique := make([]domain.ResultItem, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		if seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		unique = append(unique, item)
		if len(unique) == max {
			break
		}
	}

	return unique
}
