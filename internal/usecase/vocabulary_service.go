package usecase

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/lenscart/backend/internal/domain"
)

// defaultVocabulary is returned when the catalog yields no usable tokens,
// so the fallback keyword path is never empty.
var defaultVocabulary = []string{"shirt", "shoe", "bag", "dress", "watch", "phone"}

// minTokenLength filters out connective noise like "of", "xl", "2x"
const minTokenLength = 3

// VocabularyService mines the catalog for a fallback keyword vocabulary
type VocabularyService struct {
	repo      domain.ProductRepository
	scanLimit int
	vocabSize int
}

// NewVocabularyService creates a vocabulary service reading at most
// scanLimit published products and returning at most vocabSize keywords.
func NewVocabularyService(repo domain.ProductRepository, scanLimit, vocabSize int) *VocabularyService {
	if scanLimit <= 0 {
		scanLimit = 100
	}
	if vocabSize <= 0 {
		vocabSize = 20
	}

	return &VocabularyService{
		repo:      repo,
		scanLimit: scanLimit,
		vocabSize: vocabSize,
	}
}

// BuildVocabulary returns the catalog-derived keyword list: the most
// frequent tokens across product names, categories, and tags, ranked by
// descending count with ties broken by first-encountered order. A readable
// but empty (or fully filtered) catalog yields the default vocabulary; a
// catalog read failure yields an empty list, which the resolution policy
// and the assembler's recency fallback handle downstream.
func (s *VocabularyService) BuildVocabulary(ctx context.Context) []string {
	products, err := s.repo.ListPublished(ctx, s.scanLimit)
	if err != nil {
		log.Printf("[VOCAB] catalog read failed: %v", err)
		return nil
	}

	counts := make(map[string]int)
	order := make(map[string]int)

	for _, p := range products {
		for _, field := range []string{p.Name, p.Categories, p.Tags} {
			for _, token := range strings.Fields(strings.ToLower(field)) {
				if len(token) < minTokenLength || isNumeric(token) {
					continue
				}
				if _, seen := counts[token]; !seen {
					order[token] = len(order)
				}
				counts[token]++
			}
		}
	}

	if len(counts) == 0 {
		return defaultVocabulary
	}

	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return order[tokens[i]] < order[tokens[j]]
	})

	if len(tokens) > s.vocabSize {
		tokens = tokens[:s.vocabSize]
	}

	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
