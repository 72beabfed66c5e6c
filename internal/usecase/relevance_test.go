package usecase

import (
	"testing"

	"github.com/lenscart/backend/internal/domain"
)

func TestScore(t *testing.T) {
	t.Run("title match scores 3", func(t *testing.T) {
		p := &domain.Product{Name: "Red Running Shoe", Categories: "Footwear", Tags: "sport"}
		if got := Score([]string{"shoe"}, p); got != 3 {
			t.Errorf("Score = %d, want 3", got)
		}
	})

	t.Run("matches accumulate across fields", func(t *testing.T) {
		// "shoe" hits the title (+3) and is a substring of "Shoes" (+2)
		p := &domain.Product{Name: "Red Running Shoe", Categories: "Shoes", Tags: "sport"}
		if got := Score([]string{"shoe"}, p); got != 5 {
			t.Errorf("Score = %d, want 5", got)
		}
	})

	t.Run("category and tag matches score 2 each", func(t *testing.T) {
		p := &domain.Product{Name: "Classic Tee", Categories: "summer wear", Tags: "summer sale"}
		if got := Score([]string{"summer"}, p); got != 4 {
			t.Errorf("Score = %d, want 4", got)
		}
	})

	t.Run("scores sum over all keywords", func(t *testing.T) {
		p := &domain.Product{Name: "Leather Bag", Categories: "Bags", Tags: "leather"}
		// "bag": title +3, categories +2; "leather": title +3, tags +2
		if got := Score([]string{"bag", "leather"}, p); got != 10 {
			t.Errorf("Score = %d, want 10", got)
		}
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		p := &domain.Product{Name: "RED SHOE"}
		if got := Score([]string{"Shoe"}, p); got != 3 {
			t.Errorf("Score = %d, want 3", got)
		}
	})

	t.Run("zero score with category text is rescued to 1", func(t *testing.T) {
		p := &domain.Product{Name: "Widget", Categories: "Shoes"}
		if got := Score([]string{"xyz"}, p); got != 1 {
			t.Errorf("Score = %d, want 1", got)
		}
	})

	t.Run("zero score without category text stays 0", func(t *testing.T) {
		p := &domain.Product{Name: "Widget", Tags: "misc"}
		if got := Score([]string{"xyz"}, p); got != 0 {
			t.Errorf("Score = %d, want 0", got)
		}
	})

	t.Run("empty keyword set with categories rescues to 1", func(t *testing.T) {
		p := &domain.Product{Name: "Widget", Categories: "Misc"}
		if got := Score(nil, p); got != 1 {
			t.Errorf("Score = %d, want 1", got)
		}
	})

	t.Run("empty keywords in the set are ignored", func(t *testing.T) {
		p := &domain.Product{Name: "Widget"}
		if got := Score([]string{""}, p); got != 0 {
			t.Errorf("Score = %d, want 0", got)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		p := &domain.Product{Name: "Red Running Shoe", Categories: "Shoes", Tags: "sport"}
		keywords := []string{"shoe", "sport", "red"}
		first := Score(keywords, p)
		for i := 0; i < 10; i++ {
			if got := Score(keywords, p); got != first {
				t.Fatalf("Score = %d on repeat, want %d", got, first)
			}
		}
	})
}

func TestDeduplicate(t *testing.T) {
	item := func(link string) domain.ResultItem {
		return domain.ResultItem{Title: "p", Image: "img", Link: link}
	}

	t.Run("keeps first occurrence of each link", func(t *testing.T) {
		items := []domain.ResultItem{
			{Title: "first", Link: "/a"},
			{Title: "second", Link: "/a"},
			{Title: "third", Link: "/b"},
		}
		got := Deduplicate(items, 6)
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].Title != "first" {
			t.Errorf("got[0].Title = %q, want first", got[0].Title)
		}
		if got[1].Link != "/b" {
			t.Errorf("got[1].Link = %q, want /b", got[1].Link)
		}
	})

	t.Run("truncates to max", func(t *testing.T) {
		var items []domain.ResultItem
		for _, link := range []string{"/a", "/b", "/c", "/d", "/e", "/f", "/g", "/h"} {
			items = append(items, item(link))
		}
		got := Deduplicate(items, 6)
		if len(got) != 6 {
			t.Errorf("len = %d, want 6", len(got))
		}
	})

	t.Run("returns empty non-nil slice for empty input", func(t *testing.T) {
		got := Deduplicate(nil, 6)
		if got == nil {
			t.Fatal("got nil, want empty slice")
		}
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("output never repeats a link", func(t *testing.T) {
		items := []domain.ResultItem{
			item("/a"), item("/b"), item("/a"), item("/c"), item("/b"), item("/a"),
		}
		got := Deduplicate(items, 6)
		seen := make(map[string]bool)
		for _, r := range got {
			if seen[r.Link] {
				t.Errorf("duplicate link %q in output", r.Link)
			}
			seen[r.Link] = true
		}
	})
}
