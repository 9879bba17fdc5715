package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type entry[T any] struct {
	record T
	fields Fields
}

// FilterAndSort returns the records that satisfy p, ordered by key. The
// result is a new slice; the input slice and its records are not modified.
// Records missing an id or a name never match.
func FilterAndSort[T any](records []T, fieldsOf func(T) Fields, p Predicates, key SortKey) []T {
	matcher := newMatcher(p)

	kept := make([]entry[T], 0, len(records))
	for _, r := range records {
		f := fieldsOf(r)
		if matcher.match(f) {
			kept = append(kept, entry[T]{record: r, fields: f})
		}
	}

	if compare := comparator(key); compare != nil {
		slices.SortStableFunc(kept, func(a, b entry[T]) int {
			return compare(a.fields, b.fields)
		})
	}

	out := make([]T, len(kept))
	for i, e := range kept {
		out[i] = e.record
	}
	return out
}

// Match reports whether a single record satisfies p.
func Match(f Fields, p Predicates) bool {
	return newMatcher(p).match(f)
}

type matcher struct {
	term         string
	category     string
	featuredOnly bool
	activeOnly   bool
}

func newMatcher(p Predicates) matcher {
	category := p.Category
	if category == AllCategories || category == All {
		category = ""
	}
	return matcher{
		term:         strings.ToLower(p.SearchTerm),
		category:     category,
		featuredOnly: p.FeaturedOnly,
		activeOnly:   p.ActiveOnly,
	}
}

func (m matcher) match(f Fields) bool {
	if !f.wellFormed() {
		return false
	}
	if m.activeOnly && !f.Active {
		return false
	}
	if m.featuredOnly && !f.Featured {
		return false
	}
	if m.category != "" && f.Category != m.category {
		return false
	}
	if m.term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(f.Name), m.term) ||
		strings.Contains(strings.ToLower(f.Description), m.term)
}

func comparator(key SortKey) func(a, b Fields) int {
	switch key {
	case SortNone:
		return nil
	case SortPriceLow:
		return func(a, b Fields) int { return a.Price.Cmp(b.Price) }
	case SortPriceHigh:
		return func(a, b Fields) int { return b.Price.Cmp(a.Price) }
	case SortRating:
		return func(a, b Fields) int { return cmp.Compare(b.Rating, a.Rating) }
	case SortProductCountDesc:
		return func(a, b Fields) int { return cmp.Compare(b.ProductCount, a.ProductCount) }
	case SortNewest:
		return func(a, b Fields) int { return b.CreatedAt.Compare(a.CreatedAt) }
	default:
		// Collator keeps per-instance buffers, so each call gets its own.
		col := collate.New(language.English)
		return func(a, b Fields) int { return col.CompareString(a.Name, b.Name) }
	}
}
