package service

import (
	"sort"
	"strings"

	fuzzysearch "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"
)

// titleIndex implements sahilm/fuzzy.Source over lowercase titles
type titleIndex struct {
	titles      []string
	lowerTitles []string
}

func newTitleIndex(titles []string) *titleIndex {
	lower := make([]string, len(titles))
	for i, t := range titles {
		lower[i] = strings.ToLower(t)
	}
	return &titleIndex{titles: titles, lowerTitles: lower}
}

// String returns the lowercase title at index i (implements fuzzy.Source)
func (idx *titleIndex) String(i int) string { return idx.lowerTitles[i] }

// Len returns the number of titles (implements fuzzy.Source)
func (idx *titleIndex) Len() int { return len(idx.titles) }

// Suggest returns up to limit titles that fuzzily match query, closest first.
// Used when a substring search comes back empty.
func (s *CatalogService) Suggest(query string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || limit <= 0 {
		return nil
	}

	titles := s.storage.List().Titles()
	matches := fuzzysearch.RankFindFold(query, titles)

	// Sort by Levenshtein distance (lower is better), catalog order on ties
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	suggestions := make([]string, 0, limit)
	for _, match := range matches {
		if len(suggestions) == limit {
			break
		}
		suggestions = append(suggestions, match.Target)
	}
	return suggestions
}

// Closest returns the stored title that best matches title, for
// "did you mean" hints when an exact title is not in the catalog
func (s *CatalogService) Closest(title string) (string, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", false
	}

	idx := newTitleIndex(s.storage.List().Titles())
	matches := fuzzy.FindFrom(strings.ToLower(title), idx)
	if len(matches) == 0 {
		return "", false
	}
	return idx.titles[matches[0].Index], true
}
