// Package search filters lookup entries by tag, category, description, and
// free keyword. Distinct criteria combine with AND; repeated values of the
// same criterion (multiple tags) match when ANY is present.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"inlay/internal/lookup"
)

// Query describes the search criteria. Zero-valued fields are ignored.
type Query struct {
	Tags        []string
	Category    string
	Description string
	Keyword     string
}

// IsEmpty reports whether no criterion was supplied.
func (q Query) IsEmpty() bool {
	return len(q.Tags) == 0 &&
		strings.TrimSpace(q.Category) == "" &&
		strings.TrimSpace(q.Description) == "" &&
		strings.TrimSpace(q.Keyword) == ""
}

// Matches reports whether the entry satisfies every supplied criterion.
// Tag and category comparisons are case-insensitive exact matches;
// description and keyword are case-insensitive substring matches. Keyword
// searches across tags, description, category, and notes.
func (q Query) Matches(entry lookup.Entry) bool {
	if len(q.Tags) > 0 && !matchesAnyTag(entry.Tags, q.Tags) {
		return false
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		if !strings.EqualFold(entry.Category, category) {
			return false
		}
	}
	if desc := strings.TrimSpace(q.Description); desc != "" {
		if !containsFold(entry.Description, desc) {
			return false
		}
	}
	if keyword := strings.TrimSpace(q.Keyword); keyword != "" {
		searchable := strings.Join(append([]string{
			entry.Description,
			entry.Category,
			entry.Notes,
		}, entry.Tags...), " ")
		if !containsFold(searchable, keyword) {
			return false
		}
	}
	return true
}

func matchesAnyTag(entryTags, queryTags []string) bool {
	for _, want := range queryTags {
		for _, have := range entryTags {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Result pairs a lookup key with its entry.
type Result struct {
	Key   string
	Entry lookup.Entry
}

// Run evaluates the query against every entry and returns matches sorted by
// key using locale-aware collation.
func Run(file *lookup.File, q Query) []Result {
	results := make([]Result, 0)
	for key, entry := range file.Images {
		if q.Matches(entry) {
			results = append(results, Result{Key: key, Entry: entry})
		}
	}

	collator := newCollator()
	sort.Slice(results, func(i, j int) bool {
		return collator.CompareString(results[i].Key, results[j].Key) < 0
	})
	return results
}

// CategoryCount is one category with its entry count.
type CategoryCount struct {
	Name  string
	Count int
}

// Categories lists the distinct categories in the lookup with counts,
// sorted by name. Unlike the summary aggregate, this view includes the
// default category of metadata-less entries so the listing covers every
// entry in the file.
func Categories(file *lookup.File) []CategoryCount {
	counts := make(map[string]int)
	for _, entry := range file.Images {
		category := entry.Category
		if category == "" {
			category = "uncategorized"
		}
		counts[category]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	newCollator().SortStrings(names)

	result := make([]CategoryCount, 0, len(names))
	for _, name := range names {
		result = append(result, CategoryCount{Name: name, Count: counts[name]})
	}
	return result
}

// Tags lists the distinct tags in the lookup, sorted.
func Tags(file *lookup.File) []string {
	set := make(map[string]struct{})
	for _, entry := range file.Images {
		for _, tag := range entry.Tags {
			set[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	newCollator().SortStrings(tags)
	return tags
}

func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
