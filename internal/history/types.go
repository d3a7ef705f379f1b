package history

import (
	"context"
	"sort"
	"time"
)

// CommitRecord is a single parsed commit belonging to a repository.
type CommitRecord struct {
	Repository string
	Timestamp  time.Time
	Author     string
	Subject    string
}

// AuthorSet holds distinct author names compared by exact string equality.
type AuthorSet map[string]struct{}

// NewAuthorSet builds a set from the provided names.
func NewAuthorSet(names ...string) AuthorSet {
	authorSet := make(AuthorSet, len(names))
	for _, name := range names {
		authorSet.Add(name)
	}
	return authorSet
}

// Add inserts an author name.
func (authorSet AuthorSet) Add(name string) {
	authorSet[name] = struct{}{}
}

// Merge inserts every name of other.
func (authorSet AuthorSet) Merge(other AuthorSet) {
	for name := range other {
		authorSet[name] = struct{}{}
	}
}

// Contains reports whether the exact name is present.
func (authorSet AuthorSet) Contains(name string) bool {
	_, present := authorSet[name]
	return present
}

// Sorted lists the names in lexical order.
func (authorSet AuthorSet) Sorted() []string {
	names := make([]string, 0, len(authorSet))
	for name := range authorSet {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HistorySource answers the two history queries needed per repository.
type HistorySource interface {
	// ListAuthors returns the author name of every commit reachable from HEAD, unfiltered by date.
	ListAuthors(executionContext context.Context, repositoryPath string) ([]string, error)
	// ListCommits returns raw "timestamp,author,subject" lines, bounded by dateRange when it is bounded.
	ListCommits(executionContext context.Context, repositoryPath string, dateRange DateRange) ([]string, error)
}

// ExtractionResult is the outcome of extracting one repository.
type ExtractionResult struct {
	Commits []CommitRecord
	Authors AuthorSet
	// TotalEntries counts the lines returned by the commit query before parsing and filtering.
	TotalEntries int
	// DroppedEntries counts lines that could not be parsed.
	DroppedEntries int
	// Skipped is set when the path is not a git repository.
	Skipped bool
	// Failed is set when the commit query failed; FailureReason carries the diagnostic.
	Failed        bool
	FailureReason string
}

// Len reports the number of distinct names.
func (authorSet AuthorSet) Len() int {
	return len(authorSet)
}
