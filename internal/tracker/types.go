package tracker

import (
	"time"

	"github.com/temirov/commit-tracker/internal/history"
)

// Summary describes the outcome of a collection run.
type Summary struct {
	RepositoryCount     int
	SkippedRepositories []string
	FailedRepositories  []string
	MatchedCommits      int
	DroppedEntries      int
	Authors             history.AuthorSet
	OutputPath          string
	Written             bool
	Elapsed             time.Duration
}

// RepositoryAuthors lists the distinct authors of one repository.
type RepositoryAuthors struct {
	Repository string
	Authors    []string
}

// AuthorReport describes the authors observed across all repositories.
type AuthorReport struct {
	Authors            history.AuthorSet
	Repositories       []RepositoryAuthors
	FailedRepositories []string
}
