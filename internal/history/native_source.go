package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	openRepositoryErrorTemplate = "open repository %s: %w"
	readHistoryErrorTemplate    = "read history of %s: %w"
	paragraphSeparatorConstant  = "\n\n"
	subjectLineJoinerConstant   = " "
	commitLineTemplateConstant  = "%s,%s,%s"
)

// NativeHistorySource reads history in-process from the repository object database.
type NativeHistorySource struct {
	location *time.Location
}

// NewNativeHistorySource builds a source resolving date range boundaries in the provided location.
// A nil location selects the local time zone.
func NewNativeHistorySource(location *time.Location) *NativeHistorySource {
	if location == nil {
		location = time.Local
	}
	return &NativeHistorySource{location: location}
}

// ListAuthors returns the author name of every commit reachable from HEAD.
func (source *NativeHistorySource) ListAuthors(executionContext context.Context, repositoryPath string) ([]string, error) {
	authors := make([]string, 0)
	walkError := source.walk(executionContext, repositoryPath, &git.LogOptions{}, func(commit *object.Commit) {
		authors = append(authors, commit.Author.Name)
	})
	if walkError != nil {
		return nil, walkError
	}
	return authors, nil
}

// ListCommits renders every reachable commit as a "timestamp,author,subject" line.
// A bounded range keeps commits whose committer time falls between the start of the first day
// and the end of the last day.
func (source *NativeHistorySource) ListCommits(executionContext context.Context, repositoryPath string, dateRange DateRange) ([]string, error) {
	logOptions := &git.LogOptions{}
	if dateRange.Bounded() {
		since, until, rangeError := dateRange.instants(source.location)
		if rangeError != nil {
			return nil, rangeError
		}
		logOptions.Since = &since
		logOptions.Until = &until
	}

	lines := make([]string, 0)
	walkError := source.walk(executionContext, repositoryPath, logOptions, func(commit *object.Commit) {
		lines = append(lines, fmt.Sprintf(commitLineTemplateConstant,
			commit.Committer.When.Format(gitISOTimestampLayoutConstant),
			commit.Author.Name,
			summarizeCommitMessage(commit.Message),
		))
	})
	if walkError != nil {
		return nil, walkError
	}
	return lines, nil
}

func (source *NativeHistorySource) walk(executionContext context.Context, repositoryPath string, logOptions *git.LogOptions, visit func(*object.Commit)) error {
	repository, openError := git.PlainOpenWithOptions(repositoryPath, &git.PlainOpenOptions{EnableDotGitCommonDir: true})
	if openError != nil {
		return fmt.Errorf(openRepositoryErrorTemplate, repositoryPath, openError)
	}

	commitIterator, logError := repository.Log(logOptions)
	if logError != nil {
		if errors.Is(logError, plumbing.ErrReferenceNotFound) {
			return nil
		}
		return fmt.Errorf(readHistoryErrorTemplate, repositoryPath, logError)
	}
	defer commitIterator.Close()

	iterationError := commitIterator.ForEach(func(commit *object.Commit) error {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		visit(commit)
		return nil
	})
	if iterationError != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		return fmt.Errorf(readHistoryErrorTemplate, repositoryPath, iterationError)
	}
	return nil
}

// summarizeCommitMessage mirrors git's %s placeholder: the first paragraph with its lines joined by spaces.
func summarizeCommitMessage(message string) string {
	trimmedMessage := strings.TrimSpace(strings.ReplaceAll(message, "\r\n", "\n"))
	firstParagraph, _, _ := strings.Cut(trimmedMessage, paragraphSeparatorConstant)
	paragraphLines := strings.Split(firstParagraph, "\n")
	subjectParts := make([]string, 0, len(paragraphLines))
	for _, paragraphLine := range paragraphLines {
		trimmedLine := strings.TrimSpace(paragraphLine)
		if len(trimmedLine) == 0 {
			continue
		}
		subjectParts = append(subjectParts, trimmedLine)
	}
	return strings.Join(subjectParts, subjectLineJoinerConstant)
}
