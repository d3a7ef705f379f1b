package history

import (
	"context"
	"errors"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/commit-tracker/internal/repos/discovery"
	"github.com/temirov/commit-tracker/internal/repos/shared"
)

const (
	skippedRepositoryMessageConstant   = "Skipping directory without git metadata"
	authorQueryFailedMessageConstant   = "Unable to list authors"
	commitQueryFailedMessageConstant   = "Unable to read commit history"
	droppedEntriesMessageConstant      = "Dropped unparseable commit lines"
	extractedRepositoryMessageConstant = "Extracted commit history"
	repositoryLogFieldConstant         = "repository"
	pathLogFieldConstant               = "path"
	errorLogFieldConstant              = "error"
	droppedLogFieldConstant            = "dropped"
	totalLogFieldConstant              = "total"
	matchedLogFieldConstant            = "matched"
	authorsLogFieldConstant            = "authors"
)

var (
	// ErrHistorySourceNotConfigured indicates that the extractor was built without a history source.
	ErrHistorySourceNotConfigured = errors.New("history source not configured")
	// ErrFileSystemNotConfigured indicates that the extractor was built without a filesystem.
	ErrFileSystemNotConfigured = errors.New("filesystem not configured")
)

// ExtractorDependencies supplies the collaborators used by Extractor.
type ExtractorDependencies struct {
	Source     HistorySource
	FileSystem shared.FileSystem
	Logger     *zap.Logger
}

// Extractor turns a repository into its matching commit records and observed authors.
type Extractor struct {
	source         HistorySource
	fileSystem     shared.FileSystem
	logger         *zap.Logger
	identityFilter IdentityFilter
}

// NewExtractor validates dependencies and binds the identity list.
func NewExtractor(dependencies ExtractorDependencies, identities []string) (*Extractor, error) {
	if dependencies.Source == nil {
		return nil, ErrHistorySourceNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		source:         dependencies.Source,
		fileSystem:     dependencies.FileSystem,
		logger:         logger,
		identityFilter: NewIdentityFilter(identities),
	}, nil
}

// Extract reads the authors and commits of one repository.
// Query failures yield an empty contribution and never abort; only context cancellation is returned.
func (extractor *Extractor) Extract(executionContext context.Context, repository discovery.Repository, dateRange DateRange) (ExtractionResult, error) {
	result := ExtractionResult{Authors: NewAuthorSet()}

	if _, statError := extractor.fileSystem.Stat(filepath.Join(repository.Path, discovery.GitMetadataDirectoryNameConstant)); statError != nil {
		extractor.logger.Debug(skippedRepositoryMessageConstant, zap.String(pathLogFieldConstant, repository.Path))
		result.Skipped = true
		return result, nil
	}

	authors, authorsError := extractor.source.ListAuthors(executionContext, repository.Path)
	if authorsError != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return ExtractionResult{}, contextError
		}
		extractor.logger.Warn(authorQueryFailedMessageConstant,
			zap.String(repositoryLogFieldConstant, repository.Name),
			zap.String(errorLogFieldConstant, authorsError.Error()),
		)
	}
	for _, author := range authors {
		if len(author) == 0 {
			continue
		}
		result.Authors.Add(author)
	}

	commitLines, commitsError := extractor.source.ListCommits(executionContext, repository.Path, dateRange)
	if commitsError != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return ExtractionResult{}, contextError
		}
		extractor.logger.Warn(commitQueryFailedMessageConstant,
			zap.String(repositoryLogFieldConstant, repository.Name),
			zap.String(errorLogFieldConstant, commitsError.Error()),
		)
		result.Failed = true
		result.FailureReason = commitsError.Error()
		return result, nil
	}

	result.TotalEntries = len(commitLines)
	for _, commitLine := range commitLines {
		parsedLine, parseError := ParseCommitLine(commitLine)
		if parseError != nil {
			result.DroppedEntries++
			continue
		}
		if !extractor.identityFilter.Matches(parsedLine.Author) {
			continue
		}
		result.Commits = append(result.Commits, CommitRecord{
			Repository: repository.Name,
			Timestamp:  parsedLine.Timestamp,
			Author:     parsedLine.Author,
			Subject:    parsedLine.Subject,
		})
	}

	if result.DroppedEntries > 0 {
		extractor.logger.Debug(droppedEntriesMessageConstant,
			zap.String(repositoryLogFieldConstant, repository.Name),
			zap.Int(droppedLogFieldConstant, result.DroppedEntries),
		)
	}
	extractor.logger.Debug(extractedRepositoryMessageConstant,
		zap.String(repositoryLogFieldConstant, repository.Name),
		zap.Int(totalLogFieldConstant, result.TotalEntries),
		zap.Int(matchedLogFieldConstant, len(result.Commits)),
		zap.Int(authorsLogFieldConstant, len(result.Authors)),
	)
	return result, nil
}
