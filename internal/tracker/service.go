package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/commit-tracker/internal/export"
	"github.com/temirov/commit-tracker/internal/history"
	"github.com/temirov/commit-tracker/internal/repos/discovery"
	"github.com/temirov/commit-tracker/internal/repos/shared"
	pathutils "github.com/temirov/commit-tracker/internal/utils/path"
)

const (
	collectingRangeTemplate          = "Collecting commits from %s to %s\n"
	collectingUnboundedMessage       = "Collecting commits without a date range\n"
	lookingForIdentitiesTemplate     = "Looking for commits by identities: %s\n"
	foundRepositoriesTemplate        = "Found %d git repositories\n"
	processingRepositoryTemplate     = "Processing repository: %s\n"
	skippingRepositoryTemplate       = "  Skipping %s - not a git repository\n"
	repositoryAuthorsTemplate        = "  All authors in %s: %s\n"
	totalEntriesTemplate             = "  Found %d total commit entries\n"
	matchedEntriesTemplate           = "  Found %d commits matching the identities\n"
	repositoryFailedTemplate         = "  Error reading history of %s: %s\n"
	summaryHeaderMessage             = "\n=== Summary ===\n"
	allAuthorsTemplate               = "All unique authors found across repositories: %s\n"
	configuredIdentitiesTemplate     = "Configured identities: %s\n"
	exportedTemplate                 = "Commit history has been exported to %s\n"
	totalCommitsTemplate             = "Total commits found: %d\n"
	noCommitsMessage                 = "No commits found for the configured identities.\n"
	noCommitsHintMessage             = "Check that the identities match one of the authors listed above.\n"
	authorLineTemplate               = "%s\n"
	repositoryLineTemplate           = "%s\n"
	listSeparatorConstant            = ", "
	baseDirectoryErrorTemplate       = "base directory %s: %w"
	baseDirectoryNotDirectoryMessage = "not a directory"
	discoveryErrorTemplate           = "discover repositories under %s: %w"
	exportErrorTemplate              = "export commit history: %w"
	oneSidedRangeMessage             = "Date range ignored: both start and end dates are required"
	collectionFinishedMessage        = "Collection finished"
	authorQueryFailedMessage         = "Unable to list authors"
	listedAuthorsMessage             = "Listed repository authors"
	authorsLogField                  = "authors"
	baseDirectoryLogField            = "base_directory"
	startDateLogField                = "start_date"
	endDateLogField                  = "end_date"
	repositoriesLogField             = "repositories"
	matchedLogField                  = "matched"
	failedLogField                   = "failed"
	skippedLogField                  = "skipped"
	writtenLogField                  = "written"
	outputLogField                   = "output"
	elapsedLogField                  = "elapsed"
	repositoryLogField               = "repository"
	errorLogField                    = "error"
)

var (
	// ErrRepositoryDiscovererNotConfigured indicates a service built without a discoverer.
	ErrRepositoryDiscovererNotConfigured = errors.New("repository discoverer not configured")
	// ErrHistorySourceNotConfigured indicates a service built without a history source.
	ErrHistorySourceNotConfigured = errors.New("history source not configured")
	// ErrFileSystemNotConfigured indicates a service built without a filesystem.
	ErrFileSystemNotConfigured = errors.New("filesystem not configured")
	// ErrTableWriterNotConfigured indicates a service built without a table writer.
	ErrTableWriterNotConfigured = errors.New("table writer not configured")

	errBaseDirectoryNotDirectory = errors.New(baseDirectoryNotDirectoryMessage)
)

// Dependencies supplies the collaborators used by Service.
type Dependencies struct {
	Discoverer   shared.RepositoryDiscoverer
	Source       history.HistorySource
	FileSystem   shared.FileSystem
	TableWriter  export.TableWriter
	Reporter     shared.Reporter
	Logger       *zap.Logger
	Clock        shared.Clock
	HomeExpander *pathutils.HomeExpander
}

// Service runs commit collection, author listing, and repository listing.
type Service struct {
	discoverer   shared.RepositoryDiscoverer
	source       history.HistorySource
	fileSystem   shared.FileSystem
	tableWriter  export.TableWriter
	reporter     shared.Reporter
	logger       *zap.Logger
	clock        shared.Clock
	homeExpander *pathutils.HomeExpander
}

type runPlan struct {
	configuration          Configuration
	baseDirectory          string
	outputPath             string
	excludedDirectoryNames []string
}

// NewService validates dependencies and applies defaults for the optional ones.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Discoverer == nil {
		return nil, ErrRepositoryDiscovererNotConfigured
	}
	if dependencies.Source == nil {
		return nil, ErrHistorySourceNotConfigured
	}
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if dependencies.TableWriter == nil {
		return nil, ErrTableWriterNotConfigured
	}

	service := &Service{
		discoverer:   dependencies.Discoverer,
		source:       dependencies.Source,
		fileSystem:   dependencies.FileSystem,
		tableWriter:  dependencies.TableWriter,
		reporter:     dependencies.Reporter,
		logger:       dependencies.Logger,
		clock:        dependencies.Clock,
		homeExpander: dependencies.HomeExpander,
	}
	if service.reporter == nil {
		service.reporter = shared.NewWriterReporter(nil)
	}
	if service.logger == nil {
		service.logger = zap.NewNop()
	}
	if service.clock == nil {
		service.clock = shared.SystemClock{}
	}
	if service.homeExpander == nil {
		service.homeExpander = pathutils.NewHomeExpander()
	}
	return service, nil
}

// Collect discovers repositories, extracts the commits of the configured identities, and writes
// them newest first to the output file. No file is written when nothing matches; the observed
// authors are reported instead.
func (service *Service) Collect(executionContext context.Context, configuration Configuration) (Summary, error) {
	startedAt := service.clock.Now()

	plan, planError := service.plan(configuration)
	if planError != nil {
		return Summary{}, planError
	}
	dateRange := plan.configuration.DateRange()
	if validationError := dateRange.Validate(); validationError != nil {
		return Summary{}, validationError
	}
	if _, encoderError := export.EncoderForPath(plan.outputPath); encoderError != nil {
		return Summary{}, encoderError
	}

	service.reportRange(dateRange)
	service.reporter.Printf(lookingForIdentitiesTemplate, strings.Join(plan.configuration.Identities, listSeparatorConstant))

	extractor, extractorError := history.NewExtractor(history.ExtractorDependencies{
		Source:     service.source,
		FileSystem: service.fileSystem,
		Logger:     service.logger,
	}, plan.configuration.Identities)
	if extractorError != nil {
		return Summary{}, extractorError
	}

	repositories, discoveryError := service.discover(plan)
	if discoveryError != nil {
		return Summary{}, discoveryError
	}
	service.reporter.Printf(foundRepositoriesTemplate, len(repositories))

	summary := Summary{
		RepositoryCount: len(repositories),
		Authors:         history.NewAuthorSet(),
		OutputPath:      plan.outputPath,
	}
	commits := make([]history.CommitRecord, 0)

	for _, repository := range repositories {
		if contextError := executionContext.Err(); contextError != nil {
			return summary, contextError
		}
		service.reporter.Printf(processingRepositoryTemplate, repository.Name)

		result, extractError := extractor.Extract(executionContext, repository, dateRange)
		if extractError != nil {
			return summary, extractError
		}

		if result.Skipped {
			service.reporter.Printf(skippingRepositoryTemplate, repository.Name)
			summary.SkippedRepositories = append(summary.SkippedRepositories, repository.Name)
			continue
		}
		if result.Authors.Len() > 0 {
			service.reporter.Printf(repositoryAuthorsTemplate, repository.Name, strings.Join(result.Authors.Sorted(), listSeparatorConstant))
		}
		summary.Authors.Merge(result.Authors)

		if result.Failed {
			service.reporter.Printf(repositoryFailedTemplate, repository.Name, result.FailureReason)
			summary.FailedRepositories = append(summary.FailedRepositories, repository.Name)
			continue
		}

		service.reporter.Printf(totalEntriesTemplate, result.TotalEntries)
		service.reporter.Printf(matchedEntriesTemplate, len(result.Commits))
		summary.DroppedEntries += result.DroppedEntries
		commits = append(commits, result.Commits...)
	}

	summary.MatchedCommits = len(commits)
	service.reporter.Printf(summaryHeaderMessage)
	service.reporter.Printf(allAuthorsTemplate, strings.Join(summary.Authors.Sorted(), listSeparatorConstant))
	service.reporter.Printf(configuredIdentitiesTemplate, strings.Join(plan.configuration.Identities, listSeparatorConstant))

	if len(commits) == 0 {
		service.reporter.Printf(noCommitsMessage)
		service.reporter.Printf(noCommitsHintMessage)
		summary.Elapsed = service.clock.Now().Sub(startedAt)
		service.logSummary(plan, summary)
		return summary, nil
	}

	if writeError := service.tableWriter.Write(plan.outputPath, export.BuildTable(commits)); writeError != nil {
		return summary, fmt.Errorf(exportErrorTemplate, writeError)
	}
	summary.Written = true
	service.reporter.Printf(exportedTemplate, plan.outputPath)
	service.reporter.Printf(totalCommitsTemplate, summary.MatchedCommits)

	summary.Elapsed = service.clock.Now().Sub(startedAt)
	service.logSummary(plan, summary)
	return summary, nil
}

// ListAuthors reports every author name observed in each repository, ignoring dates and identities.
func (service *Service) ListAuthors(executionContext context.Context, configuration Configuration) (AuthorReport, error) {
	plan, planError := service.plan(configuration)
	if planError != nil {
		return AuthorReport{}, planError
	}

	repositories, discoveryError := service.discover(plan)
	if discoveryError != nil {
		return AuthorReport{}, discoveryError
	}

	report := AuthorReport{Authors: history.NewAuthorSet()}
	for _, repository := range repositories {
		authors, authorsError := service.source.ListAuthors(executionContext, repository.Path)
		if authorsError != nil {
			if contextError := executionContext.Err(); contextError != nil {
				return report, contextError
			}
			service.logger.Warn(authorQueryFailedMessage,
				zap.String(repositoryLogField, repository.Name),
				zap.String(errorLogField, authorsError.Error()),
			)
			report.FailedRepositories = append(report.FailedRepositories, repository.Name)
			continue
		}

		repositoryAuthors := history.NewAuthorSet()
		for _, author := range authors {
			if len(author) == 0 {
				continue
			}
			repositoryAuthors.Add(author)
		}
		report.Authors.Merge(repositoryAuthors)
		report.Repositories = append(report.Repositories, RepositoryAuthors{Repository: repository.Name, Authors: repositoryAuthors.Sorted()})
		service.logger.Info(listedAuthorsMessage,
			zap.String(repositoryLogField, repository.Name),
			zap.Int(authorsLogField, repositoryAuthors.Len()),
		)
	}

	for _, author := range report.Authors.Sorted() {
		service.reporter.Printf(authorLineTemplate, author)
	}
	return report, nil
}

// ListRepositories reports the display name of every discovered repository.
func (service *Service) ListRepositories(configuration Configuration) ([]discovery.Repository, error) {
	plan, planError := service.plan(configuration)
	if planError != nil {
		return nil, planError
	}

	repositories, discoveryError := service.discover(plan)
	if discoveryError != nil {
		return nil, discoveryError
	}
	for _, repository := range repositories {
		service.reporter.Printf(repositoryLineTemplate, repository.Name)
	}
	return repositories, nil
}

func (service *Service) plan(configuration Configuration) (runPlan, error) {
	sanitized := configuration.sanitize()

	baseDirectory, absoluteError := service.fileSystem.Abs(service.homeExpander.Expand(sanitized.BaseDirectory))
	if absoluteError != nil {
		return runPlan{}, fmt.Errorf(baseDirectoryErrorTemplate, sanitized.BaseDirectory, absoluteError)
	}
	baseInfo, statError := service.fileSystem.Stat(baseDirectory)
	if statError != nil {
		return runPlan{}, fmt.Errorf(baseDirectoryErrorTemplate, baseDirectory, statError)
	}
	if !baseInfo.IsDir() {
		return runPlan{}, fmt.Errorf(baseDirectoryErrorTemplate, baseDirectory, errBaseDirectoryNotDirectory)
	}

	excludedDirectoryNames := append([]string{sanitized.OutputArtifactDirectoryName()}, sanitized.ExcludedDirectories...)
	return runPlan{
		configuration:          sanitized,
		baseDirectory:          baseDirectory,
		outputPath:             service.homeExpander.ResolveAgainst(baseDirectory, sanitized.OutputFile),
		excludedDirectoryNames: excludedDirectoryNames,
	}, nil
}

func (service *Service) discover(plan runPlan) ([]discovery.Repository, error) {
	repositories, discoveryError := service.discoverer.DiscoverRepositories(plan.baseDirectory, plan.excludedDirectoryNames)
	if discoveryError != nil {
		return nil, fmt.Errorf(discoveryErrorTemplate, plan.baseDirectory, discoveryError)
	}
	return repositories, nil
}

func (service *Service) reportRange(dateRange history.DateRange) {
	if dateRange.Bounded() {
		service.reporter.Printf(collectingRangeTemplate, dateRange.Start, dateRange.End)
		return
	}
	service.reporter.Printf(collectingUnboundedMessage)
	if len(dateRange.Start) > 0 || len(dateRange.End) > 0 {
		service.logger.Warn(oneSidedRangeMessage,
			zap.String(startDateLogField, dateRange.Start),
			zap.String(endDateLogField, dateRange.End),
		)
	}
}

func (service *Service) logSummary(plan runPlan, summary Summary) {
	service.logger.Info(collectionFinishedMessage,
		zap.String(baseDirectoryLogField, plan.baseDirectory),
		zap.Int(repositoriesLogField, summary.RepositoryCount),
		zap.Int(skippedLogField, len(summary.SkippedRepositories)),
		zap.Int(failedLogField, len(summary.FailedRepositories)),
		zap.Int(matchedLogField, summary.MatchedCommits),
		zap.Bool(writtenLogField, summary.Written),
		zap.String(outputLogField, summary.OutputPath),
		zap.Duration(elapsedLogField, summary.Elapsed),
	)
}
