package history

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/commit-tracker/internal/execshell"
	"github.com/temirov/commit-tracker/internal/repos/shared"
)

const (
	gitLogSubcommandConstant        = "log"
	gitAuthorFormatArgumentConstant = "--format=%an"
	gitCommitFormatArgumentConstant = "--pretty=format:%cd,%an,%s"
	gitISODateArgumentConstant      = "--date=iso"
	outputLineSeparatorConstant     = "\n"
	carriageReturnConstant          = "\r"
)

// ErrGitExecutorNotConfigured indicates that the CLI source was built without an executor.
var ErrGitExecutorNotConfigured = errors.New("git executor not configured")

// CLIHistorySource queries history by running the git executable.
type CLIHistorySource struct {
	gitExecutor shared.GitExecutor
}

// NewCLIHistorySource constructs a source backed by the provided executor.
func NewCLIHistorySource(gitExecutor shared.GitExecutor) (*CLIHistorySource, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &CLIHistorySource{gitExecutor: gitExecutor}, nil
}

// ListAuthors runs git log --format=%an in the repository.
func (source *CLIHistorySource) ListAuthors(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := source.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitLogSubcommandConstant, gitAuthorFormatArgumentConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(executionResult.StandardOutput), nil
}

// ListCommits runs git log with the commit line format, adding --since/--until when the range is bounded.
func (source *CLIHistorySource) ListCommits(executionContext context.Context, repositoryPath string, dateRange DateRange) ([]string, error) {
	arguments := []string{gitLogSubcommandConstant, gitCommitFormatArgumentConstant, gitISODateArgumentConstant}
	arguments = append(arguments, dateRange.gitArguments()...)

	executionResult, executionError := source.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}
	return splitOutputLines(executionResult.StandardOutput), nil
}

func splitOutputLines(output string) []string {
	trimmedOutput := strings.TrimSpace(output)
	if len(trimmedOutput) == 0 {
		return nil
	}
	rawLines := strings.Split(trimmedOutput, outputLineSeparatorConstant)
	lines := make([]string, 0, len(rawLines))
	for _, rawLine := range rawLines {
		lines = append(lines, strings.TrimSuffix(rawLine, carriageReturnConstant))
	}
	return lines
}
