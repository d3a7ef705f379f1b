package dependencies_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/commit-tracker/internal/execshell"
	"github.com/temirov/commit-tracker/internal/export"
	"github.com/temirov/commit-tracker/internal/history"
	"github.com/temirov/commit-tracker/internal/repos/dependencies"
	"github.com/temirov/commit-tracker/internal/repos/discovery"
	"github.com/temirov/commit-tracker/internal/repos/filesystem"
	"github.com/temirov/commit-tracker/internal/repos/shared"
)

type staticGitExecutor struct{}

func (staticGitExecutor) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

type staticTableWriter struct{}

func (staticTableWriter) Write(string, export.Table) error {
	return nil
}

func TestResolveHistorySource(testInstance *testing.T) {
	executorFailure := errors.New("executor unavailable")

	testCases := []struct {
		name               string
		kind               history.SourceKind
		resolveExecutor    func() (shared.GitExecutor, error)
		expectedErrorIs    error
		expectCLISource    bool
		expectNativeSource bool
	}{
		{
			name: "cli_source",
			kind: history.SourceKindCLI,
			resolveExecutor: func() (shared.GitExecutor, error) {
				return staticGitExecutor{}, nil
			},
			expectCLISource: true,
		},
		{
			name: "native_source_skips_executor",
			kind: history.SourceKindNative,
			resolveExecutor: func() (shared.GitExecutor, error) {
				return nil, executorFailure
			},
			expectNativeSource: true,
		},
		{
			name: "executor_failure",
			kind: history.SourceKindCLI,
			resolveExecutor: func() (shared.GitExecutor, error) {
				return nil, executorFailure
			},
			expectedErrorIs: executorFailure,
		},
		{
			name: "missing_executor",
			kind: history.SourceKindCLI,
			resolveExecutor: func() (shared.GitExecutor, error) {
				return nil, nil
			},
			expectedErrorIs: history.ErrGitExecutorNotConfigured,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(t *testing.T) {
			source, resolveError := dependencies.ResolveHistorySource(nil, testCase.kind, testCase.resolveExecutor)
			if testCase.expectedErrorIs != nil {
				require.ErrorIs(t, resolveError, testCase.expectedErrorIs)
				require.Nil(t, source)
				return
			}

			require.NoError(t, resolveError)
			if testCase.expectCLISource {
				require.IsType(t, &history.CLIHistorySource{}, source)
			}
			if testCase.expectNativeSource {
				require.IsType(t, &history.NativeHistorySource{}, source)
			}
		})
	}
}

func TestResolveHistorySourcePrefersExisting(testInstance *testing.T) {
	existing := history.NewNativeHistorySource(nil)
	source, resolveError := dependencies.ResolveHistorySource(existing, history.SourceKindCLI, func() (shared.GitExecutor, error) {
		return nil, errors.New("unexpected executor resolution")
	})
	require.NoError(testInstance, resolveError)
	require.Same(testInstance, existing, source)
}

func TestResolveGitExecutor(testInstance *testing.T) {
	existing := staticGitExecutor{}
	resolved, resolveError := dependencies.ResolveGitExecutor(existing, nil, nil)
	require.NoError(testInstance, resolveError)
	require.Equal(testInstance, existing, resolved)

	constructed, constructError := dependencies.ResolveGitExecutor(nil, zap.NewNop(), nil)
	require.NoError(testInstance, constructError)
	require.IsType(testInstance, &execshell.ShellExecutor{}, constructed)

	missingLogger, missingLoggerError := dependencies.ResolveGitExecutor(nil, nil, nil)
	require.ErrorIs(testInstance, missingLoggerError, execshell.ErrLoggerNotConfigured)
	require.Nil(testInstance, missingLogger)
}

func TestResolveDefaults(testInstance *testing.T) {
	require.IsType(testInstance, &discovery.FilesystemRepositoryDiscoverer{}, dependencies.ResolveRepositoryDiscoverer(nil))
	require.IsType(testInstance, filesystem.OSFileSystem{}, dependencies.ResolveFileSystem(nil))

	tableWriter, writerError := dependencies.ResolveTableWriter(nil, filesystem.OSFileSystem{})
	require.NoError(testInstance, writerError)
	require.IsType(testInstance, &export.Writer{}, tableWriter)

	existingWriter := staticTableWriter{}
	resolvedWriter, resolvedWriterError := dependencies.ResolveTableWriter(existingWriter, nil)
	require.NoError(testInstance, resolvedWriterError)
	require.Equal(testInstance, existingWriter, resolvedWriter)

	missingWriter, missingWriterError := dependencies.ResolveTableWriter(nil, nil)
	require.ErrorIs(testInstance, missingWriterError, export.ErrFileSystemNotConfigured)
	require.Nil(testInstance, missingWriter)
}
