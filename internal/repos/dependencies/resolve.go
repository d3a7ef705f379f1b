package dependencies

import (
	"time"

	"go.uber.org/zap"

	"github.com/temirov/commit-tracker/internal/execshell"
	"github.com/temirov/commit-tracker/internal/export"
	"github.com/temirov/commit-tracker/internal/history"
	"github.com/temirov/commit-tracker/internal/repos/discovery"
	"github.com/temirov/commit-tracker/internal/repos/filesystem"
	"github.com/temirov/commit-tracker/internal/repos/shared"
)

// ResolveRepositoryDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveRepositoryDiscoverer(existing shared.RepositoryDiscoverer) shared.RepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryDiscoverer()
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default
// that reports command lifecycle events to the observer.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveHistorySource returns the provided source or builds the one named by kind.
// The git executor is only resolved for the CLI source.
func ResolveHistorySource(existing history.HistorySource, kind history.SourceKind, resolveExecutor func() (shared.GitExecutor, error)) (history.HistorySource, error) {
	if existing != nil {
		return existing, nil
	}

	switch kind {
	case history.SourceKindNative:
		return history.NewNativeHistorySource(time.Local), nil
	default:
		gitExecutor, executorError := resolveExecutor()
		if executorError != nil {
			return nil, executorError
		}
		cliSource, sourceError := history.NewCLIHistorySource(gitExecutor)
		if sourceError != nil {
			return nil, sourceError
		}
		return cliSource, nil
	}
}

// ResolveTableWriter returns the provided writer or a filesystem-backed export writer.
func ResolveTableWriter(existing export.TableWriter, fileSystem shared.FileSystem) (export.TableWriter, error) {
	if existing != nil {
		return existing, nil
	}
	tableWriter, writerError := export.NewWriter(fileSystem)
	if writerError != nil {
		return nil, writerError
	}
	return tableWriter, nil
}
