package shared

import (
	"context"
	"io/fs"
	"time"

	"github.com/temirov/commit-tracker/internal/execshell"
	"github.com/temirov/commit-tracker/internal/repos/discovery"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FileSystem exposes the filesystem operations used by the tracker.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Abs(path string) (string, error)
	MkdirAll(path string, permissions fs.FileMode) error
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// GitExecutor runs git subcommands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryDiscoverer locates git repositories beneath a root directory.
type RepositoryDiscoverer interface {
	DiscoverRepositories(root string, excludedDirectoryNames []string) ([]discovery.Repository, error)
}
