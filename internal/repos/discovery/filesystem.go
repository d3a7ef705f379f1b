package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// GitMetadataDirectoryNameConstant names the metadata entry that marks a git repository.
	GitMetadataDirectoryNameConstant = ".git"
	currentDirectoryNameConstant     = "."
	rootRequiredMessageConstant      = "repository discovery requires a root directory"
	rootNotDirectoryTemplateConstant = "repository discovery root %s is not a directory"
	rootInspectionTemplateConstant   = "unable to inspect repository discovery root %s: %w"
	walkFailureTemplateConstant      = "repository discovery under %s failed: %w"
)

// ErrRootRequired indicates an empty root was supplied.
var ErrRootRequired = errors.New(rootRequiredMessageConstant)

// Repository references a discovered repository.
type Repository struct {
	// Path is the repository working directory as found during the walk.
	Path string
	// Name is Path relative to the scan root; the root itself is ".".
	Name string
}

// FilesystemRepositoryDiscoverer locates git repositories on disk.
type FilesystemRepositoryDiscoverer struct{}

// NewFilesystemRepositoryDiscoverer constructs a repository discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return &FilesystemRepositoryDiscoverer{}
}

// DiscoverRepositories walks root and returns every directory owning a .git entry, sorted by path.
// Metadata directories are never descended into, and directories whose base name appears in
// excludedDirectoryNames are skipped together with their contents. Unreadable subdirectories
// are ignored.
func (discoverer *FilesystemRepositoryDiscoverer) DiscoverRepositories(root string, excludedDirectoryNames []string) ([]Repository, error) {
	trimmedRoot := strings.TrimSpace(root)
	if len(trimmedRoot) == 0 {
		return nil, ErrRootRequired
	}

	rootInfo, statError := os.Stat(trimmedRoot)
	if statError != nil {
		return nil, fmt.Errorf(rootInspectionTemplateConstant, trimmedRoot, statError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(rootNotDirectoryTemplateConstant, trimmedRoot)
	}

	excluded := make(map[string]struct{}, len(excludedDirectoryNames))
	for _, excludedName := range excludedDirectoryNames {
		trimmedName := strings.TrimSpace(excludedName)
		if len(trimmedName) == 0 {
			continue
		}
		excluded[trimmedName] = struct{}{}
	}

	seen := make(map[string]struct{})
	var repositories []Repository

	walkError := filepath.WalkDir(trimmedRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if path == trimmedRoot {
				return walkError
			}
			return nil
		}

		if !directoryEntry.IsDir() {
			return nil
		}

		directoryName := directoryEntry.Name()
		if directoryName == GitMetadataDirectoryNameConstant {
			return fs.SkipDir
		}

		if path != trimmedRoot {
			if _, isExcluded := excluded[directoryName]; isExcluded {
				return fs.SkipDir
			}
		}

		if !HasGitMetadata(path) {
			return nil
		}

		if _, alreadySeen := seen[path]; alreadySeen {
			return nil
		}
		seen[path] = struct{}{}
		repositories = append(repositories, Repository{Path: path, Name: displayName(trimmedRoot, path)})
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(walkFailureTemplateConstant, trimmedRoot, walkError)
	}

	sort.Slice(repositories, func(first int, second int) bool {
		return repositories[first].Path < repositories[second].Path
	})
	return repositories, nil
}

// HasGitMetadata reports whether directoryPath contains a .git entry; a file counts for worktrees and submodules.
func HasGitMetadata(directoryPath string) bool {
	_, statError := os.Lstat(filepath.Join(directoryPath, GitMetadataDirectoryNameConstant))
	return statError == nil
}

func displayName(root string, repositoryPath string) string {
	relativePath, relativeError := filepath.Rel(root, repositoryPath)
	if relativeError != nil || len(relativePath) == 0 {
		return repositoryPath
	}
	if relativePath == currentDirectoryNameConstant {
		return currentDirectoryNameConstant
	}
	return relativePath
}
