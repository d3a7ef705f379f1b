package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/commit-tracker/internal/repos/discovery"
)

const (
	developerDirectoryName             = "Dev"
	engineeringGroupDirectoryName      = "Group1"
	applicationRepositoryDirectoryName = "Repo1"
	serviceRepositoryDirectoryName     = "Repo2"
	toolsRepositoryDirectoryName       = "Repo3"
	nestedModuleDirectoryName          = "vendored"
	outputArtifactDirectoryName        = "commit_history"
	gitMetadataDirectoryName           = ".git"
	repositoryDirectoryPermissions     = 0o755
	gitFilePermissions                 = 0o644
	gitWorktreeFileContent             = "gitdir: ../main/.git/worktrees/feature\n"
)

type repositoryFixture struct {
	directorySegments []string
	metadataIsFile    bool
}

func (fixture repositoryFixture) create(testInstance *testing.T, rootDirectory string) {
	testInstance.Helper()

	repositoryPath := filepath.Join(append([]string{rootDirectory}, fixture.directorySegments...)...)
	require.NoError(testInstance, os.MkdirAll(repositoryPath, repositoryDirectoryPermissions))

	metadataPath := filepath.Join(repositoryPath, gitMetadataDirectoryName)
	if fixture.metadataIsFile {
		require.NoError(testInstance, os.WriteFile(metadataPath, []byte(gitWorktreeFileContent), gitFilePermissions))
		return
	}
	require.NoError(testInstance, os.MkdirAll(metadataPath, repositoryDirectoryPermissions))
}

func (fixture repositoryFixture) displayName() string {
	if len(fixture.directorySegments) == 0 {
		return "."
	}
	return filepath.Join(fixture.directorySegments...)
}

func TestFilesystemRepositoryDiscovererDiscoversLayouts(testInstance *testing.T) {
	testCases := []struct {
		name                   string
		repositories           []repositoryFixture
		excludedDirectoryNames []string
		decoyDirectories       [][]string
		expectedNames          []string
	}{
		{
			name: "nested_layouts",
			repositories: []repositoryFixture{
				{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, applicationRepositoryDirectoryName}},
				{directorySegments: []string{developerDirectoryName, engineeringGroupDirectoryName, serviceRepositoryDirectoryName}},
				{directorySegments: []string{developerDirectoryName, toolsRepositoryDirectoryName}},
			},
			expectedNames: []string{
				filepath.Join(developerDirectoryName, engineeringGroupDirectoryName, applicationRepositoryDirectoryName),
				filepath.Join(developerDirectoryName, engineeringGroupDirectoryName, serviceRepositoryDirectoryName),
				filepath.Join(developerDirectoryName, toolsRepositoryDirectoryName),
			},
		},
		{
			name: "root_is_repository_with_nested_repository",
			repositories: []repositoryFixture{
				{directorySegments: nil},
				{directorySegments: []string{nestedModuleDirectoryName}},
			},
			expectedNames: []string{".", nestedModuleDirectoryName},
		},
		{
			name: "metadata_file_marks_worktree",
			repositories: []repositoryFixture{
				{directorySegments: []string{applicationRepositoryDirectoryName}, metadataIsFile: true},
			},
			expectedNames: []string{applicationRepositoryDirectoryName},
		},
		{
			name: "output_artifact_directory_skipped_at_any_level",
			repositories: []repositoryFixture{
				{directorySegments: []string{applicationRepositoryDirectoryName}},
				{directorySegments: []string{outputArtifactDirectoryName}},
				{directorySegments: []string{developerDirectoryName, outputArtifactDirectoryName, serviceRepositoryDirectoryName}},
			},
			excludedDirectoryNames: []string{outputArtifactDirectoryName},
			expectedNames:          []string{applicationRepositoryDirectoryName},
		},
		{
			name: "metadata_contents_never_reported",
			repositories: []repositoryFixture{
				{directorySegments: []string{applicationRepositoryDirectoryName}},
			},
			decoyDirectories: [][]string{
				{applicationRepositoryDirectoryName, gitMetadataDirectoryName, "modules", "library", gitMetadataDirectoryName},
			},
			expectedNames: []string{applicationRepositoryDirectoryName},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			rootDirectory := testInstance.TempDir()
			for _, repository := range testCase.repositories {
				repository.create(testInstance, rootDirectory)
			}
			for _, decoySegments := range testCase.decoyDirectories {
				decoyPath := filepath.Join(append([]string{rootDirectory}, decoySegments...)...)
				require.NoError(testInstance, os.MkdirAll(decoyPath, repositoryDirectoryPermissions))
			}

			discoverer := discovery.NewFilesystemRepositoryDiscoverer()
			repositories, discoveryError := discoverer.DiscoverRepositories(rootDirectory, testCase.excludedDirectoryNames)
			require.NoError(testInstance, discoveryError)

			discoveredNames := make([]string, 0, len(repositories))
			seenPaths := make(map[string]struct{}, len(repositories))
			for _, repository := range repositories {
				discoveredNames = append(discoveredNames, repository.Name)
				_, duplicate := seenPaths[repository.Path]
				require.False(testInstance, duplicate)
				seenPaths[repository.Path] = struct{}{}
				require.True(testInstance, discovery.HasGitMetadata(repository.Path))
			}
			require.ElementsMatch(testInstance, testCase.expectedNames, discoveredNames)
		})
	}
}

func TestFilesystemRepositoryDiscovererRejectsInvalidRoots(testInstance *testing.T) {
	discoverer := discovery.NewFilesystemRepositoryDiscoverer()

	_, emptyRootError := discoverer.DiscoverRepositories("  ", nil)
	require.ErrorIs(testInstance, emptyRootError, discovery.ErrRootRequired)

	missingRoot := filepath.Join(testInstance.TempDir(), "missing")
	_, missingRootError := discoverer.DiscoverRepositories(missingRoot, nil)
	require.ErrorIs(testInstance, missingRootError, os.ErrNotExist)

	filePath := filepath.Join(testInstance.TempDir(), "file.txt")
	require.NoError(testInstance, os.WriteFile(filePath, []byte("content"), gitFilePermissions))
	_, fileRootError := discoverer.DiscoverRepositories(filePath, nil)
	require.Error(testInstance, fileRootError)
}
