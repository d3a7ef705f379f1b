package cli_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/commit-tracker/cmd/cli"
)

const (
	testConfigurationFileNameConstant        = "config.yaml"
	testBaseDirectoryEnvironmentNameConstant = "COMMITTRACKER_TRACKER_BASE_DIRECTORY"
	testIdentitiesEnvironmentNameConstant    = "COMMITTRACKER_TRACKER_IDENTITIES"
	testUserConfigurationEnvironmentName     = "XDG_CONFIG_HOME"
	testRepositoriesCommandNameConstant      = "repos"
	testConfigurationCommandNameConstant     = "config"
	testConfigurationInitCommandNameConstant = "init"
	testAlphaRepositoryNameConstant          = "alpha"
	testBetaRepositoryNameConstant           = "beta"
	testGammaRepositoryNameConstant          = "gamma"
	testGitMetadataDirectoryNameConstant     = ".git"
	testConfigurationTemplateConstant        = "common:\n  log_level: error\n  log_format: console\ntracker:\n  base_directory: %s\n  identities:\n    - Alice\n"
)

func TestEmbeddedDefaultConfigurationMatchesDefaults(testInstance *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, viperInstance.Unmarshal(&configuration))

	expected := cli.DefaultApplicationConfiguration()
	require.Equal(testInstance, expected.Common, configuration.Common)
	require.Equal(testInstance, expected.Tracker.BaseDirectory, configuration.Tracker.BaseDirectory)
	require.Equal(testInstance, expected.Tracker.OutputFile, configuration.Tracker.OutputFile)
	require.Equal(testInstance, expected.Tracker.HistorySource, configuration.Tracker.HistorySource)
	require.Empty(testInstance, configuration.Tracker.Identities)
	require.Empty(testInstance, configuration.Tracker.StartDate)
	require.Empty(testInstance, configuration.Tracker.EndDate)
	require.Empty(testInstance, configuration.Tracker.ExcludedDirectories)
}

func TestEmbeddedDefaultConfigurationReturnsCopy(testInstance *testing.T) {
	firstContent, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, firstContent)
	firstContent[0] = '#'

	secondContent, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, byte('#'), secondContent[0])
}

func TestApplicationConfigurationSources(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		useConfigurationFile bool
		environment          map[string]string
		extraArguments       []string
		expectedOutput       string
		expectedIdentities   []string
	}{
		{
			name:                 "configuration_file",
			useConfigurationFile: true,
			expectedOutput:       testAlphaRepositoryNameConstant + "\n" + testBetaRepositoryNameConstant + "\n",
			expectedIdentities:   []string{"Alice"},
		},
		{
			name:                 "environment_overrides_file",
			useConfigurationFile: true,
			environment: map[string]string{
				testIdentitiesEnvironmentNameConstant: "Alice,alice-dev",
			},
			expectedOutput:     testAlphaRepositoryNameConstant + "\n" + testBetaRepositoryNameConstant + "\n",
			expectedIdentities: []string{"Alice", "alice-dev"},
		},
		{
			name:                 "flag_overrides_file",
			useConfigurationFile: true,
			extraArguments:       []string{"--exclude", testBetaRepositoryNameConstant},
			expectedOutput:       testAlphaRepositoryNameConstant + "\n",
			expectedIdentities:   []string{"Alice"},
		},
		{
			name:               "environment_only",
			environment:        map[string]string{},
			expectedOutput:     testAlphaRepositoryNameConstant + "\n" + testBetaRepositoryNameConstant + "\n",
			expectedIdentities: []string{},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testUserConfigurationEnvironmentName, t.TempDir())
			rootDirectory := createRepositoryTree(t)

			arguments := []string{testRepositoriesCommandNameConstant}
			if testCase.useConfigurationFile {
				configurationPath := filepath.Join(t.TempDir(), testConfigurationFileNameConstant)
				writeConfigurationFile(t, configurationPath, rootDirectory)
				arguments = append(arguments, "--config", configurationPath)
			} else {
				t.Setenv(testBaseDirectoryEnvironmentNameConstant, rootDirectory)
			}
			for environmentName, environmentValue := range testCase.environment {
				t.Setenv(environmentName, environmentValue)
			}
			arguments = append(arguments, testCase.extraArguments...)

			application := cli.NewApplication()
			outputBuffer := &bytes.Buffer{}
			application.Command().SetOut(outputBuffer)
			application.Command().SetArgs(arguments)

			require.NoError(t, application.Execute())
			require.Equal(t, testCase.expectedOutput, outputBuffer.String())
			require.ElementsMatch(t, testCase.expectedIdentities, application.Configuration().Tracker.Identities)
		})
	}
}

func TestApplicationRejectsInvalidLogLevel(testInstance *testing.T) {
	testInstance.Setenv(testUserConfigurationEnvironmentName, testInstance.TempDir())
	rootDirectory := createRepositoryTree(testInstance)

	application := cli.NewApplication()
	application.Command().SetOut(&bytes.Buffer{})
	application.Command().SetArgs([]string{testRepositoriesCommandNameConstant, "--root", rootDirectory, "--log-level", "verbose"})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.ErrorContains(testInstance, executionError, "unable to create logger")
}

func TestApplicationRejectsMissingConfigurationFile(testInstance *testing.T) {
	testInstance.Setenv(testUserConfigurationEnvironmentName, testInstance.TempDir())

	application := cli.NewApplication()
	application.Command().SetOut(&bytes.Buffer{})
	application.Command().SetArgs([]string{
		testRepositoriesCommandNameConstant,
		"--config", filepath.Join(testInstance.TempDir(), "absent.yaml"),
	})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.ErrorContains(testInstance, executionError, "unable to load configuration")
}

func TestConfigurationInitCommand(testInstance *testing.T) {
	testCases := []struct {
		name          string
		existing      bool
		force         bool
		expectedError error
	}{
		{name: "creates_file"},
		{name: "refuses_overwrite", existing: true, expectedError: cli.ErrConfigurationFileExists},
		{name: "overwrites_with_force", existing: true, force: true},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(t *testing.T) {
			t.Setenv(testUserConfigurationEnvironmentName, t.TempDir())
			targetPath := filepath.Join(t.TempDir(), "nested", testConfigurationFileNameConstant)
			const existingContent = "common:\n  log_level: debug\n"
			if testCase.existing {
				require.NoError(t, os.MkdirAll(filepath.Dir(targetPath), 0o755))
				require.NoError(t, os.WriteFile(targetPath, []byte(existingContent), 0o600))
			}

			arguments := []string{testConfigurationCommandNameConstant, testConfigurationInitCommandNameConstant, "--path", targetPath}
			if testCase.force {
				arguments = append(arguments, "--force")
			}

			application := cli.NewApplication()
			outputBuffer := &bytes.Buffer{}
			application.Command().SetOut(outputBuffer)
			application.Command().SetArgs(arguments)

			executionError := application.Execute()
			if testCase.expectedError != nil {
				require.ErrorIs(t, executionError, testCase.expectedError)
				writtenContent, readError := os.ReadFile(targetPath)
				require.NoError(t, readError)
				require.Equal(t, existingContent, string(writtenContent))
				return
			}

			require.NoError(t, executionError)
			require.Contains(t, outputBuffer.String(), targetPath)
			require.Equal(t, cli.DefaultApplicationConfiguration(), readRenderedConfiguration(t, targetPath))
		})
	}
}

func TestConfigurationInitDefaultsToConfigFlagPath(testInstance *testing.T) {
	testInstance.Setenv(testUserConfigurationEnvironmentName, testInstance.TempDir())
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	writeConfigurationFile(testInstance, configurationPath, testInstance.TempDir())

	application := cli.NewApplication()
	application.Command().SetOut(&bytes.Buffer{})
	application.Command().SetArgs([]string{
		testConfigurationCommandNameConstant,
		testConfigurationInitCommandNameConstant,
		"--config", configurationPath,
		"--force",
	})

	require.NoError(testInstance, application.Execute())
	require.Equal(testInstance, cli.DefaultApplicationConfiguration(), readRenderedConfiguration(testInstance, configurationPath))
}

func createRepositoryTree(testInstance *testing.T) string {
	testInstance.Helper()

	rootDirectory := testInstance.TempDir()
	for _, repositoryName := range []string{testAlphaRepositoryNameConstant, testBetaRepositoryNameConstant} {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, repositoryName, testGitMetadataDirectoryNameConstant), 0o755))
	}
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, testGammaRepositoryNameConstant), 0o755))
	return rootDirectory
}

func writeConfigurationFile(testInstance *testing.T, configurationPath string, baseDirectory string) {
	testInstance.Helper()

	configurationContent := []byte(fmt.Sprintf(testConfigurationTemplateConstant, baseDirectory))
	require.NoError(testInstance, os.WriteFile(configurationPath, configurationContent, 0o600))
}

func readRenderedConfiguration(testInstance *testing.T, configurationPath string) cli.ApplicationConfiguration {
	testInstance.Helper()

	renderedContent, readError := os.ReadFile(configurationPath)
	require.NoError(testInstance, readError)

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, yaml.Unmarshal(renderedContent, &configuration))
	if configuration.Tracker.Identities == nil {
		configuration.Tracker.Identities = []string{}
	}
	if configuration.Tracker.ExcludedDirectories == nil {
		configuration.Tracker.ExcludedDirectories = []string{}
	}
	return configuration
}
