package docs_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/commit-tracker/cmd/cli"
	"github.com/temirov/commit-tracker/internal/export"
	"github.com/temirov/commit-tracker/internal/history"
	"github.com/temirov/commit-tracker/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetTestNameConstant    = "readme_tracker_configuration"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

func TestReadmeTrackerConfigurationParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	testCases := []struct {
		name          string
		configuration string
	}{
		{
			name:          readmeSnippetTestNameConstant,
			configuration: snippetContent,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			decoder := yaml.NewDecoder(bytes.NewReader([]byte(testCase.configuration)))
			decoder.KnownFields(true)

			var applicationConfiguration cli.ApplicationConfiguration
			require.NoError(subtest, decoder.Decode(&applicationConfiguration))

			loggerFactory := utils.NewLoggerFactory()
			_, loggerError := loggerFactory.CreateLogger(
				utils.NormalizeLogLevel(applicationConfiguration.Common.LogLevel),
				utils.NormalizeLogFormat(applicationConfiguration.Common.LogFormat),
			)
			require.NoError(subtest, loggerError)

			trackerConfiguration := applicationConfiguration.Tracker
			require.NotEmpty(subtest, trackerConfiguration.Identities)
			require.True(subtest, trackerConfiguration.DateRange().Bounded())
			require.NoError(subtest, trackerConfiguration.DateRange().Validate())

			_, sourceError := history.ParseSourceKind(trackerConfiguration.HistorySource)
			require.NoError(subtest, sourceError)

			_, encoderError := export.EncoderForPath(trackerConfiguration.OutputFile)
			require.NoError(subtest, encoderError)
		})
	}
}
