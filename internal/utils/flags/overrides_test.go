package flags_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/commit-tracker/internal/utils/flags"
)

func buildCommandTree(testInstance *testing.T, arguments []string) *cobra.Command {
	testInstance.Helper()

	var executedCommand *cobra.Command
	rootCommand := &cobra.Command{Use: "root"}
	rootCommand.PersistentFlags().String("log-level", "info", "")
	childCommand := &cobra.Command{
		Use: "collect",
		RunE: func(command *cobra.Command, _ []string) error {
			executedCommand = command
			return nil
		},
	}
	childCommand.Flags().String("root", ".", "")
	childCommand.Flags().StringSlice("identity", nil, "")
	rootCommand.AddCommand(childCommand)

	rootCommand.SetArgs(arguments)
	require.NoError(testInstance, rootCommand.Execute())
	require.NotNil(testInstance, executedCommand)
	return executedCommand
}

func TestOverrides(testInstance *testing.T) {
	testCases := []struct {
		name               string
		arguments          []string
		expectedRoot       string
		expectedIdentities []string
		expectedLogLevel   string
	}{
		{
			name:               "configuration_values_kept",
			arguments:          []string{"collect"},
			expectedRoot:       "/configured",
			expectedIdentities: []string{"configured"},
			expectedLogLevel:   "warn",
		},
		{
			name:               "explicit_flags_win",
			arguments:          []string{"--log-level", "debug", "collect", "--root", "/flag", "--identity", "alice", "--identity", "bob"},
			expectedRoot:       "/flag",
			expectedIdentities: []string{"alice", "bob"},
			expectedLogLevel:   "debug",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			command := buildCommandTree(testInstance, testCase.arguments)
			require.Equal(testInstance, testCase.expectedRoot, flags.OverrideString(command, "root", "/configured"))
			require.Equal(testInstance, testCase.expectedIdentities, flags.OverrideStringSlice(command, "identity", []string{"configured"}))
			require.Equal(testInstance, testCase.expectedLogLevel, flags.OverrideString(command, "log-level", "warn"))
		})
	}
}

func TestChangedHandlesNilCommand(testInstance *testing.T) {
	require.False(testInstance, flags.Changed(nil, "root"))
}
