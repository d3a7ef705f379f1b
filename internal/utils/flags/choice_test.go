package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(testInstance *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "default_first_choice",
			defaultChoice:  "cli",
			choices:        []string{"cli", "native"},
			description:    "History backend.",
			expectedOutput: "`<CLI|native>` History backend.",
		},
		{
			name:           "default_second_choice",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Log encoding.",
			expectedOutput: "`<structured|CONSOLE>` Log encoding.",
		},
		{
			name:           "empty_description",
			defaultChoice:  "cli",
			choices:        []string{"cli", "native"},
			expectedOutput: "`<CLI|native>`",
		},
		{
			name:           "duplicates_and_whitespace_ignored",
			defaultChoice:  "native",
			choices:        []string{" native ", "NATIVE", "cli", " "},
			description:    "History backend.",
			expectedOutput: "`<NATIVE|cli>` History backend.",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedOutput, FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description))
		})
	}
}

func TestChoiceValueSet(testInstance *testing.T) {
	value := NewChoiceValue("cli", []string{"cli", "native"})
	require.Equal(testInstance, "cli", value.String())
	require.Equal(testInstance, "choice", value.Type())

	require.NoError(testInstance, value.Set(" Native "))
	require.Equal(testInstance, "native", value.String())

	require.ErrorIs(testInstance, value.Set("libgit2"), ErrInvalidChoice)
	require.Equal(testInstance, "native", value.String())
}
