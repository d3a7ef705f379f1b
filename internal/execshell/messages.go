package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitLogSubcommandNameConstant  = "log"
	gitAuthorFormatPrefixConstant = "--format=%an"
	gitPrettyFormatPrefixConstant = "--pretty=format:"
	gitSinceFlagPrefixConstant    = "--since="
	gitUntilFlagPrefixConstant    = "--until="
	gitVersionFlagConstant        = "--version"
	gitDateRangeSuffixTemplate    = " between %s and %s"
	gitAuthorsStartTemplate       = "Listing commit authors in %s"
	gitAuthorsSuccessTemplate     = "Listed commit authors in %s"
	gitAuthorsFailureTemplate     = "Failed to list commit authors in %s (exit code %d%s)"
	gitAuthorsExecutionTemplate   = "Unable to list commit authors in %s: %s"
	gitHistoryStartTemplate       = "Reading commit history in %s%s"
	gitHistorySuccessTemplate     = "Read commit history in %s%s"
	gitHistoryFailureTemplate     = "Failed to read commit history in %s%s (exit code %d%s)"
	gitHistoryExecutionTemplate   = "Unable to read commit history in %s%s: %s"
	gitVersionStartTemplate       = "Checking git availability"
	gitVersionSuccessTemplate     = "git is available: %s"
	gitVersionFailureTemplate     = "git availability check failed (exit code %d%s)"
	gitVersionExecutionTemplate   = "git is not available: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	arguments := command.Details.Arguments
	switch strings.TrimSpace(arguments[0]) {
	case gitLogSubcommandNameConstant:
		if hasArgumentPrefix(arguments, gitAuthorFormatPrefixConstant) {
			return formatter.describeAuthorListing(command, result, failure, stage)
		}
		if hasArgumentPrefix(arguments, gitPrettyFormatPrefixConstant) {
			return formatter.describeHistoryListing(command, result, failure, stage)
		}
	case gitVersionFlagConstant:
		return formatter.describeVersionCheck(result, failure, stage)
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeAuthorListing(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAuthorsStartTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAuthorsSuccessTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAuthorsFailureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitAuthorsExecutionTemplate, workingDirectory, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeHistoryListing(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	rangeSuffix := formatter.describeDateRange(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitHistoryStartTemplate, workingDirectory, rangeSuffix)
	case messageStageSuccess:
		return fmt.Sprintf(gitHistorySuccessTemplate, workingDirectory, rangeSuffix)
	case messageStageFailure:
		return fmt.Sprintf(gitHistoryFailureTemplate, workingDirectory, rangeSuffix, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitHistoryExecutionTemplate, workingDirectory, rangeSuffix, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) describeVersionCheck(result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return gitVersionStartTemplate
	case messageStageSuccess:
		return fmt.Sprintf(gitVersionSuccessTemplate, formatter.ensureValue(result.StandardOutput))
	case messageStageFailure:
		return fmt.Sprintf(gitVersionFailureTemplate, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitVersionExecutionTemplate, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	label := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, label)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, label)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, label, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, label, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := describeCommandLabel(command)
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return commandLabel
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory))
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeDateRange(arguments []string) string {
	since := argumentValueWithPrefix(arguments, gitSinceFlagPrefixConstant)
	until := argumentValueWithPrefix(arguments, gitUntilFlagPrefixConstant)
	if len(since) == 0 && len(until) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(gitDateRangeSuffixTemplate, formatter.ensureValue(since), formatter.ensureValue(until))
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func hasArgumentPrefix(arguments []string, prefix string) bool {
	for _, argument := range arguments {
		if strings.HasPrefix(strings.TrimSpace(argument), prefix) {
			return true
		}
	}
	return false
}

func argumentValueWithPrefix(arguments []string, prefix string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimPrefix(trimmed, prefix)
		}
	}
	return emptyStringConstant
}
