package tracker

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/commit-tracker/internal/execshell"
	"github.com/temirov/commit-tracker/internal/export"
	"github.com/temirov/commit-tracker/internal/history"
	"github.com/temirov/commit-tracker/internal/repos/dependencies"
	"github.com/temirov/commit-tracker/internal/repos/shared"
	"github.com/temirov/commit-tracker/internal/ui"
	flagutils "github.com/temirov/commit-tracker/internal/utils/flags"
)

const (
	collectUseConstant                   = "collect"
	collectShortDescriptionConstant      = "Export the commits authored by the configured identities"
	collectLongDescriptionConstant       = "collect scans every git repository under the base directory, keeps the commits whose author matches an identity, and writes them newest first to a spreadsheet."
	authorsUseConstant                   = "authors"
	authorsShortDescriptionConstant      = "List every commit author found under the base directory"
	authorsLongDescriptionConstant       = "authors prints the distinct author names of all discovered repositories to help choose identities."
	repositoriesUseConstant              = "repos"
	repositoriesShortDescriptionConstant = "List the git repositories found under the base directory"
	repositoriesLongDescriptionConstant  = "repos prints the display name of every repository collect would scan."
	rootFlagNameConstant                 = "root"
	rootFlagUsageConstant                = "Base directory containing git repositories"
	outputFlagNameConstant               = "output"
	outputFlagUsageConstant              = "Output file (.xlsx or .csv); relative paths resolve against the base directory"
	identityFlagNameConstant             = "identity"
	identityFlagUsageConstant            = "Author name or substring to track (repeatable)"
	sinceFlagNameConstant                = "since"
	sinceFlagUsageConstant               = "Start date (YYYY-MM-DD); applied only together with --until"
	untilFlagNameConstant                = "until"
	untilFlagUsageConstant               = "End date (YYYY-MM-DD); applied only together with --since"
	sourceFlagNameConstant               = "source"
	sourceFlagUsageConstant              = "History backend: the git executable or the built-in reader"
	excludeFlagNameConstant              = "exclude"
	excludeFlagUsageConstant             = "Directory name to skip while scanning (repeatable)"
	collectErrorTemplateConstant         = "commit collection failed: %w"
	authorsErrorTemplateConstant         = "author listing failed: %w"
	repositoriesErrorTemplateConstant    = "repository listing failed: %w"
)

var historySourceChoices = []string{string(history.SourceKindCLI), string(history.SourceKindNative)}

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the loaded tracker configuration.
type ConfigurationProvider func() Configuration

// CommandBuilder assembles the collect command. Collaborator fields are optional and default to
// the production implementations.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Discoverer                   shared.RepositoryDiscoverer
	GitExecutor                  shared.GitExecutor
	HistorySource                history.HistorySource
	FileSystem                   shared.FileSystem
	TableWriter                  export.TableWriter
	Clock                        shared.Clock
}

// AuthorsCommandBuilder assembles the authors command.
type AuthorsCommandBuilder struct {
	CommandBuilder
}

// RepositoriesCommandBuilder assembles the repos command.
type RepositoriesCommandBuilder struct {
	CommandBuilder
}

// Build constructs the collect command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   collectUseConstant,
		Short: collectShortDescriptionConstant,
		Long:  collectLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runCollect,
	}

	bindScanFlags(command)
	command.Flags().String(outputFlagNameConstant, DefaultOutputFileConstant, outputFlagUsageConstant)
	command.Flags().StringSlice(identityFlagNameConstant, nil, identityFlagUsageConstant)
	command.Flags().String(sinceFlagNameConstant, "", sinceFlagUsageConstant)
	command.Flags().String(untilFlagNameConstant, "", untilFlagUsageConstant)
	bindSourceFlag(command)

	return command, nil
}

// Build constructs the authors command.
func (builder *AuthorsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   authorsUseConstant,
		Short: authorsShortDescriptionConstant,
		Long:  authorsLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runAuthors,
	}

	bindScanFlags(command)
	bindSourceFlag(command)

	return command, nil
}

// Build constructs the repos command.
func (builder *RepositoriesCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   repositoriesUseConstant,
		Short: repositoriesShortDescriptionConstant,
		Long:  repositoriesLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runRepositories,
	}

	bindScanFlags(command)

	return command, nil
}

func bindScanFlags(command *cobra.Command) {
	command.Flags().String(rootFlagNameConstant, defaultBaseDirectoryConstant, rootFlagUsageConstant)
	command.Flags().StringSlice(excludeFlagNameConstant, nil, excludeFlagUsageConstant)
}

func bindSourceFlag(command *cobra.Command) {
	defaultSource := string(history.SourceKindCLI)
	command.Flags().Var(
		flagutils.NewChoiceValue(defaultSource, historySourceChoices),
		sourceFlagNameConstant,
		flagutils.FormatChoiceUsage(defaultSource, historySourceChoices, sourceFlagUsageConstant),
	)
}

func (builder *CommandBuilder) runCollect(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration(command)

	service, serviceError := builder.buildService(command, configuration)
	if serviceError != nil {
		return serviceError
	}

	if _, collectError := service.Collect(command.Context(), configuration); collectError != nil {
		return fmt.Errorf(collectErrorTemplateConstant, collectError)
	}
	return nil
}

func (builder *AuthorsCommandBuilder) runAuthors(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration(command)

	service, serviceError := builder.buildService(command, configuration)
	if serviceError != nil {
		return serviceError
	}

	if _, listError := service.ListAuthors(command.Context(), configuration); listError != nil {
		return fmt.Errorf(authorsErrorTemplateConstant, listError)
	}
	return nil
}

func (builder *RepositoriesCommandBuilder) runRepositories(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration(command)

	service, serviceError := builder.buildService(command, configuration)
	if serviceError != nil {
		return serviceError
	}

	if _, listError := service.ListRepositories(configuration); listError != nil {
		return fmt.Errorf(repositoriesErrorTemplateConstant, listError)
	}
	return nil
}

// resolveConfiguration starts from the provided configuration and applies explicitly set flags.
func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	configuration.BaseDirectory = flagutils.OverrideString(command, rootFlagNameConstant, configuration.BaseDirectory)
	configuration.OutputFile = flagutils.OverrideString(command, outputFlagNameConstant, configuration.OutputFile)
	configuration.Identities = flagutils.OverrideStringSlice(command, identityFlagNameConstant, configuration.Identities)
	configuration.StartDate = flagutils.OverrideString(command, sinceFlagNameConstant, configuration.StartDate)
	configuration.EndDate = flagutils.OverrideString(command, untilFlagNameConstant, configuration.EndDate)
	configuration.HistorySource = flagutils.OverrideString(command, sourceFlagNameConstant, configuration.HistorySource)
	configuration.ExcludedDirectories = flagutils.OverrideStringSlice(command, excludeFlagNameConstant, configuration.ExcludedDirectories)

	return configuration.sanitize()
}

func (builder *CommandBuilder) buildService(command *cobra.Command, configuration Configuration) (*Service, error) {
	sourceKind, sourceKindError := history.ParseSourceKind(configuration.HistorySource)
	if sourceKindError != nil {
		return nil, sourceKindError
	}

	logger := builder.resolveLogger()
	historySource, sourceError := dependencies.ResolveHistorySource(builder.HistorySource, sourceKind, func() (shared.GitExecutor, error) {
		return dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveCommandEventObserver(logger))
	})
	if sourceError != nil {
		return nil, sourceError
	}

	fileSystem := dependencies.ResolveFileSystem(builder.FileSystem)
	tableWriter, writerError := dependencies.ResolveTableWriter(builder.TableWriter, fileSystem)
	if writerError != nil {
		return nil, writerError
	}

	return NewService(Dependencies{
		Discoverer:  dependencies.ResolveRepositoryDiscoverer(builder.Discoverer),
		Source:      historySource,
		FileSystem:  fileSystem,
		TableWriter: tableWriter,
		Reporter:    shared.NewWriterReporter(command.OutOrStdout()),
		Logger:      logger,
		Clock:       builder.Clock,
	})
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveCommandEventObserver(logger *zap.Logger) execshell.CommandEventObserver {
	if builder.HumanReadableLoggingProvider == nil || !builder.HumanReadableLoggingProvider() {
		return nil
	}
	return ui.NewConsoleCommandEventLogger(logger)
}
