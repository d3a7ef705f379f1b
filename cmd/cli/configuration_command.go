package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	configurationCommandUseConstant              = "config"
	configurationCommandShortDescriptionConstant = "Manage the commit-tracker configuration file"
	configurationInitUseConstant                 = "init"
	configurationInitShortDescriptionConstant    = "Write the default configuration to a YAML file"
	configurationInitLongDescriptionConstant     = "init renders the built-in defaults as YAML. The target is --path, then the file named by --config, then config.yaml in the working directory."
	configurationPathFlagNameConstant            = "path"
	configurationPathFlagUsageConstant           = "Destination of the configuration file"
	configurationForceFlagNameConstant           = "force"
	configurationForceFlagUsageConstant          = "Overwrite an existing configuration file"
	defaultConfigurationFileNameConstant         = configurationNameConstant + "." + configurationTypeConstant
	configurationWrittenTemplateConstant         = "Configuration written to %s\n"
	configurationWrittenLogMessageConstant       = "configuration file written"
	configurationPathLogFieldConstant            = "path"
	configurationRenderErrorTemplateConstant     = "unable to render configuration: %w"
	configurationPathErrorTemplateConstant       = "unable to resolve configuration path %s: %w"
	configurationInspectErrorTemplateConstant    = "unable to inspect configuration path %s: %w"
	configurationDirectoryErrorTemplateConstant  = "unable to create configuration directory %s: %w"
	configurationWriteErrorTemplateConstant      = "unable to write configuration file %s: %w"
	configurationExistsErrorTemplateConstant     = "%w: %s (use --force to overwrite)"
	configurationDirectoryPermissionsConstant    = fs.FileMode(0o755)
	configurationFilePermissionsConstant         = fs.FileMode(0o644)
)

// ErrConfigurationFileExists indicates config init refused to replace an existing file.
var ErrConfigurationFileExists = errors.New("configuration file already exists")

func (application *Application) buildConfigurationCommand() *cobra.Command {
	configurationCommand := &cobra.Command{
		Use:   configurationCommandUseConstant,
		Short: configurationCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	initCommand := &cobra.Command{
		Use:   configurationInitUseConstant,
		Short: configurationInitShortDescriptionConstant,
		Long:  configurationInitLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  application.runConfigurationInit,
	}
	initCommand.Flags().String(configurationPathFlagNameConstant, "", configurationPathFlagUsageConstant)
	initCommand.Flags().Bool(configurationForceFlagNameConstant, false, configurationForceFlagUsageConstant)

	configurationCommand.AddCommand(initCommand)
	return configurationCommand
}

func (application *Application) runConfigurationInit(command *cobra.Command, _ []string) error {
	requestedPath, _ := command.Flags().GetString(configurationPathFlagNameConstant)
	overwrite, _ := command.Flags().GetBool(configurationForceFlagNameConstant)

	if len(requestedPath) == 0 {
		if configuredPath, available := application.commandContextAccessor.ConfigurationFilePath(command.Context()); available {
			requestedPath = configuredPath
		}
	}
	requestedPath = trimmedOrDefault(requestedPath, defaultConfigurationFileNameConstant)

	targetPath, absError := application.fileSystem.Abs(requestedPath)
	if absError != nil {
		return fmt.Errorf(configurationPathErrorTemplateConstant, requestedPath, absError)
	}

	if _, statError := application.fileSystem.Stat(targetPath); statError == nil {
		if !overwrite {
			return fmt.Errorf(configurationExistsErrorTemplateConstant, ErrConfigurationFileExists, targetPath)
		}
	} else if !errors.Is(statError, fs.ErrNotExist) {
		return fmt.Errorf(configurationInspectErrorTemplateConstant, targetPath, statError)
	}

	renderedConfiguration, renderError := yaml.Marshal(DefaultApplicationConfiguration())
	if renderError != nil {
		return fmt.Errorf(configurationRenderErrorTemplateConstant, renderError)
	}

	targetDirectory := filepath.Dir(targetPath)
	if directoryError := application.fileSystem.MkdirAll(targetDirectory, configurationDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(configurationDirectoryErrorTemplateConstant, targetDirectory, directoryError)
	}
	if writeError := application.fileSystem.WriteFile(targetPath, renderedConfiguration, configurationFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, targetPath, writeError)
	}

	application.logger.Info(configurationWrittenLogMessageConstant, zap.String(configurationPathLogFieldConstant, targetPath))
	fmt.Fprintf(command.OutOrStdout(), configurationWrittenTemplateConstant, targetPath)
	return nil
}
