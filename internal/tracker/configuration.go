package tracker

import (
	"path/filepath"
	"strings"

	"github.com/temirov/commit-tracker/internal/history"
)

const (
	// DefaultOutputFileConstant is the output file name used when none is configured.
	DefaultOutputFileConstant = "commit_history.xlsx"

	defaultBaseDirectoryConstant        = "."
	configurationBaseDirectoryKey       = "base_directory"
	configurationOutputFileKey          = "output_file"
	configurationIdentitiesKey          = "identities"
	configurationStartDateKey           = "start_date"
	configurationEndDateKey             = "end_date"
	configurationHistorySourceKey       = "history_source"
	configurationExcludedDirectoriesKey = "excluded_directories"
	configurationKeySeparatorConstant   = "."
)

// Configuration holds the settings of one tracking run.
type Configuration struct {
	BaseDirectory       string   `mapstructure:"base_directory" yaml:"base_directory"`
	OutputFile          string   `mapstructure:"output_file" yaml:"output_file"`
	Identities          []string `mapstructure:"identities" yaml:"identities"`
	StartDate           string   `mapstructure:"start_date" yaml:"start_date"`
	EndDate             string   `mapstructure:"end_date" yaml:"end_date"`
	HistorySource       string   `mapstructure:"history_source" yaml:"history_source"`
	ExcludedDirectories []string `mapstructure:"excluded_directories" yaml:"excluded_directories"`
}

// DefaultConfiguration returns baseline configuration values.
func DefaultConfiguration() Configuration {
	return Configuration{
		BaseDirectory:       defaultBaseDirectoryConstant,
		OutputFile:          DefaultOutputFileConstant,
		Identities:          []string{},
		StartDate:           "",
		EndDate:             "",
		HistorySource:       string(history.SourceKindCLI),
		ExcludedDirectories: []string{},
	}
}

// DefaultConfigurationValues produces Viper defaults keyed under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultConfiguration()
	prefix := rootKey + configurationKeySeparatorConstant
	return map[string]any{
		prefix + configurationBaseDirectoryKey:       defaults.BaseDirectory,
		prefix + configurationOutputFileKey:          defaults.OutputFile,
		prefix + configurationIdentitiesKey:          defaults.Identities,
		prefix + configurationStartDateKey:           defaults.StartDate,
		prefix + configurationEndDateKey:             defaults.EndDate,
		prefix + configurationHistorySourceKey:       defaults.HistorySource,
		prefix + configurationExcludedDirectoriesKey: defaults.ExcludedDirectories,
	}
}

// DateRange returns the configured commit date bounds.
func (configuration Configuration) DateRange() history.DateRange {
	return history.NewDateRange(configuration.StartDate, configuration.EndDate)
}

// OutputArtifactDirectoryName is the output file name without its extension; directories with
// this name are never scanned.
func (configuration Configuration) OutputArtifactDirectoryName() string {
	outputFileName := filepath.Base(configuration.OutputFile)
	return strings.TrimSuffix(outputFileName, filepath.Ext(outputFileName))
}

// sanitize trims values and restores defaults for blank base directory, output file, and source.
func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration

	sanitized.BaseDirectory = strings.TrimSpace(configuration.BaseDirectory)
	if len(sanitized.BaseDirectory) == 0 {
		sanitized.BaseDirectory = defaultBaseDirectoryConstant
	}
	sanitized.OutputFile = strings.TrimSpace(configuration.OutputFile)
	if len(sanitized.OutputFile) == 0 {
		sanitized.OutputFile = DefaultOutputFileConstant
	}
	sanitized.StartDate = strings.TrimSpace(configuration.StartDate)
	sanitized.EndDate = strings.TrimSpace(configuration.EndDate)
	sanitized.HistorySource = strings.TrimSpace(configuration.HistorySource)
	sanitized.Identities = sanitizeValues(configuration.Identities)
	sanitized.ExcludedDirectories = sanitizeValues(configuration.ExcludedDirectories)

	return sanitized
}

func sanitizeValues(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
