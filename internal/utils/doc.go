// Package utils exposes reusable helpers consumed by the CLI commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// environment variables through Viper; LoggerFactory builds zap loggers in
// structured or console form.
package utils
