// Package cli constructs the commit-tracker command-line interface. It wires the Cobra command
// hierarchy to the layered configuration loader and the zap logger, and registers the collect,
// authors, repos, and config commands.
package cli
