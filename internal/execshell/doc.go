// Package execshell provides structured helpers for invoking git.
//
// ShellExecutor wraps a CommandRunner with zap lifecycle logging and optional
// CommandEventObserver notifications, and converts non-zero exit codes into
// CommandFailedError values so callers can decide whether to skip or abort.
// OSCommandRunner is the default os/exec backed runner.
package execshell
