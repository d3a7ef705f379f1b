// Package history extracts commit records from git repositories.
//
// A HistorySource answers two read-only queries per repository: the full list
// of author names and the commit log rendered as "timestamp,author,subject"
// lines. Two sources are provided: CLIHistorySource shells out to git through
// execshell, and NativeHistorySource reads the object database in-process with
// go-git. Extractor parses the lines, drops the ones it cannot read, and keeps
// the commits whose author matches an IdentityFilter.
package history
