// Package tracker collects the commits authored by a set of identities across every git
// repository beneath a base directory and exports them as a table.
//
// Service runs the pipeline over an explicit Configuration; CommandBuilder,
// AuthorsCommandBuilder, and RepositoriesCommandBuilder expose it through Cobra.
package tracker
