package export

import (
	"sort"

	"github.com/temirov/commit-tracker/internal/history"
)

const (
	// RepositoryColumnHeaderConstant names the first output column.
	RepositoryColumnHeaderConstant = "Repository"
	// DateColumnHeaderConstant names the second output column.
	DateColumnHeaderConstant = "Date"
	// CommitMessageColumnHeaderConstant names the third output column.
	CommitMessageColumnHeaderConstant = "Commit Message"
	// RenderedDateLayoutConstant formats commit timestamps in their recorded offset.
	RenderedDateLayoutConstant = "2006-01-02 15:04:05"
)

// Row is one rendered commit.
type Row struct {
	Repository    string
	Date          string
	CommitMessage string
}

// Values returns the row cells in column order.
func (row Row) Values() []string {
	return []string{row.Repository, row.Date, row.CommitMessage}
}

// Table is the ordered set of rows written to the output file.
type Table struct {
	Rows []Row
}

// Header returns the column names in order.
func (Table) Header() []string {
	return []string{RepositoryColumnHeaderConstant, DateColumnHeaderConstant, CommitMessageColumnHeaderConstant}
}

// Empty reports whether the table holds no rows.
func (table Table) Empty() bool {
	return len(table.Rows) == 0
}

// BuildTable sorts commits newest first and renders their dates.
// Commits with equal timestamps keep their input order.
func BuildTable(commits []history.CommitRecord) Table {
	orderedCommits := append([]history.CommitRecord(nil), commits...)
	sort.SliceStable(orderedCommits, func(leftIndex int, rightIndex int) bool {
		return orderedCommits[leftIndex].Timestamp.After(orderedCommits[rightIndex].Timestamp)
	})

	rows := make([]Row, 0, len(orderedCommits))
	for _, commit := range orderedCommits {
		rows = append(rows, Row{
			Repository:    commit.Repository,
			Date:          commit.Timestamp.Format(RenderedDateLayoutConstant),
			CommitMessage: commit.Subject,
		})
	}
	return Table{Rows: rows}
}
