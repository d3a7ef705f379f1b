// Package export renders matched commits as a three-column table and writes it as a spreadsheet
// or CSV file selected by the output file extension.
package export
