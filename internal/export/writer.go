package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/temirov/commit-tracker/internal/repos/shared"
)

const (
	// SpreadsheetExtensionConstant selects the xlsx writer.
	SpreadsheetExtensionConstant = ".xlsx"
	// CSVExtensionConstant selects the CSV writer.
	CSVExtensionConstant = ".csv"
	// SpreadsheetSheetNameConstant names the worksheet holding the rows.
	SpreadsheetSheetNameConstant = "Commits"

	defaultSheetNameConstant           = "Sheet1"
	outputDirectoryPermissionsConstant = 0o755
	outputFilePermissionsConstant      = 0o644
	headerCellConstant                 = "A1"
	headerLastCellConstant             = "C1"
	headerRangeConstant                = "A1:C1"
	firstDataCellConstant              = "A2"
	bottomLeftPaneConstant             = "bottomLeft"
	minimumColumnWidthConstant         = 12
	maximumColumnWidthConstant         = 80
	columnWidthPaddingConstant         = 2
	unsupportedExtensionTemplate       = "unsupported output extension %q for %s: use %s or %s"
	createDirectoryErrorTemplate       = "create output directory %s: %w"
	renderErrorTemplate                = "render %s: %w"
	writeFileErrorTemplate             = "write %s: %w"
)

var (
	// ErrUnsupportedExtension indicates an output path whose extension has no writer.
	ErrUnsupportedExtension = errors.New("unsupported output extension")
	// ErrFileSystemNotConfigured indicates that the exporter was built without a filesystem.
	ErrFileSystemNotConfigured = errors.New("filesystem not configured")
)

// Encoder renders a table into file content.
type Encoder interface {
	Encode(table Table) ([]byte, error)
}

// EncoderForPath selects an encoder by the lower-cased extension of outputPath.
func EncoderForPath(outputPath string) (Encoder, error) {
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case SpreadsheetExtensionConstant:
		return SpreadsheetEncoder{}, nil
	case CSVExtensionConstant:
		return CSVEncoder{}, nil
	default:
		return nil, fmt.Errorf("%w: "+unsupportedExtensionTemplate, ErrUnsupportedExtension, filepath.Ext(outputPath), outputPath, SpreadsheetExtensionConstant, CSVExtensionConstant)
	}
}

// TableWriter persists a rendered table at an output path.
type TableWriter interface {
	Write(outputPath string, table Table) error
}

// Writer persists tables to the filesystem.
type Writer struct {
	fileSystem shared.FileSystem
}

// NewWriter constructs a Writer over the provided filesystem.
func NewWriter(fileSystem shared.FileSystem) (*Writer, error) {
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &Writer{fileSystem: fileSystem}, nil
}

// Write renders the table with the encoder matching outputPath and replaces the file.
// The parent directory is created when missing.
func (writer *Writer) Write(outputPath string, table Table) error {
	encoder, encoderError := EncoderForPath(outputPath)
	if encoderError != nil {
		return encoderError
	}

	content, encodeError := encoder.Encode(table)
	if encodeError != nil {
		return fmt.Errorf(renderErrorTemplate, outputPath, encodeError)
	}

	outputDirectory := filepath.Dir(outputPath)
	if mkdirError := writer.fileSystem.MkdirAll(outputDirectory, outputDirectoryPermissionsConstant); mkdirError != nil {
		return fmt.Errorf(createDirectoryErrorTemplate, outputDirectory, mkdirError)
	}

	if writeError := writer.fileSystem.WriteFile(outputPath, content, outputFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(writeFileErrorTemplate, outputPath, writeError)
	}
	return nil
}

// CSVEncoder renders the table as comma-separated values with a header record.
type CSVEncoder struct{}

// Encode implements Encoder.
func (CSVEncoder) Encode(table Table) ([]byte, error) {
	var buffer bytes.Buffer
	csvWriter := csv.NewWriter(&buffer)
	if writeError := csvWriter.Write(table.Header()); writeError != nil {
		return nil, writeError
	}
	for _, row := range table.Rows {
		if writeError := csvWriter.Write(row.Values()); writeError != nil {
			return nil, writeError
		}
	}
	csvWriter.Flush()
	if flushError := csvWriter.Error(); flushError != nil {
		return nil, flushError
	}
	return buffer.Bytes(), nil
}

// SpreadsheetEncoder renders the table as an xlsx workbook with a single Commits sheet.
type SpreadsheetEncoder struct{}

// Encode implements Encoder.
func (SpreadsheetEncoder) Encode(table Table) ([]byte, error) {
	workbook := excelize.NewFile()
	defer workbook.Close()

	if renameError := workbook.SetSheetName(defaultSheetNameConstant, SpreadsheetSheetNameConstant); renameError != nil {
		return nil, renameError
	}

	if headerError := workbook.SetSheetRow(SpreadsheetSheetNameConstant, headerCellConstant, toCellValues(table.Header())); headerError != nil {
		return nil, headerError
	}
	for rowIndex, row := range table.Rows {
		cellName, cellError := excelize.CoordinatesToCellName(1, rowIndex+2)
		if cellError != nil {
			return nil, cellError
		}
		if rowError := workbook.SetSheetRow(SpreadsheetSheetNameConstant, cellName, toCellValues(row.Values())); rowError != nil {
			return nil, rowError
		}
	}

	headerStyle, styleError := workbook.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if styleError != nil {
		return nil, styleError
	}
	if applyError := workbook.SetCellStyle(SpreadsheetSheetNameConstant, headerCellConstant, headerLastCellConstant, headerStyle); applyError != nil {
		return nil, applyError
	}
	if filterError := workbook.AutoFilter(SpreadsheetSheetNameConstant, headerRangeConstant, nil); filterError != nil {
		return nil, filterError
	}
	if panesError := workbook.SetPanes(SpreadsheetSheetNameConstant, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: firstDataCellConstant,
		ActivePane:  bottomLeftPaneConstant,
	}); panesError != nil {
		return nil, panesError
	}

	for columnIndex, width := range columnWidths(table) {
		columnName, columnError := excelize.ColumnNumberToName(columnIndex + 1)
		if columnError != nil {
			return nil, columnError
		}
		if widthError := workbook.SetColWidth(SpreadsheetSheetNameConstant, columnName, columnName, width); widthError != nil {
			return nil, widthError
		}
	}

	buffer, bufferError := workbook.WriteToBuffer()
	if bufferError != nil {
		return nil, bufferError
	}
	return buffer.Bytes(), nil
}

func toCellValues(values []string) *[]any {
	cells := make([]any, 0, len(values))
	for _, value := range values {
		cells = append(cells, value)
	}
	return &cells
}

// columnWidths sizes every column to its longest cell, clamped to a readable range.
func columnWidths(table Table) []float64 {
	header := table.Header()
	widths := make([]float64, len(header))
	measure := func(columnIndex int, value string) {
		width := float64(utf8.RuneCountInString(value) + columnWidthPaddingConstant)
		if width > widths[columnIndex] {
			widths[columnIndex] = width
		}
	}
	for columnIndex, name := range header {
		measure(columnIndex, name)
	}
	for _, row := range table.Rows {
		for columnIndex, value := range row.Values() {
			measure(columnIndex, value)
		}
	}
	for columnIndex := range widths {
		if widths[columnIndex] < minimumColumnWidthConstant {
			widths[columnIndex] = minimumColumnWidthConstant
		}
		if widths[columnIndex] > maximumColumnWidthConstant {
			widths[columnIndex] = maximumColumnWidthConstant
		}
	}
	return widths
}
