// package formatter provides functions to export run history to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/tidy/internal/models"
)

// RunReport pairs a recorded run with its move rows for export.
type RunReport struct {
	Run   *models.Run
	Moves []*models.Move
}

// ExportToCSV converts a RunReport to CSV format with columns: Source, Destination, Category, MovedAt
func ExportToCSV(report *RunReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Source", "Destination", "Category", "MovedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, move := range report.Moves {
		record := []string{
			move.SourcePath(),
			move.DestPath(),
			move.Category(),
			move.CreatedAt().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a RunReport to Markdown format
func ExportToMarkdown(report *RunReport) ([]byte, error) {
	var buf bytes.Buffer
	run := report.Run

	buf.WriteString(fmt.Sprintf("# Run #%d\n\n", run.Sequence()))
	buf.WriteString(fmt.Sprintf("**Directory**: %s\n", run.TargetDir()))
	buf.WriteString(fmt.Sprintf("**Date**: %s\n", run.CreatedAt().Format(time.RFC1123)))
	if run.DryRun() {
		buf.WriteString("**Mode**: dry-run\n")
	}
	buf.WriteString(fmt.Sprintf("**Moved**: %d | **Skipped**: %d | **Failed**: %d\n", run.MovedCount(), run.SkippedCount(), run.FailedCount()))
	buf.WriteString(fmt.Sprintf("**Duration**: %s\n\n", run.Duration()))

	buf.WriteString("## Moves\n\n")
	for i, move := range report.Moves {
		buf.WriteString(fmt.Sprintf("%d. `%s` -> `%s` (%s)\n", i+1, move.SourcePath(), move.DestPath(), move.Category()))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a RunReport to plain text format
func ExportToText(report *RunReport) ([]byte, error) {
	var buf bytes.Buffer
	run := report.Run

	buf.WriteString(fmt.Sprintf("Run #%d - %s\n", run.Sequence(), run.TargetDir()))
	buf.WriteString(fmt.Sprintf("Date: %s\n", run.CreatedAt().Format(time.RFC1123)))
	buf.WriteString(fmt.Sprintf("Moved: %d  Skipped: %d  Failed: %d  Duration: %s\n\n", run.MovedCount(), run.SkippedCount(), run.FailedCount(), run.Duration()))

	for _, move := range report.Moves {
		buf.WriteString(fmt.Sprintf("%s -> %s [%s]\n", move.SourcePath(), move.DestPath(), move.Category()))
	}

	return buf.Bytes(), nil
}

// WriteReport exports a RunReport in the requested format ("csv", "markdown", "txt") and writes it to path.
// An empty path writes to stdout.
func WriteReport(report *RunReport, format, path string) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(report)
	case "markdown", "md":
		data, err = ExportToMarkdown(report)
	case "txt", "text":
		data, err = ExportToText(report)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return err
	}

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
