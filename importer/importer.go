package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// MaxBatchSize is the per-import record ceiling. It matches the 500
// write limit of a Firestore WriteBatch, the store's atomic primitive.
const MaxBatchSize = 500

// Domain is the per-collection half of the import pipeline: it decides
// whether a row is a valid record and commits the accumulated records
// in one atomic write. A Domain holds state for exactly one import run.
type Domain interface {
	// Name is the singular noun used in messages, e.g. "transaction".
	Name() string
	Plural() string
	// AddRow validates one row. On success the record is retained for
	// Commit and nil is returned; otherwise the row-level error says
	// why the row was skipped.
	AddRow(row Row, displayRow int) error
	// Pending is the number of records retained so far.
	Pending() int
	// Commit writes every pending record in one all-or-nothing batch.
	Commit(ctx context.Context) error
}

// Pipeline runs one CSV import against a Domain.
type Pipeline struct {
	domain Domain
}

func NewPipeline(d Domain) *Pipeline {
	return &Pipeline{domain: d}
}

// Import drives the full pipeline: intake check, parse, per-row
// validation, batch ceiling, atomic commit. Row failures skip the row
// and continue; everything after validation is fatal to the whole
// import, and nothing is persisted on any error path.
func (p *Pipeline) Import(ctx context.Context, filename, contentType string, data io.Reader) Feedback {
	if !Accepts(filename, contentType) {
		return Feedback{Severity: SeverityError, Message: "Please upload a CSV file."}
	}

	rows, err := parseRows(data)
	if err != nil {
		log.Printf("Error parsing CSV file %s: %v", filename, err)
		return Feedback{Severity: SeverityError, Message: fmt.Sprintf("Error parsing CSV file: %s", err)}
	}

	var rowErrors []string
	for i, row := range rows {
		// Display rows are 1-indexed and account for the header line.
		if err := p.domain.AddRow(row, i+2); err != nil {
			rowErrors = append(rowErrors, err.Error())
		}
	}

	if len(rows) == 0 {
		return Feedback{Severity: SeverityError, Message: "The CSV file appears to be empty."}
	}

	valid := p.domain.Pending()
	if valid == 0 && len(rowErrors) == 0 {
		return Feedback{
			Severity: SeverityError,
			Message:  fmt.Sprintf("No valid %s found in the file. Please check file content and format.", p.domain.Plural()),
		}
	}

	if valid == 0 {
		log.Printf("CSV import row errors: %v", rowErrors)
		return Feedback{
			Severity:  SeverityError,
			Message:   fmt.Sprintf("No %s were imported. %s", p.domain.Plural(), strings.Join(rowErrors, " ")),
			RowErrors: len(rowErrors),
		}
	}

	if valid > MaxBatchSize {
		rowErrors = append(rowErrors, fmt.Sprintf("File has %d %s, exceeding %d limit per import.", valid, p.domain.Plural(), MaxBatchSize))
		return Feedback{
			Severity:  SeverityError,
			Message:   "Import failed. " + strings.Join(rowErrors, " "),
			RowErrors: len(rowErrors),
		}
	}

	if err := p.domain.Commit(ctx); err != nil {
		log.Printf("Error committing %s batch: %v", p.domain.Name(), err)
		return Feedback{
			Severity:  SeverityError,
			Message:   fmt.Sprintf("Error importing %s: %s", p.domain.Plural(), err),
			RowErrors: len(rowErrors),
		}
	}

	if len(rowErrors) > 0 {
		log.Printf("CSV import row errors: %v", rowErrors)
		return Feedback{
			Severity:  SeverityWarning,
			Message:   fmt.Sprintf("%d %s imported. %d rows had issues.", valid, p.domain.Plural(), len(rowErrors)),
			Imported:  valid,
			RowErrors: len(rowErrors),
		}
	}

	return Feedback{
		Severity: SeveritySuccess,
		Message:  fmt.Sprintf("%d %s(s) imported successfully!", valid, p.domain.Name()),
		Imported: valid,
	}
}
