package importer

// Severity classifies a terminal import outcome for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Feedback is the single user-facing result of an import run. Row-level
// error detail is written to the server log, not returned here; clients
// only see the counts and the summary message.
type Feedback struct {
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	Imported  int      `json:"imported"`
	RowErrors int      `json:"rowErrors"`
}
