package domain

import "fmt"

// ReportTable is an ordered list of display rows; the first row is the header.
type ReportTable [][]string

// RunState is a step of a single report generation run.
type RunState string

const (
	RunStateInit               RunState = "init"
	RunStateCredentialsChecked RunState = "credentials_checked"
	RunStateDataFetched        RunState = "data_fetched"
	RunStateMapped             RunState = "mapped"
	RunStateBuilt              RunState = "built"
	RunStateRendered           RunState = "rendered"
	RunStateFailed             RunState = "failed"
)

// FailureKind classifies why a run ended in RunStateFailed.
type FailureKind string

const (
	FailureNone                 FailureKind = ""
	FailureCredentials          FailureKind = "credential_error"
	FailureMandatoryDataMissing FailureKind = "mandatory_data_missing"
	FailureRender               FailureKind = "render_failure"
	FailureOutput               FailureKind = "output_failure"
	FailureInternal             FailureKind = "internal_error"
)

// Result is the outcome of one run.
type Result struct {
	RunID          string
	DesignID       string
	State          RunState
	Failure        FailureKind
	Reason         string
	Location       string   // where the document was stored
	Mirrors        []string // best-effort copies
	Pages          int
	ImagesEmbedded int
}

func (r Result) OK() bool {
	return r.State == RunStateRendered
}

func (r Result) String() string {
	if r.OK() {
		return fmt.Sprintf("design %s: %s (%d pages) at %s", r.DesignID, r.State, r.Pages, r.Location)
	}
	return fmt.Sprintf("design %s: %s (%s): %s", r.DesignID, r.State, r.Failure, r.Reason)
}
