package report

import "errors"

// ErrNoDiagnostics is returned by WriteDiagnostics for a Result recorded
// without ExportDiagnostics.
var ErrNoDiagnostics = errors.New("report: result carries no diagnostics")
