package art2a

import "fmt"

// recorder collects the diagnostic text sequences of one run. A nil *recorder
// records nothing, so the engine calls it unconditionally.
type recorder struct {
	process []string
	summary []string
}

// processf appends one line to the process trace.
func (r *recorder) processf(format string, args ...any) {
	if r == nil {
		return
	}
	r.process = append(r.process, fmt.Sprintf(format, args...))
}

// summaryf appends one line to the epoch summary.
func (r *recorder) summaryf(format string, args ...any) {
	if r == nil {
		return
	}
	r.summary = append(r.summary, fmt.Sprintf(format, args...))
}

// epochf appends one line to both sequences.
func (r *recorder) epochf(format string, args ...any) {
	if r == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	r.process = append(r.process, line)
	r.summary = append(r.summary, line)
}

// lines returns copies of both sequences; nil when nothing was recorded.
func (r *recorder) lines() (process, summary []string) {
	if r == nil {
		return nil, nil
	}

	return append([]string(nil), r.process...), append([]string(nil), r.summary...)
}
