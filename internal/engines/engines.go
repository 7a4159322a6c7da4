// Package engines exposes the music engines behind a uniform adapter
// contract: every call returns a Result map, engine faults surface as
// error payloads instead of propagating, and each invocation is logged
// and metered.
package engines

import "fmt"

// Result is the uniform engine output. Failed results carry Err and an
// empty or partial Data map; callers treat them as degraded, never
// fatal.
type Result struct {
	Data map[string]any
	Err  string
}

// OK wraps a successful payload.
func OK(data map[string]any) Result {
	return Result{Data: data}
}

// Errf builds a failed result.
func Errf(format string, args ...any) Result {
	return Result{Err: fmt.Sprintf(format, args...), Data: map[string]any{}}
}

// Failed reports whether the engine call degraded.
func (r Result) Failed() bool {
	return r.Err != ""
}

// ToMap renders the result for response payloads: data on success, an
// error entry on failure.
func (r Result) ToMap() map[string]any {
	if r.Failed() {
		return map[string]any{"error": r.Err}
	}
	return r.Data
}
