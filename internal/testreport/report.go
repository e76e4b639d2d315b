// Package testreport normalizes third-party test reports (runner JSON and
// JUnit XML) into a single result shape.
package testreport

import (
	"errors"
	"time"
)

// ErrUnparseable signals a report that was produced but cannot be understood.
// Callers use it to distinguish "report invalid" from "no report" (an I/O
// error such as fs.ErrNotExist).
var ErrUnparseable = errors.New("unparseable test report")

// Failure identifies a single failing test case.
type Failure struct {
	File string `json:"file"`
	Name string `json:"name"`
}

// Summary is the normalized shape shared by both report dialects.
type Summary struct {
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Skipped  int       `json:"skipped"`
	Failures []Failure `json:"failures"`
}

// Total returns the number of test cases the summary accounts for.
func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// AllPassed reports whether the run was green and non-empty.
func (s Summary) AllPassed() bool {
	return s.Failed == 0 && s.Passed > 0
}

// Results is the canonical at-rest form: a Summary tied to the commit it was
// produced from. Hash is empty when the source cannot carry one (JUnit XML),
// in which case the outdated-vs-HEAD comparison is skipped entirely.
type Results struct {
	Hash      string `json:"hash"`
	Timestamp string `json:"timestamp"`
	Summary
}

// Stamp fills Timestamp with the current time in RFC 3339 form.
func (r *Results) Stamp() {
	r.Timestamp = time.Now().Format(time.RFC3339)
}

// Age returns how long ago the results were produced, or false when the
// timestamp is missing or malformed.
func (r Results) Age() (time.Duration, bool) {
	if r.Timestamp == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return 0, false
	}
	return time.Since(t), true
}

// Outdated reports whether the results were produced from a different commit
// than head. Results without a hash are never considered outdated.
func (r Results) Outdated(head string) bool {
	if r.Hash == "" || head == "" {
		return false
	}
	return r.Hash != head
}
