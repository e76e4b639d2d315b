package testreport

import (
	"encoding/json"
	"fmt"
)

// runnerReport mirrors the JSON emitted by jest-style runners with --json.
// Pointer fields distinguish "absent" from zero: a report missing either
// top-level count is rejected rather than silently read as 0.
type runnerReport struct {
	NumPassedTests  *int         `json:"numPassedTests"`
	NumFailedTests  *int         `json:"numFailedTests"`
	NumPendingTests *int         `json:"numPendingTests"`
	TestResults     []runnerFile `json:"testResults"`
}

type runnerFile struct {
	Name             string            `json:"name"`
	AssertionResults []runnerAssertion `json:"assertionResults"`
}

type runnerAssertion struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// ParseRunnerJSON converts a jest-style JSON report into a Summary. Both
// numPassedTests and numFailedTests must be present and numeric; anything
// else yields ErrUnparseable. Skipped defaults to 0 when numPendingTests is
// absent. Failures are the assertion results with status "failed", tagged
// with their containing file's name.
func ParseRunnerJSON(raw []byte) (Summary, error) {
	var rep runnerReport
	if err := json.Unmarshal(raw, &rep); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if rep.NumPassedTests == nil || rep.NumFailedTests == nil {
		return Summary{}, fmt.Errorf("%w: missing numPassedTests/numFailedTests", ErrUnparseable)
	}

	sum := Summary{
		Passed: *rep.NumPassedTests,
		Failed: *rep.NumFailedTests,
	}
	if rep.NumPendingTests != nil {
		sum.Skipped = *rep.NumPendingTests
	}
	for _, file := range rep.TestResults {
		for _, a := range file.AssertionResults {
			if a.Status != "failed" {
				continue
			}
			sum.Failures = append(sum.Failures, Failure{File: file.Name, Name: a.Title})
		}
	}
	return sum, nil
}
