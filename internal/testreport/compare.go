package testreport

import (
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Delta classifies how the failing set moved between two runs.
type Delta struct {
	New   []Failure
	Fixed []Failure
}

// Changed reports whether any failure appeared or disappeared.
func (d Delta) Changed() bool {
	return len(d.New) > 0 || len(d.Fixed) > 0
}

// CompareFailures classifies failures that appeared or disappeared between
// two summaries. Sets are diffed line-wise over sorted stable keys so a
// reordered report does not show up as churn.
func CompareFailures(prev, curr Summary) Delta {
	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(failureKeys(prev), failureKeys(curr))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)

	var delta Delta
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			delta.New = append(delta.New, keysToFailures(d.Text)...)
		case diffmatchpatch.DiffDelete:
			delta.Fixed = append(delta.Fixed, keysToFailures(d.Text)...)
		}
	}
	return delta
}

func failureKeys(s Summary) string {
	if len(s.Failures) == 0 {
		return ""
	}
	keys := make([]string, 0, len(s.Failures))
	for _, f := range s.Failures {
		keys = append(keys, f.File+"\t"+f.Name)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n") + "\n"
}

func keysToFailures(text string) []Failure {
	var out []Failure
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		file, name, _ := strings.Cut(line, "\t")
		out = append(out, Failure{File: file, Name: name})
	}
	return out
}
