package testreport

import (
	"errors"
	"testing"
)

func TestParseJUnitXML(t *testing.T) {
	input := `<testsuite tests="5" errors="0" failures="1" skipped="0">` +
		`<testcase classname="c" name="n"><failure/></testcase></testsuite>`

	sum, err := ParseJUnitXML([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Passed != 4 || sum.Failed != 1 || sum.Skipped != 0 {
		t.Errorf("got passed=%d failed=%d skipped=%d, want 4/1/0", sum.Passed, sum.Failed, sum.Skipped)
	}
	if len(sum.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(sum.Failures))
	}
	if sum.Failures[0].File != "c" || sum.Failures[0].Name != "n" {
		t.Errorf("failure = %+v, want {c n}", sum.Failures[0])
	}
}

func TestParseJUnitXMLAccumulatesSuites(t *testing.T) {
	input := `<testsuites>
		<testsuite tests="3" failures="1" skipped="1">
			<testcase classname="pkg/a" name="alpha"><failure message="boom">trace</failure></testcase>
		</testsuite>
		<testsuite tests="4" errors="1">
			<testcase classname="pkg/b" name="beta"><error type="panic"/></testcase>
		</testsuite>
	</testsuites>`

	sum, err := ParseJUnitXML([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// tests=7, failed=1+1, skipped=1 => passed=4
	if sum.Passed != 4 || sum.Failed != 2 || sum.Skipped != 1 {
		t.Errorf("got passed=%d failed=%d skipped=%d, want 4/2/1", sum.Passed, sum.Failed, sum.Skipped)
	}
	if len(sum.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(sum.Failures))
	}
	if sum.Failures[0].File != "pkg/a" || sum.Failures[1].File != "pkg/b" {
		t.Errorf("failure files = %q, %q", sum.Failures[0].File, sum.Failures[1].File)
	}
}

func TestParseJUnitXMLSelfClosingSuite(t *testing.T) {
	sum, err := ParseJUnitXML([]byte(`<testsuite tests="2" failures="0" skipped="0"/>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Passed != 2 || sum.Failed != 0 {
		t.Errorf("got passed=%d failed=%d, want 2/0", sum.Passed, sum.Failed)
	}
}

func TestParseJUnitXMLImplicitSuite(t *testing.T) {
	// A bare root whose closing tag never arrives; the whole document is
	// treated as one suite.
	input := `<testsuite tests="3" failures="1">
		<testcase classname="c" name="broken"><failure/></testcase>`

	sum, err := ParseJUnitXML([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Passed != 2 || sum.Failed != 1 {
		t.Errorf("got passed=%d failed=%d, want 2/1", sum.Passed, sum.Failed)
	}
	if len(sum.Failures) != 1 || sum.Failures[0].Name != "broken" {
		t.Errorf("failures = %+v, want one named broken", sum.Failures)
	}
}

func TestParseJUnitXMLEmptySuiteIsValid(t *testing.T) {
	sum, err := ParseJUnitXML([]byte(`<testsuite tests="0"></testsuite>`))
	if err != nil {
		t.Fatalf("explicitly matched zero-test suite should parse, got %v", err)
	}
	if sum.Total() != 0 {
		t.Errorf("expected empty summary, got %+v", sum)
	}
}

func TestParseJUnitXMLNegativePassedNotClamped(t *testing.T) {
	sum, err := ParseJUnitXML([]byte(`<testsuite tests="1" failures="3"></testsuite>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Passed != -2 {
		t.Errorf("passed = %d, want -2 (malformed reports are not clamped)", sum.Passed)
	}
}

func TestParseJUnitXMLUnparseable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not xml", "not xml"},
		{"empty", ""},
		{"unrelated xml", `<project><target name="build"/></project>`},
		{"wrapper without suites", `<testsuites></testsuites>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJUnitXML([]byte(tc.input))
			if !errors.Is(err, ErrUnparseable) {
				t.Errorf("expected ErrUnparseable, got %v", err)
			}
		})
	}
}

func TestParseJUnitXMLSingleQuotedAttrs(t *testing.T) {
	sum, err := ParseJUnitXML([]byte(`<testsuite tests='2' failures='1'><testcase classname='c' name='n'><failure/></testcase></testsuite>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Failed != 1 || sum.Passed != 1 {
		t.Errorf("got passed=%d failed=%d, want 1/1", sum.Passed, sum.Failed)
	}
	if len(sum.Failures) != 1 || sum.Failures[0].File != "c" {
		t.Errorf("failures = %+v", sum.Failures)
	}
}
