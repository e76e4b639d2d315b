package testreport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// JUnit XML in the wild is inconsistently well-formed (runners disagree on
// wrappers, self-closing tags, and escaping), so suites and cases are
// extracted by pattern matching instead of an XML parser. Known limitation:
// nested <testsuite> elements or attribute values containing '>' misparse.
var (
	// suiteBlockRegex matches one <testsuite> element, paired or self-closing.
	// \b keeps it from matching the <testsuites> wrapper.
	suiteBlockRegex = regexp.MustCompile(`(?s)<testsuite\b[^>]*/>|<testsuite\b[^>]*>.*?</testsuite>`)

	// suiteOpenRegex captures a suite's opening tag for attribute reads.
	suiteOpenRegex = regexp.MustCompile(`<testsuite\b[^>]*`)

	// caseRegex matches one <testcase> element. Group 1 holds a self-closing
	// tag's attributes; groups 2 and 3 hold a paired tag's attributes and body.
	caseRegex = regexp.MustCompile(`(?s)<testcase\b([^>]*?)/>|<testcase\b([^>]*)>(.*?)</testcase>`)

	// xmlAttrRegex pulls name="value" pairs, tolerating single quotes.
	xmlAttrRegex = regexp.MustCompile(`([\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

// ParseJUnitXML converts JUnit-style XML into a Summary.
//
// Suites are matched as blocks; if none match but the text mentions
// <testsuite, the whole document is treated as a single implicit suite (bare
// un-nested roots). Counts come from the suites' tests/errors/failures/skipped
// attributes, failures from <testcase> bodies containing <failure or <error.
// Passed is tests − failed − skipped and is deliberately not clamped: a
// negative value is the caller's signal that the report was malformed.
func ParseJUnitXML(raw []byte) (Summary, error) {
	text := string(raw)
	if !strings.Contains(text, "<testsuite") {
		return Summary{}, fmt.Errorf("%w: no testsuite element", ErrUnparseable)
	}

	suites := suiteBlockRegex.FindAllString(text, -1)
	implicit := len(suites) == 0
	if implicit {
		suites = []string{text}
	}

	var tests, errCount, failCount, skipped int
	var failures []Failure
	for _, suite := range suites {
		attrs := parseXMLAttrs(suiteOpenRegex.FindString(suite))
		tests += attrInt(attrs, "tests")
		errCount += attrInt(attrs, "errors")
		failCount += attrInt(attrs, "failures")
		skipped += attrInt(attrs, "skipped")

		for _, m := range caseRegex.FindAllStringSubmatch(suite, -1) {
			attrText, body := m[1], ""
			if m[2] != "" || m[3] != "" {
				attrText, body = m[2], m[3]
			}
			if !strings.Contains(body, "<failure") && !strings.Contains(body, "<error") {
				continue
			}
			caseAttrs := parseXMLAttrs(attrText)
			failures = append(failures, Failure{
				File: caseAttrs["classname"],
				Name: caseAttrs["name"],
			})
		}
	}

	// A zero-test suite that was explicitly matched is still a valid (empty)
	// report; zero tests with no matched suite means the input only looked
	// like XML.
	if tests == 0 && implicit {
		return Summary{}, fmt.Errorf("%w: no testsuite totals", ErrUnparseable)
	}

	failed := failCount + errCount
	return Summary{
		Passed:   tests - failed - skipped,
		Failed:   failed,
		Skipped:  skipped,
		Failures: failures,
	}, nil
}

func parseXMLAttrs(tag string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range xmlAttrRegex.FindAllStringSubmatch(tag, -1) {
		val := m[2]
		if val == "" && m[3] != "" {
			val = m[3]
		}
		attrs[strings.ToLower(m[1])] = val
	}
	return attrs
}

func attrInt(attrs map[string]string, key string) int {
	n, err := strconv.Atoi(attrs[key])
	if err != nil {
		return 0
	}
	return n
}
