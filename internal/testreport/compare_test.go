package testreport

import "testing"

func TestCompareFailures(t *testing.T) {
	prev := Summary{Failures: []Failure{
		{File: "a.go", Name: "TestAlpha"},
		{File: "b.go", Name: "TestBeta"},
	}}
	curr := Summary{Failures: []Failure{
		{File: "b.go", Name: "TestBeta"},
		{File: "c.go", Name: "TestGamma"},
	}}

	delta := CompareFailures(prev, curr)
	if len(delta.New) != 1 || delta.New[0] != (Failure{File: "c.go", Name: "TestGamma"}) {
		t.Errorf("new = %+v, want [{c.go TestGamma}]", delta.New)
	}
	if len(delta.Fixed) != 1 || delta.Fixed[0] != (Failure{File: "a.go", Name: "TestAlpha"}) {
		t.Errorf("fixed = %+v, want [{a.go TestAlpha}]", delta.Fixed)
	}
	if !delta.Changed() {
		t.Error("expected Changed() to be true")
	}
}

func TestCompareFailuresIgnoresOrder(t *testing.T) {
	prev := Summary{Failures: []Failure{
		{File: "a.go", Name: "TestOne"},
		{File: "b.go", Name: "TestTwo"},
	}}
	curr := Summary{Failures: []Failure{
		{File: "b.go", Name: "TestTwo"},
		{File: "a.go", Name: "TestOne"},
	}}

	delta := CompareFailures(prev, curr)
	if delta.Changed() {
		t.Errorf("reordered identical sets should not be churn: %+v", delta)
	}
}

func TestCompareFailuresFromEmpty(t *testing.T) {
	curr := Summary{Failures: []Failure{{File: "a.go", Name: "TestNew"}}}

	delta := CompareFailures(Summary{}, curr)
	if len(delta.New) != 1 || len(delta.Fixed) != 0 {
		t.Errorf("delta = %+v, want one new failure and nothing fixed", delta)
	}
}

func TestCompareFailuresToGreen(t *testing.T) {
	prev := Summary{Failures: []Failure{
		{File: "a.go", Name: "TestOld"},
		{File: "b.go", Name: "TestOther"},
	}}

	delta := CompareFailures(prev, Summary{})
	if len(delta.Fixed) != 2 || len(delta.New) != 0 {
		t.Errorf("delta = %+v, want two fixed failures and nothing new", delta)
	}
}
