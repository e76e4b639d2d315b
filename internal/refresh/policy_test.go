package refresh

import (
	"testing"
	"time"
)

func TestPolicyManual(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     bool
	}{
		{"zero interval is manual", 0, true},
		{"negative interval is manual", -time.Second, true},
		{"positive interval is timed", 30 * time.Second, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Policy{Interval: tc.interval}
			if got := p.Manual(); got != tc.want {
				t.Errorf("Manual() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPolicySeconds(t *testing.T) {
	tests := []struct {
		interval time.Duration
		want     int
	}{
		{30 * time.Second, 30},
		{5 * time.Minute, 300},
		{1500 * time.Millisecond, 1}, // floored
		{500 * time.Millisecond, 1},  // never below 1
	}

	for _, tc := range tests {
		p := Policy{Interval: tc.interval}
		if got := p.Seconds(); got != tc.want {
			t.Errorf("Seconds() for %v = %d, want %d", tc.interval, got, tc.want)
		}
	}
}

func TestPolicySetFilters(t *testing.T) {
	set := NewPolicySet(
		Policy{Name: "git", Enabled: true, Interval: 10 * time.Second},
		Policy{Name: "tests", Enabled: true},
		Policy{Name: "project", Enabled: false, Interval: time.Minute},
		Policy{Name: "notes", Enabled: true},
	)

	if got := len(set.All()); got != 4 {
		t.Errorf("All() returned %d policies, want 4", got)
	}
	if got := len(set.Enabled()); got != 3 {
		t.Errorf("Enabled() returned %d policies, want 3", got)
	}

	timed := set.Timed()
	if len(timed) != 1 || timed[0].Name != "git" {
		t.Errorf("Timed() = %+v, want just git", timed)
	}

	manual := set.Manual()
	if len(manual) != 2 || manual[0].Name != "tests" || manual[1].Name != "notes" {
		t.Errorf("Manual() = %+v, want tests then notes in order", manual)
	}

	if _, ok := set.Get("git"); !ok {
		t.Error("Get(git) not found")
	}
	if _, ok := set.Get("nope"); ok {
		t.Error("Get(nope) unexpectedly found")
	}
}
