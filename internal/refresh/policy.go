// Package refresh decides when each dashboard panel re-fetches its data: it
// owns the per-panel cadence model, the countdown clock, the transient
// visual-feedback flags, hotkey allocation for manual panels, and the
// orchestrator that drives fetches through the event loop.
package refresh

import "time"

// PanelName identifies one independently refreshed unit of the dashboard.
type PanelName string

// Built-in panels. Custom panels use their config-given names.
const (
	PanelProject       PanelName = "project"
	PanelGit           PanelName = "git"
	PanelTests         PanelName = "tests"
	PanelClaude        PanelName = "claude"
	PanelOtherSessions PanelName = "other_sessions"
)

// Policy is one panel's refresh cadence, fixed at startup. A zero Interval
// means manual only: no timer is ever created for the panel and its data
// changes only on startup, refresh-all, or its assigned hotkey.
type Policy struct {
	Name     PanelName
	Label    string
	Enabled  bool
	Interval time.Duration
}

// Manual reports whether the panel refreshes only on explicit triggers.
func (p Policy) Manual() bool {
	return p.Interval <= 0
}

// Seconds returns the countdown start value, floored at 1 so the displayed
// countdown never reads 0.
func (p Policy) Seconds() int {
	s := int(p.Interval / time.Second)
	if s < 1 {
		s = 1
	}
	return s
}

// PolicySet is the ordered collection of panel policies built from config.
// Order is the panel-list order and is load-bearing: hotkey allocation and
// the status-bar legend follow it.
type PolicySet struct {
	panels []Policy
}

// NewPolicySet builds a set preserving the given order.
func NewPolicySet(panels ...Policy) PolicySet {
	return PolicySet{panels: panels}
}

// Get returns the named policy.
func (s PolicySet) Get(name PanelName) (Policy, bool) {
	for _, p := range s.panels {
		if p.Name == name {
			return p, true
		}
	}
	return Policy{}, false
}

// All returns every policy in order, enabled or not.
func (s PolicySet) All() []Policy {
	return s.panels
}

// Enabled returns the enabled policies in order.
func (s PolicySet) Enabled() []Policy {
	var out []Policy
	for _, p := range s.panels {
		if p.Enabled {
			out = append(out, p)
		}
	}
	return out
}

// Timed returns the enabled policies that own an interval timer.
func (s PolicySet) Timed() []Policy {
	var out []Policy
	for _, p := range s.panels {
		if p.Enabled && !p.Manual() {
			out = append(out, p)
		}
	}
	return out
}

// Manual returns the enabled manual-only policies, the hotkey candidates.
func (s PolicySet) Manual() []Policy {
	var out []Policy
	for _, p := range s.panels {
		if p.Enabled && p.Manual() {
			out = append(out, p)
		}
	}
	return out
}
