package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseInterval parses a panel refresh interval.
// Supports: "manual" plus integer values with an s, m or h suffix.
//
// Examples:
//   - "manual" -> 0 (no timed refresh, hotkey and refresh-all only)
//   - "30s"    -> 30 seconds
//   - "5m"     -> 5 minutes
//   - "1h"     -> 1 hour
func ParseInterval(s string) (time.Duration, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "manual" {
		return 0, nil
	}
	if len(raw) >= 2 {
		value, err := strconv.Atoi(raw[:len(raw)-1])
		if err == nil && value >= 1 {
			switch raw[len(raw)-1] {
			case 's':
				return time.Duration(value) * time.Second, nil
			case 'm':
				return time.Duration(value) * time.Minute, nil
			case 'h':
				return time.Duration(value) * time.Hour, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid interval %q (use 30s, 5m, 1h, or manual)", s)
}
