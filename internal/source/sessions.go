package source

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/neochoon/agenthud-sub001/internal/refresh"
)

// SessionInfo describes one running agent process.
type SessionInfo struct {
	PID     int32
	Name    string
	Command string
	CPU     float64
	Memory  float32
	Started time.Time
}

// OtherSessionsData is the other_sessions panel payload.
type OtherSessionsData struct {
	Sessions []SessionInfo
}

// agentProcessNames are the process names treated as coding-agent sessions.
var agentProcessNames = map[string]bool{
	"claude": true, "codex": true, "gemini": true, "aider": true,
	"goose": true, "amp": true, "opencode": true, "cursor-agent": true,
}

const maxSessions = 20

// OtherSessionsFetcher scans running processes for known agent names,
// newest first. The dashboard's own process is excluded; per-process stat
// failures skip that process rather than failing the scan.
func OtherSessionsFetcher() refresh.Fetcher {
	self := int32(os.Getpid())
	return func(ctx context.Context) (any, error) {
		procs, err := process.ProcessesWithContext(ctx)
		if err != nil {
			return nil, err
		}

		var sessions []SessionInfo
		for _, p := range procs {
			if p.Pid == self {
				continue
			}
			name, err := p.NameWithContext(ctx)
			if err != nil || !agentProcessNames[strings.ToLower(name)] {
				continue
			}
			info := SessionInfo{PID: p.Pid, Name: name}
			if cmdline, err := p.CmdlineWithContext(ctx); err == nil {
				info.Command = cmdline
			}
			if cpu, err := p.CPUPercentWithContext(ctx); err == nil {
				info.CPU = cpu
			}
			if memPct, err := p.MemoryPercentWithContext(ctx); err == nil {
				info.Memory = memPct
			}
			if createMS, err := p.CreateTimeWithContext(ctx); err == nil {
				info.Started = time.UnixMilli(createMS)
			}
			sessions = append(sessions, info)
		}

		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].Started.After(sessions[j].Started)
		})
		if len(sessions) > maxSessions {
			sessions = sessions[:maxSessions]
		}
		return OtherSessionsData{Sessions: sessions}, nil
	}
}
