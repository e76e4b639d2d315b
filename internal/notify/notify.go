// Package notify pushes dashboard events (test regressions, recoveries,
// persistent panel errors) through desktop, webhook, shell and log channels.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/google/uuid"
)

// EventType represents the type of notification event
type EventType string

const (
	EventTestFailures  EventType = "tests.failures"  // New failing tests appeared
	EventTestRecovered EventType = "tests.recovered" // A failing run went green
	EventPanelError    EventType = "panel.error"     // A panel's fetch failed
)

// Event represents a notification event. ID is assigned on send so webhook
// receivers can deduplicate retried deliveries.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Panel     string            `json:"panel,omitempty"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
}

// Config holds notification configuration
type Config struct {
	Enabled bool     `yaml:"enabled" toml:"enabled"`
	Events  []string `yaml:"events" toml:"events"` // Which events to notify on

	// CooldownSeconds suppresses repeats of the same event type inside the
	// window, so a flapping test file does not ping every refresh.
	CooldownSeconds int `yaml:"cooldown_seconds" toml:"cooldown_seconds"`

	Desktop DesktopConfig `yaml:"desktop" toml:"desktop"`
	Webhook WebhookConfig `yaml:"webhook" toml:"webhook"`
	Shell   ShellConfig   `yaml:"shell" toml:"shell"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// DesktopConfig configures desktop notifications
type DesktopConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Title   string `yaml:"title" toml:"title"` // Default title prefix
}

// WebhookConfig configures webhook notifications
type WebhookConfig struct {
	Enabled  bool              `yaml:"enabled" toml:"enabled"`
	URL      string            `yaml:"url" toml:"url"`
	Template string            `yaml:"template" toml:"template"` // Go template for payload
	Method   string            `yaml:"method" toml:"method"`     // HTTP method (default POST)
	Headers  map[string]string `yaml:"headers" toml:"headers"`
}

// ShellConfig configures shell command notifications
type ShellConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled"`
	Command  string `yaml:"command" toml:"command"`     // Command to run
	PassJSON bool   `yaml:"pass_json" toml:"pass_json"` // Pass event as JSON stdin
}

// LogConfig configures log file notifications
type LogConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"` // Log file path
}

// DefaultConfig returns a default notification configuration
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Events:          []string{string(EventTestFailures), string(EventTestRecovered)},
		CooldownSeconds: 30,
		Desktop: DesktopConfig{
			Enabled: true,
			Title:   "agenthud",
		},
		Webhook: WebhookConfig{
			Enabled:  false,
			Method:   "POST",
			Template: `{"id":"{{.ID}}","event":"{{.Type}}","message":"{{.Message}}","panel":"{{.Panel}}","timestamp":"{{.Timestamp}}"}`,
		},
		Shell: ShellConfig{
			Enabled:  false,
			PassJSON: true,
		},
		Log: LogConfig{
			Enabled: false,
			Path:    "~/.local/state/agenthud/notifications.log",
		},
	}
}

// Notifier sends notifications through configured channels
type Notifier struct {
	config     Config
	enabledSet map[EventType]bool
	mu         sync.Mutex
	lastSent   map[EventType]time.Time
	httpClient *http.Client
}

// New creates a new Notifier with the given configuration
func New(cfg Config) *Notifier {
	n := &Notifier{
		config:     cfg,
		enabledSet: make(map[EventType]bool),
		lastSent:   make(map[EventType]time.Time),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, e := range cfg.Events {
		n.enabledSet[EventType(e)] = true
	}
	return n
}

// Notify sends a notification for the given event through every enabled
// channel. Channel failures are collected, not fatal: the dashboard never
// stops over a missed ping.
func (n *Notifier) Notify(event Event) error {
	if !n.config.Enabled || !n.enabledSet[event.Type] {
		return nil
	}
	if !n.clearCooldown(event.Type) {
		return nil
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	var (
		wg    sync.WaitGroup
		errs  []error
		errMu sync.Mutex
	)
	addErr := func(err error) {
		if err != nil {
			errMu.Lock()
			errs = append(errs, err)
			errMu.Unlock()
		}
	}

	if n.config.Desktop.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := n.sendDesktop(event); err != nil {
				addErr(fmt.Errorf("desktop: %w", err))
			}
		}()
	}

	if n.config.Webhook.Enabled && n.config.Webhook.URL != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := n.sendWebhook(event); err != nil {
				addErr(fmt.Errorf("webhook: %w", err))
			}
		}()
	}

	if n.config.Shell.Enabled && n.config.Shell.Command != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := n.sendShell(event); err != nil {
				addErr(fmt.Errorf("shell: %w", err))
			}
		}()
	}

	if n.config.Log.Enabled && n.config.Log.Path != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := n.sendLog(event); err != nil {
				addErr(fmt.Errorf("log: %w", err))
			}
		}()
	}

	wg.Wait()

	if len(errs) > 0 {
		return fmt.Errorf("notification errors: %v", errs)
	}
	return nil
}

// clearCooldown reports whether the event type is outside its suppression
// window and records the send time when it is.
func (n *Notifier) clearCooldown(t EventType) bool {
	if n.config.CooldownSeconds <= 0 {
		return true
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	window := time.Duration(n.config.CooldownSeconds) * time.Second
	if last, ok := n.lastSent[t]; ok && time.Since(last) < window {
		return false
	}
	n.lastSent[t] = time.Now()
	return true
}

// sendDesktop sends a desktop notification
func (n *Notifier) sendDesktop(event Event) error {
	title := n.config.Desktop.Title
	if title == "" {
		title = "agenthud"
	}
	if event.Panel != "" {
		title = fmt.Sprintf("%s [%s]", title, event.Panel)
	}

	message := event.Message
	if message == "" {
		message = string(event.Type)
	}
	return beeep.Notify(title, message, "")
}

// sendWebhook sends a webhook notification
func (n *Notifier) sendWebhook(event Event) error {
	tmplStr := n.config.Webhook.Template
	if tmplStr == "" {
		tmplStr = `{"id":"{{.ID}}","event":"{{.Type}}","message":"{{.Message}}","timestamp":"{{.Timestamp}}"}`
	}

	tmpl, err := template.New("webhook").Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, event); err != nil {
		return fmt.Errorf("template execution failed: %w", err)
	}

	method := n.config.Webhook.Method
	if method == "" {
		method = "POST"
	}

	req, err := http.NewRequest(method, n.config.Webhook.URL, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range n.config.Webhook.Headers {
		req.Header.Set(k, v)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// sendShell executes a shell command notification
func (n *Notifier) sendShell(event Event) error {
	cmdStr := n.config.Shell.Command
	if strings.HasPrefix(cmdStr, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			cmdStr = filepath.Join(home, cmdStr[1:])
		}
	}

	cmd := exec.Command("sh", "-c", cmdStr)
	if n.config.Shell.PassJSON {
		eventJSON, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		cmd.Stdin = bytes.NewReader(eventJSON)
	}

	cmd.Env = append(os.Environ(),
		fmt.Sprintf("AGENTHUD_EVENT_ID=%s", event.ID),
		fmt.Sprintf("AGENTHUD_EVENT_TYPE=%s", event.Type),
		fmt.Sprintf("AGENTHUD_EVENT_MESSAGE=%s", event.Message),
		fmt.Sprintf("AGENTHUD_EVENT_PANEL=%s", event.Panel),
	)
	return cmd.Run()
}

// sendLog appends to a log file
func (n *Notifier) sendLog(event Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	path := n.config.Log.Path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s: %s",
		event.Timestamp.Format(time.RFC3339),
		event.Type,
		event.Message,
	)
	if event.Panel != "" {
		line = fmt.Sprintf("[%s] [%s] %s: %s",
			event.Timestamp.Format(time.RFC3339),
			event.Panel,
			event.Type,
			event.Message,
		)
	}

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("failed to write to log: %w", err)
	}
	return nil
}

// Close closes any open resources. Currently a no-op: log files are opened
// per write and the HTTP client needs no teardown.
func (n *Notifier) Close() error {
	return nil
}

// NewTestFailuresEvent reports newly failing tests.
func NewTestFailuresEvent(names []string) Event {
	msg := fmt.Sprintf("%d new failing test(s)", len(names))
	if len(names) > 0 {
		shown := names
		if len(shown) > 3 {
			shown = shown[:3]
		}
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(shown, ", "))
		if len(names) > 3 {
			msg += ", …"
		}
	}
	return Event{
		Type:    EventTestFailures,
		Panel:   "tests",
		Message: msg,
		Details: map[string]string{"count": fmt.Sprintf("%d", len(names))},
	}
}

// NewTestRecoveredEvent reports a failing suite going green.
func NewTestRecoveredEvent(passed int) Event {
	return Event{
		Type:    EventTestRecovered,
		Panel:   "tests",
		Message: fmt.Sprintf("All tests passing again (%d passed)", passed),
	}
}

// NewPanelErrorEvent reports a panel whose fetch failed.
func NewPanelErrorEvent(panel, message string) Event {
	return Event{
		Type:    EventPanelError,
		Panel:   panel,
		Message: message,
	}
}
