package logger

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	// CrashLogDir is the directory for crash reports relative to the base dir.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash reports to keep.
	MaxCrashLogs = 10

	maxBodyInReport = 2000
)

// CrashLog is one recovered panic.
type CrashLog struct {
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	RequestID  string    `json:"request_id,omitempty"`
	Method     string    `json:"method,omitempty"`
	Path       string    `json:"path,omitempty"`
	PanicValue string    `json:"panic_value"`
	StackTrace string    `json:"stack_trace"`
	GoVersion  string    `json:"go_version"`
	OS         string    `json:"os"`
	Arch       string    `json:"arch"`
}

// CrashReporter writes crash reports to a filesystem. A nil reporter
// writes nothing.
type CrashReporter struct {
	mu      sync.Mutex
	fs      afero.Fs
	dir     string
	version string
}

// NewCrashReporter stores reports under <baseDir>/crash_logs on fs.
// An empty baseDir disables reporting.
func NewCrashReporter(fs afero.Fs, baseDir, version string) *CrashReporter {
	if baseDir == "" {
		return nil
	}
	return &CrashReporter{fs: fs, dir: filepath.Join(baseDir, CrashLogDir), version: version}
}

// Dir returns the directory reports are written to.
func (c *CrashReporter) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// NewCrashLog fills in the runtime details for a panic value.
func (c *CrashReporter) NewCrashLog(panicValue any, stack []byte) CrashLog {
	log := CrashLog{
		Timestamp:  time.Now(),
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(stack),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
	if c != nil {
		log.Version = c.version
	}
	return log
}

// Write stores log and prunes old reports. It returns the report's path.
func (c *CrashReporter) Write(log CrashLog) (string, error) {
	if c == nil {
		return "", nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create crash log dir: %w", err)
	}

	path := filepath.Join(c.dir, fmt.Sprintf("crash_%s.log", log.Timestamp.UTC().Format("20060102_150405.000000000")))
	if err := afero.WriteFile(c.fs, path, []byte(formatCrashLog(log)), 0o644); err != nil {
		return "", fmt.Errorf("write crash log: %w", err)
	}

	if err := c.prune(); err != nil {
		return path, fmt.Errorf("clean old crash logs: %w", err)
	}
	return path, nil
}

// List returns the stored reports, oldest first.
func (c *CrashReporter) List() ([]string, error) {
	if c == nil {
		return nil, nil
	}
	entries, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		if exists, _ := afero.DirExists(c.fs, c.dir); !exists {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(c.dir, e.Name()))
		}
	}
	// Names carry a fixed-width timestamp.
	sort.Strings(logs)
	return logs, nil
}

func (c *CrashReporter) prune() error {
	logs, err := c.List()
	if err != nil {
		return err
	}
	for len(logs) > MaxCrashLogs {
		if err := c.fs.Remove(logs[0]); err != nil {
			return fmt.Errorf("remove %s: %w", filepath.Base(logs[0]), err)
		}
		logs = logs[1:]
	}
	return nil
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// formatCrashLog renders a report as human-readable text.
func formatCrashLog(log CrashLog) string {
	rule := strings.Repeat("-", 80) + "\n"
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString("AGENTX CRASH LOG\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	fmt.Fprintf(&sb, "Timestamp: %s\n", log.Timestamp.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Version:   %s\n", log.Version)
	fmt.Fprintf(&sb, "Go:        %s\n", log.GoVersion)
	fmt.Fprintf(&sb, "OS/Arch:   %s/%s\n", log.OS, log.Arch)
	if log.Method != "" {
		fmt.Fprintf(&sb, "Request:   %s %s\n", log.Method, log.Path)
	}
	if log.RequestID != "" {
		fmt.Fprintf(&sb, "RequestID: %s\n", log.RequestID)
	}

	sb.WriteString("\n" + rule + "PANIC VALUE\n" + rule)
	sb.WriteString(truncateForLog(log.PanicValue, maxBodyInReport) + "\n")

	sb.WriteString("\n" + rule + "STACK TRACE\n" + rule)
	sb.WriteString(log.StackTrace)

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	sb.WriteString("END OF CRASH LOG\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	return sb.String()
}
