package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// SessionLog collects the two narrative streams of an automation session:
// the build log and the advisor's commentary. The worker goroutine appends
// while the presentation layer reads, so access is synchronized.
type SessionLog struct {
	mu      sync.Mutex
	build   []entry
	advisor []entry
	now     func() time.Time
}

type entry struct {
	at   time.Time
	text string
}

func NewSessionLog() *SessionLog {
	return &SessionLog{now: time.Now}
}

// AppendBuild records a build-log line.
func (l *SessionLog) AppendBuild(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.build = append(l.build, entry{at: l.now(), text: text})
}

// AppendAdvisor records a line of advisor commentary.
func (l *SessionLog) AppendAdvisor(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.advisor = append(l.advisor, entry{at: l.now(), text: text})
}

// BuildLines returns the build-log lines without timestamps.
func (l *SessionLog) BuildLines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lines(l.build)
}

// AdvisorLines returns the advisor commentary without timestamps.
func (l *SessionLog) AdvisorLines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return lines(l.advisor)
}

// Clear drops both streams.
func (l *SessionLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.build = nil
	l.advisor = nil
}

// Combined renders both streams with timestamps, advisor commentary first.
func (l *SessionLog) Combined() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	b.WriteString("=== Advisor Commentary ===\n")
	writeEntries(&b, l.advisor)
	b.WriteString("\n=== Build Log ===\n")
	writeEntries(&b, l.build)
	return b.String()
}

// Export writes the combined log to path.
func (l *SessionLog) Export(path string) error {
	if err := os.WriteFile(path, []byte(l.Combined()), 0644); err != nil {
		return fmt.Errorf("error exporting session log: %w", err)
	}
	return nil
}

func lines(entries []entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.text
	}
	return out
}

func writeEntries(b *strings.Builder, entries []entry) {
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("[%s] %s\n", e.at.Format("15:04:05"), e.text))
	}
}
