// Package report delivers user-facing error notifications.
package report

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Sink presents an error with a title to the user.
type Sink interface {
	Display(title, message string)
}

// Console prints "title: message" lines to a writer.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Display(title, message string) {
	fmt.Fprintf(c.w, "%s: %s\n", title, message)
}

// LogSink routes errors through a log.Logger with the [!] marker.
type LogSink struct {
	l *log.Logger
}

// NewLogSink uses the standard logger when l is nil.
func NewLogSink(l *log.Logger) *LogSink {
	if l == nil {
		l = log.Default()
	}
	return &LogSink{l: l}
}

func (s *LogSink) Display(title, message string) {
	s.l.Printf("[!] %s: %s", title, message)
}

// Entry is one recorded notification.
type Entry struct {
	Title   string
	Message string
}

// Collector keeps every notification it receives.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *Collector) Display(title, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Title: title, Message: message})
}

// Entries returns a copy of the recorded notifications.
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Multi fans a notification out to several sinks.
type Multi []Sink

func (m Multi) Display(title, message string) {
	for _, s := range m {
		s.Display(title, message)
	}
}
