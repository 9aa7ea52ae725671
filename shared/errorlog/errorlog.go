// Package errorlog keeps the most recent application errors in memory so that
// super admins can inspect them without shell access to the host.
package errorlog

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotelops/config"
)

const DefaultCapacity = 100

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Entry struct {
	ID        string         `json:"id"`
	Message   string         `json:"message"`
	Code      int            `json:"code"`
	Severity  Severity       `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	UserID    string         `json:"user_id,omitempty"`
	HotelID   string         `json:"hotel_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// SeverityFromCode classifies an HTTP status code.
func SeverityFromCode(code int) Severity {
	switch {
	case code == http.StatusServiceUnavailable:
		return SeverityCritical
	case code >= http.StatusInternalServerError:
		return SeverityHigh
	case code == http.StatusConflict || code == http.StatusUnprocessableEntity:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Log is a fixed size ring buffer of entries. Safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	next     int
	size     int
	capacity int
	now      func() time.Time
}

func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Log{
		entries:  make([]Entry, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// NewFromConfig builds the log with the capacity configured under APP_ERROR_LOG_CAPACITY.
func NewFromConfig(cfg *config.Config) *Log {
	return New(cfg.App.ErrorLog.Capacity)
}

// Record appends an entry, evicting the oldest one once the buffer is full.
func (l *Log) Record(entry Entry) Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now()
	}

	if entry.Severity == "" {
		entry.Severity = SeverityFromCode(entry.Code)
	}

	l.entries[l.next] = entry
	l.next = (l.next + 1) % l.capacity

	if l.size < l.capacity {
		l.size++
	}

	return entry
}

// Recent returns up to limit entries, newest first. A non-positive limit returns everything held.
func (l *Log) Recent(limit int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 || limit > l.size {
		limit = l.size
	}

	res := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + l.capacity) % l.capacity
		res = append(res, l.entries[idx])
	}

	return res
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make([]Entry, l.capacity)
	l.next = 0
	l.size = 0
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.size
}

func (l *Log) Capacity() int {
	return l.capacity
}
