// Package domain contains core business entities and interfaces.
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Task represents a single to-do item.
// Fields are ordered to minimize memory padding.
type Task struct {
	CreatedAt   time.Time // Creation time (immutable)
	UpdatedAt   time.Time // Last mutation time
	Description string    // What needs to be done (required)
	Status      Status    // Current status
	ID          int       // Task ID, assigned by the store
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Touch refreshes UpdatedAt.
func (t *Task) Touch(now time.Time) {
	t.UpdatedAt = now
}

// Record returns the persisted representation of the task.
// Keys are emitted in file order: id, description, status, createdAt, updatedAt.
func (t *Task) Record() TaskRecord {
	return TaskRecord{
		ID:          t.ID,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   FormatTimestamp(t.CreatedAt),
		UpdatedAt:   FormatTimestamp(t.UpdatedAt),
	}
}

// TaskRecord is the exported, ordered form of a persisted task.
// It is used for the tasks file and for exports.
type TaskRecord struct {
	ID          int    `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Status      Status `json:"status" yaml:"status"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   string `json:"updatedAt" yaml:"updatedAt"`
}

// MarshalJSON encodes the task using the persisted key names.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}

// UnmarshalJSON decodes a task from its persisted form.
func (t *Task) UnmarshalJSON(data []byte) error {
	var rec TaskRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	created, err := ParseTimestamp(rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("task %d: createdAt: %w", rec.ID, err)
	}
	updated, err := ParseTimestamp(rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("task %d: updatedAt: %w", rec.ID, err)
	}
	*t = Task{
		ID:          rec.ID,
		Description: rec.Description,
		Status:      rec.Status,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
	return nil
}

// timestampLayouts lists the accepted timestamp layouts, most specific first.
// The zone-less layout matches Python's datetime.isoformat() output.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// FormatTimestamp formats t for persistence.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimestamp parses a persisted timestamp.
// Values without a zone are interpreted in local time.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if layout == time.RFC3339Nano {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, nil
			}
			continue
		}
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// NextID returns the next task ID for the given collection:
// one more than the largest ID present, or 1 when empty.
// Only IDs currently present are considered; deleted IDs are not remembered.
func NextID(tasks []*Task) int {
	maxID := 0
	for _, t := range tasks {
		if t != nil && t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// TaskFilter specifies criteria for listing tasks.
type TaskFilter struct {
	Status *Status // Filter by status (nil = all)
}

// Matches reports whether the task passes the filter.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	return true
}
