// Package export writes task lists as JSON, YAML, CSV or PDF reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/runoshun/task-cli/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format names accepted by Exporters.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Exporters returns every exporter keyed by format name.
func Exporters() map[string]domain.Exporter {
	return map[string]domain.Exporter{
		FormatJSON: JSON{},
		FormatYAML: YAML{},
		FormatCSV:  CSV{},
		FormatPDF:  PDF{},
	}
}

// Formats returns the known format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(Exporters()))
	for name := range Exporters() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func records(tasks []*domain.Task) []domain.TaskRecord {
	out := make([]domain.TaskRecord, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Record())
	}
	return out
}

// JSON writes the persisted record shape, indented like the tasks file.
type JSON struct{}

// Export implements domain.Exporter.
func (JSON) Export(w io.Writer, tasks []*domain.Task, _ time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records(tasks))
}

// YAML writes the persisted records as a YAML sequence.
type YAML struct{}

// Export implements domain.Exporter.
func (YAML) Export(w io.Writer, tasks []*domain.Task, _ time.Time) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records(tasks)); err != nil {
		return err
	}
	return enc.Close()
}

// CSV writes one header row and one row per task.
type CSV struct{}

// Export implements domain.Exporter.
func (CSV) Export(w io.Writer, tasks []*domain.Task, _ time.Time) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "description", "status", "createdAt", "updatedAt"})
	for _, r := range records(tasks) {
		_ = cw.Write([]string{strconv.Itoa(r.ID), r.Description, string(r.Status), r.CreatedAt, r.UpdatedAt})
	}
	cw.Flush()
	return cw.Error()
}
