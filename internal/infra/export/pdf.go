package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/runoshun/task-cli/internal/domain"
)

// rowsPerPage is the number of task rows printed before a page break.
const rowsPerPage = 50

// PDF writes an A4 task report.
type PDF struct{}

// column widths in mm: ID, Status, Description, Updated
var pdfColumns = []struct {
	title string
	width float64
}{
	{"ID", 14},
	{"Status", 28},
	{"Description", 104},
	{"Updated", 44},
}

// Export implements domain.Exporter.
func (PDF) Export(w io.Writer, tasks []*domain.Task, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Task Report", true)
	pdf.SetAutoPageBreak(false, 10)
	// Core fonts are cp1252; translate UTF-8 input so accented text survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Task Report")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 9)
		pdf.Cell(0, 6, fmt.Sprintf("Generated %s - %d task(s)", generatedAt.Format("2006-01-02 15:04"), len(tasks)))
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 10)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	header()
	if len(tasks) == 0 {
		pdf.Cell(0, 8, "No tasks found")
	}
	for i, t := range tasks {
		if i > 0 && i%rowsPerPage == 0 {
			header()
		}
		cells := []string{
			strconv.Itoa(t.ID),
			t.Status.Display(),
			truncate(tr(t.Description), 70), // cp1252 after translation, one byte per glyph
			t.UpdatedAt.Local().Format("2006-01-02 15:04"),
		}
		for j, col := range pdfColumns {
			pdf.CellFormat(col.width, 4.5, cells[j], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
