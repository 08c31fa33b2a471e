package ports

import "github.com/acuetara/humo/internal/domain"

// ReportWriter renders a report to an external format (e.g., an Excel sheet).
type ReportWriter interface {
	WriteReport(path string, report domain.Report) error
}
