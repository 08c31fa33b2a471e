package ports

import "github.com/acuetara/humo/internal/domain"

// ArtifactStore persists run reports for reproducibility.
type ArtifactStore interface {
	SaveReport(report domain.Report) (id string, err error)
}
