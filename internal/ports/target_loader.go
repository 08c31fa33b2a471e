package ports

import "github.com/acuetara/humo/internal/domain"

// TargetLoader loads targets from a source (e.g., filesystem).
type TargetLoader interface {
	LoadTarget(nameOrPath string) (domain.Target, error)
}

// TargetCatalog lists the targets available in a workspace.
type TargetCatalog interface {
	ListTargets() ([]string, error)
}
