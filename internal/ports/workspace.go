package ports

import "github.com/acuetara/humo/internal/domain"

// WorkspaceInitializer scaffolds a new Humo workspace.
type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}

// WorkspaceLocator finds the workspace root from a starting directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
