// Package backend implements the discovery and cleanup collaborators on the
// local filesystem.
package backend

import (
	"context"
	"errors"

	"github.com/marcus/dcleaner/internal/project"
)

var (
	// ErrNotAProject is returned by CleanProject when the record does not
	// describe a project on disk.
	ErrNotAProject = errors.New("not a project")

	// ErrRootMissing is returned by GetHomeProjects when the scan root does
	// not exist or is not a directory.
	ErrRootMissing = errors.New("scan root missing")
)

// Backend discovers projects and removes their artifacts.
type Backend interface {
	GetHomeProjects(ctx context.Context) ([]project.Project, error)
	CleanProject(ctx context.Context, p project.Project) (int64, error)
}
