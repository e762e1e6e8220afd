package backend

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/dcleaner/internal/project"
	"golang.org/x/sync/errgroup"
)

// Options configures a Local backend.
type Options struct {
	Root        string
	SkipDirs    []string
	MaxDepth    int // 0 means unlimited
	Concurrency int
	Logger      *slog.Logger
}

// Local walks a directory tree for projects and deletes artifact
// directories in place.
type Local struct {
	root        string
	skip        map[string]bool
	maxDepth    int
	concurrency int
	logger      *slog.Logger
}

// NewLocal returns a Local backend for opts. A relative root is resolved
// against the working directory so reported paths are always absolute.
func NewLocal(opts Options) *Local {
	skip := make(map[string]bool, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		skip[d] = true
	}
	conc := opts.Concurrency
	if conc < 1 {
		conc = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	root := filepath.Clean(opts.Root)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Local{
		root:        root,
		skip:        skip,
		maxDepth:    opts.MaxDepth,
		concurrency: conc,
		logger:      logger,
	}
}

// Root returns the directory scanned by GetHomeProjects.
func (l *Local) Root() string { return l.root }

// GetHomeProjects walks the root and returns every project found, in walk
// order. Unreadable entries are skipped. The walk does not descend into
// hidden directories, configured skip dirs, dependency dirs, or the
// artifact directories of a detected project.
func (l *Local) GetHomeProjects(ctx context.Context) ([]project.Project, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootMissing, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootMissing, l.root)
	}

	var projects []project.Project
	prune := make(map[string]bool)

	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() && path != l.root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != l.root {
			name := d.Name()
			if strings.HasPrefix(name, ".") || l.skip[name] || project.IsDependencyDir(name) || prune[path] {
				return filepath.SkipDir
			}
			if l.maxDepth > 0 && depth(l.root, path) > l.maxDepth {
				return filepath.SkipDir
			}
		}

		p, ok := detect(path)
		if !ok {
			return nil
		}
		projects = append(projects, p)
		for top := range project.TopLevelDirs(p) {
			prune[filepath.Join(path, top)] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := l.measure(ctx, projects); err != nil {
		return nil, err
	}
	l.logger.Debug("scan complete", "root", l.root, "projects", len(projects))
	return projects, nil
}

// measure fills Size for every project concurrently.
func (l *Local) measure(ctx context.Context, projects []project.Project) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i := range projects {
		g.Go(func() error {
			size, err := artifactSize(ctx, projects[i])
			if err != nil {
				return err
			}
			projects[i].Size = size
			return nil
		})
	}
	return g.Wait()
}

// CleanProject removes every artifact directory of p and returns the bytes
// reclaimed.
func (l *Local) CleanProject(ctx context.Context, p project.Project) (int64, error) {
	if !filepath.IsAbs(p.Path) {
		return 0, fmt.Errorf("%w: %q is not absolute", ErrNotAProject, p.Path)
	}
	rule, ok := project.RuleFor(p.BaseType)
	if !ok {
		return 0, fmt.Errorf("%w: unknown base type %q", ErrNotAProject, p.BaseType)
	}
	if _, err := os.Stat(filepath.Join(p.Path, rule.Manifest)); err != nil {
		return 0, fmt.Errorf("%w: %s has no %s", ErrNotAProject, p.Path, rule.Manifest)
	}

	var reclaimed int64
	for _, dir := range project.ArtifactDirs(p) {
		if err := ctx.Err(); err != nil {
			return reclaimed, err
		}
		full, ok, err := artifactPath(p.Path, dir.Name)
		if err != nil {
			l.logger.Warn("skipping artifact dir", "path", full, "error", err)
			continue
		}
		if !ok {
			continue
		}
		size, err := dirSize(ctx, full)
		if err != nil {
			return reclaimed, err
		}
		if err := os.RemoveAll(full); err != nil {
			return reclaimed, fmt.Errorf("remove %s: %w", full, err)
		}
		reclaimed += size
		l.logger.Info("removed artifact dir", "path", full, "type", dir.Type, "bytes", size)
	}
	return reclaimed, nil
}

func detect(dir string) (project.Project, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return project.Project{}, false
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}
	base, ok := project.DetectBaseType(files)
	if !ok {
		return project.Project{}, false
	}
	variants := project.DetectVariants(base, func(rel string) bool {
		_, err := os.Stat(filepath.Join(dir, rel))
		return err == nil
	})
	return project.Project{Path: dir, BaseType: base, Variants: variants}, true
}

// artifactPath joins rel onto root and reports whether the result exists.
// Every segment before the last must be a real directory; a symlink there
// would put the target outside the project and yields an error.
func artifactPath(root, rel string) (string, bool, error) {
	full := filepath.Join(root, rel)
	cur := root
	segs := strings.Split(filepath.Clean(rel), string(filepath.Separator))
	for i, seg := range segs {
		cur = filepath.Join(cur, seg)
		info, err := os.Lstat(cur)
		if err != nil {
			return full, false, nil
		}
		if i < len(segs)-1 && !info.IsDir() {
			if info.Mode()&fs.ModeSymlink != 0 {
				return full, false, fmt.Errorf("%s is a symlink", cur)
			}
			return full, false, nil
		}
	}
	return full, true, nil
}

func artifactSize(ctx context.Context, p project.Project) (int64, error) {
	var total int64
	for _, dir := range project.ArtifactDirs(p) {
		full, ok, err := artifactPath(p.Path, dir.Name)
		if err != nil || !ok {
			continue
		}
		n, err := dirSize(ctx, full)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// dirSize sums regular file sizes below path. A missing path has size 0.
// Symlinks are not followed.
func dirSize(ctx context.Context, path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
