package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/dcleaner/internal/config"
	"github.com/marcus/dcleaner/internal/discovery"
	"github.com/marcus/dcleaner/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticExplorer struct {
	projects []project.Project
	err      error
}

func (s staticExplorer) GetHomeProjects(context.Context) ([]project.Project, error) {
	return s.projects, s.err
}

func TestEffectiveVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", effectiveVersion("v1.2.3"))
	assert.NotEmpty(t, effectiveVersion(""))
}

func TestVersion_IsSetViaLdflags(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })
	Version = "v0.0.0-test"
	assert.Equal(t, "v0.0.0-test", effectiveVersion(Version))
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scan":{"root":"/srv/code","maxDepth":3}}`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/code", cfg.Scan.Root)
	assert.Equal(t, 3, cfg.Scan.MaxDepth)
}

func TestOpenLogFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	w, closeFn := openLogFile()
	defer closeFn()

	_, err := w.Write([]byte("hello\n"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(config.StateDir(), "dcleaner.log"))
}

func TestListProjects(t *testing.T) {
	app1 := project.Project{
		Path:     "/home/u/app1",
		BaseType: project.NPM,
		Variants: []project.Variant{project.NextJS},
		Size:     1048576,
	}

	var buf bytes.Buffer
	require.NoError(t, listProjects(&buf, staticExplorer{projects: []project.Project{app1}}, config.Default()))

	var got []project.Project
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []project.Project{app1}, got)
}

func TestListProjects_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listProjects(&buf, staticExplorer{}, config.Default()))
	assert.JSONEq(t, "[]", buf.String())
}

func TestListProjects_Errors(t *testing.T) {
	var buf bytes.Buffer
	err := listProjects(&buf, staticExplorer{err: errors.New("boom")}, config.Default())
	assert.ErrorIs(t, err, discovery.ErrFailure)

	bad := project.Project{Path: "/x", BaseType: project.NPM, Size: -1}
	err = listProjects(&buf, staticExplorer{projects: []project.Project{bad}}, config.Default())
	assert.ErrorIs(t, err, discovery.ErrMalformed)
	assert.Empty(t, buf.String())
}
