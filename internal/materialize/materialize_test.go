package materialize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/svcgen/cli/internal/errors"
	"github.com/svcgen/cli/internal/templates"
)

func sampleFiles() []templates.RenderedFile {
	return []templates.RenderedFile{
		{Path: "README.md", Content: []byte("# Todo API\n"), Mode: 0o644},
		{Path: "todo_api/core/config.py", Content: []byte("settings = None\n"), Mode: 0o644},
		{Path: "scripts/start.sh", Content: []byte("#!/usr/bin/env bash\n"), Mode: 0o755},
		{Path: "logs/.gitkeep", Content: nil},
	}
}

func TestCheckTarget(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, fs afero.Fs)
		force   bool
		wantErr string
	}{
		{
			name:  "missing directory",
			setup: func(*testing.T, afero.Fs) {},
		},
		{
			name: "empty directory",
			setup: func(t *testing.T, fs afero.Fs) {
				require.NoError(t, fs.MkdirAll("/work/todo-api", 0o755))
			},
		},
		{
			name: "non-empty directory",
			setup: func(t *testing.T, fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "/work/todo-api/keep.txt", []byte("x"), 0o644))
			},
			wantErr: "not empty",
		},
		{
			name: "non-empty directory with force",
			setup: func(t *testing.T, fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "/work/todo-api/keep.txt", []byte("x"), 0o644))
			},
			force: true,
		},
		{
			name: "target is a file",
			setup: func(t *testing.T, fs afero.Fs) {
				require.NoError(t, afero.WriteFile(fs, "/work/todo-api", []byte("x"), 0o644))
			},
			force:   true,
			wantErr: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			tt.setup(t, fs)

			err := New(fs, "/work/todo-api", tt.force).CheckTarget()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, oerrors.ErrIO))
			assert.Equal(t, oerrors.StageMaterialization, oerrors.StageOf(err))
			assert.Equal(t, oerrors.ExitIOError, oerrors.ExitCodeFromError(err))
		})
	}
}

func TestCheckTarget_LeavesExistingFilesUntouched(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/todo-api/README.md", []byte("mine"), 0o600))

	m := New(fs, "/work/todo-api", false)
	require.Error(t, m.CheckTarget())

	content, err := afero.ReadFile(fs, "/work/todo-api/README.md")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := New(fs, "/work/todo-api", false)

	res, err := m.Write(sampleFiles())
	require.NoError(t, err)

	assert.Equal(t, "/work/todo-api", res.Root)
	assert.Equal(t, []string{"README.md", "todo_api/core/config.py", "scripts/start.sh", "logs/.gitkeep"}, res.Files)
	assert.Equal(t, []string{"logs", "scripts", "todo_api", "todo_api/core"}, res.Dirs)

	content, err := afero.ReadFile(fs, "/work/todo-api/todo_api/core/config.py")
	require.NoError(t, err)
	assert.Equal(t, "settings = None\n", string(content))

	info, err := fs.Stat("/work/todo-api/scripts/start.sh")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	info, err = fs.Stat("/work/todo-api/logs/.gitkeep")
	require.NoError(t, err)
	assert.Equal(t, templates.DefaultMode, info.Mode().Perm())
	assert.Zero(t, info.Size())
}

func TestWrite_OverwriteAppliesMode(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "todo-api")
	script := filepath.Join(dir, "scripts", "start.sh")
	require.NoError(t, os.MkdirAll(filepath.Dir(script), 0o755))
	require.NoError(t, os.WriteFile(script, []byte("old"), 0o600))

	m := New(nil, dir, true)
	require.NoError(t, m.CheckTarget())
	_, err := m.Write(sampleFiles())
	require.NoError(t, err)

	info, err := os.Stat(script)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	content, err := os.ReadFile(script)
	require.NoError(t, err)
	assert.Equal(t, "#!/usr/bin/env bash\n", string(content))
}

func TestWrite_Failure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := New(fs, "/work/todo-api", false).Write(sampleFiles())
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrIO))

	var detail *oerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "/work/todo-api", detail.Location)
}
