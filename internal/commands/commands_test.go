package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/xfind/internal/core/config"
	"github.com/colonyops/xfind/internal/tui/finder"
)

func makeRoot(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	return root
}

func testFlags(roots ...string) *Flags {
	cfg := config.DefaultConfig()
	cfg.Roots = roots
	return &Flags{Config: &cfg}
}

func runApp(t *testing.T, register func(*cli.Command) *cli.Command, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	app := &cli.Command{
		Name:      "xfind",
		Writer:    &buf,
		ErrWriter: &bytes.Buffer{},
	}
	register(app)

	require.NoError(t, app.Run(context.Background(), append([]string{"xfind"}, args...)))
	return buf.String()
}

func TestLs_PlainKeepsScanOrder(t *testing.T) {
	root := makeRoot(t, "src/main.go", "README.md", "src/lib/util.go", "docs/guide.md")

	out := runApp(t, NewLsCmd(testFlags(root)).Register, "ls")

	assert.Equal(t, "README.md\ndocs/guide.md\nsrc/lib/util.go\nsrc/main.go\n", out)
}

func TestLs_QueryAndLimit(t *testing.T) {
	root := makeRoot(t, "a.go", "b.go", "c.go", "notes.md")

	out := runApp(t, NewLsCmd(testFlags(root)).Register, "ls", "--limit", "2", ".GO")

	assert.Equal(t, "a.go\nb.go\n", out)
}

func TestLs_JSON(t *testing.T) {
	root := makeRoot(t, "a.js", "b.js", "c.txt")

	out := runApp(t, NewLsCmd(testFlags(root)).Register, "ls", "--json", "js")

	var state finder.State
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, "js", state.Query)
	assert.Equal(t, []finder.Item{{Path: "a.js"}, {Path: "b.js"}}, state.Items)
}

func TestLs_RootFlagOverridesConfig(t *testing.T) {
	configured := makeRoot(t, "configured.txt")
	other := makeRoot(t, "other.txt")

	out := runApp(t, NewLsCmd(testFlags(configured)).Register, "ls", "--root", other)

	assert.Equal(t, "other.txt\n", out)
}

func TestDispatch_ReplaysActionsInOrder(t *testing.T) {
	root := makeRoot(t, "a.js", "b.js", "main.go")

	actions := filepath.Join(t.TempDir(), "actions.json")
	require.NoError(t, os.WriteFile(actions, []byte(`[
		{"type":"UpdateQuery","query":"a"},
		{"type":"ToggleFileFinder"},
		{"type":"Bogus"},
		{"type":"UpdateQuery","query":".js"}
	]`), 0o644))

	out := runApp(t, NewDispatchCmd(testFlags(root)).Register, "dispatch", "-f", actions)

	var state finder.State
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	assert.Equal(t, ".js", state.Query)
	assert.Equal(t, []finder.Item{{Path: "a.js"}, {Path: "b.js"}}, state.Items)
}

func TestScanProject_MissingRoot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Roots = []string{filepath.Join(t.TempDir(), "missing")}

	_, err := scanProject(context.Background(), &cfg, nil)
	assert.Error(t, err)
}

func TestCollectIssues(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Empty(t, collectIssues(nil))
	})

	t.Run("plain error", func(t *testing.T) {
		issues := collectIssues(errors.New("boom"))
		assert.Equal(t, []validationIssue{{Message: "boom"}}, issues)
	})

	t.Run("field errors", func(t *testing.T) {
		var b criterio.FieldErrorsBuilder
		b = b.Append("roots[0]", errors.New("missing"))
		b = b.Append("ignore[1]", errors.New("bad pattern"))

		issues := collectIssues(b.ToError())
		assert.Equal(t, []validationIssue{
			{Field: "roots[0]", Message: "missing"},
			{Field: "ignore[1]", Message: "bad pattern"},
		}, issues)
	})
}

func TestDefaultPaths_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	assert.Equal(t, filepath.Join("/cfg", "xfind", "config.yaml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "xfind"), DefaultDataDir())
}

func TestLs_GitignoreSetting(t *testing.T) {
	root := makeRoot(t, ".gitignore", "app.go", "debug.log")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\n"), 0o644))

	out := runApp(t, NewLsCmd(testFlags(root)).Register, "ls")
	assert.Equal(t, ".gitignore\napp.go\n", out)

	flags := testFlags(root)
	flags.Config.Gitignore = false
	out = runApp(t, NewLsCmd(flags).Register, "ls")
	assert.Equal(t, ".gitignore\napp.go\ndebug.log\n", out)
}
