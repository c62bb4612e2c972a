package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/chainlib/foundation/chain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with a quiet config and returns stdout
// and stderr
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cfg := writeFile(t, "chainsh.toml", "[log]\nlevel = \"error\"\n")

	keepGoing, completeJSON, showRedirects, verbose = false, false, true, false
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExec(t *testing.T) {
	out, _, err := execute(t, "exec", "sum", "1", "2", "3")
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)

	out, errOut, err := execute(t, "exec", "sett", "x")
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "did you mean: set")
}

func TestRunScript(t *testing.T) {
	script := writeFile(t, "demo.chain", "# demo\nset x 40\n\nget x\nnope\nsum 1 1\n")

	out, _, err := execute(t, "run", script)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "x = 40\n40\nunknown or incomplete command \"nope\"")
	assert.NotContains(t, out, "2\n")

	out, _, err = execute(t, "run", "--keep-going", script)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "2\n")

	_, _, err = execute(t, "run", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestComplete(t *testing.T) {
	out, _, err := execute(t, "complete", "mode ")
	require.NoError(t, err)
	assert.Equal(t, "5    normal\n5    quiet\n5    verbose\n", out)

	out, _, err = execute(t, "complete", "--json", "ec")
	require.NoError(t, err)
	var completions []chain.Completion
	require.NoError(t, json.Unmarshal([]byte(out), &completions))
	assert.Equal(t, []chain.Completion{{Offset: 0, Text: "echo"}}, completions)

	out, _, err = execute(t, "complete", "zzz")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestChains(t *testing.T) {
	out, _, err := execute(t, "chains")
	require.NoError(t, err)
	assert.Contains(t, out, "set <name> <value>\n")
	assert.Contains(t, out, "do (set)->\n")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chainsh v0.1.0")
}

func TestInvalidConfig(t *testing.T) {
	cfg := writeFile(t, "bad.toml", "[engine]\nmatch_mode = \"regex\"\n")
	rootCmd.SetArgs([]string{"--config", cfg, "exec", "vars"})
	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}
