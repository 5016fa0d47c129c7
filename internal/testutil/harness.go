package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/gridcalc/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a shell script run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
	// Dir is the temporary directory the script ran against.
	Dir string
}

// Lines returns the non-empty output lines.
func (r *HarnessResult) Lines() []string {
	var lines []string
	for _, line := range strings.Split(r.Output, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// DefaultConfig returns a valid configuration with debug logging.
func DefaultConfig() app.Config {
	return app.Config{
		HistoryCapacity: 20,
		DisplayMode:     "values",
		LogFormat:       "text",
		LogLevel:        "debug",
	}
}

// RunScript feeds script to a fresh shell. files are written into a
// temporary directory first; "{{dir}}" in the script and in cfg paths is
// replaced with that directory.
func RunScript(t *testing.T, cfg app.Config, script string, files map[string]string) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	expand := func(s string) string { return strings.ReplaceAll(s, "{{dir}}", dir) }
	cfg.ScriptPath = expand(cfg.ScriptPath)
	cfg.LoadPath = expand(cfg.LoadPath)
	cfg.RecoveryDir = expand(cfg.RecoveryDir)

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	shell := app.NewApp(strings.NewReader(expand(script)), out, logs, config)
	runErr := shell.Run(context.Background())

	t.Cleanup(func() {
		if os.Getenv("GRIDCALC_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
		App:       shell,
		Dir:       dir,
	}
}
