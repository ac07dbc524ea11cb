package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/rostergo/internal/app"
	"github.com/specialistvlad/rostergo/internal/catalog"
	"github.com/specialistvlad/rostergo/internal/hcl"
	"github.com/specialistvlad/rostergo/internal/yaml"
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

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// WriteFiles writes files, keyed by path relative to dir, creating
// subdirectories as needed.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		filePath := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
}

// RunSession provides a standardized harness for integration tests using a
// default background context.
func RunSession(t *testing.T, files map[string]string, script ...string) *HarnessResult {
	t.Helper()
	return RunSessionWithContext(context.Background(), t, files, script...)
}

// RunSessionWithContext writes the catalog files to a temporary directory,
// starts an App seeded from them and feeds it one input line per script
// entry. With no files the App starts empty. A startup error is reported in
// Err with App left nil.
func RunSessionWithContext(ctx context.Context, t *testing.T, files map[string]string, script ...string) *HarnessResult {
	t.Helper()

	cfg := app.Config{LogLevel: "debug", LogFormat: "text"}
	if len(files) > 0 {
		dir := t.TempDir()
		WriteFiles(t, dir, files)
		cfg.CatalogPath = dir
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	outBuffer := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("ROSTER_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	loader := catalog.NewLoader(hcl.NewDecoder(), yaml.NewDecoder())
	testApp, err := app.NewApp(ctx, outBuffer, logBuffer, appConfig, loader)
	if err != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       err,
		}
	}
	t.Cleanup(func() { _ = testApp.Close() })

	var input string
	if len(script) > 0 {
		input = strings.Join(script, "\n") + "\n"
	}
	runErr := testApp.Run(ctx, strings.NewReader(input))

	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
