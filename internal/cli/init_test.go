package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/goalpost/internal/app"
	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/testutil"
)

func TestInitCommand_Initializes(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "goalpost")
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	storeInit := &testutil.MockStoreInitializer{}
	container := app.NewWithDeps(
		app.Config{DataDir: dataDir},
		goals,
		tasks,
		storeInit,
		&testutil.MockClock{NowTime: testTime},
		testutil.NopLogger{},
	)

	cmd := newInitCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Initialized goalpost in "+dataDir)
	assert.True(t, storeInit.Initialized)

	// Data directory, logs directory, and sample config are created
	assert.DirExists(t, dataDir)
	assert.DirExists(t, filepath.Join(dataDir, "logs"))
	assert.FileExists(t, domain.ConfigPath(dataDir))
}

func TestInitCommand_AlreadyInitialized(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "goalpost")
	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	storeInit := &testutil.MockStoreInitializer{Initialized: true}
	container := app.NewWithDeps(
		app.Config{DataDir: dataDir},
		goals,
		tasks,
		storeInit,
		&testutil.MockClock{NowTime: testTime},
		testutil.NopLogger{},
	)

	cmd := newInitCommand(container)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "already initialized")
}

func TestInitCommand_KeepsExistingConfig(t *testing.T) {
	dataDir := t.TempDir()
	configPath := domain.ConfigPath(dataDir)
	assert.NoError(t, os.WriteFile(configPath, []byte("backend = \"sqlite\"\n"), 0o600))

	goals := testutil.NewMockGoalRepository()
	tasks := testutil.NewMockTaskRepository()
	container := app.NewWithDeps(
		app.Config{DataDir: dataDir},
		goals,
		tasks,
		&testutil.MockStoreInitializer{},
		&testutil.MockClock{NowTime: testTime},
		testutil.NopLogger{},
	)

	cmd := newInitCommand(container)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	assert.NoError(t, err)
	content, readErr := os.ReadFile(configPath)
	assert.NoError(t, readErr)
	assert.Equal(t, "backend = \"sqlite\"\n", string(content))
}
