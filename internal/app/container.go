// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/goalpost/internal/domain"
	"github.com/runoshun/goalpost/internal/infra/config"
	"github.com/runoshun/goalpost/internal/infra/git"
	"github.com/runoshun/goalpost/internal/infra/jsonstore"
	"github.com/runoshun/goalpost/internal/infra/logging"
	"github.com/runoshun/goalpost/internal/infra/sqlstore"
	"github.com/runoshun/goalpost/internal/usecase"
)

// Config holds the resolved application paths.
type Config struct {
	RepoRoot  string // Root of the enclosing git repository ("" outside one)
	RepoName  string // Repository label for new goals ("" outside a repository)
	DataDir   string // Directory holding the store, config, and logs
	StorePath string // Path to the active store file
	Backend   string // Active store backend (json or sqlite)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Goals            domain.GoalRepository
	Tasks            domain.TaskRepository
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	ConfigLoader     domain.ConfigLoader
	Logger           domain.Logger

	// Configuration
	Config Config
}

// New creates a new Container by resolving the data directory for dir.
//
// Inside a git repository the data directory lives under the repository's
// common .git directory, so every worktree shares one store. Outside a
// repository it falls back to $GOALPOST_HOME, or ~/.goalpost.
func New(dir string) (*Container, error) {
	var cfg Config

	gitClient, err := git.NewClient(dir)
	switch {
	case err == nil:
		cfg.RepoRoot = gitClient.RepoRoot()
		cfg.RepoName = gitClient.RepoName()
		cfg.DataDir = gitClient.DataDir()
	case errors.Is(err, domain.ErrNotGitRepository):
		cfg.DataDir, err = homeDataDir()
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	configLoader := config.NewLoader(cfg.DataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	cfg.Backend = appConfig.Store.Backend
	cfg.StorePath = appConfig.Store.Path

	var (
		goalRepo  domain.GoalRepository
		taskRepo  domain.TaskRepository
		storeInit domain.StoreInitializer
	)
	switch cfg.Backend {
	case domain.BackendSQLite:
		if cfg.StorePath == "" {
			cfg.StorePath = domain.DatabasePath(cfg.DataDir)
		}
		store, err := sqlstore.Open(cfg.StorePath)
		if err != nil {
			return nil, err
		}
		// Schema migration is idempotent, so the SQLite backend is always
		// ready once it opens.
		if err := store.Initialize(); err != nil {
			return nil, err
		}
		goalRepo, taskRepo, storeInit = store, store, store
	default:
		if cfg.StorePath == "" {
			cfg.StorePath = domain.DataStorePath(cfg.DataDir)
		}
		store := jsonstore.New(cfg.StorePath)
		goalRepo, taskRepo, storeInit = store, store, store
	}

	logger := logging.New(cfg.DataDir, logging.ParseLevel(appConfig.Log.Level))

	return &Container{
		Goals:            goalRepo,
		Tasks:            taskRepo,
		StoreInitializer: storeInit,
		Clock:            domain.RealClock{},
		ConfigLoader:     configLoader,
		Logger:           logger,
		Config:           cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, goals domain.GoalRepository, tasks domain.TaskRepository, storeInit domain.StoreInitializer, clock domain.Clock, logger domain.Logger) *Container {
	return &Container{
		Goals:            goals,
		Tasks:            tasks,
		StoreInitializer: storeInit,
		Clock:            clock,
		Logger:           logger,
		Config:           cfg,
	}
}

// homeDataDir resolves the data directory used outside a git repository.
func homeDataDir() (string, error) {
	if dir := os.Getenv("GOALPOST_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".goalpost"), nil
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.StoreInitializer)
}

// CreateGoalUseCase returns a new CreateGoal use case.
func (c *Container) CreateGoalUseCase() *usecase.CreateGoal {
	return usecase.NewCreateGoal(c.Goals, c.Clock, c.Logger)
}

// ListGoalsUseCase returns a new ListGoals use case.
func (c *Container) ListGoalsUseCase() *usecase.ListGoals {
	return usecase.NewListGoals(c.Goals, c.Tasks)
}

// ShowGoalUseCase returns a new ShowGoal use case.
func (c *Container) ShowGoalUseCase() *usecase.ShowGoal {
	return usecase.NewShowGoal(c.Goals, c.Tasks)
}

// AddTasksUseCase returns a new AddTasks use case.
func (c *Container) AddTasksUseCase() *usecase.AddTasks {
	return usecase.NewAddTasks(c.Goals, c.Tasks, c.Clock, c.Logger)
}

// AddTasksFromFileUseCase returns a new AddTasksFromFile use case.
func (c *Container) AddTasksFromFileUseCase() *usecase.AddTasksFromFile {
	return usecase.NewAddTasksFromFile(c.AddTasksUseCase())
}

// RemoveTasksUseCase returns a new RemoveTasks use case.
func (c *Container) RemoveTasksUseCase() *usecase.RemoveTasks {
	return usecase.NewRemoveTasks(c.Goals, c.Tasks, c.Clock, c.Logger)
}

// GetTasksUseCase returns a new GetTasks use case.
func (c *Container) GetTasksUseCase() *usecase.GetTasks {
	return usecase.NewGetTasks(c.Goals, c.Tasks)
}

// SetCompletionUseCase returns a new SetCompletion use case.
func (c *Container) SetCompletionUseCase() *usecase.SetCompletion {
	return usecase.NewSetCompletion(c.Goals, c.Tasks, c.Clock, c.Logger)
}
