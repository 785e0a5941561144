package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathplace/internal/config"
	"github.com/abhisek/mathplace/internal/llm"
	"github.com/abhisek/mathplace/internal/questiongen"
	"github.com/abhisek/mathplace/internal/quiz"
	"github.com/abhisek/mathplace/internal/store"
)

// loadConfig reads configuration using the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.Options{ConfigFile: file, EnvFile: envFile})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db (highest priority),
// then the db config key, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore opens the audit database.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// generatorDeps is the question source chosen by configuration.
type generatorDeps struct {
	Generator questiongen.Generator
	// ModelID names the model, or the remote endpoint when questions come
	// from another service.
	ModelID string
}

// buildGenerator returns a client for generation.endpoint when set, and an
// in-process LLM generator otherwise. repo may be nil.
func buildGenerator(ctx context.Context, cfg *config.Config, repo store.EventRepo, log *zap.Logger) (generatorDeps, error) {
	if cfg.Generation.Endpoint != "" {
		client := questiongen.NewClient(cfg.Generation.Endpoint,
			questiongen.WithRequestTimeout(cfg.Generation.Timeout))
		log.Info("using remote question service", zap.String("endpoint", cfg.Generation.Endpoint))
		return generatorDeps{Generator: client, ModelID: cfg.Generation.Endpoint}, nil
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, repo, log)
	if err != nil {
		return generatorDeps{}, fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, questiongen.DefaultConfig(), log)
	return generatorDeps{Generator: gen, ModelID: provider.ModelID()}, nil
}

// quizSettings seeds the settings form from the quiz config section.
func quizSettings(cfg *config.Config) quiz.Settings {
	s := quiz.DefaultSettings()
	if cfg.Quiz.LowerBound != "" {
		s.Lower = cfg.Quiz.LowerBound
	}
	if cfg.Quiz.UpperBound != "" {
		s.Upper = cfg.Quiz.UpperBound
	}
	s.UseSkillsList = cfg.Quiz.UseSkillsList
	if len(cfg.Quiz.Skills) > 0 {
		s.Skills = cfg.Quiz.Skills
	}
	return s
}

// controllerTimeout is the per-question bound for learner surfaces.
func controllerTimeout(cfg *config.Config) quiz.Option {
	if cfg.Generation.Timeout > 0 {
		return quiz.WithTimeout(cfg.Generation.Timeout)
	}
	return quiz.WithTimeout(quiz.DefaultTimeout)
}
