package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathplace/internal/app"
	"github.com/abhisek/mathplace/internal/logging"
	"github.com/abhisek/mathplace/internal/quiz"
)

// runApp loads configuration, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The TUI owns the terminal, so logs only go to the configured file.
	log, err := logging.New(cfg.Logging, logging.Options{})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	deps, err := buildGenerator(ctx, cfg, st.EventRepo(), log)
	if err != nil {
		return err
	}
	log.Info("starting placement test", zap.String("model", deps.ModelID))

	ctrl := quiz.NewController(deps.Generator, controllerTimeout(cfg), quiz.WithLogger(log))
	defer ctrl.Close()

	return app.Run(app.Options{
		Controller: ctrl,
		Settings:   quizSettings(cfg),
	})
}
