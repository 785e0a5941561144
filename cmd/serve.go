package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathplace/internal/logging"
	"github.com/abhisek/mathplace/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question generation HTTP service",
	Long: `Serve POST /api/generate-question for browser and remote clients.

The service is stateless: every request carries the previous answer, the
streak and the difficulty settings. /healthz and /metrics are exposed too.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	log, err := logging.New(cfg.Logging, logging.Options{Console: true, Stderr: os.Stderr})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	// A service must generate locally; pointing it at another endpoint
	// would only proxy.
	cfg.Generation.Endpoint = ""
	deps, err := buildGenerator(ctx, cfg, st.EventRepo(), log)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(deps.Generator, server.Options{
		Config:  cfg.Server,
		Timeout: cfg.Generation.Timeout,
		ModelID: deps.ModelID,
		Logger:  log,
	})
	return srv.ListenAndServe(ctx)
}
