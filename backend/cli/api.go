package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/PressureTank/authdemo/backend/config"
	"github.com/PressureTank/authdemo/backend/database/memory"
	"github.com/PressureTank/authdemo/backend/router"
	"github.com/PressureTank/authdemo/backend/server"
	"github.com/PressureTank/authdemo/backend/user"
)

func APICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Starts the API server",
		Long:  ``,
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}

			logger, err := cfg.NewLogger()
			if err != nil {
				return errors.Wrap(err, "failed to create logger")
			}
			defer func() {
				err = multierr.Append(err, syncLogger(logger))
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runAPI(ctx, cfg, logger)
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "address to listen on")
	cmd.Flags().Duration("shutdown-timeout", config.DefaultShutdownTimeout, "how long to wait for in-flight requests on shutdown")

	return cmd
}

func runAPI(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	srv := server.New(cfg.Addr, NewHandler(logger), cfg.ShutdownTimeout, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("Error running server", zap.Error(err))
		return err
	}
	return nil
}

// syncLogger flushes logger. Sync on a terminal or pipe fails with EINVAL
// or ENOTTY, which is not a lost write and is not reported.
func syncLogger(logger *zap.Logger) error {
	err := logger.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return nil
	}
	return errors.Wrap(err, "failed to sync logger")
}

// NewHandler builds the full HTTP stack over a fresh, empty registry.
func NewHandler(logger *zap.Logger) http.Handler {
	db := memory.NewMemoryDB(logger)
	userHandler := user.NewUserHandler(db, logger)
	return router.NewRouter(userHandler, logger)
}
