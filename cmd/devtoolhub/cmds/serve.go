package cmds

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Joxx0r/devtoolhub/pkg/hub"
	"github.com/Joxx0r/devtoolhub/pkg/web"
)

const defaultPort = 41001

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := getRootOptions(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("port") {
				port = portFromEnv()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h := hub.New(cfg)
			if err := h.Start(ctx); err != nil {
				return errors.Wrap(err, "start hub")
			}
			defer h.Stop()

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", port),
				Handler:           web.NewRouter(h),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Int("port", port).Int("tools", len(cfg.Tools)).Msg("serving dashboard")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return errors.Wrap(err, "serve")
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errors.Wrap(err, "shutdown")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", defaultPort, "Port to listen on (DEVTOOLHUB_PORT overrides the default)")
	return cmd
}

func portFromEnv() int {
	v := os.Getenv("DEVTOOLHUB_PORT")
	if v == "" {
		return defaultPort
	}
	p, err := strconv.Atoi(v)
	if err != nil || p <= 0 || p > 65535 {
		log.Warn().Str("value", v).Msg("ignoring invalid DEVTOOLHUB_PORT")
		return defaultPort
	}
	return p
}
