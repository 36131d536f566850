package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/connorhough/llmqa/internal/config"
	"github.com/connorhough/llmqa/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web page and JSON API",
		Long: `Serve the question page and JSON API.

Routes:
  GET  /               question page with recent history
  POST /ask            submit the form
  POST /history/clear  clear history
  POST /mock           toggle mock mode
  POST /api/ask        {"question": "..."} -> turn
  GET  /api/history    recent turns, newest first
  DELETE /api/history  clear history
  GET  /healthz        liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := resolveSettings("serve")
			if err != nil {
				return err
			}
			if addr == "" {
				addr = viper.GetString(config.KeyServeAddr)
			}

			log := newLogger(settings, cmd.ErrOrStderr(), true)
			sess, err := newSession(settings, log)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           web.New(sess, log, settings.Timeout+15*time.Second).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				log.Info("web shell listening", "addr", addr, "mock", sess.Mock())
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				log.Info("shutting down web shell")
				return srv.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from serve.addr, :8501)")

	return cmd
}
