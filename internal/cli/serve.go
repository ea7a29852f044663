package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"toggl-reports/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP server that generates reports on demand",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, cfg, err := setup(cmd)
		if err != nil {
			return err
		}

		application, err := app.New(cmd.Context(), log, cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		addr, _ := cmd.Flags().GetString("addr")
		srv := application.HTTPServer(addr)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-cmd.Context().Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")
}
