package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/autoreview/internal/config"
	"github.com/dshills/autoreview/internal/export"
	"github.com/dshills/autoreview/internal/github"
	"github.com/dshills/autoreview/internal/review"
	"github.com/dshills/autoreview/internal/server"
)

var flagListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the review workflow over HTTP",
	Long:  "Expose review and export as an HTTP API: POST /api/v1/review, POST /api/v1/export, GET /healthz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]string{}
		if flagListen != "" {
			overrides["listen"] = flagListen
		}
		cfg, err := config.Load(overrides)
		if err != nil {
			return err
		}

		client, err := github.NewClient(cfg.Token, cfg.APIURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v (set GITHUB_TOKEN)\n", err)
			exitCode = ExitAuthError
			return nil
		}

		sink, err := buildSink(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		logger := server.NewStdLogger()
		handlers := server.NewHandlers(review.New(client, nil), sink, logger)

		srv := &http.Server{
			Handler:      server.NewRouter(handlers),
			Addr:         cfg.Listen,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 2 * time.Duration(cfg.TimeoutSeconds) * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		logger.Infof("listening on %s", cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func buildSink(cfg config.Config) (export.Sink, error) {
	if cfg.Export.Endpoint != "" {
		return export.NewHTTPSink(cfg.Export.Endpoint, time.Duration(cfg.TimeoutSeconds)*time.Second)
	}
	return export.NewDirSink(cfg.Export.Dir)
}

func init() {
	serveCmd.Flags().StringVar(&flagListen, "listen", "", "Listen address (default :8080)")
}
