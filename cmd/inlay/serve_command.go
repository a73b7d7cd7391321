package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"inlay/internal/explorer"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bindFlag string
	var staticFlag string
	var lookupFlag string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local asset explorer over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			bind := bindFlag
			if bind == "" {
				bind = cfg.Serve.Bind
			}
			lookupPath, err := resolvePath(lookupFlag, cfg.Paths.LookupFile)
			if err != nil {
				return err
			}
			staticDir, err := resolvePath(staticFlag, cfg.Serve.StaticDir)
			if err != nil {
				return err
			}

			server := explorer.New(lookupPath, staticDir, ctx.loggerValue())

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(bind)
			}()

			select {
			case err := <-errCh:
				return err
			case <-runCtx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&bindFlag, "bind", "", "Listen address (host:port)")
	cmd.Flags().StringVar(&staticFlag, "static", "", "Directory of static files to serve at /")
	cmd.Flags().StringVar(&lookupFlag, "lookup", "", "Lookup file to serve")

	return cmd
}
