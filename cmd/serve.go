package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/p5embed/internal/api"
	"github.com/ziadkadry99/p5embed/internal/editor"
	"github.com/ziadkadry99/p5embed/internal/embed"
	"github.com/ziadkadry99/p5embed/internal/preview"
	"github.com/ziadkadry99/p5embed/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sketch editor and embed server",
	Long:  `Starts the HTTP server with the live editor, the sketch API and the embeddable sketch pages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		st, closer, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		srv := server.New(server.Config{
			Port:     cfg.Port,
			AllowAll: cfg.AllowAllOrigins,
		})

		r := srv.Router()
		api.RegisterRoutes(r, st, api.Options{
			MaxBodyBytes: cfg.MaxBodyBytes,
			Page: embed.PageOptions{
				P5URL:     cfg.P5URL,
				Highlight: cfg.Embed.Highlight,
				Style:     cfg.Embed.Style,
			},
		})
		editor.New(st, preview.NewRegistry(), preview.Options{
			P5URL:        cfg.P5URL,
			LoadingDelay: cfg.PreviewDelay,
		}).RegisterRoutes(r)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "p5embed server %s starting on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Store: %s\n", cfg.Store.Backend)
		if verbose {
			fmt.Fprintf(os.Stderr, "  p5.js: %s\n", cfg.P5URL)
			fmt.Fprintf(os.Stderr, "  Preview delay: %s\n", cfg.PreviewDelay)
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 3000, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
