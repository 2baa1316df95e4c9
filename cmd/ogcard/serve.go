package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/ogcard"
	"github.com/eringen/ogcard/cards"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve cards over HTTP",
	Long: `Starts the HTTP server. Cards are served from /og/<template>/ as image/svg+xml.

OGCARD_ADMIN_PASSWORD and OGCARD_SESSION_SECRET must be set; font registry
changes over HTTP require an admin session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		engineURL, _ := cmd.Flags().GetString("engine")
		dbPath, _ := cmd.Flags().GetString("db")
		verify, _ := cmd.Flags().GetBool("verify-fonts")

		cfg := ogcard.ServerConfig{
			Addr:          addr,
			DatabasePath:  dbPath,
			EngineURL:     engineURL,
			VerifyFonts:   verify,
			AdminPassword: os.Getenv("OGCARD_ADMIN_PASSWORD"),
			SessionSecret: os.Getenv("OGCARD_SESSION_SECRET"),
			CookieSecure:  os.Getenv("OGCARD_COOKIE_SECURE") == "true",
		}
		if v := os.Getenv("OGCARD_RENDER_LIMIT"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("OGCARD_RENDER_LIMIT: %w", err)
			}
			cfg.RenderLimit = n
		}
		if v := os.Getenv("OGCARD_CACHE_TTL"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("OGCARD_CACHE_TTL: %w", err)
			}
			cfg.CacheTTL = d
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServer(ctx, ogcard.New(cfg, cards.All()), cmd.OutOrStdout())
	},
}

// runServer initializes app before listening so that a shutdown never races
// initialization, then serves until ctx is done or the listener fails.
func runServer(ctx context.Context, app *ogcard.App, out io.Writer) error {
	defer app.Close()
	if err := app.Init(); err != nil {
		return err
	}

	serverErrors := make(chan error, 1)
	go func() {
		if err := app.Echo.Start(app.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		fmt.Fprintln(out, "\nShutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return app.Echo.Shutdown(shutdownCtx)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ogcard.EnvOr("OGCARD_ADDR", ":3000"), "Listen address")
	serveCmd.Flags().Bool("verify-fonts", false, "Reject font payloads that are not TrueType/OpenType")
}
