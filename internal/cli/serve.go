package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"inkwell/internal/api"
	"inkwell/internal/config"
	"inkwell/internal/store"
	"inkwell/internal/web"
)

const shutdownGrace = 5 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var (
		addr      string
		dbPath    string
		noBrowser bool
		logJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Inkwell server (REST API + web board)",
		Long: strings.TrimSpace(`
Run the HTTP server every client talks to: the REST API under /api and the
server-rendered web board at /. The TUI (bare ` + "`inkwell`" + `) and the client
commands need this running.
`),
		Example: strings.TrimSpace(`
  inkwell serve
  inkwell serve --addr 127.0.0.1:9000 --no-browser
  inkwell serve --db ./inkwell.db
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}

			setupServerLogging(logJSON)

			st, err := store.Open(cmd.Context(), cfg.DBPath)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("open database: %w", err))
			}
			defer func() { _ = st.Close() }()

			webSrv, err := web.NewServer(st, nil)
			if err != nil {
				return writeErr(cmd, err)
			}
			// REST mutations wake the live board views too.
			apiSvc := api.New(st, webSrv.Hub().Invalidate)

			mux := http.NewServeMux()
			mux.Handle("/api/", apiSvc.Router())
			mux.Handle("/", webSrv.Handler())

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("listen on %s: %w", cfg.Addr, err))
			}
			url := "http://" + ln.Addr().String() + "/"

			log.Info().
				Str("addr", ln.Addr().String()).
				Str("db", cfg.DBPath).
				Msg("inkwell server listening")
			fmt.Fprintf(cmd.ErrOrStderr(), "Inkwell running at %s (db: %s)\n", url, cfg.DBPath)

			if !noBrowser {
				if err := openBrowser(url); err != nil {
					log.Warn().Err(err).Msg("could not open browser")
				}
			}

			srv := &http.Server{Handler: mux}
			errCh := make(chan error, 1)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-errCh:
				return writeErr(cmd, err)
			case <-sigCtx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (default from config, "+config.DefaultAddr+")")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open the web board in a browser")
	cmd.Flags().BoolVar(&logJSON, "log-json", false, "Log JSON lines instead of console format")

	return cmd
}

// setupServerLogging configures the process-wide zerolog logger the API
// middleware writes through.
func setupServerLogging(jsonLines bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if v := strings.TrimSpace(os.Getenv("INKWELL_LOG_LEVEL")); v != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			zerolog.SetGlobalLevel(lvl)
		}
	}
	if jsonLines {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

func openBrowser(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("empty url")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url).Run()
	default:
		return exec.Command("xdg-open", url).Run()
	}
}
